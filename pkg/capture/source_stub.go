//go:build !gocv

package capture

import "errors"

var errNativeCaptureDisabled = errors.New("built without gocv support")

type nativeOpener struct{}

func (nativeOpener) OpenCamera(int) (FrameSource, error) {
	return nil, errNativeCaptureDisabled
}

func (nativeOpener) OpenVideo(string) (FrameSource, error) {
	return nil, errNativeCaptureDisabled
}
