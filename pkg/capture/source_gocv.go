//go:build gocv

package capture

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

type nativeOpener struct{}

func (nativeOpener) OpenCamera(device int) (FrameSource, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	if !vc.IsOpened() {
		_ = vc.Close()
		return nil, fmt.Errorf("camera %d is not available", device)
	}
	return &gocvSource{vc: vc, live: true}, nil
}

func (nativeOpener) OpenVideo(path string) (FrameSource, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	if !vc.IsOpened() {
		_ = vc.Close()
		return nil, errors.New("video stream could not be opened")
	}
	return &gocvSource{vc: vc}, nil
}

type gocvSource struct {
	mu   sync.Mutex
	vc   *gocv.VideoCapture
	live bool
}

func (s *gocvSource) Frame(positionMs float64) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.live && positionMs >= 0 {
		s.vc.Set(gocv.VideoCapturePosMsec, positionMs)
	}

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := s.vc.Read(&mat); !ok || mat.Empty() {
		return nil, errors.New("no frame available")
	}

	return mat.ToImage()
}

func (s *gocvSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vc.Close()
}
