package capture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

type fakeSource struct {
	frames    []float64
	closed    bool
	failFrame bool
}

func (s *fakeSource) Frame(positionMs float64) (image.Image, error) {
	if s.failFrame {
		return nil, errors.New("decoder stalled")
	}
	s.frames = append(s.frames, positionMs)
	return image.NewRGBA(image.Rect(0, 0, 64, 48)), nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type fakeOpener struct {
	camera    *fakeSource
	video     *fakeSource
	cameraErr error
	videoPath string
}

func (o *fakeOpener) OpenCamera(int) (FrameSource, error) {
	if o.cameraErr != nil {
		return nil, o.cameraErr
	}
	return o.camera, nil
}

func (o *fakeOpener) OpenVideo(path string) (FrameSource, error) {
	o.videoPath = path
	return o.video, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestCaptureWithoutMedia(t *testing.T) {
	c := New(WithSourceOpener(&fakeOpener{}))
	if _, err := c.Capture(context.Background()); !errors.Is(err, ErrNoMediaSelected) {
		t.Fatalf("Capture() err = %v, want ErrNoMediaSelected", err)
	}
}

func TestSelectImageAndCapture(t *testing.T) {
	c := New(WithSourceOpener(&fakeOpener{}))

	mode, err := c.SelectFile("table.png", "image/png", pngBytes(t, 32, 16))
	if err != nil {
		t.Fatalf("SelectFile() error = %v", err)
	}
	if mode != ModeImage {
		t.Fatalf("mode = %q, want %q", mode, ModeImage)
	}

	img, err := c.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("captured size = %dx%d, want 32x16", b.Dx(), b.Dy())
	}
}

func TestSelectFileRejectsUnsupported(t *testing.T) {
	c := New(WithSourceOpener(&fakeOpener{}))

	if _, err := c.SelectFile("notes.txt", "text/plain", []byte("hello")); !errors.Is(err, ErrUnsupportedMedia) {
		t.Errorf("text file: err = %v, want ErrUnsupportedMedia", err)
	}
	if _, err := c.SelectFile("empty.png", "image/png", nil); !errors.Is(err, ErrNoMediaSelected) {
		t.Errorf("empty file: err = %v, want ErrNoMediaSelected", err)
	}
}

func TestCorruptImageIsUnsupported(t *testing.T) {
	c := New(WithSourceOpener(&fakeOpener{}))
	if _, err := c.SelectFile("broken.jpg", "image/jpeg", []byte("not a jpeg")); err != nil {
		t.Fatalf("SelectFile() error = %v", err)
	}
	if _, err := c.Capture(context.Background()); !errors.Is(err, ErrUnsupportedMedia) {
		t.Errorf("Capture() err = %v, want ErrUnsupportedMedia", err)
	}
}

func TestVideoSeekAndCapture(t *testing.T) {
	video := &fakeSource{}
	opener := &fakeOpener{video: video}
	c := New(WithSourceOpener(opener), WithTempDir(t.TempDir()))

	if err := c.Seek(100); !errors.Is(err, ErrNotSeekable) {
		t.Fatalf("Seek() before video err = %v, want ErrNotSeekable", err)
	}

	mode, err := c.SelectFile("clip.mp4", "video/mp4", []byte("fake video bytes"))
	if err != nil {
		t.Fatalf("SelectFile() error = %v", err)
	}
	if mode != ModeVideo {
		t.Fatalf("mode = %q, want %q", mode, ModeVideo)
	}
	if _, err := os.Stat(opener.videoPath); err != nil {
		t.Fatalf("spooled video missing: %v", err)
	}

	if err := c.Seek(1500); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if _, err := c.Capture(context.Background()); err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if len(video.frames) != 1 || video.frames[0] != 1500 {
		t.Errorf("frame positions = %v, want [1500]", video.frames)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !video.closed {
		t.Error("video source not closed")
	}
	if _, err := os.Stat(opener.videoPath); !os.IsNotExist(err) {
		t.Errorf("spooled video not removed: %v", err)
	}
}

func TestCameraDeniedKeepsPreviousMedia(t *testing.T) {
	c := New(WithSourceOpener(&fakeOpener{cameraErr: errors.New("permission denied")}))

	if _, err := c.SelectFile("table.png", "image/png", pngBytes(t, 8, 8)); err != nil {
		t.Fatalf("SelectFile() error = %v", err)
	}

	err := c.ActivateCamera(0)
	if !errors.Is(err, ErrCameraAccessDenied) {
		t.Fatalf("ActivateCamera() err = %v, want ErrCameraAccessDenied", err)
	}
	if c.Mode() != ModeImage {
		t.Errorf("mode after denied camera = %q, want %q", c.Mode(), ModeImage)
	}
	if _, err := c.Capture(context.Background()); err != nil {
		t.Errorf("file flow broken after camera denial: %v", err)
	}
}

func TestCameraCapturesLiveFrame(t *testing.T) {
	camera := &fakeSource{}
	c := New(WithSourceOpener(&fakeOpener{camera: camera}))

	if err := c.ActivateCamera(0); err != nil {
		t.Fatalf("ActivateCamera() error = %v", err)
	}
	if _, err := c.Capture(context.Background()); err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if len(camera.frames) != 1 || camera.frames[0] >= 0 {
		t.Errorf("camera frame positions = %v, want one live frame", camera.frames)
	}
}

func TestCaptureFrameFailure(t *testing.T) {
	c := New(WithSourceOpener(&fakeOpener{camera: &fakeSource{failFrame: true}}))
	if err := c.ActivateCamera(0); err != nil {
		t.Fatalf("ActivateCamera() error = %v", err)
	}
	if _, err := c.Capture(context.Background()); !errors.Is(err, ErrCaptureFailed) {
		t.Errorf("Capture() err = %v, want ErrCaptureFailed", err)
	}
}

func TestEncodeJPEG(t *testing.T) {
	data, err := EncodeJPEG(image.NewRGBA(image.Rect(0, 0, 20, 10)))
	if err != nil {
		t.Fatalf("EncodeJPEG() error = %v", err)
	}
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Errorf("output does not start with a JPEG SOI marker")
	}
}
