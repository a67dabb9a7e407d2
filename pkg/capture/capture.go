package capture

import (
	"CafeAnalyzer/pkg/response"
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

type Mode string

const (
	ModeNone   Mode = "none"
	ModeImage  Mode = "image"
	ModeVideo  Mode = "video"
	ModeCamera Mode = "camera"
)

// FrameSource yields frames from an opened video file or camera. A negative
// position means "the live frame".
type FrameSource interface {
	Frame(positionMs float64) (image.Image, error)
	Close() error
}

type SourceOpener interface {
	OpenCamera(device int) (FrameSource, error)
	OpenVideo(path string) (FrameSource, error)
}

type ICapturer interface {
	SelectFile(filename string, contentType string, data []byte) (Mode, error)
	ActivateCamera(device int) error
	Seek(positionMs float64) error
	Capture(ctx context.Context) (image.Image, error)
	Mode() Mode
	Close() error
}

type Capturer struct {
	mu         sync.Mutex
	opener     SourceOpener
	tempDir    string
	mode       Mode
	imageData  []byte
	source     FrameSource
	videoPath  string
	positionMs float64
}

type Option func(*Capturer)

func WithSourceOpener(opener SourceOpener) Option {
	return func(c *Capturer) {
		c.opener = opener
	}
}

func WithTempDir(dir string) Option {
	return func(c *Capturer) {
		c.tempDir = dir
	}
}

func New(opts ...Option) *Capturer {
	c := &Capturer{
		opener: nativeOpener{},
		mode:   ModeNone,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// KindOf maps a content type to the capture mode that handles it.
func KindOf(contentType string) Mode {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return ModeImage
	case strings.HasPrefix(contentType, "video/"):
		return ModeVideo
	default:
		return ModeNone
	}
}

// SelectFile replaces the current media with the given file.
func (c *Capturer) SelectFile(filename string, contentType string, data []byte) (Mode, error) {
	if len(data) == 0 {
		return ModeNone, ErrNoMediaSelected
	}

	kind := KindOf(contentType)
	if kind == ModeNone {
		return ModeNone, response.Wrap(ErrUnsupportedMedia, fmt.Errorf("content type %q", contentType))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if kind == ModeImage {
		c.releaseLocked()
		c.imageData = data
		c.mode = ModeImage
		return c.mode, nil
	}

	path, err := c.spool(filename, data)
	if err != nil {
		return ModeNone, response.Wrap(ErrCaptureFailed, err)
	}

	source, err := c.opener.OpenVideo(path)
	if err != nil {
		_ = os.Remove(path)
		return ModeNone, response.Wrap(ErrUnsupportedMedia, err)
	}

	c.releaseLocked()
	c.source = source
	c.videoPath = path
	c.positionMs = 0
	c.mode = ModeVideo
	return c.mode, nil
}

// ActivateCamera switches to the live camera. On failure the previous media
// stays selected.
func (c *Capturer) ActivateCamera(device int) error {
	source, err := c.opener.OpenCamera(device)
	if err != nil {
		return response.Wrap(ErrCameraAccessDenied, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.releaseLocked()
	c.source = source
	c.mode = ModeCamera
	return nil
}

func (c *Capturer) Seek(positionMs float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeVideo {
		return ErrNotSeekable
	}
	if positionMs < 0 {
		positionMs = 0
	}
	c.positionMs = positionMs
	return nil
}

// Capture returns the frame currently shown for the selected media at its
// native resolution.
func (c *Capturer) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case ModeImage:
		img, err := imaging.Decode(bytes.NewReader(c.imageData), imaging.AutoOrientation(true))
		if err != nil {
			return nil, response.Wrap(ErrUnsupportedMedia, err)
		}
		return img, nil
	case ModeVideo:
		return c.frameLocked(c.positionMs)
	case ModeCamera:
		return c.frameLocked(-1)
	default:
		return nil, ErrNoMediaSelected
	}
}

func (c *Capturer) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Capturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked()
	c.mode = ModeNone
	return nil
}

func (c *Capturer) frameLocked(positionMs float64) (image.Image, error) {
	if c.source == nil {
		return nil, ErrNoMediaSelected
	}
	img, err := c.source.Frame(positionMs)
	if err != nil {
		return nil, response.Wrap(ErrCaptureFailed, err)
	}
	return img, nil
}

func (c *Capturer) spool(filename string, data []byte) (string, error) {
	f, err := os.CreateTemp(c.tempDir, "cafe-video-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (c *Capturer) releaseLocked() {
	if c.source != nil {
		_ = c.source.Close()
		c.source = nil
	}
	if c.videoPath != "" {
		_ = os.Remove(c.videoPath)
		c.videoPath = ""
	}
	c.imageData = nil
	c.positionMs = 0
}
