package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontsOnce sync.Once
	fontsErr  error
	regular   *opentype.Font
	bold      *opentype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regular, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("parse regular font: %w", fontsErr)
			return
		}
		bold, fontsErr = opentype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

// faceCache holds the faces of one render pass. Faces keep internal buffers
// and must not be shared between goroutines.
type faceCache struct {
	faces map[textStyle]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{faces: make(map[textStyle]font.Face)}
}

func (c *faceCache) face(style textStyle) (font.Face, error) {
	if f, ok := c.faces[style]; ok {
		return f, nil
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}

	src := regular
	if style.bold {
		src = bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    style.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[style] = f
	return f, nil
}

func (c *faceCache) close() {
	for _, f := range c.faces {
		_ = f.Close()
	}
}

// drawText places s with its alphabetic baseline at (x, y), like a canvas
// fillText call.
func (c *faceCache) drawText(dst draw.Image, style textStyle, col color.Color, x, y float64, s string) error {
	face, err := c.face(style)
	if err != nil {
		return err
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(s)
	return nil
}
