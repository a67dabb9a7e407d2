package overlay

import "image/color"

const (
	personLineWidth = 2.0
	tableLineWidth  = 3.0
	dashOn          = 5.0
	dashOff         = 3.0
	tintAlpha       = 26 // round(0.1 * 255)
)

var (
	personColor   = color.NRGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	occupiedColor = color.NRGBA{R: 0xdc, G: 0x35, B: 0x45, A: 0xff}
	freeColor     = color.NRGBA{R: 0x28, G: 0xa7, B: 0x45, A: 0xff}
)

func tint(c color.NRGBA) color.NRGBA {
	c.A = tintAlpha
	return c
}

type textStyle struct {
	bold bool
	size float64
}

var (
	personLabelStyle = textStyle{bold: true, size: 14}
	tableLabelStyle  = textStyle{bold: true, size: 16}
	countStyle       = textStyle{size: 14}
	confidenceStyle  = textStyle{size: 12}
)
