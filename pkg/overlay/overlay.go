package overlay

import (
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/pkg/locale"
	"image"
	"image/draw"
)

var personDash = []float64{dashOn, dashOff}

// Render clears dst and draws the detections of result on it: people first,
// then tables on top. Rendering the same result twice yields the same pixels.
func Render(dst draw.Image, result entity.AnalysisResult, texts locale.Texts) error {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)

	p := newPainter(dst)
	faces := newFaceCache()
	defer faces.close()

	for _, person := range result.People {
		b := person.BBox
		p.strokeRect(b.X1(), b.Y1(), b.X2(), b.Y2(), personLineWidth, personDash, personColor)
		p.fillRect(b.X1(), b.Y1(), b.X2(), b.Y2(), tint(personColor))

		if err := faces.drawText(dst, personLabelStyle, personColor, b.X1(), b.Y1()-5, texts.PersonCaption(person.ID)); err != nil {
			return err
		}
		if err := faces.drawText(dst, confidenceStyle, personColor, b.X1(), b.Y1()-25, texts.ConfidenceCaption(person.Confidence)); err != nil {
			return err
		}
	}

	for _, table := range result.Tables {
		b := table.BBox
		col := freeColor
		if table.IsOccupied() {
			col = occupiedColor
		}

		p.strokeRect(b.X1(), b.Y1(), b.X2(), b.Y2(), tableLineWidth, nil, col)
		p.fillRect(b.X1(), b.Y1(), b.X2(), b.Y2(), tint(col))

		if err := faces.drawText(dst, tableLabelStyle, col, b.X1(), b.Y1()-5, texts.TableCaption(table.ID, table.IsOccupied())); err != nil {
			return err
		}
		if table.PersonCount > 0 {
			if err := faces.drawText(dst, countStyle, col, b.X1(), b.Y1()-25, texts.PeopleCaption(table.PersonCount)); err != nil {
				return err
			}
		}
		if err := faces.drawText(dst, confidenceStyle, col, b.X1(), b.Y1()-45, texts.ConfidenceCaption(table.Confidence)); err != nil {
			return err
		}
	}

	return nil
}

// Compose returns a copy of base with the overlay for result drawn over it.
func Compose(base image.Image, result entity.AnalysisResult, texts locale.Texts) (*image.RGBA, error) {
	bounds := image.Rect(0, 0, base.Bounds().Dx(), base.Bounds().Dy())

	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, base, base.Bounds().Min, draw.Src)

	layer := image.NewRGBA(bounds)
	if err := Render(layer, result, texts); err != nil {
		return nil, err
	}
	draw.Draw(out, bounds, layer, image.Point{}, draw.Over)

	return out, nil
}
