package encoder

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/boombuler/barcode/code128"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// renderBarcode draws the Code128 bars for content with the content itself
// printed centred beneath them.
func (d *Dispatcher) renderBarcode(content string) (image.Image, error) {
	bc, err := code128.Encode(content)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(d.font, &opentype.FaceOptions{
		Size:    d.cfg.BarcodeFontSize,
		DPI:     d.cfg.BarcodeDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	l := d.layout
	modules := bc.Bounds().Dx()
	barsWidth := modules * l.modulePx
	textWidth := font.MeasureString(face, content).Ceil()
	metrics := face.Metrics()

	width := max(barsWidth, textWidth) + 2*l.quietZonePx
	barTop := l.marginTopPx
	barBottom := barTop + l.barHeightPx
	baseline := barBottom + l.textDistancePx
	height := baseline + metrics.Descent.Ceil() + l.marginTopPx

	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	left := (width - barsWidth) / 2
	for m := 0; m < modules; m++ {
		if !isDark(bc.At(bc.Bounds().Min.X+m, bc.Bounds().Min.Y)) {
			continue
		}
		x0 := left + m*l.modulePx
		bar := image.Rect(x0, barTop, x0+l.modulePx, barBottom)
		draw.Draw(img, bar, image.Black, image.Point{}, draw.Src)
	}

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P((width-textWidth)/2, baseline),
	}
	drawer.DrawString(content)

	return img, nil
}

func isDark(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < 0x80
}
