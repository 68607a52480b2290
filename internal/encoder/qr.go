package encoder

import (
	"errors"
	"image"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"
)

var qrPalette = color.Palette{color.White, color.Black}

const qrDark uint8 = 1

// renderQR builds the smallest QR version that fits content, surrounds it with
// the configured quiet zone and scales every module to a square of pixels.
func (d *Dispatcher) renderQR(content string) (image.Image, error) {
	q, err := qrcode.New(content, d.cfg.QRRecoveryLevel)
	if err != nil {
		return nil, err
	}
	// The library's fixed 4-module border is replaced by our own.
	q.DisableBorder = true

	bitmap := q.Bitmap()
	n := len(bitmap)
	if n == 0 {
		return nil, errors.New("empty qr symbol")
	}

	scale := d.cfg.QRModuleScale
	border := d.cfg.QRBorderModules
	side := (n + 2*border) * scale

	img := image.NewPaletted(image.Rect(0, 0, side, side), qrPalette)
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + border) * scale
			y0 := (y + border) * scale
			for py := y0; py < y0+scale; py++ {
				for px := x0; px < x0+scale; px++ {
					img.SetColorIndex(px, py, qrDark)
				}
			}
		}
	}

	return img, nil
}
