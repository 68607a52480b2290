// Package encoder renders validated content as PNG images of a QR symbol or a
// Code128 barcode.
//
// Rendering parameters are fixed at construction time. A Dispatcher holds no
// per-request state and may be shared by any number of goroutines.
package encoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/foodsaid/qrgen/internal/model"
)

// Barcode rendering parameters. Distances are in millimetres.
const (
	BarcodeModuleWidthMM  = 0.3
	BarcodeModuleHeightMM = 15.0
	BarcodeQuietZoneMM    = 3.0
	BarcodeFontSize       = 12
	BarcodeTextDistanceMM = 6.0
	BarcodeMarginTopMM    = 3.0
	BarcodeDPI            = 300
)

// QR rendering parameters.
const (
	QRBorderModules = 1
	QRModuleScale   = 10
	QRRecoveryLevel = qrcode.Low
)

const mmPerInch = 25.4

// ErrEncoding matches every *EncodingError via errors.Is.
var ErrEncoding = errors.New("encoding failed")

var errInvalidRenderConfig = errors.New("invalid render config")

// EncodingError reports a failure inside a symbology backend.
type EncodingError struct {
	Kind    model.Kind
	Message string
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s encoding failed: %s", e.Kind, e.Message)
}

func (e *EncodingError) Unwrap() error { return e.Err }

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

// RenderConfig holds the rendering parameters of both symbologies.
type RenderConfig struct {
	BarcodeModuleWidthMM  float64
	BarcodeModuleHeightMM float64
	BarcodeQuietZoneMM    float64
	BarcodeFontSize       float64
	BarcodeTextDistanceMM float64
	BarcodeMarginTopMM    float64
	BarcodeDPI            float64

	QRBorderModules int
	QRModuleScale   int
	QRRecoveryLevel qrcode.RecoveryLevel
}

// DefaultRenderConfig returns the parameters the service renders with.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		BarcodeModuleWidthMM:  BarcodeModuleWidthMM,
		BarcodeModuleHeightMM: BarcodeModuleHeightMM,
		BarcodeQuietZoneMM:    BarcodeQuietZoneMM,
		BarcodeFontSize:       BarcodeFontSize,
		BarcodeTextDistanceMM: BarcodeTextDistanceMM,
		BarcodeMarginTopMM:    BarcodeMarginTopMM,
		BarcodeDPI:            BarcodeDPI,
		QRBorderModules:       QRBorderModules,
		QRModuleScale:         QRModuleScale,
		QRRecoveryLevel:       QRRecoveryLevel,
	}
}

func (c RenderConfig) validate() error {
	switch {
	case c.BarcodeModuleWidthMM <= 0, c.BarcodeModuleHeightMM <= 0, c.BarcodeDPI <= 0:
		return fmt.Errorf("%w: barcode module size and dpi must be positive", errInvalidRenderConfig)
	case c.BarcodeQuietZoneMM < 0, c.BarcodeTextDistanceMM < 0, c.BarcodeMarginTopMM < 0:
		return fmt.Errorf("%w: barcode margins must not be negative", errInvalidRenderConfig)
	case c.BarcodeFontSize <= 0:
		return fmt.Errorf("%w: barcode font size must be positive", errInvalidRenderConfig)
	case c.QRBorderModules < 0:
		return fmt.Errorf("%w: qr border must not be negative", errInvalidRenderConfig)
	case c.QRModuleScale <= 0:
		return fmt.Errorf("%w: qr module scale must be positive", errInvalidRenderConfig)
	}
	return nil
}

// barcodeLayout is the barcode geometry in pixels.
type barcodeLayout struct {
	modulePx       int
	barHeightPx    int
	quietZonePx    int
	textDistancePx int
	marginTopPx    int
}

// Dispatcher selects the symbology backend for a request.
type Dispatcher struct {
	cfg    RenderConfig
	layout barcodeLayout
	font   *opentype.Font
}

// New creates a Dispatcher. It fails if cfg is inconsistent or the
// embedded font cannot be parsed.
func New(cfg RenderConfig) (*Dispatcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse barcode font: %w", err)
	}

	return &Dispatcher{
		cfg: cfg,
		layout: barcodeLayout{
			modulePx:       atLeastOne(mmToPx(cfg.BarcodeModuleWidthMM, cfg.BarcodeDPI)),
			barHeightPx:    atLeastOne(mmToPx(cfg.BarcodeModuleHeightMM, cfg.BarcodeDPI)),
			quietZonePx:    mmToPx(cfg.BarcodeQuietZoneMM, cfg.BarcodeDPI),
			textDistancePx: mmToPx(cfg.BarcodeTextDistanceMM, cfg.BarcodeDPI),
			marginTopPx:    mmToPx(cfg.BarcodeMarginTopMM, cfg.BarcodeDPI),
		},
		font: f,
	}, nil
}

// Config returns the rendering parameters of d.
func (d *Dispatcher) Config() RenderConfig {
	return d.cfg
}

// Encode renders content as a PNG image of the given kind.
// Any backend failure, including a panic, is returned as *EncodingError.
func (d *Dispatcher) Encode(content string, kind model.Kind) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = &EncodingError{Kind: kind, Message: fmt.Sprint(r)}
		}
	}()

	var img image.Image
	switch kind {
	case model.KindBarcode:
		img, err = d.renderBarcode(content)
	case model.KindQRCode:
		img, err = d.renderQR(content)
	default:
		return nil, &EncodingError{Kind: kind, Message: "unsupported kind"}
	}
	if err != nil {
		return nil, &EncodingError{Kind: kind, Message: err.Error(), Err: err}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &EncodingError{Kind: kind, Message: "write png: " + err.Error(), Err: err}
	}
	return buf.Bytes(), nil
}

func mmToPx(mm, dpi float64) int {
	return int(math.Round(mm / mmPerInch * dpi))
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
