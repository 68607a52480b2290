package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/foodsaid/qrgen/internal/config"
	"github.com/foodsaid/qrgen/internal/encoder"
	"github.com/foodsaid/qrgen/internal/model"
	"github.com/foodsaid/qrgen/internal/validator"
)

type stubEncoder struct {
	calls int
	err   error
}

func (e *stubEncoder) Encode(content string, kind model.Kind) ([]byte, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return []byte(kind.String() + ":" + content), nil
}

func newService(t *testing.T, enc Encoder) (*GeneratorService, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGeneratorService(validator.New(config.DefaultLimits()), enc, zap.New(core)), logs
}

func TestGenerate_Defaults(t *testing.T) {
	enc := &stubEncoder{}
	svc, _ := newService(t, enc)

	resp, err := svc.Generate(context.Background(), model.GenerateRequest{Content: "  Test  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Kind != model.KindQRCode {
		t.Errorf("expected qrcode, got %v", resp.Kind)
	}
	if string(resp.Image) != "qrcode:Test" {
		t.Errorf("expected trimmed content to be encoded, got %q", resp.Image)
	}
	if resp.ContentType() != "image/png" {
		t.Errorf("expected image/png, got %q", resp.ContentType())
	}
}

func TestGenerate_TypeIsCaseInsensitive(t *testing.T) {
	enc := &stubEncoder{}
	svc, _ := newService(t, enc)

	upper, err := svc.Generate(context.Background(), model.GenerateRequest{Content: "Test", Type: "QRCODE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lower, err := svc.Generate(context.Background(), model.GenerateRequest{Content: "Test", Type: "qrcode"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(upper.Image, lower.Image) || upper.Kind != lower.Kind {
		t.Errorf("QRCODE and qrcode produced different results")
	}

	bc, err := svc.Generate(context.Background(), model.GenerateRequest{Content: "ABC123", Type: "BarCode"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bc.Kind != model.KindBarcode {
		t.Errorf("expected barcode, got %v", bc.Kind)
	}
}

func TestGenerate_ValidationFailsBeforeEncoding(t *testing.T) {
	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr error
	}{
		{name: "whitespace only", req: model.GenerateRequest{Content: "   "}, wantErr: validator.ErrMissingContent},
		{name: "unknown type", req: model.GenerateRequest{Content: "x", Type: "pdf417"}, wantErr: validator.ErrInvalidType},
		{name: "qr too long", req: model.GenerateRequest{Content: strings.Repeat("x", 1001)}, wantErr: validator.ErrContentTooLong},
		{name: "barcode non-ascii", req: model.GenerateRequest{Content: "Hello世界", Type: "barcode"}, wantErr: validator.ErrNonASCIIBarcodeContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := &stubEncoder{}
			svc, _ := newService(t, enc)

			_, err := svc.Generate(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !IsValidationError(err) {
				t.Errorf("expected validation error, got %T", err)
			}
			if enc.calls != 0 {
				t.Errorf("encoder called %d times after failed validation", enc.calls)
			}
		})
	}
}

func TestGenerate_EncodingErrorPropagates(t *testing.T) {
	encErr := &encoder.EncodingError{Kind: model.KindQRCode, Message: "library fault"}
	enc := &stubEncoder{err: encErr}
	svc, logs := newService(t, enc)

	_, err := svc.Generate(context.Background(), model.GenerateRequest{Content: "Hello"})
	if !errors.Is(err, encoder.ErrEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if IsValidationError(err) {
		t.Error("encoding error must not be reported as validation error")
	}
	if enc.calls != 1 {
		t.Errorf("expected a single encode attempt, got %d", enc.calls)
	}
	if logs.FilterMessage("generation failed").Len() != 1 {
		t.Error("expected failure to be logged")
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	enc := &stubEncoder{}
	svc, _ := newService(t, enc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Generate(ctx, model.GenerateRequest{Content: "Hello"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if enc.calls != 0 {
		t.Errorf("encoder called for cancelled request")
	}
}

func TestGenerate_DoesNotLogContent(t *testing.T) {
	const secret = "my-secret-voucher-code"
	svc, logs := newService(t, &stubEncoder{})

	if _, err := svc.Generate(context.Background(), model.GenerateRequest{Content: secret}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Generate(context.Background(), model.GenerateRequest{Content: secret, Type: "nope"}); err == nil {
		t.Fatal("expected validation error")
	}

	for _, entry := range logs.All() {
		for _, f := range entry.Context {
			if strings.Contains(f.String, secret) {
				t.Errorf("log %q field %q contains raw content", entry.Message, f.Key)
			}
		}
	}
}

func TestGenerate_WithRealEncoder(t *testing.T) {
	d, err := encoder.New(encoder.DefaultRenderConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc, _ := newService(t, d)

	for _, kind := range []string{"qrcode", "barcode"} {
		resp, err := svc.Generate(context.Background(), model.GenerateRequest{Content: "ABC123", Type: kind})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
		if !bytes.HasPrefix(resp.Image, []byte{0x89, 'P', 'N', 'G'}) {
			t.Errorf("%s: expected png output", kind)
		}
	}
}
