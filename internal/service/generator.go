package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/foodsaid/qrgen/internal/crypto"
	"github.com/foodsaid/qrgen/internal/model"
	"github.com/foodsaid/qrgen/internal/validator"
)

// Encoder renders validated content as an image.
type Encoder interface {
	Encode(content string, kind model.Kind) ([]byte, error)
}

// GeneratorService turns raw generation requests into images.
type GeneratorService struct {
	validator *validator.Validator
	encoder   Encoder
	log       *zap.Logger
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(v *validator.Validator, enc Encoder, log *zap.Logger) *GeneratorService {
	return &GeneratorService{
		validator: v,
		encoder:   enc,
		log:       log,
	}
}

// Generate normalizes and validates req, then encodes it.
// Validation failures are *validator.Error; encoding failures wrap encoder.ErrEncoding.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	req = req.Normalize()

	parsed, err := s.validator.Parse(req.Content, req.Type)
	if err != nil {
		s.log.Warn("invalid input",
			zap.String("reason", err.Error()),
			zap.String("type", req.Type),
			zap.Int("length", utf8.RuneCountInString(req.Content)),
			zap.String("digest", crypto.Digest(req.Content)),
		)
		return model.GenerateResponse{}, err
	}

	// Skip encoding work for clients that already went away.
	if err := ctx.Err(); err != nil {
		return model.GenerateResponse{}, err
	}

	fields := []zap.Field{
		zap.Stringer("type", parsed.Kind),
		zap.Int("length", utf8.RuneCountInString(parsed.Content)),
		zap.String("digest", crypto.Digest(parsed.Content)),
	}
	s.log.Info("generating image", fields...)

	img, err := s.encoder.Encode(parsed.Content, parsed.Kind)
	if err != nil {
		s.log.Error("generation failed", append(fields, zap.Error(err))...)
		return model.GenerateResponse{}, err
	}

	s.log.Info("generated image", append(fields, zap.Int("bytes", len(img)))...)

	return model.GenerateResponse{Kind: parsed.Kind, Image: img}, nil
}

// IsValidationError reports whether err is a client input error.
func IsValidationError(err error) bool {
	var verr *validator.Error
	return errors.As(err, &verr)
}
