package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/foodsaid/qrgen/internal/config"
	"github.com/foodsaid/qrgen/internal/model"
)

var (
	ErrMissingContent         = errors.New("missing content")
	ErrInvalidType            = errors.New("invalid type")
	ErrContentTooLong         = errors.New("content too long")
	ErrNonASCIIBarcodeContent = errors.New("non-ascii barcode content")
)

// Error is a rejected request. Kind is one of the sentinel errors above and
// Reason is the message returned to the client.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func (e *Error) Is(target error) bool { return e.Kind == target }

// Validator checks generation requests against the configured limits.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	limits config.Limits
}

// New creates a Validator bounded by limits.
func New(limits config.Limits) *Validator {
	return &Validator{limits: limits}
}

// Limits returns the limits the validator enforces.
func (v *Validator) Limits() config.Limits {
	return v.limits
}

// Validate reports whether content can be encoded as kind.
// content is expected to be trimmed and kind lower-cased by the caller.
func (v *Validator) Validate(content, kind string) model.ValidationResult {
	if _, err := v.Parse(content, kind); err != nil {
		return model.ValidationResult{Valid: false, Reason: err.Error()}
	}
	return model.ValidationResult{Valid: true}
}

// Parse applies the validation rules in order and returns the typed request.
// The first failing rule determines the returned *Error.
func (v *Validator) Parse(content, kind string) (model.GenerationRequest, error) {
	if content == "" {
		return model.GenerationRequest{}, &Error{
			Kind:   ErrMissingContent,
			Reason: "Missing 'content' parameter",
		}
	}

	k, ok := model.ParseKind(kind)
	if !ok {
		return model.GenerationRequest{}, &Error{
			Kind:   ErrInvalidType,
			Reason: "Invalid type. Must be one of: " + strings.Join(model.KindNames(), ", "),
		}
	}

	length := utf8.RuneCountInString(content)

	switch k {
	case model.KindBarcode:
		if length > v.limits.BarcodeMaxLength {
			return model.GenerationRequest{}, &Error{
				Kind:   ErrContentTooLong,
				Reason: fmt.Sprintf("Barcode content exceeds maximum length of %d characters", v.limits.BarcodeMaxLength),
			}
		}
		if !isASCII(content) {
			return model.GenerationRequest{}, &Error{
				Kind:   ErrNonASCIIBarcodeContent,
				Reason: "Barcode content must contain only ASCII characters",
			}
		}
	default:
		if length > v.limits.MaxContentLength {
			return model.GenerationRequest{}, &Error{
				Kind:   ErrContentTooLong,
				Reason: fmt.Sprintf("Content exceeds maximum length of %d characters", v.limits.MaxContentLength),
			}
		}
	}

	return model.GenerationRequest{Content: content, Kind: k}, nil
}

// isASCII reports whether every rune of s is in [0, 128).
// Invalid UTF-8 decodes to utf8.RuneError and is rejected.
func isASCII(s string) bool {
	for _, r := range s {
		if r >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
