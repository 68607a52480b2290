package model

import "strings"

// Kind is the symbology a request is encoded with.
type Kind int

const (
	KindQRCode Kind = iota
	KindBarcode
)

// DefaultType is used when the request carries no type.
const DefaultType = "qrcode"

// ContentTypePNG is the MIME type of every generated image.
const ContentTypePNG = "image/png"

var kindNames = [...]string{
	KindQRCode:  "qrcode",
	KindBarcode: "barcode",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns the recognized kinds in their canonical order.
func Kinds() []Kind {
	return []Kind{KindQRCode, KindBarcode}
}

// KindNames returns the names of the recognized kinds in canonical order.
func KindNames() []string {
	names := make([]string, 0, len(kindNames))
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return names
}

// ParseKind converts an already normalized type name into a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// GenerateRequest represents the raw query parameters of a generation request.
type GenerateRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// Normalize trims the content and lower-cases the type, defaulting an empty
// type to qrcode. The type itself is not trimmed.
func (r GenerateRequest) Normalize() GenerateRequest {
	t := strings.ToLower(r.Type)
	if t == "" {
		t = DefaultType
	}
	return GenerateRequest{
		Content: strings.TrimSpace(r.Content),
		Type:    t,
	}
}

// GenerationRequest is a request that passed validation.
// Content is never empty.
type GenerationRequest struct {
	Content string
	Kind    Kind
}

// ValidationResult reports whether a (content, type) pair is acceptable.
// Reason is empty iff Valid is true.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// GenerateResponse carries the encoded image.
type GenerateResponse struct {
	Kind  Kind
	Image []byte
}

// ContentType returns the MIME type of Image.
func (r GenerateResponse) ContentType() string {
	return ContentTypePNG
}
