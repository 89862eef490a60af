package domain

import (
	"encoding/json"
	"strings"
)

// ProviderKind identifies an image generation provider variant
type ProviderKind string

const (
	ProviderWanx         ProviderKind = "wanx"
	ProviderDoubaoArk    ProviderKind = "doubao-ark"
	ProviderDoubaoOpenAI ProviderKind = "doubao-openai"
)

// SourcePlaceholder marks images produced by the placeholder generator
const SourcePlaceholder = "placeholder"

// ImageRef points at a stored image asset.
// Only Path is serialized; Source and Bytes are provenance for logs and the run ledger.
type ImageRef struct {
	Path   string
	Source string
	Bytes  int
}

// IsPlaceholder reports whether the image is the SVG fallback
func (r ImageRef) IsPlaceholder() bool {
	return r.Source == SourcePlaceholder || strings.HasSuffix(r.Path, ".svg")
}

// MarshalJSON encodes the reference as its root-relative path
func (r ImageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Path)
}

// UnmarshalJSON decodes a root-relative path
func (r *ImageRef) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Path)
}
