package provider

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrEmptyResult is a successful response without any recognizable image field
	ErrEmptyResult = errors.New("response has no recognizable image")
	// ErrMalformedResponse is a successful response whose body is not JSON
	ErrMalformedResponse = errors.New("response body is not valid JSON")
)

// Payload is the image location found in a provider response
type Payload struct {
	Shape  string
	URL    string
	Base64 string
}

// Kind returns "base64" or "url"
func (p Payload) Kind() string {
	if p.Base64 != "" {
		return "base64"
	}
	return "url"
}

// Extractor recognizes one response shape
type Extractor struct {
	Name    string
	Extract func(raw []byte) (Payload, bool)
}

// Extract tries extractors in order; the first match wins
func Extract(raw []byte, extractors []Extractor) (Payload, error) {
	if !gjson.ValidBytes(raw) {
		return Payload{}, ErrMalformedResponse
	}
	for _, ex := range extractors {
		if p, ok := ex.Extract(raw); ok {
			p.Shape = ex.Name
			return p, nil
		}
	}
	return Payload{}, ErrEmptyResult
}

// firstString returns the first non-empty string found at any of the paths
func firstString(raw []byte, paths ...string) string {
	for _, path := range paths {
		if v := gjson.GetBytes(raw, path); v.Type == gjson.String {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func urlAt(paths ...string) func(raw []byte) (Payload, bool) {
	return func(raw []byte) (Payload, bool) {
		u := firstString(raw, paths...)
		return Payload{URL: u}, u != ""
	}
}

func base64At(paths ...string) func(raw []byte) (Payload, bool) {
	return func(raw []byte) (Payload, bool) {
		b := firstString(raw, paths...)
		return Payload{Base64: b}, b != ""
	}
}

// wanxOutput returns the first result object, falling back to the first choice
func wanxOutput(raw []byte) gjson.Result {
	if first := gjson.GetBytes(raw, "output.results.0"); first.IsObject() {
		return first
	}
	return gjson.GetBytes(raw, "output.choices.0")
}

func wanxField(raw []byte, key string) string {
	v := wanxOutput(raw).Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(v.String())
}

// WanxExtractors parse DashScope responses. Both read the same output object: inline base64 first, then a remote URL.
var WanxExtractors = []Extractor{
	{Name: "output.base64", Extract: func(raw []byte) (Payload, bool) {
		b := wanxField(raw, "image_base64")
		return Payload{Base64: b}, b != ""
	}},
	{Name: "output.url", Extract: func(raw []byte) (Payload, bool) {
		u := wanxField(raw, "url")
		return Payload{URL: u}, u != ""
	}},
}

// resultImageContainers are the places an images array has been seen nested in Doubao responses
var resultImageContainers = []string{"data.result.images", "result.images", "images"}

func resultImages(raw []byte) (Payload, bool) {
	for _, container := range resultImageContainers {
		first := gjson.GetBytes(raw, container+".0")
		if !first.IsObject() {
			continue
		}
		if u := strings.TrimSpace(first.Get("url").String()); u != "" {
			return Payload{URL: u}, true
		}
		if b := strings.TrimSpace(first.Get("base64").String()); b != "" {
			return Payload{Base64: b}, true
		}
	}
	return Payload{}, false
}

func openAIData(raw []byte) (Payload, bool) {
	first := gjson.GetBytes(raw, "data.0")
	if !first.IsObject() {
		return Payload{}, false
	}
	if b := strings.TrimSpace(first.Get("b64_json").String()); b != "" {
		return Payload{Base64: b}, true
	}
	if u := strings.TrimSpace(first.Get("url").String()); u != "" {
		return Payload{URL: u}, true
	}
	return Payload{}, false
}

// DoubaoExtractors parse the known Doubao/Seedream response shapes in priority order
var DoubaoExtractors = []Extractor{
	{Name: "image_urls", Extract: urlAt("image_urls.0", "data.image_urls.0")},
	{Name: "binary_data_base64", Extract: base64At("binary_data_base64.0", "data.binary_data_base64.0")},
	{Name: "result.images", Extract: resultImages},
	{Name: "openai.data", Extract: openAIData},
}
