package provider

import (
	"context"
	"net/http"

	"dailypack/internal/config"
	"dailypack/internal/domain"
	"dailypack/internal/repository"
	"dailypack/internal/retry"

	"go.uber.org/zap"
)

// Provider generates an illustration for a word.
// GenerateImage returns nil when no image could be produced; it never fails past this boundary.
type Provider interface {
	Name() string
	GenerateImage(ctx context.Context, day domain.Day, word string) *domain.ImageRef
}

// Options overrides provider plumbing; zero values select defaults
type Options struct {
	HTTPClient *http.Client
	Policy     retry.Policy
	Logger     *zap.Logger
}

// New builds the configured variant, or a Disabled provider when the key or endpoint is missing
func New(cfg config.ProviderConfig, assets repository.AssetRepository, opts Options) Provider {
	if !cfg.Available() {
		return Disabled{Kind: cfg.Kind}
	}

	switch cfg.Kind {
	case domain.ProviderWanx:
		return NewWanx(cfg, assets, opts)
	case domain.ProviderDoubaoArk:
		return NewDoubaoArk(cfg, assets, opts)
	case domain.ProviderDoubaoOpenAI:
		return NewDoubaoOpenAI(cfg, assets, opts)
	}
	return Disabled{Kind: cfg.Kind}
}

// Disabled is a provider without credentials; every word goes straight to the placeholder
type Disabled struct {
	Kind domain.ProviderKind
}

// Name returns the configured kind marked as disabled
func (d Disabled) Name() string {
	return string(d.Kind) + " (disabled)"
}

// GenerateImage always returns nil
func (d Disabled) GenerateImage(ctx context.Context, day domain.Day, word string) *domain.ImageRef {
	return nil
}
