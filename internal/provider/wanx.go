package provider

import (
	"context"

	"dailypack/internal/config"
	"dailypack/internal/domain"
	"dailypack/internal/repository"

	"go.uber.org/zap"
)

// workspaceHeader scopes DashScope calls to a workspace
const workspaceHeader = "X-DashScope-WorkSpace"

// Wanx calls the DashScope text-to-image endpoint
type Wanx struct {
	*client
}

// NewWanx creates a Wanx provider
func NewWanx(cfg config.ProviderConfig, assets repository.AssetRepository, opts Options) *Wanx {
	return &Wanx{client: newClient(string(domain.ProviderWanx), cfg, assets, opts)}
}

// Name returns "wanx"
func (w *Wanx) Name() string {
	return w.name
}

// GenerateImage requests one image and stores it as <word>.jpg
func (w *Wanx) GenerateImage(ctx context.Context, day domain.Day, word string) *domain.ImageRef {
	header := w.authHeader()
	if w.cfg.Workspace != "" {
		header.Set(workspaceHeader, w.cfg.Workspace)
	}

	ref, _, err := w.generate(ctx, day, word, request{
		endpoint:   w.cfg.Endpoint,
		header:     header,
		body:       newInputBody(w.cfg, word),
		extractors: WanxExtractors,
	})
	if err != nil {
		w.logger.Warn("Image generation failed", zap.String("word", word), zap.Error(err))
		return nil
	}
	return ref
}
