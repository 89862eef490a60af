package service

import (
	"context"
	"fmt"

	"dailypack/internal/domain"
	"dailypack/internal/placeholder"
	"dailypack/internal/provider"
	"dailypack/internal/repository"

	"go.uber.org/zap"
)

// ImageService resolves a word to a stored image, falling back to the SVG placeholder
type ImageService struct {
	provider provider.Provider
	assets   repository.AssetRepository
	logger   *zap.Logger
}

// NewImageService creates a new image service
func NewImageService(p provider.Provider, assets repository.AssetRepository, logger *zap.Logger) *ImageService {
	return &ImageService{
		provider: p,
		assets:   assets,
		logger:   logger,
	}
}

// ProviderName returns the name of the underlying provider
func (s *ImageService) ProviderName() string {
	return s.provider.Name()
}

// Resolve always yields an image unless the placeholder cannot be written
func (s *ImageService) Resolve(ctx context.Context, day domain.Day, word string) (domain.ImageRef, error) {
	if ref := s.provider.GenerateImage(ctx, day, word); ref != nil {
		s.logger.Info(fmt.Sprintf("[img] %s <- %s (%d bytes)", ref.Path, ref.Source, ref.Bytes),
			zap.String("word", word),
		)
		return *ref, nil
	}

	ref, err := s.assets.SaveImage(day, word, placeholder.Ext, placeholder.SVG(word))
	if err != nil {
		return domain.ImageRef{}, fmt.Errorf("failed to write placeholder for %q: %w", word, err)
	}
	ref.Source = domain.SourcePlaceholder

	s.logger.Info(fmt.Sprintf("[img-fallback] %s (SVG placeholder)", ref.Path),
		zap.String("word", word),
	)
	return ref, nil
}
