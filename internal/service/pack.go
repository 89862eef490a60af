package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailypack/internal/catalog"
	"dailypack/internal/domain"
	"dailypack/internal/notify"
	"dailypack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMissingAsset is returned when a word card points at a file that does not exist
var ErrMissingAsset = errors.New("referenced image is missing")

// Result is the outcome of one pipeline run
type Result struct {
	Pack *domain.DailyPack
	Path string
	Run  domain.Run
}

// PackService runs the daily pipeline: select, resolve images, assemble, write
type PackService struct {
	selector  *catalog.Selector
	images    *ImageService
	assembler *Assembler
	assets    repository.AssetRepository
	packs     repository.PackRepository
	logger    *zap.Logger

	runs      repository.RunRepository
	publisher repository.Publisher
	notifiers []notify.Notifier
	now       func() time.Time
}

// NewPackService creates a new pack service
func NewPackService(
	selector *catalog.Selector,
	images *ImageService,
	assembler *Assembler,
	assets repository.AssetRepository,
	packs repository.PackRepository,
	logger *zap.Logger,
) *PackService {
	return &PackService{
		selector:  selector,
		images:    images,
		assembler: assembler,
		assets:    assets,
		packs:     packs,
		logger:    logger,
		now:       time.Now,
	}
}

// WithLedger records every run in the given repository
func (s *PackService) WithLedger(runs repository.RunRepository) *PackService {
	s.runs = runs
	return s
}

// WithPublisher mirrors every written pack to remote storage
func (s *PackService) WithPublisher(p repository.Publisher) *PackService {
	s.publisher = p
	return s
}

// WithNotifiers reports every run to the given side channels
func (s *PackService) WithNotifiers(n ...notify.Notifier) *PackService {
	s.notifiers = append(s.notifiers, n...)
	return s
}

// Generate builds and writes the pack for day, overwriting any previous pack for the same date
func (s *PackService) Generate(ctx context.Context, day domain.Day) (*Result, error) {
	theme, words, err := s.selector.Select(day)
	if err != nil {
		return nil, fmt.Errorf("failed to select words for %s: %w", day.Key(), err)
	}

	s.logger.Info("Generating daily pack",
		zap.String("date", day.Key()),
		zap.String("theme", theme.Name),
		zap.Int("words", len(words)),
		zap.String("provider", s.images.ProviderName()),
	)

	if len(words) < 2 {
		return nil, fmt.Errorf("theme %q: %w (got %d)", theme.Name, ErrTooFewWords, len(words))
	}

	run := domain.Run{
		ID:        uuid.NewString(),
		Date:      day.Key(),
		Theme:     theme.Name,
		Provider:  s.images.ProviderName(),
		CreatedAt: s.now().UTC(),
	}

	entries := make([]domain.WordEntry, 0, len(words))
	for _, w := range words {
		ref, err := s.images.Resolve(ctx, day, w.Word)
		if err != nil {
			return nil, err
		}

		entries = append(entries, s.assembler.Entry(w, ref))
		run.Images = append(run.Images, domain.ImageRecord{
			Word:        w.Word,
			Path:        ref.Path,
			Source:      ref.Source,
			Bytes:       ref.Bytes,
			Placeholder: ref.IsPlaceholder(),
		})
	}

	pack, err := s.assembler.Assemble(day, theme.Name, entries)
	if err != nil {
		return nil, err
	}

	for _, w := range pack.Words {
		if !s.assets.Exists(w.Image) {
			return nil, fmt.Errorf("%w: %s for %q", ErrMissingAsset, w.Image.Path, w.Text)
		}
	}

	path, err := s.packs.SavePack(pack)
	if err != nil {
		return nil, fmt.Errorf("failed to write pack: %w", err)
	}

	s.logger.Info("Daily pack written",
		zap.String("path", path),
		zap.String("run_id", run.ID),
		zap.Int("placeholders", run.Placeholders()),
	)

	s.sideChannels(ctx, day, run, pack)

	return &Result{Pack: pack, Path: path, Run: run}, nil
}

// sideChannels never fail the run
func (s *PackService) sideChannels(ctx context.Context, day domain.Day, run domain.Run, pack *domain.DailyPack) {
	if s.runs != nil {
		if err := s.runs.SaveRun(run); err != nil {
			s.logger.Error("Failed to record run", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, day, pack); err != nil {
			s.logger.Error("Failed to publish pack", zap.String("date", day.Key()), zap.Error(err))
		}
	}

	for _, n := range s.notifiers {
		if err := n.Notify(ctx, run, pack); err != nil {
			s.logger.Warn("Failed to send run notification", zap.Error(err))
		}
	}
}
