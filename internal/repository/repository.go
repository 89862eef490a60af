package repository

import (
	"context"

	"dailypack/internal/domain"
)

// AssetRepository stores word images under the per-date image directory
type AssetRepository interface {
	SaveImage(day domain.Day, word, ext string, data []byte) (domain.ImageRef, error)
	Exists(ref domain.ImageRef) bool
}

// PackRepository persists daily packs
type PackRepository interface {
	SavePack(pack *domain.DailyPack) (string, error)
	LoadPack(date string) (*domain.DailyPack, error)
}

// RunRepository defines run ledger operations
type RunRepository interface {
	SaveRun(run domain.Run) error
	GetRunsByDate(date string) ([]domain.Run, error)
	CleanOldRuns(days int) error
}

// Publisher mirrors a written pack and the images it references to remote storage
type Publisher interface {
	Publish(ctx context.Context, day domain.Day, pack *domain.DailyPack) error
}
