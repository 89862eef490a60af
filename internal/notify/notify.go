package notify

import (
	"context"

	"dailypack/internal/domain"
)

// Notifier reports a finished run to a side channel
type Notifier interface {
	Notify(ctx context.Context, run domain.Run, pack *domain.DailyPack) error
}
