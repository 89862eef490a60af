package service

import (
	"fmt"

	"dailypack/internal/domain"
	"dailypack/internal/repository"

	"go.uber.org/zap"
)

// LedgerService handles run ledger retention
type LedgerService struct {
	runRepo       repository.RunRepository
	retentionDays int
	logger        *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(runRepo repository.RunRepository, retentionDays int, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		runRepo:       runRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldRuns removes ledger rows older than the retention window
func (s *LedgerService) CleanupOldRuns() error {
	s.logger.Info("Starting cleanup of old runs", zap.Int("retention_days", s.retentionDays))

	err := s.runRepo.CleanOldRuns(s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old runs", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}

// History returns the runs recorded for a YYYY-MM-DD date
func (s *LedgerService) History(date string) ([]domain.Run, error) {
	day, err := domain.ParseDay(date)
	if err != nil {
		return nil, err
	}

	runs, err := s.runRepo.GetRunsByDate(day.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to load runs for %s: %w", day.Key(), err)
	}
	return runs, nil
}
