package testutil

import (
	"context"

	"dailypack/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockAssetRepository is a mock for AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) SaveImage(day domain.Day, word, ext string, data []byte) (domain.ImageRef, error) {
	args := m.Called(day, word, ext, data)
	return args.Get(0).(domain.ImageRef), args.Error(1)
}

func (m *MockAssetRepository) Exists(ref domain.ImageRef) bool {
	args := m.Called(ref)
	return args.Bool(0)
}

// MockPackRepository is a mock for PackRepository
type MockPackRepository struct {
	mock.Mock
}

func (m *MockPackRepository) SavePack(pack *domain.DailyPack) (string, error) {
	args := m.Called(pack)
	return args.String(0), args.Error(1)
}

func (m *MockPackRepository) LoadPack(date string) (*domain.DailyPack, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyPack), args.Error(1)
}

// MockRunRepository is a mock for RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) SaveRun(run domain.Run) error {
	args := m.Called(run)
	return args.Error(0)
}

func (m *MockRunRepository) GetRunsByDate(date string) ([]domain.Run, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Run), args.Error(1)
}

func (m *MockRunRepository) CleanOldRuns(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

// MockPublisher is a mock for Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, day domain.Day, pack *domain.DailyPack) error {
	args := m.Called(ctx, day, pack)
	return args.Error(0)
}

// MockProvider is a mock for Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) GenerateImage(ctx context.Context, day domain.Day, word string) *domain.ImageRef {
	args := m.Called(ctx, day, word)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.ImageRef)
}

// MockNotifier is a mock for Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, run domain.Run, pack *domain.DailyPack) error {
	args := m.Called(ctx, run, pack)
	return args.Error(0)
}
