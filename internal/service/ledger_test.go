package service

import (
	"fmt"
	"testing"

	"dailypack/internal/domain"
	"dailypack/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_CleanupOldRuns(t *testing.T) {
	tests := []struct {
		name          string
		retentionDays int
		mockError     error
		expectedError bool
	}{
		{
			name:          "successful cleanup",
			retentionDays: 60,
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "custom retention",
			retentionDays: 7,
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			retentionDays: 60,
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockRunRepository)
			mockRepo.On("CleanOldRuns", tt.retentionDays).Return(tt.mockError)

			logger := testutil.NewTestLogger()
			service := NewLedgerService(mockRepo, tt.retentionDays, logger)

			err := service.CleanupOldRuns()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLedgerService_History(t *testing.T) {
	runs := []domain.Run{{ID: "a", Date: "2024-03-01", Theme: "Actions"}}

	t.Run("runs found", func(t *testing.T) {
		mockRepo := new(testutil.MockRunRepository)
		mockRepo.On("GetRunsByDate", "2024-03-01").Return(runs, nil)

		service := NewLedgerService(mockRepo, 60, testutil.NewTestLogger())
		got, err := service.History(" 2024-03-01 ")

		require.NoError(t, err)
		assert.Equal(t, runs, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid date", func(t *testing.T) {
		mockRepo := new(testutil.MockRunRepository)

		service := NewLedgerService(mockRepo, 60, testutil.NewTestLogger())
		_, err := service.History("01.03.2024")

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "GetRunsByDate", "01.03.2024")
	})

	t.Run("database error", func(t *testing.T) {
		mockRepo := new(testutil.MockRunRepository)
		mockRepo.On("GetRunsByDate", "2024-03-01").Return(nil, fmt.Errorf("db error"))

		service := NewLedgerService(mockRepo, 60, testutil.NewTestLogger())
		_, err := service.History("2024-03-01")

		assert.Error(t, err)
	})
}
