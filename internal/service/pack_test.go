package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dailypack/internal/catalog"
	"dailypack/internal/domain"
	"dailypack/internal/provider"
	"dailypack/internal/repository/filesystem"
	"dailypack/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOfflinePackService(root string, themes []domain.Theme, k int) *PackService {
	logger := testutil.NewTestLogger()
	assets := filesystem.NewAssetRepo(root)
	images := NewImageService(provider.Disabled{Kind: domain.ProviderWanx}, assets, logger)

	return NewPackService(
		catalog.NewSelector(themes, k, true),
		images,
		NewAssembler("Kid"),
		assets,
		filesystem.NewPackRepo(root),
		logger,
	)
}

func TestPackService_Generate_WithoutProviderKeys(t *testing.T) {
	root := t.TempDir()
	day := testutil.NewTestDay(t, "2024-03-01")

	result, err := newOfflinePackService(root, catalog.Default(), 4).Generate(context.Background(), day)
	require.NoError(t, err)

	// 20240301 mod 8 = 5
	assert.Equal(t, "Actions", result.Pack.Theme)
	assert.Equal(t, filepath.Join(root, "daily", "2024-03-01.json"), result.Path)
	require.Len(t, result.Pack.Words, 4)

	for _, w := range result.Pack.Words {
		assert.True(t, strings.HasSuffix(w.Image.Path, ".svg"), w.Image.Path)
		assert.True(t, strings.HasPrefix(w.Image.Path, "/images/2024-03-01/"), w.Image.Path)
		assert.FileExists(t, filepath.Join(root, filepath.FromSlash(w.Image.Path)))
	}
	assert.Equal(t, 4, result.Run.Placeholders())
	assert.Equal(t, "wanx (disabled)", result.Run.Provider)
	assert.NotEmpty(t, result.Run.ID)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"date", "child_profile", "theme", "words", "sentences", "story", "games", "parent_cards"} {
		assert.Contains(t, raw, key)
	}

	var words []struct {
		Text  string `json:"text"`
		Image string `json:"image"`
		Hint  string `json:"hint_cn"`
	}
	require.NoError(t, json.Unmarshal(raw["words"], &words))
	for _, w := range words {
		assert.True(t, strings.HasSuffix(w.Image, ".svg"), w.Image)
		assert.NotEmpty(t, w.Hint)
	}

	var pack domain.DailyPack
	require.NoError(t, json.Unmarshal(data, &pack))
	assert.Equal(t, result.Pack.Date, pack.Date)
	assert.Equal(t, result.Pack.Words[0].Image.Path, pack.Words[0].Image.Path)
}

func TestPackService_Generate_SameDateSameWords(t *testing.T) {
	root := t.TempDir()
	day := testutil.NewTestDay(t, "2024-03-06")
	service := newOfflinePackService(root, catalog.Default(), 4)

	first, err := service.Generate(context.Background(), day)
	require.NoError(t, err)
	second, err := service.Generate(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "Toys", first.Pack.Theme)
	assert.Equal(t, first.Pack.Words, second.Pack.Words)
	assert.NotEqual(t, first.Run.ID, second.Run.ID)
}

func TestPackService_Generate_TooFewWords(t *testing.T) {
	day := testutil.NewTestDay(t, "2024-03-01")

	tests := []struct {
		name          string
		theme         domain.Theme
		k             int
		expectedError error
	}{
		{name: "theme smaller than words per day", theme: testutil.NewTestTheme("Solo", "sun", "sun"), k: 4, expectedError: catalog.ErrNotEnoughWords},
		{name: "single word pack", theme: testutil.NewTestTheme("Solo", "sun"), k: 1, expectedError: ErrTooFewWords},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()

			result, err := newOfflinePackService(root, []domain.Theme{tt.theme}, tt.k).Generate(context.Background(), day)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expectedError)
			assert.NoFileExists(t, filepath.Join(root, "daily", "2024-03-01.json"))
		})
	}
}

func TestPackService_Generate_ExactlyKWords(t *testing.T) {
	day := testutil.NewTestDay(t, "2024-03-01")

	result, err := newOfflinePackService(t.TempDir(), catalog.Default(), 5).Generate(context.Background(), day)
	require.NoError(t, err)
	assert.Len(t, result.Pack.Words, 5)

	result, err = newOfflinePackService(t.TempDir(), catalog.Default(), 7).Generate(context.Background(), day)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, catalog.ErrNotEnoughWords)
}

func TestPackService_Generate_SideChannels(t *testing.T) {
	day := testutil.NewTestDay(t, "2024-03-01")

	mockRuns := new(testutil.MockRunRepository)
	mockPublisher := new(testutil.MockPublisher)
	mockNotifier := new(testutil.MockNotifier)

	mockRuns.On("SaveRun", mock.MatchedBy(func(run domain.Run) bool {
		return run.Date == "2024-03-01" && run.Theme == "Actions" && len(run.Images) == 4
	})).Return(errors.New("connection refused"))
	mockPublisher.On("Publish", mock.Anything, day, mock.MatchedBy(func(pack *domain.DailyPack) bool {
		return pack.Date == "2024-03-01" && len(pack.Words) == 4
	})).Return(errors.New("bucket not found"))
	mockNotifier.On("Notify", mock.Anything, mock.AnythingOfType("domain.Run"), mock.AnythingOfType("*domain.DailyPack")).Return(nil)

	service := newOfflinePackService(t.TempDir(), catalog.Default(), 4).
		WithLedger(mockRuns).
		WithPublisher(mockPublisher).
		WithNotifiers(mockNotifier)

	result, err := service.Generate(context.Background(), day)
	require.NoError(t, err, "side channel failures must not fail the run")
	assert.NotNil(t, result)

	mockRuns.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestPackService_Generate_Failures(t *testing.T) {
	day := testutil.NewTestDay(t, "2024-03-01")
	themes := []domain.Theme{testutil.NewTestTheme("Pets", "cat", "dog")}

	tests := []struct {
		name          string
		exists        bool
		saveErr       error
		expectedError error
	}{
		{name: "asset missing after resolve", exists: false, expectedError: ErrMissingAsset},
		{name: "pack write failure", exists: true, saveErr: os.ErrPermission, expectedError: os.ErrPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := testutil.NewTestLogger()
			mockProvider := new(testutil.MockProvider)
			mockAssets := new(testutil.MockAssetRepository)
			mockPacks := new(testutil.MockPackRepository)
			mockRuns := new(testutil.MockRunRepository)

			mockProvider.On("Name").Return("mock")
			mockProvider.On("GenerateImage", mock.Anything, day, mock.AnythingOfType("string")).
				Return(testutil.NewTestImage(day, "cat"))
			mockAssets.On("Exists", mock.Anything).Return(tt.exists)
			if tt.exists {
				mockPacks.On("SavePack", mock.Anything).Return("", tt.saveErr)
			}

			service := NewPackService(
				catalog.NewSelector(themes, 2, true),
				NewImageService(mockProvider, mockAssets, logger),
				NewAssembler("Kid"),
				mockAssets,
				mockPacks,
				logger,
			).WithLedger(mockRuns)

			result, err := service.Generate(context.Background(), day)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expectedError)

			mockPacks.AssertExpectations(t)
			mockRuns.AssertNotCalled(t, "SaveRun", mock.Anything)
		})
	}
}
