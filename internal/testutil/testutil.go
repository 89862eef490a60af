package testutil

import (
	"testing"

	"dailypack/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestDay parses a YYYY-MM-DD key or fails the test
func NewTestDay(t testing.TB, key string) domain.Day {
	t.Helper()
	day, err := domain.ParseDay(key)
	if err != nil {
		t.Fatalf("invalid test day %q: %v", key, err)
	}
	return day
}

// NewTestTheme creates a theme from plain words without color hints
func NewTestTheme(name string, words ...string) domain.Theme {
	theme := domain.Theme{Name: name}
	for _, w := range words {
		theme.Words = append(theme.Words, domain.ThemeWord{Word: w})
	}
	return theme
}

// NewTestImage creates a provider-sourced image reference
func NewTestImage(day domain.Day, word string) *domain.ImageRef {
	return &domain.ImageRef{
		Path:   "/images/" + day.Key() + "/" + word + ".jpg",
		Source: "test:base64",
		Bytes:  1024,
	}
}
