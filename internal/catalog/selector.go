package catalog

import (
	"fmt"
	"math/rand"

	"dailypack/internal/domain"
)

// Selector picks the daily theme and its word sample
type Selector struct {
	themes []domain.Theme
	k      int
	seeded bool
}

// NewSelector creates a selector returning k words per day.
// When seeded is false the word sample is drawn from an unseeded source, so reruns may differ.
func NewSelector(themes []domain.Theme, k int, seeded bool) *Selector {
	return &Selector{themes: themes, k: k, seeded: seeded}
}

// Theme returns catalog[seed mod len(catalog)]
func (s *Selector) Theme(day domain.Day) domain.Theme {
	n := int64(len(s.themes))
	return s.themes[((day.Seed()%n)+n)%n]
}

// Select returns the day's theme and exactly k distinct words from it.
// A theme with fewer than k distinct words fails with ErrNotEnoughWords.
func (s *Selector) Select(day domain.Day) (domain.Theme, []domain.ThemeWord, error) {
	theme := s.Theme(day)

	// catalog files may repeat a word
	seen := make(map[string]bool, len(theme.Words))
	pool := make([]domain.ThemeWord, 0, len(theme.Words))
	for _, w := range theme.Words {
		if seen[w.Word] {
			continue
		}
		seen[w.Word] = true
		pool = append(pool, w)
	}

	if len(pool) < s.k {
		return theme, nil, fmt.Errorf("theme %q has %d distinct words, need %d: %w", theme.Name, len(pool), s.k, ErrNotEnoughWords)
	}

	var rng *rand.Rand
	if s.seeded {
		rng = rand.New(rand.NewSource(day.Seed()))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	return theme, pool[:s.k], nil
}
