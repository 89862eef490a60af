package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"dailypack/internal/domain"

	"gopkg.in/yaml.v3"
)

// ErrNotEnoughWords means a theme cannot supply the requested number of distinct words
var ErrNotEnoughWords = errors.New("not enough distinct words")

func words(pairs ...string) []domain.ThemeWord {
	out := make([]domain.ThemeWord, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.ThemeWord{Word: pairs[i], ColorHint: pairs[i+1]})
	}
	return out
}

// Default returns the built-in theme catalog. Order matters: the daily theme is picked by index.
func Default() []domain.Theme {
	return []domain.Theme{
		{Name: "Colors & Fruit", Words: words("apple", "red", "banana", "yellow", "grape", "purple", "pear", "green", "orange", "orange")},
		{Name: "Animals", Words: words("cat", "black", "dog", "brown", "duck", "yellow", "fish", "blue", "bird", "red")},
		{Name: "Toys", Words: words("ball", "red", "car", "blue", "doll", "pink", "block", "green", "train", "black")},
		{Name: "Home", Words: words("cup", "white", "chair", "brown", "table", "brown", "bed", "blue", "door", "black")},
		{Name: "Weather", Words: words("sun", "yellow", "rain", "blue", "cloud", "white", "wind", "gray", "snow", "white")},
		{Name: "Actions", Words: words("run", "", "jump", "", "sleep", "", "eat", "", "drink", "")},
		{Name: "Food", Words: words("milk", "white", "bread", "brown", "rice", "white", "cake", "pink", "juice", "orange")},
		{Name: "Transport", Words: words("bus", "yellow", "bike", "red", "car", "blue", "train", "black", "boat", "white")},
	}
}

type catalogFile struct {
	Themes []domain.Theme `yaml:"themes"`
}

// LoadFile reads a YAML theme catalog and checks every theme can supply minWords distinct words
func LoadFile(path string, minWords int) ([]domain.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse theme catalog: %w", err)
	}

	if err := Validate(file.Themes, minWords); err != nil {
		return nil, fmt.Errorf("invalid theme catalog %s: %w", path, err)
	}
	return file.Themes, nil
}

// Validate checks the catalog is usable for daily selection
func Validate(themes []domain.Theme, minWords int) error {
	if len(themes) == 0 {
		return fmt.Errorf("catalog has no themes")
	}
	for i, theme := range themes {
		if strings.TrimSpace(theme.Name) == "" {
			return fmt.Errorf("theme %d has no name", i)
		}
		seen := make(map[string]bool, len(theme.Words))
		for _, w := range theme.Words {
			word := strings.TrimSpace(w.Word)
			if word == "" {
				return fmt.Errorf("theme %q has an empty word", theme.Name)
			}
			if strings.ContainsAny(word, `/\`) {
				return fmt.Errorf("theme %q word %q contains a path separator", theme.Name, word)
			}
			seen[word] = true
		}
		if len(seen) < minWords {
			return fmt.Errorf("theme %q has %d distinct words, need %d: %w", theme.Name, len(seen), minWords, ErrNotEnoughWords)
		}
	}
	return nil
}
