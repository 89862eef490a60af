package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"dailypack/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	themes := Default()
	assert.Len(t, themes, 8)
	assert.NoError(t, Validate(themes, 4))
	assert.NoError(t, Validate(themes, 5))
	assert.ErrorIs(t, Validate(themes, 6), ErrNotEnoughWords)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.yaml")
	content := `themes:
  - name: Ocean
    words:
      - {word: fish, color: blue}
      - {word: crab, color: red}
      - {word: shell, color: white}
  - name: Garden
    words:
      - word: flower
        color: pink
      - word: tree
        color: green
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	themes, err := LoadFile(path, 2)
	require.NoError(t, err)

	expected := []domain.Theme{
		{Name: "Ocean", Words: []domain.ThemeWord{{Word: "fish", ColorHint: "blue"}, {Word: "crab", ColorHint: "red"}, {Word: "shell", ColorHint: "white"}}},
		{Name: "Garden", Words: []domain.ThemeWord{{Word: "flower", ColorHint: "pink"}, {Word: "tree", ColorHint: "green"}}},
	}
	if diff := cmp.Diff(expected, themes); diff != "" {
		t.Errorf("unexpected catalog (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		content     string
		expectedErr string
	}{
		{name: "malformed yaml", content: "themes: [", expectedErr: "parse"},
		{name: "no themes", content: "themes: []", expectedErr: "no themes"},
		{name: "too few words", content: "themes:\n  - name: Tiny\n    words:\n      - {word: a}\n", expectedErr: "need 2"},
		{name: "missing name", content: "themes:\n  - words:\n      - {word: a}\n      - {word: b}\n", expectedErr: "no name"},
		{name: "path in word", content: "themes:\n  - name: Bad\n    words:\n      - {word: ../x}\n      - {word: b}\n", expectedErr: "path separator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			themes, err := LoadFile(path, 2)
			assert.Error(t, err)
			assert.Nil(t, themes)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"), 2)
	assert.Error(t, err)
}
