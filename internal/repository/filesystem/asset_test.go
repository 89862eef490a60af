package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"dailypack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDay(t *testing.T) domain.Day {
	t.Helper()
	day, err := domain.ParseDay("2024-03-01")
	require.NoError(t, err)
	return day
}

func TestAssetRepo_SaveImage(t *testing.T) {
	root := t.TempDir()
	repo := NewAssetRepo(root)

	ref, err := repo.SaveImage(testDay(t), "apple", ".jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "/images/2024-03-01/apple.jpg", ref.Path)
	assert.Equal(t, 10, ref.Bytes)
	assert.True(t, repo.Exists(ref))

	data, err := os.ReadFile(filepath.Join(root, "images", "2024-03-01", "apple.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestAssetRepo_SaveImageOverwrites(t *testing.T) {
	repo := NewAssetRepo(t.TempDir())
	day := testDay(t)

	_, err := repo.SaveImage(day, "cat", ".svg", []byte("first"))
	require.NoError(t, err)
	ref, err := repo.SaveImage(day, "cat", ".svg", []byte("second!"))
	require.NoError(t, err)

	data, err := os.ReadFile(repo.Abs(ref))
	require.NoError(t, err)
	assert.Equal(t, "second!", string(data))
}

func TestAssetRepo_SaveImageRejectsEmptyName(t *testing.T) {
	repo := NewAssetRepo(t.TempDir())
	_, err := repo.SaveImage(testDay(t), "../", ".jpg", []byte("x"))
	assert.Error(t, err)
}

func TestAssetRepo_SaveImageUnwritableRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("not a dir"), 0o644))

	_, err := NewAssetRepo(root).SaveImage(testDay(t), "cat", ".jpg", []byte("x"))
	assert.Error(t, err)
}

func TestAssetRepo_Exists(t *testing.T) {
	repo := NewAssetRepo(t.TempDir())
	assert.False(t, repo.Exists(domain.ImageRef{}))
	assert.False(t, repo.Exists(domain.ImageRef{Path: "/images/2024-03-01/ghost.jpg"}))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "apple", expected: "apple"},
		{input: " ice cream ", expected: "ice-cream"},
		{input: "../etc/passwd", expected: "etcpasswd"},
		{input: "t-shirt_2", expected: "t-shirt_2"},
		{input: "/", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FileName(tt.input))
		})
	}
}
