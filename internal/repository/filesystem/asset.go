package filesystem

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"dailypack/internal/domain"
)

// ImagesDir is the image directory under the content root
const ImagesDir = "images"

// AssetRepo implements repository.AssetRepository on the local filesystem
type AssetRepo struct {
	root string
}

// NewAssetRepo creates an asset repository rooted at the content root
func NewAssetRepo(root string) *AssetRepo {
	return &AssetRepo{root: root}
}

// SaveImage writes <root>/images/<date>/<word><ext>, overwriting any previous file
func (r *AssetRepo) SaveImage(day domain.Day, word, ext string, data []byte) (domain.ImageRef, error) {
	name := FileName(word)
	if name == "" {
		return domain.ImageRef{}, fmt.Errorf("word %q has no usable file name", word)
	}

	dir := filepath.Join(r.root, ImagesDir, day.Key())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.ImageRef{}, fmt.Errorf("failed to create image directory: %w", err)
	}

	file := name + ext
	if err := os.WriteFile(filepath.Join(dir, file), data, 0o644); err != nil {
		return domain.ImageRef{}, fmt.Errorf("failed to write image %s: %w", file, err)
	}

	return domain.ImageRef{
		Path:  path.Join("/", ImagesDir, day.Key(), file),
		Bytes: len(data),
	}, nil
}

// Exists reports whether the referenced file is present under the content root
func (r *AssetRepo) Exists(ref domain.ImageRef) bool {
	if ref.Path == "" {
		return false
	}
	info, err := os.Stat(r.Abs(ref))
	return err == nil && info.Mode().IsRegular()
}

// Abs resolves a root-relative image path to a local file path
func (r *AssetRepo) Abs(ref domain.ImageRef) string {
	return filepath.Join(r.root, filepath.FromSlash(strings.TrimPrefix(ref.Path, "/")))
}

// FileName maps a word to a safe file stem: letters, digits, '-' and '_' are kept, spaces become '-'
func FileName(word string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, strings.TrimSpace(word))
}
