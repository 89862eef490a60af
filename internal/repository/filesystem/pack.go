package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dailypack/internal/domain"
)

// DailyDir is the pack directory under the content root
const DailyDir = "daily"

// PackRepo implements repository.PackRepository as one JSON file per date
type PackRepo struct {
	root string
}

// NewPackRepo creates a pack repository rooted at the content root
func NewPackRepo(root string) *PackRepo {
	return &PackRepo{root: root}
}

// PackPath returns <root>/daily/<date>.json
func (r *PackRepo) PackPath(date string) string {
	return filepath.Join(r.root, DailyDir, date+".json")
}

// SavePack writes the pack, replacing any existing file for the same date
func (r *PackRepo) SavePack(pack *domain.DailyPack) (string, error) {
	if pack == nil || pack.Date == "" {
		return "", fmt.Errorf("pack has no date")
	}

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode pack: %w", err)
	}

	dest := r.PackPath(pack.Date)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create daily directory: %w", err)
	}

	// write-then-rename so readers never see a half-written pack
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+pack.Date+"-*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create temp pack file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write pack: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write pack: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("failed to set pack permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to move pack into place: %w", err)
	}

	return dest, nil
}

// LoadPack reads the pack stored for a date
func (r *PackRepo) LoadPack(date string) (*domain.DailyPack, error) {
	data, err := os.ReadFile(r.PackPath(date))
	if err != nil {
		return nil, fmt.Errorf("failed to read pack: %w", err)
	}

	var pack domain.DailyPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to decode pack: %w", err)
	}
	return &pack, nil
}
