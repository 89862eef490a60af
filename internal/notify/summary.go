package notify

import (
	"context"
	"fmt"
	"os"
	"strings"

	"dailypack/internal/domain"
)

// StepSummary appends markdown lines to a CI step summary file
type StepSummary struct {
	path string
}

// NewStepSummary creates a step summary writer; an empty path disables it
func NewStepSummary(path string) *StepSummary {
	return &StepSummary{path: path}
}

// Notify appends a heading and one line per image
func (s *StepSummary) Notify(ctx context.Context, run domain.Run, pack *domain.DailyPack) error {
	if s.path == "" {
		return nil
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open step summary: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatSummary(run, pack)); err != nil {
		return fmt.Errorf("failed to write step summary: %w", err)
	}
	return nil
}

// FormatSummary renders the markdown block for a run
func FormatSummary(run domain.Run, pack *domain.DailyPack) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Daily pack %s · %s\n\n", pack.Date, pack.Theme)
	fmt.Fprintf(&b, "Provider: `%s`, placeholders: %d/%d\n\n", run.Provider, run.Placeholders(), len(run.Images))
	for _, img := range run.Images {
		if img.Placeholder {
			fmt.Fprintf(&b, "- %s: %s _(placeholder)_\n", img.Word, img.Path)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s  `%s` (%d bytes)\n", img.Word, img.Path, img.Source, img.Bytes)
	}
	return b.String()
}
