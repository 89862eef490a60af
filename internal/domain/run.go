package domain

import "time"

// Run is a ledger record of one pipeline execution
type Run struct {
	ID        string
	Date      string
	Theme     string
	Provider  string
	Images    []ImageRecord
	CreatedAt time.Time
}

// ImageRecord is the provenance of one word image in a run
type ImageRecord struct {
	Word        string
	Path        string
	Source      string
	Bytes       int
	Placeholder bool
}

// Placeholders returns how many images fell back to the placeholder
func (r Run) Placeholders() int {
	n := 0
	for _, img := range r.Images {
		if img.Placeholder {
			n++
		}
	}
	return n
}
