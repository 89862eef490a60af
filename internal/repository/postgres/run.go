package postgres

import (
	"database/sql"
	"fmt"

	"dailypack/internal/domain"
)

// RunRepo implements repository.RunRepository
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo creates a new run repository
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// SaveRun records a run and its per-word images in one transaction
func (r *RunRepo) SaveRun(run domain.Run) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO pack_runs (id, pack_date, theme, provider, placeholders, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(query, run.ID, run.Date, run.Theme, run.Provider, run.Placeholders(), run.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	imageQuery := `
		INSERT INTO pack_images (run_id, word, path, source, bytes, placeholder)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, img := range run.Images {
		if _, err := tx.Exec(imageQuery, run.ID, img.Word, img.Path, img.Source, img.Bytes, img.Placeholder); err != nil {
			return fmt.Errorf("failed to insert image %q: %w", img.Word, err)
		}
	}

	return tx.Commit()
}

// GetRunsByDate returns the runs recorded for a pack date, newest first, with their images
func (r *RunRepo) GetRunsByDate(date string) ([]domain.Run, error) {
	query := `
		SELECT r.id, to_char(r.pack_date, 'YYYY-MM-DD'), r.theme, r.provider, r.created_at,
			i.word, i.path, i.source, i.bytes, i.placeholder
		FROM pack_runs r
		LEFT JOIN pack_images i ON i.run_id = r.id
		WHERE r.pack_date = $1
		ORDER BY r.created_at DESC, i.id ASC
	`

	rows, err := r.db.Query(query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.Run
	index := make(map[string]int)
	for rows.Next() {
		var run domain.Run
		var word, path, source sql.NullString
		var bytes sql.NullInt64
		var placeholder sql.NullBool
		if err := rows.Scan(&run.ID, &run.Date, &run.Theme, &run.Provider, &run.CreatedAt,
			&word, &path, &source, &bytes, &placeholder); err != nil {
			return nil, err
		}

		i, ok := index[run.ID]
		if !ok {
			i = len(runs)
			index[run.ID] = i
			runs = append(runs, run)
		}
		if word.Valid {
			runs[i].Images = append(runs[i].Images, domain.ImageRecord{
				Word:        word.String,
				Path:        path.String,
				Source:      source.String,
				Bytes:       int(bytes.Int64),
				Placeholder: placeholder.Bool,
			})
		}
	}

	return runs, rows.Err()
}

// CleanOldRuns deletes runs older than specified days; images go with them
func (r *RunRepo) CleanOldRuns(days int) error {
	query := `
		DELETE FROM pack_runs
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
