package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/coralpitch/pitchdeck/internal/domain/pitch"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO pitch_analyses
  (id, pitch_id, title, pitch_type, overall_score, result_json, created_at)
VALUES (?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  pitch_id=VALUES(pitch_id), title=VALUES(title), pitch_type=VALUES(pitch_type),
  overall_score=VALUES(overall_score), result_json=VALUES(result_json);
`
	result := rec.Result
	if strings.TrimSpace(result) == "" {
		// result_json column requires valid JSON; use empty object
		result = "{}"
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.PitchID, stringOrDash(rec.Title), stringOrDash(rec.PitchType),
		rec.OverallScore, result, createdAt)
	return err
}

// Paginate returns a page of analysis records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, pitch_id, title, pitch_type, overall_score, result_json, created_at
FROM pitch_analyses
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(&rec.ID, &rec.PitchID, &rec.Title, &rec.PitchType,
			&rec.OverallScore, &rec.Result, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// Get returns one analysis record by id
func (r *AnalysisRepository) Get(ctx context.Context, id string) (*domain.Record, error) {
	const q = `
SELECT id, pitch_id, title, pitch_type, overall_score, result_json, created_at
FROM pitch_analyses
WHERE id=?;
`
	var rec domain.Record
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rec.ID, &rec.PitchID, &rec.Title,
		&rec.PitchType, &rec.OverallScore, &rec.Result, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
