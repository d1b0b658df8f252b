package postgres

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
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  pitch_id=EXCLUDED.pitch_id,
  title=EXCLUDED.title,
  pitch_type=EXCLUDED.pitch_type,
  overall_score=EXCLUDED.overall_score,
  result_json=EXCLUDED.result_json;
`
	result := rec.Result
	if strings.TrimSpace(result) == "" {
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
LIMIT $1 OFFSET $2;
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
WHERE id=$1;
`
	var rec domain.Record
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rec.ID, &rec.PitchID, &rec.Title,
		&rec.PitchType, &rec.OverallScore, &rec.Result, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
