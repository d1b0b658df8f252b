package pitch

import (
	"context"
	"time"
)

// Record is one stored analysis, kept for auditing and history endpoints.
// Result holds the full AnalysisResult JSON.
type Record struct {
	ID           string    `json:"id"`
	PitchID      string    `json:"pitch_id"`
	Title        string    `json:"title"`
	PitchType    string    `json:"pitch_type"`
	OverallScore int       `json:"overall_score"`
	Result       string    `json:"result"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repository port for persisting and querying analysis history
type Repository interface {
	Save(ctx context.Context, rec *Record) error
	Paginate(ctx context.Context, page, pageSize int) ([]*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
}
