package analysis

import (
	"context"
	"time"

	"github.com/coralpitch/pitchdeck/internal/domain/pitch"
)

// Hand-rolled fakes with function fields so each test wires in exactly the
// behavior it needs.

type fakeAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, system, user string) (string, error)
	calls       int
	lastUser    string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastUser = user
	return f.AnalyzeFunc(ctx, system, user)
}

type fakeTranscriber struct {
	TranscribeFunc func(ctx context.Context, ref, languageCode string) (pitch.TranscriptionResult, error)
	calls          int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, ref, languageCode string) (pitch.TranscriptionResult, error) {
	f.calls++
	return f.TranscribeFunc(ctx, ref, languageCode)
}

type fakeRepo struct {
	SaveFunc     func(ctx context.Context, rec *pitch.Record) error
	PaginateFunc func(ctx context.Context, page, pageSize int) ([]*pitch.Record, error)
	GetFunc      func(ctx context.Context, id string) (*pitch.Record, error)
	saved        []*pitch.Record
}

func (f *fakeRepo) Save(ctx context.Context, rec *pitch.Record) error {
	f.saved = append(f.saved, rec)
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, rec)
	}
	return nil
}

func (f *fakeRepo) Paginate(ctx context.Context, page, pageSize int) ([]*pitch.Record, error) {
	if f.PaginateFunc != nil {
		return f.PaginateFunc(ctx, page, pageSize)
	}
	return f.saved, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (*pitch.Record, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	for _, rec := range f.saved {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
