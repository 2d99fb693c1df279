package history

import (
	"context"
	"time"
)

// Entry is one recorded analysis run
type Entry struct {
	ID                string        `json:"id"`
	Source            string        `json:"source"`
	StartedAt         time.Time     `json:"started_at"`
	Duration          time.Duration `json:"duration"`
	TokenCount        int           `json:"token_count"`
	LexicalErrorCount int           `json:"lexical_error_count"`
	SyntaxErrorCount  int           `json:"syntax_error_count"`
	TokenReport       string        `json:"token_report,omitempty"`
	LexicalReport     string        `json:"lexical_report,omitempty"`
	SyntaxReport      string        `json:"syntax_report,omitempty"`
}

// Clean reports whether the run found no errors
func (e *Entry) Clean() bool {
	return e.LexicalErrorCount == 0 && e.SyntaxErrorCount == 0
}

// Filter defines criteria for listing runs
type Filter struct {
	Source     string
	OnlyFailed bool
	Since      time.Time
	Limit      int
	Offset     int
}

// Stats summarizes the stored runs
type Stats struct {
	Total    int64            `json:"total"`
	Clean    int64            `json:"clean"`
	Failed   int64            `json:"failed"`
	BySource map[string]int64 `json:"by_source"`
	LastRun  time.Time        `json:"last_run,omitempty"`
}

// Store defines the interface for run persistence
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}
