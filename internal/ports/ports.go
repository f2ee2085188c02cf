//go:generate mockgen -source=ports.go -destination=../mocks/mock_ports.go -package=mocks

package ports

import (
	"context"
	"time"

	"ProfileScanner/internal/domain"
)

// SearchProvider pulls raw profile items from an upstream search API.
// start is the zero-based offset of the first result.
type SearchProvider interface {
	Search(ctx context.Context, query string, start int) ([]domain.SourceRecord, error)
}

// SourceReader pages through stored raw search results ordered by link.
type SourceReader interface {
	SourcePage(ctx context.Context, offset, limit int) ([]domain.SourceRecord, error)
}

// SourceWriter overwrites raw search results keyed by link.
type SourceWriter interface {
	UpsertSource(ctx context.Context, rows []domain.SourceRecord) error
}

// ProcessedReader pages through processed records ordered by link.
type ProcessedReader interface {
	ProcessedPage(ctx context.Context, offset, limit int) ([]domain.ProcessedRecord, error)
}

// ProcessedWriter upserts processed records keyed by link, updating in place.
type ProcessedWriter interface {
	UpsertProcessed(ctx context.Context, rows []domain.ProcessedRecord) error
}

// ProcessedQuerier serves the enrichment, classification and ranking jobs.
type ProcessedQuerier interface {
	FindProcessed(ctx context.Context, q domain.Query) ([]domain.ProcessedRecord, error)
	PatchProcessed(ctx context.Context, link string, patch domain.Patch) error
	RawScores(ctx context.Context) ([]float64, error)
}

// RecordStore is the relational backing store holding both tables.
type RecordStore interface {
	SourceReader
	SourceWriter
	ProcessedReader
	ProcessedWriter
	ProcessedQuerier
	EnsureSchema(ctx context.Context) error
	Close() error
}

// CompletionClient sends prompts to a large-language-model API.
type CompletionClient interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// Notifier streams run reports to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
