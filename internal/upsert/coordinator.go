package upsert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/logging"
	"ProfileScanner/internal/normalize"
	"ProfileScanner/internal/ports"
)

// DefaultBatchSize bounds the number of rows sent in one upsert call.
const DefaultBatchSize = 500

// ErrPageSkipped marks a page that could not be fetched from an upstream
// provider. The coordinator logs it and moves on to the next page.
var ErrPageSkipped = errors.New("page skipped")

// PageSource yields raw records one page at a time. An empty page ends the run.
type PageSource interface {
	FetchPage(ctx context.Context, offset, limit int) ([]domain.SourceRecord, error)
}

// PageSizer is implemented by sources that dictate their own page size.
type PageSizer interface {
	PageSize() int
}

// Config defines the collaborators and limits of a Coordinator.
type Config struct {
	// Writer receives batched upserts keyed by link.
	Writer ports.ProcessedWriter

	// Differ classifies candidates. Defaults to NewDiffer with default rules.
	Differ *Differ

	// Clock supplies the run timestamp. Defaults to the wall clock.
	Clock clock.Clock

	// PageSize used for sources that do not implement PageSizer.
	PageSize int

	// BatchSize caps rows per upsert call.
	BatchSize int

	// MaxSkippedPages ends the run after this many consecutive skipped
	// pages. Zero disables the limit.
	MaxSkippedPages int

	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

func (cfg *Config) validate() error {
	var err error

	if cfg.Writer == nil {
		err = multierror.Append(err, fmt.Errorf("processed writer not provided"))
	}
	if cfg.PageSize < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for page size, must be >= 0"))
	}
	if cfg.BatchSize < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for batch size, must be >= 0"))
	}
	if cfg.MaxSkippedPages < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for max skipped pages, must be >= 0"))
	}

	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Differ == nil {
		cfg.Differ = NewDiffer(normalize.Rules{})
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	return err
}

// Summary reports what a run did.
type Summary struct {
	RunID         uuid.UUID `json:"run_id"`
	Inserted      int       `json:"inserted"`
	Updated       int       `json:"updated"`
	Unchanged     int       `json:"unchanged"`
	Invalid       int       `json:"invalid"`
	Total         int       `json:"total"`
	SkippedPages  int       `json:"skipped_pages"`
	ChangedFields []string  `json:"changed_fields"`
}

// Merge folds other into s, keeping s.RunID.
func (s *Summary) Merge(other Summary) {
	s.Inserted += other.Inserted
	s.Updated += other.Updated
	s.Unchanged += other.Unchanged
	s.Invalid += other.Invalid
	s.Total += other.Total
	s.SkippedPages += other.SkippedPages
	s.ChangedFields = unionSorted(s.ChangedFields, other.ChangedFields)
}

// String renders the summary for notifications.
func (s Summary) String() string {
	return fmt.Sprintf("run %s: %d new, %d changed, %d unchanged, %d invalid of %d total; %d pages skipped; changed fields %v",
		s.RunID, s.Inserted, s.Updated, s.Unchanged, s.Invalid, s.Total, s.SkippedPages, s.ChangedFields)
}

// Coordinator pages through a source, classifies each record and upserts
// new and changed ones in bounded batches.
type Coordinator struct {
	cfg Config
}

// NewCoordinator validates cfg and returns a Coordinator.
func NewCoordinator(cfg Config) (*Coordinator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("upsert coordinator: config validation failed: %w", err)
	}
	return &Coordinator{cfg: cfg}, nil
}

// Run drives one pass over source. snapshot is updated in place as rows are
// written so repeated links within a run are not classified as new twice.
func (c *Coordinator) Run(ctx context.Context, source PageSource, snapshot Snapshot) (Summary, error) {
	summary := Summary{RunID: uuid.New()}
	logger := c.cfg.Logger.With("run_id", summary.RunID.String())
	if snapshot == nil {
		snapshot = Snapshot{}
	}

	pageSize := c.cfg.PageSize
	if sizer, ok := source.(PageSizer); ok && sizer.PageSize() > 0 {
		pageSize = sizer.PageSize()
	}

	now := c.cfg.Clock.Now().UTC()
	changedFields := map[string]struct{}{}
	consecutiveSkips := 0

	for offset := 0; ; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return c.finish(summary, changedFields), err
		}

		page, err := source.FetchPage(ctx, offset, pageSize)
		if err != nil {
			if !errors.Is(err, ErrPageSkipped) {
				return c.finish(summary, changedFields), fmt.Errorf("fetch page at offset %d: %w", offset, err)
			}
			summary.SkippedPages++
			consecutiveSkips++
			logger.Warn("skipping page", "offset", offset, "error", err)
			if c.cfg.MaxSkippedPages > 0 && consecutiveSkips >= c.cfg.MaxSkippedPages {
				logger.Warn("too many consecutive skipped pages, ending run", "skipped", consecutiveSkips)
				break
			}
			continue
		}
		consecutiveSkips = 0

		if len(page) == 0 {
			break
		}

		buffer := c.classifyPage(page, snapshot, now, &summary, changedFields)
		if err := c.flush(ctx, buffer); err != nil {
			logger.Error("upsert failed", "offset", offset, "rows", len(buffer), "error", err)
			return c.finish(summary, changedFields), err
		}
		logger.Debug("page processed", "offset", offset, "records", len(page), "written", len(buffer))
	}

	summary = c.finish(summary, changedFields)
	logger.Info("upsert run complete",
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"unchanged", summary.Unchanged,
		"invalid", summary.Invalid,
		"total", summary.Total,
		"skipped_pages", summary.SkippedPages,
		"changed_fields", summary.ChangedFields,
	)
	return summary, nil
}

func (c *Coordinator) classifyPage(page []domain.SourceRecord, snapshot Snapshot, now time.Time, summary *Summary, changedFields map[string]struct{}) []domain.ProcessedRecord {
	var (
		buffer []domain.ProcessedRecord
		index  = map[string]int{}
	)

	for _, src := range page {
		summary.Total++
		if src.Link == "" {
			summary.Invalid++
			continue
		}

		change := c.cfg.Differ.Classify(src, snapshot, now)
		switch change.Classification {
		case ClassNew:
			summary.Inserted++
		case ClassChanged:
			summary.Updated++
			for _, field := range change.ChangedFields {
				changedFields[field] = struct{}{}
			}
		default:
			summary.Unchanged++
			continue
		}

		snapshot[change.Record.Link] = change.Record

		// a link repeated within one page keeps its latest version only
		if pos, ok := index[change.Record.Link]; ok {
			buffer[pos] = change.Record
			continue
		}
		index[change.Record.Link] = len(buffer)
		buffer = append(buffer, change.Record)
	}

	return buffer
}

func (c *Coordinator) flush(ctx context.Context, rows []domain.ProcessedRecord) error {
	for start := 0; start < len(rows); start += c.cfg.BatchSize {
		end := start + c.cfg.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := c.cfg.Writer.UpsertProcessed(ctx, rows[start:end]); err != nil {
			return fmt.Errorf("upsert %d processed records: %w", end-start, err)
		}
	}
	return nil
}

func (c *Coordinator) finish(summary Summary, changedFields map[string]struct{}) Summary {
	fields := make([]string, 0, len(changedFields))
	for field := range changedFields {
		fields = append(fields, field)
	}
	summary.ChangedFields = unionSorted(nil, fields)
	return summary
}

func unionSorted(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
