// Package enrich fills derived profile columns by asking a completion
// service about each selected record.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/time/rate"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/logging"
	"ProfileScanner/internal/ports"
)

// ErrMalformedResponse marks a reply that does not satisfy the task schema.
var ErrMalformedResponse = errors.New("malformed completion response")

// ErrStoreWrite marks a failed write of an enrichment result.
var ErrStoreWrite = errors.New("store write failed")

// Store is the subset of the record store used by enrichment.
type Store interface {
	FindProcessed(ctx context.Context, q domain.Query) ([]domain.ProcessedRecord, error)
	PatchProcessed(ctx context.Context, link string, patch domain.Patch) error
}

// Config defines the collaborators of an Adapter.
type Config struct {
	Store  Store
	Client ports.CompletionClient

	// Workers bounds concurrent completion calls. Defaults to 1.
	Workers int

	// RequestsPerSecond paces completion calls across workers; zero
	// disables pacing.
	RequestsPerSecond float64

	Logger *slog.Logger
}

func (cfg *Config) validate() error {
	var err error

	if cfg.Store == nil {
		err = multierror.Append(err, fmt.Errorf("record store not provided"))
	}
	if cfg.Client == nil {
		err = multierror.Append(err, fmt.Errorf("completion client not provided"))
	}
	if cfg.Workers < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for workers, must be >= 0"))
	}
	if cfg.RequestsPerSecond < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for requests per second, must be >= 0"))
	}

	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	return err
}

// Report summarises one task run.
type Report struct {
	Task      string `json:"task"`
	Attempted int    `json:"attempted"`
	Updated   int    `json:"updated"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	// Err aggregates every per-record failure.
	Err error `json:"-"`
}

// String renders the report for notifications.
func (r Report) String() string {
	out := fmt.Sprintf("%s enrichment: %d attempted, %d updated, %d skipped, %d failed",
		r.Task, r.Attempted, r.Updated, r.Skipped, r.Failed)
	if r.Err != nil {
		out += "\n" + r.Err.Error()
	}
	return out
}

// Adapter runs enrichment tasks over a bounded worker pool.
type Adapter struct {
	cfg     Config
	limiter *rate.Limiter
}

// NewAdapter validates cfg and returns an Adapter.
func NewAdapter(cfg Config) (*Adapter, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("enrichment adapter: config validation failed: %w", err)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Adapter{cfg: cfg, limiter: rate.NewLimiter(limit, 1)}, nil
}

// Run selects the task's records and enriches each one independently. A
// completion or parse failure is logged and counted and never stops the
// others. A store write failure stops the run: no further records are
// handed out and the error, wrapping ErrStoreWrite, is returned.
func (a *Adapter) Run(ctx context.Context, task Task) (Report, error) {
	report := Report{Task: task.Name}
	logger := a.cfg.Logger.With("task", task.Name)

	records, err := a.cfg.Store.FindProcessed(ctx, task.Query)
	if err != nil {
		return report, fmt.Errorf("select records for %s: %w", task.Name, err)
	}
	logger.Info("enrichment started", "records", len(records), "workers", a.cfg.Workers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu     sync.Mutex
		errs   *multierror.Error
		fatal  error
		wg     sync.WaitGroup
		queue  = make(chan domain.ProcessedRecord)
		record = func(outcome outcome, err error) {
			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case outcomeSkipped:
				report.Skipped++
			case outcomeUpdated:
				report.Attempted++
				report.Updated++
			case outcomeFailed:
				if fatal != nil && errors.Is(err, context.Canceled) {
					return
				}
				report.Attempted++
				report.Failed++
				errs = multierror.Append(errs, err)
			case outcomeAborted:
				report.Attempted++
				report.Failed++
				if fatal == nil {
					fatal = err
					cancel()
				}
			}
		}
	)

	for i := 0; i < a.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range queue {
				if runCtx.Err() != nil {
					continue
				}
				result, err := a.enrich(runCtx, task, rec)
				if err != nil {
					logger.Warn("enrichment failed", "link", rec.Link, "error", err)
				}
				record(result, err)
			}
		}()
	}

feed:
	for _, rec := range records {
		select {
		case <-runCtx.Done():
			break feed
		case queue <- rec:
		}
	}
	close(queue)
	wg.Wait()

	report.Err = errs.ErrorOrNil()
	logger.Info("enrichment finished",
		"attempted", report.Attempted,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	if fatal != nil {
		return report, fmt.Errorf("enrich %s: %w", task.Name, fatal)
	}
	return report, ctx.Err()
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeUpdated
	outcomeFailed
	// outcomeAborted is a store failure; it ends the run.
	outcomeAborted
)

func (a *Adapter) enrich(ctx context.Context, task Task, rec domain.ProcessedRecord) (outcome, error) {
	input := strings.TrimSpace(task.Input(rec))
	if input == "" {
		return outcomeSkipped, nil
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return outcomeFailed, fmt.Errorf("%s: %w", rec.Link, err)
	}

	reply, err := a.cfg.Client.Complete(ctx, task.Request(input))
	if err != nil {
		return outcomeFailed, fmt.Errorf("%s: complete: %w", rec.Link, err)
	}

	patch, err := task.Parse(reply)
	if err != nil {
		return outcomeFailed, fmt.Errorf("%s: %w", rec.Link, err)
	}

	if err := a.cfg.Store.PatchProcessed(ctx, rec.Link, patch); err != nil {
		return outcomeAborted, fmt.Errorf("%w: patch %s: %w", ErrStoreWrite, rec.Link, err)
	}
	return outcomeUpdated, nil
}
