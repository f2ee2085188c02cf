// Package classify flags prime profiles by keyword.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/logging"
)

// Store is the subset of the record store used by the classifier.
type Store interface {
	FindProcessed(ctx context.Context, q domain.Query) ([]domain.ProcessedRecord, error)
	PatchProcessed(ctx context.Context, link string, patch domain.Patch) error
}

// Report summarises one classification pass.
type Report struct {
	Checked int `json:"checked"`
	Prime   int `json:"prime"`
	Changed int `json:"changed"`
}

func (r Report) String() string {
	return fmt.Sprintf("prime classification: %d checked, %d prime, %d changed", r.Checked, r.Prime, r.Changed)
}

// PrimeClassifier matches descriptions against a keyword list.
type PrimeClassifier struct {
	store    Store
	keywords []string
	logger   *slog.Logger
}

// NewPrimeClassifier lowercases keywords once and drops blank ones.
func NewPrimeClassifier(store Store, keywords []string, logger *slog.Logger) *PrimeClassifier {
	if logger == nil {
		logger = logging.Discard()
	}
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &PrimeClassifier{store: store, keywords: lowered, logger: logger}
}

// IsPrime reports whether description contains any keyword, ignoring case.
func (p *PrimeClassifier) IsPrime(description string) bool {
	description = strings.ToLower(description)
	for _, kw := range p.keywords {
		if strings.Contains(description, kw) {
			return true
		}
	}
	return false
}

// Run classifies every processed record and patches only those whose
// prime flag changes.
func (p *PrimeClassifier) Run(ctx context.Context) (Report, error) {
	var report Report

	records, err := p.store.FindProcessed(ctx, domain.Query{})
	if err != nil {
		return report, fmt.Errorf("select records: %w", err)
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Checked++
		prime := p.IsPrime(rec.OGDescription)
		if prime {
			report.Prime++
		}
		if prime == rec.Prime {
			continue
		}

		if err := p.store.PatchProcessed(ctx, rec.Link, domain.Patch{domain.ColumnPrime: prime}); err != nil {
			return report, fmt.Errorf("update prime for %s: %w", rec.Link, err)
		}
		report.Changed++
		p.logger.Debug("prime status updated", "link", rec.Link, "prime", prime)
	}

	p.logger.Info("prime classification finished", "checked", report.Checked, "prime", report.Prime, "changed", report.Changed)
	return report, nil
}
