// Package memory provides an in-memory RecordStore used for tests and dry runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/ports"
)

var _ ports.RecordStore = (*Store)(nil)

// Store keeps both tables in maps keyed by link.
type Store struct {
	mu        sync.RWMutex
	sources   map[string]sourceRow
	processed map[string]domain.ProcessedRecord
	nextID    int64
	now       func() time.Time
}

type sourceRow struct {
	record    domain.SourceRecord
	createdAt time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		sources:   map[string]sourceRow{},
		processed: map[string]domain.ProcessedRecord{},
		now:       time.Now,
	}
}

// EnsureSchema is a no-op for the in-memory store.
func (s *Store) EnsureSchema(context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

// SourcePage returns raw records ordered by link.
func (s *Store) SourcePage(_ context.Context, offset, limit int) ([]domain.SourceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := sortedKeys(s.sources)
	out := make([]domain.SourceRecord, 0)
	for _, link := range page(links, offset, limit) {
		out = append(out, s.sources[link].record)
	}
	return out, nil
}

// UpsertSource overwrites raw records keyed by link, keeping their creation time.
func (s *Store) UpsertSource(_ context.Context, rows []domain.SourceRecord) error {
	if len(rows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		if row.Link == "" {
			return fmt.Errorf("upsert source: empty link")
		}
		createdAt := s.now().UTC()
		if existing, ok := s.sources[row.Link]; ok {
			createdAt = existing.createdAt
		}
		s.sources[row.Link] = sourceRow{record: row, createdAt: createdAt}
	}
	return nil
}

// ProcessedPage returns processed records ordered by link.
func (s *Store) ProcessedPage(_ context.Context, offset, limit int) ([]domain.ProcessedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := sortedKeys(s.processed)
	out := make([]domain.ProcessedRecord, 0)
	for _, link := range page(links, offset, limit) {
		out = append(out, s.processed[link])
	}
	return out, nil
}

// UpsertProcessed inserts or updates rows in place keyed by link. Enrichment
// columns of existing rows are left untouched and created_at is never
// overwritten.
func (s *Store) UpsertProcessed(_ context.Context, rows []domain.ProcessedRecord) error {
	if len(rows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		if row.Link == "" {
			return fmt.Errorf("upsert processed: empty link")
		}

		existing, ok := s.processed[row.Link]
		if !ok {
			s.nextID++
			row.ID = s.nextID
			s.processed[row.Link] = row
			continue
		}

		existing.CopySourceFields(row)
		existing.Processed = row.Processed
		existing.UpdatedAt = row.UpdatedAt
		s.processed[row.Link] = existing
	}
	return nil
}

// FindProcessed returns records matching q ordered by link.
func (s *Store) FindProcessed(_ context.Context, q domain.Query) ([]domain.ProcessedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ProcessedRecord, 0)
	for _, link := range sortedKeys(s.processed) {
		record := s.processed[link]
		if !q.Matches(record) {
			continue
		}
		out = append(out, record)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

// PatchProcessed updates the given columns of the record stored under link.
func (s *Store) PatchProcessed(_ context.Context, link string, patch domain.Patch) error {
	if len(patch) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.processed[link]
	if !ok {
		return fmt.Errorf("patch processed %s: not found", link)
	}
	if err := record.Apply(patch); err != nil {
		return fmt.Errorf("patch processed %s: %w", link, err)
	}
	s.processed[link] = record
	return nil
}

// RawScores returns every non-null raw_total_score.
func (s *Store) RawScores(context.Context) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]float64, 0)
	for _, link := range sortedKeys(s.processed) {
		if score := s.processed[link].RawTotalScore; score != nil {
			out = append(out, *score)
		}
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func page(keys []string, offset, limit int) []string {
	if offset >= len(keys) {
		return nil
	}
	end := len(keys)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return keys[offset:end]
}
