package upsert

import (
	"context"
	"fmt"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/ports"
)

const (
	// SearchPageSize is the number of results the search API returns per call.
	SearchPageSize = 10
	// DefaultSearchMaxResults is the deepest offset the search API serves.
	DefaultSearchMaxResults = 100
)

// StoreSource pages through raw records already stored in search_results.
type StoreSource struct {
	Reader ports.SourceReader
}

var _ PageSource = (*StoreSource)(nil)

// FetchPage reads one page of stored raw records.
func (s *StoreSource) FetchPage(ctx context.Context, offset, limit int) ([]domain.SourceRecord, error) {
	return s.Reader.SourcePage(ctx, offset, limit)
}

// SearchSource pages through a single query on the upstream search provider.
// Provider failures are reported as ErrPageSkipped.
type SearchSource struct {
	Provider   ports.SearchProvider
	Query      string
	MaxResults int
}

var (
	_ PageSource = (*SearchSource)(nil)
	_ PageSizer  = (*SearchSource)(nil)
)

// PageSize implements PageSizer.
func (s *SearchSource) PageSize() int {
	return SearchPageSize
}

// FetchPage returns the provider page starting at offset. Offsets past
// MaxResults yield an empty page.
func (s *SearchSource) FetchPage(ctx context.Context, offset, _ int) ([]domain.SourceRecord, error) {
	maxResults := s.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultSearchMaxResults
	}
	if offset >= maxResults {
		return nil, nil
	}

	items, err := s.Provider.Search(ctx, s.Query, offset)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("search %q at %d: %v: %w", s.Query, offset, err, ErrPageSkipped)
	}
	return items, nil
}

// TeeSource persists every fetched page into search_results before handing
// it on. Store failures are fatal to the run.
type TeeSource struct {
	Source PageSource
	Sink   ports.SourceWriter
}

var (
	_ PageSource = (*TeeSource)(nil)
	_ PageSizer  = (*TeeSource)(nil)
)

// PageSize forwards the wrapped source's page size when it has one.
func (t *TeeSource) PageSize() int {
	if sizer, ok := t.Source.(PageSizer); ok {
		return sizer.PageSize()
	}
	return 0
}

// FetchPage fetches from the wrapped source and stores non-empty pages.
func (t *TeeSource) FetchPage(ctx context.Context, offset, limit int) ([]domain.SourceRecord, error) {
	page, err := t.Source.FetchPage(ctx, offset, limit)
	if err != nil || len(page) == 0 {
		return page, err
	}

	rows := make([]domain.SourceRecord, 0, len(page))
	for _, record := range page {
		if record.Link != "" {
			rows = append(rows, record)
		}
	}
	if len(rows) == 0 {
		return page, nil
	}

	if err := t.Sink.UpsertSource(ctx, rows); err != nil {
		return nil, fmt.Errorf("store raw page at offset %d: %w", offset, err)
	}
	return page, nil
}
