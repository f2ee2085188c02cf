package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ProfileScanner/internal/logging"
	"ProfileScanner/internal/ports"
	"ProfileScanner/internal/search"
	"ProfileScanner/internal/upsert"
)

// HarvestDeps wires the search provider and store into a Harvester.
type HarvestDeps struct {
	Registry         *search.Registry
	ProviderName     string
	Store            ports.RecordStore
	Coordinator      *upsert.Coordinator
	Queries          []string
	MaxResults       int
	SnapshotPageSize int
	Logger           *slog.Logger
}

// Harvester pulls every configured query from the search provider, keeps
// the raw pages in search_results and upserts processed records.
type Harvester struct {
	provider     search.Provider
	store        ports.RecordStore
	coordinator  *upsert.Coordinator
	queries      []string
	maxResults   int
	snapshotPage int
	logger       *slog.Logger
}

// NewHarvester resolves the configured provider.
func NewHarvester(deps HarvestDeps) (*Harvester, error) {
	if deps.Registry == nil {
		return nil, fmt.Errorf("search registry is not configured")
	}
	if deps.Store == nil || deps.Coordinator == nil {
		return nil, fmt.Errorf("harvester needs a store and a coordinator")
	}

	provider, err := deps.Registry.Resolve(deps.ProviderName)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Harvester{
		provider:     provider,
		store:        deps.Store,
		coordinator:  deps.Coordinator,
		queries:      deps.Queries,
		maxResults:   deps.MaxResults,
		snapshotPage: deps.SnapshotPageSize,
		logger:       logger,
	}, nil
}

// Run harvests every query against one snapshot loaded up front.
func (h *Harvester) Run(ctx context.Context) (upsert.Summary, error) {
	total := upsert.Summary{RunID: uuid.New()}
	if len(h.queries) == 0 {
		return total, fmt.Errorf("no search queries configured")
	}

	snapshot, err := upsert.LoadSnapshot(ctx, h.store, h.snapshotPage)
	if err != nil {
		return total, err
	}
	h.logger.Debug("snapshot loaded", "records", len(snapshot), "provider", h.provider.Name())

	for _, query := range h.queries {
		source := &upsert.TeeSource{
			Source: &upsert.SearchSource{Provider: h.provider, Query: query, MaxResults: h.maxResults},
			Sink:   h.store,
		}

		summary, err := h.coordinator.Run(ctx, source, snapshot)
		total.Merge(summary)
		if err != nil {
			return total, fmt.Errorf("harvest query %q: %w", query, err)
		}
		h.logger.Info("query harvested", "query", query, "inserted", summary.Inserted, "updated", summary.Updated)
	}

	return total, nil
}

// Syncer rebuilds processed_results from the stored raw results.
type Syncer struct {
	store        ports.RecordStore
	coordinator  *upsert.Coordinator
	snapshotPage int
}

// NewSyncer wires a store-backed coordinator run.
func NewSyncer(store ports.RecordStore, coordinator *upsert.Coordinator, snapshotPageSize int) *Syncer {
	return &Syncer{store: store, coordinator: coordinator, snapshotPage: snapshotPageSize}
}

// Run pages through search_results once.
func (s *Syncer) Run(ctx context.Context) (upsert.Summary, error) {
	snapshot, err := upsert.LoadSnapshot(ctx, s.store, s.snapshotPage)
	if err != nil {
		return upsert.Summary{}, err
	}
	return s.coordinator.Run(ctx, &upsert.StoreSource{Reader: s.store}, snapshot)
}
