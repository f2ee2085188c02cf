package upsert

import (
	"context"
	"fmt"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/ports"
)

// DefaultPageSize bounds every paged read against the store.
const DefaultPageSize = 1000

// Snapshot indexes previously persisted records by link for one run.
type Snapshot map[string]domain.ProcessedRecord

// LoadSnapshot reads the entire processed population before any diff begins.
func LoadSnapshot(ctx context.Context, reader ports.ProcessedReader, pageSize int) (Snapshot, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	snapshot := Snapshot{}
	for offset := 0; ; offset += pageSize {
		page, err := reader.ProcessedPage(ctx, offset, pageSize)
		if err != nil {
			return nil, fmt.Errorf("load snapshot at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			return snapshot, nil
		}
		for _, record := range page {
			snapshot[record.Link] = record
		}
	}
}
