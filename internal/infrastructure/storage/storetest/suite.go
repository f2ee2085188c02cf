/*
Package storetest contains a re-usable test suite that can be run against any
type implementing ports.RecordStore.
*/
package storetest

import (
	"context"
	"fmt"
	"time"

	check "gopkg.in/check.v1"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/ports"
)

// BaseSuite defines store tests shared by every RecordStore implementation.
type BaseSuite struct {
	store ports.RecordStore
}

// SetStore configures the suite to run against store.
func (s *BaseSuite) SetStore(store ports.RecordStore) {
	s.store = store
}

// TestSourceUpsertOverwritesByLink verifies raw records are re-fetch overwrites keyed by link.
func (s *BaseSuite) TestSourceUpsertOverwritesByLink(c *check.C) {
	ctx := context.TODO()

	err := s.store.UpsertSource(ctx, []domain.SourceRecord{
		{Link: "https://linkedin.com/in/a", Title: "A - Founder"},
		{Link: "https://linkedin.com/in/b", Title: "B - CTO"},
	})
	c.Assert(err, check.IsNil)

	err = s.store.UpsertSource(ctx, []domain.SourceRecord{
		{Link: "https://linkedin.com/in/a", Title: "A - CEO", OGDescription: "desc"},
	})
	c.Assert(err, check.IsNil)

	rows, err := s.store.SourcePage(ctx, 0, 10)
	c.Assert(err, check.IsNil)
	c.Assert(rows, check.HasLen, 2)
	c.Assert(rows[0].Title, check.Equals, "A - CEO")
	c.Assert(rows[0].OGDescription, check.Equals, "desc")
	c.Assert(rows[1].Link, check.Equals, "https://linkedin.com/in/b")
}

// TestEmptyUpsertsAreNoops verifies empty row sets never reach the backend.
func (s *BaseSuite) TestEmptyUpsertsAreNoops(c *check.C) {
	ctx := context.TODO()
	c.Assert(s.store.UpsertSource(ctx, nil), check.IsNil)
	c.Assert(s.store.UpsertProcessed(ctx, []domain.ProcessedRecord{}), check.IsNil)
}

// TestProcessedPaging verifies pages are ordered by link and end with an empty page.
func (s *BaseSuite) TestProcessedPaging(c *check.C) {
	ctx := context.TODO()
	now := time.Now().UTC().Truncate(time.Second)

	rows := make([]domain.ProcessedRecord, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, domain.ProcessedRecord{
			Link:      fmt.Sprintf("https://linkedin.com/in/%02d", i),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	c.Assert(s.store.UpsertProcessed(ctx, rows), check.IsNil)

	var seen []string
	for offset := 0; ; offset += 10 {
		page, err := s.store.ProcessedPage(ctx, offset, 10)
		c.Assert(err, check.IsNil)
		if len(page) == 0 {
			break
		}
		for _, r := range page {
			seen = append(seen, r.Link)
		}
	}
	c.Assert(seen, check.HasLen, 25)
	c.Assert(seen[0], check.Equals, "https://linkedin.com/in/00")
	c.Assert(seen[24], check.Equals, "https://linkedin.com/in/24")
}

// TestProcessedUpsertPreservesCreatedAtAndEnrichment verifies updates in place.
func (s *BaseSuite) TestProcessedUpsertPreservesCreatedAtAndEnrichment(c *check.C) {
	ctx := context.TODO()
	t0 := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(48 * time.Hour)
	link := "https://linkedin.com/in/jane"

	err := s.store.UpsertProcessed(ctx, []domain.ProcessedRecord{
		{Link: link, Title: "Old", CreatedAt: t0, UpdatedAt: t0},
	})
	c.Assert(err, check.IsNil)

	err = s.store.PatchProcessed(ctx, link, domain.Patch{
		domain.ColumnEmployer:  "Acme",
		domain.ColumnProcessed: true,
	})
	c.Assert(err, check.IsNil)

	err = s.store.UpsertProcessed(ctx, []domain.ProcessedRecord{
		{Link: link, Title: "New", Processed: true, CreatedAt: t1, UpdatedAt: t1},
	})
	c.Assert(err, check.IsNil)

	rows, err := s.store.ProcessedPage(ctx, 0, 10)
	c.Assert(err, check.IsNil)
	c.Assert(rows, check.HasLen, 1)
	c.Assert(rows[0].Title, check.Equals, "New")
	c.Assert(rows[0].Employer, check.Equals, "Acme")
	c.Assert(rows[0].CreatedAt.Equal(t0), check.Equals, true)
	c.Assert(rows[0].UpdatedAt.Equal(t1), check.Equals, true)
}

// TestFindAndPatch verifies filtered selects and partial updates.
func (s *BaseSuite) TestFindAndPatch(c *check.C) {
	ctx := context.TODO()
	now := time.Now().UTC().Truncate(time.Second)

	err := s.store.UpsertProcessed(ctx, []domain.ProcessedRecord{
		{Link: "a", OGDescription: "Ex-McKinsey", CreatedAt: now, UpdatedAt: now},
		{Link: "b", OGDescription: "Student", CreatedAt: now, UpdatedAt: now},
		{Link: "c", OGDescription: "Founder", Processed: true, CreatedAt: now, UpdatedAt: now},
	})
	c.Assert(err, check.IsNil)

	unprocessed, err := s.store.FindProcessed(ctx, domain.Query{
		Equals: map[string]any{domain.ColumnProcessed: false},
	})
	c.Assert(err, check.IsNil)
	c.Assert(unprocessed, check.HasLen, 2)

	c.Assert(s.store.PatchProcessed(ctx, "a", domain.Patch{
		domain.ColumnLocation: "Berlin, Germany",
	}), check.IsNil)

	located, err := s.store.FindProcessed(ctx, domain.Query{
		Present: []string{domain.ColumnLocation},
		Null:    []string{domain.ColumnRegion, domain.ColumnCountry},
	})
	c.Assert(err, check.IsNil)
	c.Assert(located, check.HasLen, 1)
	c.Assert(located[0].Link, check.Equals, "a")

	limited, err := s.store.FindProcessed(ctx, domain.Query{
		Null:  []string{domain.ColumnTotalScore},
		Limit: 2,
	})
	c.Assert(err, check.IsNil)
	c.Assert(limited, check.HasLen, 2)
}

// TestRawScores verifies only scored records are returned.
func (s *BaseSuite) TestRawScores(c *check.C) {
	ctx := context.TODO()
	now := time.Now().UTC().Truncate(time.Second)

	err := s.store.UpsertProcessed(ctx, []domain.ProcessedRecord{
		{Link: "a", CreatedAt: now, UpdatedAt: now},
		{Link: "b", CreatedAt: now, UpdatedAt: now},
	})
	c.Assert(err, check.IsNil)

	scores, err := s.store.RawScores(ctx)
	c.Assert(err, check.IsNil)
	c.Assert(scores, check.HasLen, 0)

	c.Assert(s.store.PatchProcessed(ctx, "b", domain.Patch{
		domain.ColumnRawTotalScore: 42.5,
		domain.ColumnTotalScore:    100.0,
		domain.ColumnScoringReason: "work experience: 50/100 - ok",
	}), check.IsNil)

	scores, err = s.store.RawScores(ctx)
	c.Assert(err, check.IsNil)
	c.Assert(scores, check.DeepEquals, []float64{42.5})
}
