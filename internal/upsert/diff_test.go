package upsert

import (
	"reflect"
	"testing"
	"time"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/normalize"
)

func TestClassifyAgainstEmptySnapshotIsNew(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	cs := NewDiffer(normalize.Rules{}).Classify(domain.SourceRecord{
		Link:  "a",
		Title: "Jane Doe - Founder | Stealth",
	}, Snapshot{}, now)

	if cs.Classification != ClassNew || !cs.NeedsWrite() {
		t.Fatalf("unexpected classification %s", cs.Classification)
	}
	if !cs.Record.CreatedAt.Equal(now) || !cs.Record.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not stamped: %+v", cs.Record)
	}
	if cs.Record.Title != "Founder" {
		t.Fatalf("title not normalised: %q", cs.Record.Title)
	}
}

func TestClassifyIgnoresUpdatedAt(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	existing := domain.ProcessedRecord{Link: "a", Title: "Founder", CreatedAt: t0, UpdatedAt: t0}

	cs := NewDiffer(normalize.Rules{}).Classify(
		domain.SourceRecord{Link: "a", Title: "Jane - Founder"},
		Snapshot{"a": existing},
		t0.Add(48*time.Hour),
	)
	if cs.Classification != ClassUnchanged || cs.NeedsWrite() {
		t.Fatalf("expected unchanged, got %s %v", cs.Classification, cs.ChangedFields)
	}
	if !cs.Record.UpdatedAt.Equal(t0) {
		t.Fatal("unchanged record must keep its updated_at")
	}
}

func TestClassifySingleFieldChangeKeepsEnrichment(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)
	existing := domain.ProcessedRecord{
		Link:      "a",
		Title:     "Old",
		OGImage:   "https://img/a.png",
		Education: "ETH",
		Prime:     true,
		Processed: true,
		CreatedAt: t0,
		UpdatedAt: t0,
	}

	cs := NewDiffer(normalize.Rules{}).Classify(
		domain.SourceRecord{Link: "a", Title: "New", OGImage: "https://img/a.png"},
		Snapshot{"a": existing},
		t1,
	)
	if cs.Classification != ClassChanged {
		t.Fatalf("expected changed, got %s", cs.Classification)
	}
	if !reflect.DeepEqual(cs.ChangedFields, []string{domain.ColumnTitle}) {
		t.Fatalf("unexpected changed fields %v", cs.ChangedFields)
	}

	got := cs.Record
	if got.Title != "New" || !got.CreatedAt.Equal(t0) || !got.UpdatedAt.Equal(t1) {
		t.Fatalf("unexpected record %+v", got)
	}
	if got.Education != "ETH" || !got.Prime || !got.Processed {
		t.Fatalf("enrichment must survive a title change: %+v", got)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	snapshot := Snapshot{"a": {Link: "a", Title: "Old", OGDescription: "x"}}
	src := domain.SourceRecord{Link: "a", Title: "New", OGDescription: "y"}

	d := NewDiffer(normalize.Rules{})
	first := d.Classify(src, snapshot, now)
	second := d.Classify(src, snapshot, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classification differs between calls:\n%+v\n%+v", first, second)
	}
}
