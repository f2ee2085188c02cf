package upsert

import (
	"time"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/normalize"
)

// Classification is the outcome of comparing a candidate with the snapshot.
type Classification string

const (
	ClassNew       Classification = "new"
	ClassChanged   Classification = "changed"
	ClassUnchanged Classification = "unchanged"
)

// ChangeSet is the ephemeral result of classifying one candidate.
type ChangeSet struct {
	Classification Classification
	// Record is the row to write for new and changed candidates, or the
	// existing row when unchanged.
	Record domain.ProcessedRecord
	// ChangedFields names the columns that differ from the snapshot.
	ChangedFields []string
}

// NeedsWrite reports whether the change set must be persisted.
func (c ChangeSet) NeedsWrite() bool {
	return c.Classification == ClassNew || c.Classification == ClassChanged
}

// Differ compares candidates against the snapshot field by field.
type Differ struct {
	rules  normalize.Rules
	fields []string
}

// NewDiffer builds a Differ with the given normalization rules. Nil rules
// fall back to the defaults.
func NewDiffer(rules normalize.Rules) *Differ {
	defaults := normalize.DefaultRules()
	if rules.Title == nil {
		rules.Title = defaults.Title
	}
	if rules.Description == nil {
		rules.Description = defaults.Description
	}
	return &Differ{rules: rules, fields: domain.SourceDerivedColumns}
}

// Candidate builds the processed field set for a raw record.
func (d *Differ) Candidate(src domain.SourceRecord) domain.ProcessedRecord {
	return domain.ProcessedRecord{
		Link:          src.Link,
		FirstName:     src.ProfileFirstName,
		LastName:      src.ProfileLastName,
		OGImage:       src.OGImage,
		OGDescription: d.rules.Description(src.OGDescription),
		Title:         d.rules.Title(src.Title),
	}
}

// Classify compares src with its snapshot entry. now is stamped on new and
// changed records only; updated_at never takes part in the comparison and
// created_at is always carried over from the existing row.
func (d *Differ) Classify(src domain.SourceRecord, snapshot Snapshot, now time.Time) ChangeSet {
	candidate := d.Candidate(src)

	existing, ok := snapshot[candidate.Link]
	if !ok {
		candidate.CreatedAt = now
		candidate.UpdatedAt = now
		return ChangeSet{Classification: ClassNew, Record: candidate}
	}

	out := existing
	var changed []string
	for _, field := range d.fields {
		want, _ := candidate.Value(field)
		have, _ := existing.Value(field)
		if want == have {
			continue
		}
		changed = append(changed, field)
	}

	if len(changed) == 0 {
		return ChangeSet{Classification: ClassUnchanged, Record: existing}
	}
	out.CopySourceFields(candidate)

	out.CreatedAt = existing.CreatedAt
	out.UpdatedAt = now
	for _, field := range changed {
		// enrichment was derived from the old description
		if field == domain.ColumnOGDescription {
			out.Processed = false
		}
	}

	return ChangeSet{Classification: ClassChanged, Record: out, ChangedFields: changed}
}
