package domain

import (
	"fmt"
	"time"
)

// Column names shared by both tables. Link is the natural key everywhere.
const (
	ColumnLink             = "link"
	ColumnTitle            = "title"
	ColumnSnippet          = "snippet"
	ColumnOGDescription    = "og_description"
	ColumnOGImage          = "og_image"
	ColumnProfileFirstName = "profile_first_name"
	ColumnProfileLastName  = "profile_last_name"

	ColumnFirstName        = "first_name"
	ColumnLastName         = "last_name"
	ColumnEducation        = "education"
	ColumnEmployer         = "employer"
	ColumnLocation         = "location"
	ColumnRegion           = "region"
	ColumnCountry          = "country"
	ColumnOtherExperiences = "other_experiences"
	ColumnPrime            = "prime"
	ColumnTotalScore       = "total_score"
	ColumnRawTotalScore    = "raw_total_score"
	ColumnScoringReason    = "scoring_reason"
	ColumnProcessed        = "processed"
	ColumnCreatedAt        = "created_at"
	ColumnUpdatedAt        = "updated_at"
)

// SourceRecord is a raw item fetched from the upstream search provider.
type SourceRecord struct {
	Link             string
	Title            string
	Snippet          string
	OGDescription    string
	OGImage          string
	ProfileFirstName string
	ProfileLastName  string
}

// ProcessedRecord is the canonical enriched representation of a profile.
type ProcessedRecord struct {
	ID               int64
	Link             string
	FirstName        string
	LastName         string
	OGImage          string
	OGDescription    string
	Title            string
	Education        string
	Employer         string
	Location         string
	Region           string
	Country          string
	OtherExperiences string
	Prime            bool
	TotalScore       *float64
	RawTotalScore    *float64
	ScoringReason    string
	Processed        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SourceDerivedColumns are the processed_results columns owned by the
// upstream fetch. Enrichment never writes them.
var SourceDerivedColumns = []string{
	ColumnLink,
	ColumnFirstName,
	ColumnLastName,
	ColumnOGImage,
	ColumnOGDescription,
	ColumnTitle,
}

// CopySourceFields overwrites the SourceDerivedColumns of r with those of src.
func (r *ProcessedRecord) CopySourceFields(src ProcessedRecord) {
	r.Link = src.Link
	r.FirstName = src.FirstName
	r.LastName = src.LastName
	r.OGImage = src.OGImage
	r.OGDescription = src.OGDescription
	r.Title = src.Title
}

// NumericColumns hold nullable numbers rather than text.
var NumericColumns = map[string]bool{
	ColumnTotalScore:    true,
	ColumnRawTotalScore: true,
}

// Value returns the comparable value stored under column. Nullable numbers
// come back as nil or float64.
func (r ProcessedRecord) Value(column string) (any, bool) {
	switch column {
	case ColumnLink:
		return r.Link, true
	case ColumnFirstName:
		return r.FirstName, true
	case ColumnLastName:
		return r.LastName, true
	case ColumnOGImage:
		return r.OGImage, true
	case ColumnOGDescription:
		return r.OGDescription, true
	case ColumnTitle:
		return r.Title, true
	case ColumnEducation:
		return r.Education, true
	case ColumnEmployer:
		return r.Employer, true
	case ColumnLocation:
		return r.Location, true
	case ColumnRegion:
		return r.Region, true
	case ColumnCountry:
		return r.Country, true
	case ColumnOtherExperiences:
		return r.OtherExperiences, true
	case ColumnPrime:
		return r.Prime, true
	case ColumnTotalScore:
		return floatValue(r.TotalScore), true
	case ColumnRawTotalScore:
		return floatValue(r.RawTotalScore), true
	case ColumnScoringReason:
		return r.ScoringReason, true
	case ColumnProcessed:
		return r.Processed, true
	case ColumnCreatedAt:
		return r.CreatedAt, true
	case ColumnUpdatedAt:
		return r.UpdatedAt, true
	}
	return nil, false
}

// Patch maps column names to new values for a partial update.
type Patch map[string]any

// Apply writes every patched column into the record.
func (r *ProcessedRecord) Apply(p Patch) error {
	for column, value := range p {
		if err := r.set(column, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProcessedRecord) set(column string, value any) error {
	if NumericColumns[column] {
		f, err := toFloatPtr(value)
		if err != nil {
			return fmt.Errorf("column %s: %w", column, err)
		}
		if column == ColumnTotalScore {
			r.TotalScore = f
		} else {
			r.RawTotalScore = f
		}
		return nil
	}

	switch column {
	case ColumnPrime, ColumnProcessed:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("column %s: expected bool, got %T", column, value)
		}
		if column == ColumnPrime {
			r.Prime = b
		} else {
			r.Processed = b
		}
		return nil
	case ColumnCreatedAt, ColumnUpdatedAt:
		t, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("column %s: expected time, got %T", column, value)
		}
		if column == ColumnCreatedAt {
			r.CreatedAt = t
		} else {
			r.UpdatedAt = t
		}
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("column %s: expected string, got %T", column, value)
	}
	switch column {
	case ColumnLink:
		r.Link = s
	case ColumnFirstName:
		r.FirstName = s
	case ColumnLastName:
		r.LastName = s
	case ColumnOGImage:
		r.OGImage = s
	case ColumnOGDescription:
		r.OGDescription = s
	case ColumnTitle:
		r.Title = s
	case ColumnEducation:
		r.Education = s
	case ColumnEmployer:
		r.Employer = s
	case ColumnLocation:
		r.Location = s
	case ColumnRegion:
		r.Region = s
	case ColumnCountry:
		r.Country = s
	case ColumnOtherExperiences:
		r.OtherExperiences = s
	case ColumnScoringReason:
		r.ScoringReason = s
	default:
		return fmt.Errorf("unknown column %s", column)
	}
	return nil
}

func floatValue(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func toFloatPtr(value any) (*float64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		return &v, nil
	case *float64:
		return v, nil
	}
	return nil, fmt.Errorf("expected float64, got %T", value)
}
