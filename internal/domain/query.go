package domain

// Query selects processed records for enrichment, classification and ranking.
type Query struct {
	// Null lists columns that must be absent (NULL or empty text).
	Null []string
	// Present lists columns that must carry a value.
	Present []string
	// Equals constrains columns to exact values.
	Equals map[string]any
	// Limit caps the result size; zero means no limit.
	Limit int
}

// Matches evaluates the query against an in-memory record.
func (q Query) Matches(r ProcessedRecord) bool {
	for _, column := range q.Null {
		if v, ok := r.Value(column); !ok || !isBlank(v) {
			return false
		}
	}
	for _, column := range q.Present {
		if v, ok := r.Value(column); !ok || isBlank(v) {
			return false
		}
	}
	for column, want := range q.Equals {
		if v, ok := r.Value(column); !ok || v != want {
			return false
		}
	}
	return true
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	return false
}

// CompletionRequest is a single call to the completion service.
type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	// Temperature is sent only when set; nil leaves the service default.
	Temperature *float64
	// JSONObject asks the service to reply with a single JSON object.
	JSONObject bool
}

// Float64 returns a pointer to v for optional numeric settings.
func Float64(v float64) *float64 {
	return &v
}
