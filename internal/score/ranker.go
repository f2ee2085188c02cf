// Package score rates unscored profiles in one batched completion call and
// normalises the weighted result against the scored population.
package score

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/infrastructure/llm"
	"ProfileScanner/internal/logging"
	"ProfileScanner/internal/ports"
)

// ErrUnparseableReply is returned when the reply is not a JSON array.
var ErrUnparseableReply = errors.New("ranking reply is not a JSON array")

// Category keys used in the scoring reply.
const (
	CategoryEntrepreneurial = "previous_entrepreneurial_success"
	CategoryEducation       = "educational_background"
	CategoryWork            = "work_experience"
)

// DefaultDescriptionLimit caps each description sent for scoring.
const DefaultDescriptionLimit = 1250

// Category is one weighted scoring dimension.
type Category struct {
	Key    string
	Weight float64
}

// DefaultCategories lists the scoring dimensions in reporting order.
func DefaultCategories() []Category {
	return []Category{
		{Key: CategoryEntrepreneurial, Weight: 0.4},
		{Key: CategoryEducation, Weight: 0.3},
		{Key: CategoryWork, Weight: 0.3},
	}
}

// Store is the subset of the record store used by the ranker.
type Store interface {
	FindProcessed(ctx context.Context, q domain.Query) ([]domain.ProcessedRecord, error)
	PatchProcessed(ctx context.Context, link string, patch domain.Patch) error
	RawScores(ctx context.Context) ([]float64, error)
}

// Config defines the collaborators and limits of a Ranker.
type Config struct {
	Store  Store
	Client ports.CompletionClient

	Categories       []Category
	Limit            int
	Region           string
	Country          string
	DescriptionLimit int

	Model       string
	MaxTokens   int
	Temperature *float64

	Logger *slog.Logger
}

func (cfg *Config) validate() error {
	var err error

	if cfg.Store == nil {
		err = multierror.Append(err, fmt.Errorf("record store not provided"))
	}
	if cfg.Client == nil {
		err = multierror.Append(err, fmt.Errorf("completion client not provided"))
	}
	if cfg.Limit <= 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for limit, must be > 0"))
	}
	for _, cat := range cfg.Categories {
		if cat.Key == "" || cat.Weight < 0 {
			err = multierror.Append(err, fmt.Errorf("invalid category %+v", cat))
		}
	}

	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}
	if cfg.DescriptionLimit <= 0 {
		cfg.DescriptionLimit = DefaultDescriptionLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	return err
}

// Report summarises one ranking batch.
type Report struct {
	Selected  int   `json:"selected"`
	Scored    int   `json:"scored"`
	Malformed int `json:"malformed"`
}

func (r Report) String() string {
	return fmt.Sprintf("ranking: %d selected, %d scored, %d malformed",
		r.Selected, r.Scored, r.Malformed)
}

// Ranker scores one batch of profiles per Run.
type Ranker struct {
	cfg Config
}

// NewRanker validates cfg and returns a Ranker.
func NewRanker(cfg Config) (*Ranker, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ranker: config validation failed: %w", err)
	}
	return &Ranker{cfg: cfg}, nil
}

type profile struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type result struct {
	ID      string             `json:"id"`
	Scores  map[string]float64 `json:"scores"`
	Reasons map[string]string  `json:"reasons"`
}

// Run selects up to Limit unscored records, scores them and writes
// scoring_reason, raw_total_score and total_score.
func (r *Ranker) Run(ctx context.Context) (Report, error) {
	var report Report

	records, err := r.cfg.Store.FindProcessed(ctx, r.selection())
	if err != nil {
		return report, fmt.Errorf("select unscored records: %w", err)
	}
	report.Selected = len(records)
	if len(records) == 0 {
		r.cfg.Logger.Info("no unscored profiles found")
		return report, nil
	}

	batch := make([]profile, 0, len(records))
	selected := make(map[string]struct{}, len(records))
	for _, rec := range records {
		batch = append(batch, profile{ID: rec.Link, Description: Truncate(rec.OGDescription, r.cfg.DescriptionLimit)})
		selected[rec.Link] = struct{}{}
	}

	prompt, err := r.prompt(batch)
	if err != nil {
		return report, err
	}

	reply, err := r.cfg.Client.Complete(ctx, domain.CompletionRequest{
		Prompt:      prompt,
		Model:       r.cfg.Model,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return report, fmt.Errorf("score batch: %w", err)
	}

	results, malformed, err := parseResults(reply, selected)
	if err != nil {
		return report, err
	}
	report.Malformed = malformed

	existing, err := r.cfg.Store.RawScores(ctx)
	if err != nil {
		return report, fmt.Errorf("load raw scores: %w", err)
	}

	raws := make([]float64, len(results))
	population := append([]float64(nil), existing...)
	for i, res := range results {
		raws[i] = RawScore(res.Scores, r.cfg.Categories)
		population = append(population, raws[i])
	}

	for i, res := range results {
		patch := domain.Patch{
			domain.ColumnScoringReason: Reason(res.Scores, res.Reasons, r.cfg.Categories),
			domain.ColumnRawTotalScore: raws[i],
			domain.ColumnTotalScore:    Percentile(raws[i], population),
		}
		if err := r.cfg.Store.PatchProcessed(ctx, res.ID, patch); err != nil {
			r.cfg.Logger.Error("score update failed", "link", res.ID, "error", err)
			return report, fmt.Errorf("update score for %s: %w", res.ID, err)
		}
		report.Scored++
	}

	r.cfg.Logger.Info("ranking batch finished",
		"selected", report.Selected,
		"scored", report.Scored,
		"malformed", report.Malformed,
	)
	return report, nil
}

func (r *Ranker) selection() domain.Query {
	q := domain.Query{Null: []string{domain.ColumnTotalScore}, Limit: r.cfg.Limit}
	if r.cfg.Region != "" || r.cfg.Country != "" {
		q.Equals = map[string]any{}
		if r.cfg.Region != "" {
			q.Equals[domain.ColumnRegion] = r.cfg.Region
		}
		if r.cfg.Country != "" {
			q.Equals[domain.ColumnCountry] = r.cfg.Country
		}
	}
	return q
}

func (r *Ranker) prompt(batch []profile) (string, error) {
	encoded, err := json.Marshal(batch)
	if err != nil {
		return "", fmt.Errorf("marshal profiles: %w", err)
	}

	scores := make([]string, 0, len(r.cfg.Categories))
	reasons := make([]string, 0, len(r.cfg.Categories))
	for _, cat := range r.cfg.Categories {
		scores = append(scores, fmt.Sprintf("      %q: 0", cat.Key))
		reasons = append(reasons, fmt.Sprintf("      %q: \"\"", cat.Key))
	}

	return fmt.Sprintf(`Analyze the following LinkedIn profiles and score likelihood of startup success (0-100) in the categories:
1. Previous Entrepreneurial Success (co-founder of a startup, exits, acquisitions, sold companies)
2. Elite Educational Background (e.g. Stanford, Harvard or other elite universities, overindex on STEM degrees, applied science universities score lower)
3. Previous high profile job (e.g. Goldman Sachs, McKinsey, BCG, Palantir, BigTech; if no high profile job, score lower, don't consider stealth mode jobs)

Provide brief reasons for scores. Use the profile id unchanged. Format your response as a valid JSON array of objects:

[
  {
    "id": "profile_id",
    "scores": {
%s
    },
    "reasons": {
%s
    }
  }
]

Profiles to evaluate:
%s
`, strings.Join(scores, ",\n"), strings.Join(reasons, ",\n"), encoded), nil
}

// parseResults decodes the reply array. Elements without id, scores or
// reasons, or naming a profile outside the batch, are counted as malformed.
func parseResults(reply string, selected map[string]struct{}) ([]result, int, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(llm.StripCodeFences(reply)), &elements); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnparseableReply, err)
	}

	var (
		out       []result
		malformed int
		seen      = map[string]struct{}{}
	)
	for _, raw := range elements {
		var res result
		if err := json.Unmarshal(raw, &res); err != nil || res.ID == "" || res.Scores == nil || res.Reasons == nil {
			malformed++
			continue
		}
		if _, ok := selected[res.ID]; !ok {
			malformed++
			continue
		}
		if _, dup := seen[res.ID]; dup {
			continue
		}
		seen[res.ID] = struct{}{}
		out = append(out, res)
	}
	return out, malformed, nil
}

// RawScore is the weighted sum of category scores rounded to two decimals.
// Missing categories count as zero.
func RawScore(scores map[string]float64, categories []Category) float64 {
	var total float64
	for _, cat := range categories {
		total += scores[cat.Key] * cat.Weight
	}
	return math.Round(total*100) / 100
}

// Percentile is the share of population at or below raw, scaled to 0..100.
func Percentile(raw float64, population []float64) float64 {
	if len(population) == 0 {
		return 0
	}
	count := 0
	for _, s := range population {
		if s <= raw {
			count++
		}
	}
	return float64(count) / float64(len(population)) * 100
}

// Reason renders one line per scored category:
// "<category with spaces>: <score>/100 - <reason>".
func Reason(scores map[string]float64, reasons map[string]string, categories []Category) string {
	lines := make([]string, 0, len(categories))
	for _, cat := range categories {
		score, ok := scores[cat.Key]
		if !ok {
			continue
		}
		reason := strings.TrimSpace(reasons[cat.Key])
		if reason == "" {
			reason = "No reason provided"
		}
		lines = append(lines, fmt.Sprintf("%s: %s/100 - %s",
			strings.ReplaceAll(cat.Key, "_", " "),
			strconv.FormatFloat(score, 'f', -1, 64),
			reason,
		))
	}
	return strings.Join(lines, "\n")
}

// Truncate shortens s to limit runes and appends "...".
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
