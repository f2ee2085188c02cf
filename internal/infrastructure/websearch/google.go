package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/logging"
	"ProfileScanner/internal/search"
)

const (
	// DefaultGoogleEndpoint is the Custom Search JSON API.
	DefaultGoogleEndpoint = "https://www.googleapis.com/customsearch/v1"

	googlePageSize = 10

	metaOGDescription    = "og:description"
	metaOGImage          = "og:image"
	metaProfileFirstName = "profile:first_name"
	metaProfileLastName  = "profile:last_name"
)

var repeatedSpace = regexp.MustCompile(`\s+`)

// GoogleConfig configures the Custom Search client.
type GoogleConfig struct {
	Endpoint string
	APIKey   string
	CX       string
	// RequestsPerSecond paces outgoing calls; zero disables pacing.
	RequestsPerSecond float64
	// BackfillMeta fetches the profile page when the search result carries
	// no og:description.
	BackfillMeta bool
}

// Google pulls profile results from the Custom Search JSON API.
type Google struct {
	client     *http.Client
	cfg        GoogleConfig
	limiter    *rate.Limiter
	meta       *MetaFetcher
	policyPool sync.Pool
	logger     *slog.Logger
}

var _ search.Provider = (*Google)(nil)

// NewGoogle wires an HTTP client; a nil client gets a 20s timeout.
func NewGoogle(cfg GoogleConfig, client *http.Client, logger *slog.Logger) *Google {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultGoogleEndpoint
	}
	if logger == nil {
		logger = logging.Discard()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	g := &Google{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
		policyPool: sync.Pool{
			New: func() interface{} {
				return bluemonday.StrictPolicy()
			},
		},
	}
	if cfg.BackfillMeta {
		g.meta = NewMetaFetcher(client)
	}
	return g
}

// Name identifies the provider inside the registry.
func (g *Google) Name() string {
	return "google"
}

type googleResponse struct {
	Items []googleItem `json:"items"`
}

type googleItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Pagemap struct {
		Metatags []map[string]any `json:"metatags"`
	} `json:"pagemap"`
}

// Search returns one page of results. start is zero-based.
func (g *Google) Search(ctx context.Context, query string, start int) ([]domain.SourceRecord, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pageURL, err := buildSearchURL(g.cfg.Endpoint, query, g.cfg.APIKey, g.cfg.CX, start)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("custom search returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search page: %w", err)
	}

	records := make([]domain.SourceRecord, 0, len(payload.Items))
	for _, item := range payload.Items {
		record := g.toRecord(item)
		if g.meta != nil && record.OGDescription == "" && record.Link != "" {
			g.backfill(ctx, &record)
		}
		records = append(records, record)
	}

	g.logger.Debug("search page fetched", "query", query, "start", start, "items", len(records))
	return records, nil
}

func (g *Google) toRecord(item googleItem) domain.SourceRecord {
	var tags map[string]any
	if len(item.Pagemap.Metatags) > 0 {
		tags = item.Pagemap.Metatags[0]
	}

	return domain.SourceRecord{
		Link:             strings.TrimSpace(item.Link),
		Title:            g.clean(item.Title),
		Snippet:          g.clean(item.Snippet),
		OGDescription:    metaString(tags, metaOGDescription),
		OGImage:          metaString(tags, metaOGImage),
		ProfileFirstName: metaString(tags, metaProfileFirstName),
		ProfileLastName:  metaString(tags, metaProfileLastName),
	}
}

func (g *Google) backfill(ctx context.Context, record *domain.SourceRecord) {
	tags, err := g.meta.Fetch(ctx, record.Link)
	if err != nil {
		g.logger.Warn("meta backfill failed", "link", record.Link, "error", err)
		return
	}

	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = tags[key]
		}
	}
	fill(&record.OGDescription, metaOGDescription)
	fill(&record.OGImage, metaOGImage)
	fill(&record.ProfileFirstName, metaProfileFirstName)
	fill(&record.ProfileLastName, metaProfileLastName)
}

func (g *Google) clean(raw string) string {
	policy := g.policyPool.Get().(*bluemonday.Policy)
	defer g.policyPool.Put(policy)

	text := repeatedSpace.ReplaceAllString(policy.Sanitize(raw), " ")
	return strings.TrimSpace(html.UnescapeString(text))
}

func metaString(tags map[string]any, key string) string {
	if v, ok := tags[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func buildSearchURL(endpoint, query, key, cx string, start int) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid search endpoint %s: %w", endpoint, err)
	}

	q := parsed.Query()
	q.Set("q", query)
	q.Set("key", key)
	q.Set("cx", cx)
	q.Set("num", strconv.Itoa(googlePageSize))
	q.Set("start", strconv.Itoa(start+1))
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}
