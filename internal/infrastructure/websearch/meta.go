package websearch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// MetaFetcher reads <meta> tags from a profile page.
type MetaFetcher struct {
	client *http.Client
}

// NewMetaFetcher wires an HTTP client; a nil client gets a 15s timeout.
func NewMetaFetcher(client *http.Client) *MetaFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &MetaFetcher{client: client}
}

// Fetch returns every meta tag keyed by its property (or name) attribute.
// The first occurrence of a key wins.
func (m *MetaFetcher) Fetch(ctx context.Context, pageURL string) (map[string]string, error) {
	doc, err := m.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return extractMeta(doc), nil
}

func (m *MetaFetcher) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ProfileScanner/1.0")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func extractMeta(doc *goquery.Document) map[string]string {
	tags := map[string]string{}
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		key, ok := sel.Attr("property")
		if !ok || key == "" {
			key, ok = sel.Attr("name")
		}
		if !ok || key == "" {
			return
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if _, seen := tags[key]; seen {
			return
		}
		content, _ := sel.Attr("content")
		tags[key] = strings.TrimSpace(content)
	})
	return tags
}
