package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestBuildSearchURL(t *testing.T) {
	t.Parallel()

	u, err := buildSearchURL(DefaultGoogleEndpoint, "site:linkedin.com/in Stealth Berlin", "k", "cx1", 20)
	if err != nil {
		t.Fatalf("buildSearchURL returned error: %v", err)
	}

	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatalf("parse result: %v", err)
	}
	if parsed.Host != "www.googleapis.com" {
		t.Fatalf("unexpected host: %s", parsed.Host)
	}

	q := parsed.Query()
	if q.Get("start") != "21" {
		t.Fatalf("expected start=21, got %s", q.Get("start"))
	}
	if q.Get("num") != "10" {
		t.Fatalf("expected num=10, got %s", q.Get("num"))
	}
	if q.Get("q") != "site:linkedin.com/in Stealth Berlin" || q.Get("cx") != "cx1" || q.Get("key") != "k" {
		t.Fatalf("unexpected query: %v", q)
	}
}

func TestGoogleSearchMapsItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") != "1" {
			http.Error(w, "bad start", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
		  "items": [
		    {
		      "title": "Jane Doe - Founder | <b>Stealth</b>",
		      "link": "https://linkedin.com/in/jane",
		      "snippet": "Berlin &amp; Munich",
		      "pagemap": {"metatags": [{
		        "og:description": "Ex-McKinsey. Sehen Sie sich das Profil an",
		        "og:image": "https://img/jane.png",
		        "profile:first_name": "Jane",
		        "profile:last_name": "Doe"
		      }]}
		    },
		    {"title": "No meta", "link": "https://linkedin.com/in/bare"}
		  ]
		}`))
	}))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{Endpoint: srv.URL, APIKey: "k", CX: "cx"}, srv.Client(), nil)
	records, err := g.Search(context.Background(), "founder", 0)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	jane := records[0]
	if jane.Title != "Jane Doe - Founder | Stealth" {
		t.Fatalf("unexpected title: %q", jane.Title)
	}
	if jane.Snippet != "Berlin & Munich" {
		t.Fatalf("unexpected snippet: %q", jane.Snippet)
	}
	if jane.OGDescription != "Ex-McKinsey. Sehen Sie sich das Profil an" || jane.OGImage != "https://img/jane.png" {
		t.Fatalf("unexpected og fields: %+v", jane)
	}
	if jane.ProfileFirstName != "Jane" || jane.ProfileLastName != "Doe" {
		t.Fatalf("unexpected names: %+v", jane)
	}

	bare := records[1]
	if bare.OGDescription != "" || bare.ProfileFirstName != "" {
		t.Fatalf("missing metadata must map to empty strings: %+v", bare)
	}
}

func TestGoogleSearchReportsHTTPErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{Endpoint: srv.URL}, srv.Client(), nil)
	_, err := g.Search(context.Background(), "founder", 0)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected 429 error, got %v", err)
	}
}

func TestGoogleSearchBackfillsMeta(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"title":"Jane - CTO","link":"` + srv.URL + `/in/jane"}]}`))
	})
	mux.HandleFunc("/in/jane", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
		  <meta property="og:description" content="Builder of things">
		  <meta property="og:image" content="https://img/jane.png">
		  <meta name="profile:first_name" content="Jane">
		</head><body></body></html>`))
	})

	g := NewGoogle(GoogleConfig{Endpoint: srv.URL + "/search", BackfillMeta: true}, srv.Client(), nil)
	records, err := g.Search(context.Background(), "cto", 0)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].OGDescription != "Builder of things" || records[0].ProfileFirstName != "Jane" {
		t.Fatalf("backfill not applied: %+v", records[0])
	}
}

func TestGoogleSearchIgnoresBackfillFailures(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"title":"Jane - CTO","link":"` + srv.URL + `/gone"}]}`))
	})

	g := NewGoogle(GoogleConfig{Endpoint: srv.URL + "/search", BackfillMeta: true}, srv.Client(), nil)
	records, err := g.Search(context.Background(), "cto", 0)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if len(records) != 1 || records[0].OGDescription != "" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestExtractMetaFirstKeyWins(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><head>
	  <meta property="OG:Description" content=" first ">
	  <meta property="og:description" content="second">
	  <meta charset="utf-8">
	</head></html>`))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	tags := extractMeta(doc)
	if tags["og:description"] != "first" {
		t.Fatalf("unexpected description: %q", tags["og:description"])
	}
	if len(tags) != 1 {
		t.Fatalf("unexpected tags: %v", tags)
	}
}
