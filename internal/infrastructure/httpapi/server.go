// Package httpapi exposes the health probe and an on-demand harvest over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ProfileScanner/internal/logging"
	"ProfileScanner/internal/upsert"
)

// HarvestFunc runs one harvest and returns its summary.
type HarvestFunc func(ctx context.Context) (upsert.Summary, error)

// API holds the handlers' collaborators.
type API struct {
	harvest HarvestFunc
	logger  *slog.Logger
}

// NewAPI returns handlers backed by harvest.
func NewAPI(harvest HarvestFunc, logger *slog.Logger) *API {
	if logger == nil {
		logger = logging.Discard()
	}
	return &API{harvest: harvest, logger: logger}
}

// NewRouter registers the routes.
func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /test-search", a.TestSearchHandler)

	return mux
}

type errorBody struct {
	Error string `json:"error"`
}

// TestSearchHandler runs one harvest synchronously.
func (a *API) TestSearchHandler(w http.ResponseWriter, r *http.Request) {
	if a.harvest == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "harvest not configured"})
		return
	}

	summary, err := a.harvest(r.Context())
	if err != nil {
		a.logger.Error("test search failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Serve listens on addr until ctx ends, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute, // a test search walks every query
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("http server stopped")
	return nil
}
