package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	veeamclient "github.com/GregMSThompson/backup-dashboard/internal/client/veeam"
	"github.com/GregMSThompson/backup-dashboard/internal/errs"
	"github.com/GregMSThompson/backup-dashboard/pkg/logger"
)

type relayClient interface {
	Configured() bool
	Do(ctx context.Context, req veeamclient.Request) (*veeamclient.Response, error)
}

type relayHandlers struct {
	Relay relayClient
}

func NewRelayHandlers(deps *Deps) *relayHandlers {
	return &relayHandlers{Relay: deps.Relay}
}

func (h *relayHandlers) RelayRoutes() chi.Router {
	r := chi.NewRouter()
	r.HandleFunc("/*", h.Forward)
	return r
}

const repositoriesPath = "backupInfrastructure/repositories"

type relayError struct {
	Error string `json:"error"`
}

// Forward passes the request through to the backup server's /api/v1 and
// writes the upstream status with a body that is always JSON.
func (h *relayHandlers) Forward(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if !h.Relay.Configured() {
		log.Error("relay called without a backup API URL")
		writeRaw(w, http.StatusInternalServerError, mustJSON(relayError{Error: "Server configuration error: Missing VEEAM_API_URL"}))
		return
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		writeRaw(w, http.StatusUnauthorized, mustJSON(relayError{Error: "Authorization header required"}))
		return
	}

	upstreamPath, err := veeamclient.CleanPath(chi.URLParam(r, "*"))
	if err != nil {
		log.Warn("relay path rejected", "path", chi.URLParam(r, "*"))
		writeRaw(w, http.StatusBadRequest, mustJSON(relayError{Error: "Invalid API path"}))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeRaw(w, http.StatusBadRequest, mustJSON(relayError{Error: err.Error()}))
		return
	}

	resp, err := h.Relay.Do(r.Context(), veeamclient.Request{
		Method:        r.Method,
		Path:          upstreamPath,
		RawQuery:      r.URL.RawQuery,
		Authorization: auth,
		Body:          body,
	})
	if err != nil {
		var ext *errs.ExternalServiceError
		if errors.As(err, &ext) {
			log.Warn("relay unavailable", "error", err)
			writeRaw(w, http.StatusServiceUnavailable, mustJSON(relayError{Error: ext.Message}))
			return
		}
		log.Error("relay request failed", "error", err)
		writeRaw(w, http.StatusInternalServerError, mustJSON(relayError{Error: err.Error()}))
		return
	}

	if resp.Status == http.StatusNotFound && r.Method == http.MethodGet && upstreamPath == repositoriesPath {
		// Servers without the repositories endpoint list nothing.
		writeRaw(w, http.StatusOK, []byte(`{"data":[]}`))
		return
	}
	if resp.Status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeRaw(w, resp.Status, NormalizeBody(resp.Body))
}

// NormalizeBody turns an upstream body into JSON: empty becomes {}, valid
// JSON passes through and anything else is wrapped as {"error": text}.
func NormalizeBody(body []byte) []byte {
	if len(body) == 0 {
		return []byte("{}")
	}
	if json.Valid(body) {
		return body
	}
	return mustJSON(relayError{Error: string(body)})
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"error":"internal error"}`)
	}
	return b
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
