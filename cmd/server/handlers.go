package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"avgprice/internal/average"
	"avgprice/internal/pricing"
	"avgprice/internal/provider"
)

type averager interface {
	Average(ctx context.Context) (float64, error)
	AverageAndCache(ctx context.Context) (float64, error)
	AverageFromRemote(ctx context.Context) (float64, error)
}

var _ averager = (*pricing.Service)(nil)

type handlers struct {
	svc   averager
	local provider.Source
	log   zerolog.Logger
}

// pricesResponse mirrors the body the remote source expects, so one instance can feed another.
type pricesResponse struct {
	Prices []provider.Price `json:"prices"`
}

type averageResponse struct {
	Source  string  `json:"source"`
	Cached  bool    `json:"cached"`
	Average float64 `json:"average"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) prices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ps, err := h.local.Read(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pricesResponse{Prices: ps})
}

func (h *handlers) average(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()
	source := q.Get("source")
	if source == "" {
		source = "local"
	}
	cached := q.Get("cache") == "true"

	var (
		avg float64
		err error
	)
	switch {
	case source == "local" && cached:
		avg, err = h.svc.AverageAndCache(r.Context())
	case source == "local":
		avg, err = h.svc.Average(r.Context())
	case source == "remote" && cached:
		writeError(w, http.StatusBadRequest, "cache=true is only supported for source=local")
		return
	case source == "remote":
		avg, err = h.svc.AverageFromRemote(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "source must be local or remote")
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, averageResponse{Source: source, Cached: cached, Average: avg})
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	h.log.Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, average.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	case provider.IsKind(err, provider.KindNetwork), provider.IsKind(err, provider.KindFormat):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
