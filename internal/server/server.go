// Package server exposes a resource cache over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bjaus/rescache"
	"github.com/bjaus/rescache/loader"
)

// Asset is the JSON description of a cached resource.
type Asset struct {
	Key   string `json:"key"`
	Kind  string `json:"kind"`
	Bytes int    `json:"bytes"`
	Refs  int64  `json:"refs"`

	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	SampleRate    int     `json:"sample_rate,omitempty"`
	Channels      int     `json:"channels,omitempty"`
	BitsPerSample int     `json:"bits_per_sample,omitempty"`
	Seconds       float64 `json:"seconds,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Handler serves the asset API backed by cache.
type Handler struct {
	cache   *rescache.Cache
	logger  *slog.Logger
	metrics http.Handler
}

// New returns a Handler. metricsHandler may be nil, in which case /metrics
// is not routed.
func New(cache *rescache.Cache, logger *slog.Logger, metricsHandler http.Handler) *Handler {
	return &Handler{cache: cache, logger: logger, metrics: metricsHandler}
}

// Routes returns the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/stats", h.stats)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}

	r.Route("/assets", func(r chi.Router) {
		r.Delete("/", h.clear)
		r.Get("/*", h.get)
		r.Delete("/*", h.remove)
	})
	return r
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	ctx := r.Context()

	var (
		asset Asset
		err   error
	)
	switch kind := r.URL.Query().Get("kind"); kind {
	case "":
		var res rescache.Handle[rescache.Resource]
		res, err = h.cache.Get(ctx, key)
		if err == nil {
			asset = describe(key, res.Value(), res.Refs())
			res.Release()
		}
	case rescache.KindTexture.String():
		var tex rescache.Handle[*rescache.Texture]
		tex, err = rescache.GetTyped[*rescache.Texture](ctx, h.cache, key)
		if err == nil {
			asset = describe(key, tex.Value(), tex.Refs())
			tex.Release()
		}
	case rescache.KindSound.String():
		var snd rescache.Handle[*rescache.Sound]
		snd, err = rescache.GetTyped[*rescache.Sound](ctx, h.cache, key)
		if err == nil {
			asset = describe(key, snd.Value(), snd.Refs())
			snd.Release()
		}
	default:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown kind " + kind})
		return
	}

	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "asset lookup failed", "key", key, "error", err)
		}
		writeJSON(w, status, errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if !h.cache.Remove(chi.URLParam(r, "*")) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not cached"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	h.logger.InfoContext(r.Context(), "cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		rescache.Snapshot
		Entries  int     `json:"entries"`
		Capacity int     `json:"capacity"`
		HitRate  float64 `json:"hit_rate"`
	}{
		Snapshot: h.cache.Stats(),
		Entries:  h.cache.Len(),
		Capacity: h.cache.Capacity(),
		HitRate:  h.cache.Stats().HitRate(),
	})
}

func describe(key string, r rescache.Resource, refs int64) Asset {
	a := Asset{Key: key, Kind: r.Kind().String(), Refs: refs}
	switch v := r.(type) {
	case *rescache.Texture:
		a.Bytes = len(v.Data)
		a.Width = v.Width
		a.Height = v.Height
	case *rescache.Sound:
		a.Bytes = len(v.Data)
		a.SampleRate = v.SampleRate
		a.Channels = v.Channels
		a.BitsPerSample = v.BitsPerSample
		a.Seconds = v.Duration().Seconds()
	}
	return a
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, rescache.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, rescache.ErrTypeMismatch):
		return http.StatusConflict
	case errors.Is(err, loader.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loader.ErrUnsupportedKind):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, loader.ErrMalformed), errors.Is(err, loader.ErrTooLarge):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
