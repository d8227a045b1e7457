package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	domrepo "HelioCast/internal/domain/repository"
	icache "HelioCast/internal/service/cache"
	"HelioCast/internal/service/metrics"
	"HelioCast/internal/service/ratelimit"
	"HelioCast/internal/usecase"
	applogger "HelioCast/pkg/logger"
)

// ForecastHandler serves the plain net/http surface with response caching
// and per-client rate limiting in front of the use cases.
type ForecastHandler struct {
	forecasts *usecase.ForecastService
	series    *usecase.SeriesUseCase
	cache     icache.BytesCache
	rl        *ratelimit.Limiter
	l         *applogger.Logger
}

func NewForecastHandler(forecasts *usecase.ForecastService, series *usecase.SeriesUseCase) *ForecastHandler {
	metrics.Register()
	return &ForecastHandler{forecasts: forecasts, series: series, rl: ratelimit.New()}
}

func (h *ForecastHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetLogger injects a structured logger.
func (h *ForecastHandler) SetLogger(l *applogger.Logger) { h.l = l }

func (h *ForecastHandler) Forecast() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "forecast"
		defer func() { metrics.ForecastLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		series := r.URL.Query().Get("series")
		if series == "" {
			series = "sunspots"
		}
		horizon := parseInt(r.URL.Query().Get("horizon"), 36)
		lookback := parseInt(r.URL.Query().Get("lookback"), 120)
		model := r.URL.Query().Get("model")
		if model == "" {
			model = "rnn"
		}
		if !h.rl.Allow(r.RemoteAddr+":forecast", 5, 2) {
			if h.l != nil {
				h.l.Warn("forecast rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := "forecast:" + series + ":" + model + ":" + strconv.Itoa(horizon) + ":" + strconv.Itoa(lookback)
		if h.cache != nil {
			if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
				if h.l != nil {
					h.l.Warn("forecast cache_get_error", applogger.Error(err))
				}
			} else if ok {
				w.Header().Set("Content-Type", "application/json")
				if h.l != nil {
					h.l.Debug("forecast cache_hit", applogger.String("key", cacheKey))
				}
				if _, err := w.Write(b); err != nil && h.l != nil {
					h.l.Warn("forecast write_error", applogger.Error(err))
				}
				return
			}
			if h.l != nil {
				h.l.Debug("forecast cache_miss", applogger.String("key", cacheKey))
			}
		}
		res, err := h.forecasts.GetForecast(r.Context(), usecase.ForecastParams{
			Series:   series,
			Horizon:  horizon,
			Lookback: lookback,
			Model:    model,
		})
		if err != nil {
			metrics.ForecastErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("forecast error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		b, err := json.Marshal(res)
		if err != nil {
			if h.l != nil {
				h.l.Error("forecast marshal_error", applogger.Error(err))
			}
			http.Error(w, "encode error", http.StatusInternalServerError)
			return
		}
		if h.cache != nil {
			if err := h.cache.SetBytes(cacheKey, b, 5*time.Minute); err != nil && h.l != nil {
				h.l.Warn("forecast cache_set_error", applogger.Error(err))
			}
		}
		if _, err := w.Write(b); err != nil && h.l != nil {
			h.l.Warn("forecast write_error", applogger.Error(err))
		}
	}
}

func (h *ForecastHandler) Series() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "series"
		defer func() { metrics.ForecastLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		series := r.URL.Query().Get("series")
		if series == "" {
			series = "sunspots"
		}
		n := parseInt(r.URL.Query().Get("n"), 1200)
		cad := domrepo.NormalizeCadence(r.URL.Query().Get("cadence"))
		if !h.rl.Allow(r.RemoteAddr+":series", 5, 2) {
			if h.l != nil {
				h.l.Warn("series rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := "series:" + series + ":" + string(cad) + ":" + strconv.Itoa(n)
		if h.cache != nil {
			if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
				if h.l != nil {
					h.l.Warn("series cache_get_error", applogger.Error(err))
				}
			} else if ok {
				w.Header().Set("Content-Type", "application/json")
				if h.l != nil {
					h.l.Debug("series cache_hit", applogger.String("key", cacheKey))
				}
				if _, err := w.Write(b); err != nil && h.l != nil {
					h.l.Warn("series write_error", applogger.Error(err))
				}
				return
			}
			if h.l != nil {
				h.l.Debug("series cache_miss", applogger.String("key", cacheKey))
			}
		}
		res, err := h.series.GetLatest(r.Context(), series, n, cad)
		if err != nil {
			metrics.ForecastErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("series error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		b, err := json.Marshal(res)
		if err != nil {
			if h.l != nil {
				h.l.Error("series marshal_error", applogger.Error(err))
			}
			http.Error(w, "encode error", http.StatusInternalServerError)
			return
		}
		if h.cache != nil {
			if err := h.cache.SetBytes(cacheKey, b, 60*time.Second); err != nil && h.l != nil {
				h.l.Warn("series cache_set_error", applogger.Error(err))
			}
		}
		if _, err := w.Write(b); err != nil && h.l != nil {
			h.l.Warn("series write_error", applogger.Error(err))
		}
	}
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
