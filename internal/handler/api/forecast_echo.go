package api

import (
	"time"

	models "HelioCast/internal/domain/models"
	domrepo "HelioCast/internal/domain/repository"
	svcmetrics "HelioCast/internal/service/metrics"
	"HelioCast/internal/usecase"
	xhttp "HelioCast/pkg/http"
	xlogger "HelioCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ForecastEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type ForecastEchoHandler struct {
	logger    *xlogger.Logger
	forecasts *usecase.ForecastService
	overview  *usecase.OverviewUseCase
	series    *usecase.SeriesUseCase
	sentiment *usecase.SentimentUseCase
}

func NewForecastEchoHandler(logger *xlogger.Logger, forecasts *usecase.ForecastService, overview *usecase.OverviewUseCase, series *usecase.SeriesUseCase, sentiment *usecase.SentimentUseCase) *ForecastEchoHandler {
	svcmetrics.Register()
	return &ForecastEchoHandler{logger: logger, forecasts: forecasts, overview: overview, series: series, sentiment: sentiment}
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/forecast", h.Forecast)
	g.GET("/forecast/overview", h.Overview)
	g.GET("/series", h.Series)
	g.POST("/sentiment", h.Sentiment)
}

func (h *ForecastEchoHandler) Forecast(c echo.Context) error {
	start := time.Now()
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.forecasts.GetForecast(c.Request().Context(), usecase.ForecastParams{
		Series:   req.Series,
		Horizon:  req.Horizon,
		Lookback: req.Lookback,
		Model:    req.Model,
	})
	svcmetrics.ForecastLatency.WithLabelValues("forecast").Observe(time.Since(start).Seconds())
	if err != nil {
		svcmetrics.ForecastErrors.WithLabelValues("forecast").Inc()
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) Overview(c echo.Context) error {
	start := time.Now()
	req := &models.OverviewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.overview.GetOverview(c.Request().Context(), usecase.OverviewParams{
		Series:  req.Series,
		Horizon: req.Horizon,
		Model:   req.Model,
	})
	svcmetrics.ForecastLatency.WithLabelValues("overview").Observe(time.Since(start).Seconds())
	if err != nil {
		svcmetrics.ForecastErrors.WithLabelValues("overview").Inc()
		h.logger.Error("overview usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	cad := domrepo.NormalizeCadence(req.Cad)

	res, err := h.series.GetLatest(c.Request().Context(), req.Series, req.N, cad)
	if err != nil {
		h.logger.Error("series usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) Sentiment(c echo.Context) error {
	start := time.Now()
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.sentiment.Score(c.Request().Context(), req.Tokens)
	svcmetrics.ForecastLatency.WithLabelValues("sentiment").Observe(time.Since(start).Seconds())
	if err != nil {
		svcmetrics.ForecastErrors.WithLabelValues("sentiment").Inc()
		h.logger.Error("sentiment usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
