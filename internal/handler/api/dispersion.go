package api

import (
	"errors"

	"CoinPulse/internal/repository"
	"CoinPulse/internal/usecase"
	xhttp "CoinPulse/pkg/http"
	xlogger "CoinPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DispersionHandler serves cross-exchange dispersion signals.
type DispersionHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.DispersionAnalyzer
}

func NewDispersionHandler(logger *xlogger.Logger, analyzer *usecase.DispersionAnalyzer) *DispersionHandler {
	return &DispersionHandler{logger: logger, analyzer: analyzer}
}

func (h *DispersionHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dispersion", h.Market)
	g.GET("/dispersion/:symbol", h.Symbol)
}

func (h *DispersionHandler) Market(c echo.Context) error {
	summary, err := h.analyzer.MarketOverview(c.Request().Context())
	if err != nil {
		h.logger.Error("dispersion overview failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, internalErrMsg)
	}
	return xhttp.SuccessResponse(c, summary)
}

func (h *DispersionHandler) Symbol(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return xhttp.BadRequestResponse(c, "symbol is required")
	}

	snap, err := h.analyzer.Latest(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			return xhttp.NotFoundResponse(c, "no dispersion data for symbol: "+symbol)
		}
		h.logger.Error("dispersion lookup failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, internalErrMsg)
	}
	return xhttp.SuccessResponse(c, snap)
}
