package api

import (
	"encoding/json"
	"errors"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	"CoinPulse/internal/repository"
	"CoinPulse/internal/usecase"
	xhttp "CoinPulse/pkg/http"
	xmiddleware "CoinPulse/pkg/http/middleware"
	xlogger "CoinPulse/pkg/logger"
	"CoinPulse/pkg/util"

	"github.com/labstack/echo/v4"
)

// internalErrMsg is the fixed message for unexpected failures; details go to
// the logs only.
const internalErrMsg = "서버 오류가 발생했습니다"

// DashboardHandler serves the coin dashboard API.
type DashboardHandler struct {
	logger    *xlogger.Logger
	dashboard *usecase.Dashboard
	ingestor  *usecase.DataIngestor
	seeder    *usecase.Seeder
	ticks     domrepo.TickStore
}

func NewDashboardHandler(
	logger *xlogger.Logger,
	dashboard *usecase.Dashboard,
	ingestor *usecase.DataIngestor,
	seeder *usecase.Seeder,
	ticks domrepo.TickStore,
) *DashboardHandler {
	return &DashboardHandler{
		logger:    logger,
		dashboard: dashboard,
		ingestor:  ingestor,
		seeder:    seeder,
		ticks:     ticks,
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/coins/:symbol", h.Coin)
	g.GET("/summary/:symbol", h.Summary)
	g.GET("/ticks/:symbol", h.Ticks)
	writeLimit := xmiddleware.RateLimit(20, 10)
	g.POST("/data", h.Ingest, writeLimit)
	g.POST("/seed", h.Seed, writeLimit)
}

func (h *DashboardHandler) Coin(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return xhttp.BadRequestResponse(c, "symbol is required")
	}

	detail, err := h.dashboard.CoinDetail(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, repository.ErrCoinNotFound) {
			return xhttp.NotFoundResponse(c, "coin not found: "+symbol)
		}
		h.logger.Error("coin detail failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, internalErrMsg)
	}
	return xhttp.SuccessResponse(c, detail)
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return xhttp.BadRequestResponse(c, "symbol is required")
	}

	summary, err := h.dashboard.Summary(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, repository.ErrSummaryNotFound) {
			return xhttp.NotFoundResponse(c, "no summary for symbol: "+symbol)
		}
		h.logger.Error("summary failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, internalErrMsg)
	}
	return xhttp.SuccessResponse(c, summary)
}

func (h *DashboardHandler) Ticks(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return xhttp.BadRequestResponse(c, "symbol is required")
	}
	req := &models.TicksRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	now := time.Now()
	from := util.ParseTimeDefault(req.From, now.Add(-time.Hour))
	to := util.ParseTimeDefault(req.To, now)

	ticks, err := h.ticks.Query(c.Request().Context(), symbol, from, to, req.Limit)
	if err != nil {
		h.logger.Error("tick query failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, internalErrMsg)
	}
	return xhttp.ListResponse(c, ticks, int64(len(ticks)))
}

func (h *DashboardHandler) Ingest(c echo.Context) error {
	req := &models.IngestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.ingestor.Ingest(c.Request().Context(), req); err != nil {
		if errors.Is(err, usecase.ErrUnknownType) {
			return xhttp.BadRequestResponse(c, err.Error())
		}
		var appErr *xhttp.AppError
		if errors.As(err, &appErr) {
			return xhttp.AppErrorResponse(c, err)
		}
		h.logger.Error("ingest failed", xlogger.String("type", req.Type), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, internalErrMsg)
	}

	h.invalidateFor(c, req)
	return xhttp.CreatedResponse(c, map[string]string{"type": req.Type})
}

// invalidateFor drops cached reads for the written symbol.
func (h *DashboardHandler) invalidateFor(c echo.Context, req *models.IngestRequest) {
	var probe struct {
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal(req.Data, &probe); err == nil && probe.Symbol != "" {
		h.dashboard.InvalidateSymbol(c.Request().Context(), probe.Symbol)
	}
}

func (h *DashboardHandler) Seed(c echo.Context) error {
	if err := h.seeder.Seed(c.Request().Context()); err != nil {
		h.logger.Error("seed failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, internalErrMsg)
	}
	return xhttp.CreatedResponse(c, map[string]string{"status": "seeded"})
}
