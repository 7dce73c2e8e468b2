package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/growwgate/internal/domain/dto"
	"github.com/guttosm/growwgate/internal/domain/errs"
	"github.com/guttosm/growwgate/internal/domain/models"
	"github.com/guttosm/growwgate/internal/middleware"
	"github.com/guttosm/growwgate/internal/service"
)

// MarketHandler serves the market data endpoints.
//
// Responsibilities:
//   - Decode and validate request bodies
//   - Delegate to the market data service
//   - Map service errors to HTTP status codes (validation → 400, everything else → 500)
type MarketHandler struct {
	svc service.MarketDataService
}

// NewMarketHandler constructs a MarketHandler.
func NewMarketHandler(svc service.MarketDataService) *MarketHandler {
	return &MarketHandler{svc: svc}
}

// GetLTP godoc
// @Summary      Last traded price
// @Description  Fetches the last traded price for each symbol on the NSE cash segment
// @Tags         market
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SymbolsRequest   true  "Symbols"
// @Success      200      {object}  dto.QuotesResponse   "Per-symbol upstream payload"
// @Failure      400      {object}  dto.ErrorResponse    "Empty or blank symbols"
// @Failure      500      {object}  dto.ErrorResponse    "Upstream failure or client not initialized"
// @Router       /get-ltp [post]
func (h *MarketHandler) GetLTP(c *gin.Context) {
	var req dto.SymbolsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	data, err := h.svc.FetchLTP(c.Request.Context(), req.Symbols)
	if err != nil {
		middleware.AbortWithError(c, errs.HTTPStatus(err), "Error fetching LTP data", err)
		return
	}
	c.JSON(http.StatusOK, dto.QuotesResponse{Data: data})
}

// GetOHLC godoc
// @Summary      OHLC quotes
// @Description  Fetches open, high, low and close for each symbol on the NSE cash segment
// @Tags         market
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SymbolsRequest   true  "Symbols"
// @Success      200      {object}  dto.QuotesResponse   "Per-symbol upstream payload"
// @Failure      400      {object}  dto.ErrorResponse    "Empty or blank symbols"
// @Failure      500      {object}  dto.ErrorResponse    "Upstream failure or client not initialized"
// @Router       /get-ohlc [post]
func (h *MarketHandler) GetOHLC(c *gin.Context) {
	var req dto.SymbolsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	data, err := h.svc.FetchOHLC(c.Request.Context(), req.Symbols)
	if err != nil {
		middleware.AbortWithError(c, errs.HTTPStatus(err), "Error fetching OHLC data", err)
		return
	}
	c.JSON(http.StatusOK, dto.QuotesResponse{Data: data})
}

// GetHistorical godoc
// @Summary      Historical candles
// @Description  Fetches candles for a symbol and time range; every candle is [epoch_seconds, open, high, low, close, volume]
// @Tags         market
// @Accept       json
// @Produce      json
// @Param        request  body      dto.HistoricalRequest   true  "Symbol and range"
// @Success      200      {object}  dto.HistoricalResponse
// @Failure      400      {object}  dto.ErrorResponse       "Missing symbol, start_time or end_time"
// @Failure      500      {object}  dto.ErrorResponse       "Upstream failure or client not initialized"
// @Router       /get-historical-data [post]
func (h *MarketHandler) GetHistorical(c *gin.Context) {
	var req dto.HistoricalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	q := models.HistoricalQuery{
		Symbol:    req.Symbol,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Exchange:  req.Exchange,
	}
	if req.Interval != nil {
		q.IntervalMinutes = *req.Interval
	}

	res, err := h.svc.FetchHistorical(c.Request.Context(), q)
	if err != nil {
		middleware.AbortWithError(c, errs.HTTPStatus(err), "Error fetching historical data", err)
		return
	}
	c.JSON(http.StatusOK, dto.HistoricalResponse{
		Candles:          res.Candles,
		StartTime:        res.StartTime,
		EndTime:          res.EndTime,
		IntervalInMinute: res.IntervalMinutes,
	})
}
