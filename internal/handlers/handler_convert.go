package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratefeed/converter-api/internal/apperrors"
	portssvc "github.com/ratefeed/converter-api/internal/core/ports/services"
	"github.com/ratefeed/converter-api/internal/dto"
	"github.com/ratefeed/converter-api/internal/middleware"
	"github.com/shopspring/decimal"
)

// convertHandler handles HTTP requests related to currency conversion.
type convertHandler struct {
	converterService portssvc.ConverterSvcFacade
}

// newConvertHandler creates a new convertHandler.
func newConvertHandler(cs portssvc.ConverterSvcFacade) *convertHandler {
	return &convertHandler{
		converterService: cs,
	}
}

// registerConvertRoutes registers routes related to conversion.
func registerConvertRoutes(rg *gin.RouterGroup, converterService portssvc.ConverterSvcFacade) {
	h := newConvertHandler(converterService)

	rg.GET("/convert", h.convert)
	rg.DELETE("/rates/cache", h.invalidateRateCache)
}

// convert godoc
// @Summary Convert an amount between two currencies
// @Description Converts an amount from one currency to another using the latest exchange rates
// @Tags convert
// @Produce  json
// @Param   from query string true "Source currency symbol (3 letters)"
// @Param   to query string true "Target currency symbol (3 letters)"
// @Param   amount query string true "Amount to convert (positive decimal)"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 422 {object} map[string]string "Incomplete rate data"
// @Failure 502 {object} map[string]string "Upstream provider rejected the request"
// @Failure 503 {object} map[string]string "Rate provider unavailable"
// @Router /convert [get]
func (h *convertHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		logger.Warn("Invalid amount in Convert request", slog.String("amount", req.Amount))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a valid decimal number"})
		return
	}

	logger = logger.With(slog.String("from", req.From), slog.String("to", req.To))
	logger.Info("Received conversion request", slog.String("amount", amount.String()))

	result, err := h.converterService.Convert(c.Request.Context(), req.From, req.To, amount)
	if err != nil {
		h.respondConvertError(c, logger, err)
		return
	}

	logger.Info("Conversion succeeded", slog.String("result", result.Result.String()))
	c.JSON(http.StatusOK, dto.ToConvertResponse(result))
}

// respondConvertError maps service errors to HTTP status codes.
func (h *convertHandler) respondConvertError(c *gin.Context, logger *slog.Logger, err error) {
	var upstreamErr *apperrors.UpstreamError

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error in conversion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateNotFound):
		logger.Warn("No rate available for requested pair")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrIncompleteRateData):
		logger.Warn("Rate record missing required fields", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrServiceUnavailable):
		logger.Error("Rate provider unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rate provider is currently unavailable"})
	case errors.As(err, &upstreamErr):
		logger.Error("Upstream provider rejected the request", slog.Int("upstream_status", upstreamErr.StatusCode))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Rate provider rejected the request"})
	default:
		logger.Error("Failed to convert amount", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
	}
}

// invalidateRateCache godoc
// @Summary Invalidate cached exchange rates
// @Description Clears the cached rate snapshot and all cached conversion results
// @Tags convert
// @Produce  json
// @Success 204 "Cache cleared"
// @Failure 500 {object} map[string]string "Failed to clear cache"
// @Router /rates/cache [delete]
func (h *convertHandler) invalidateRateCache(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to invalidate rate cache")

	if err := h.converterService.InvalidateRateCache(c.Request.Context()); err != nil {
		logger.Error("Failed to invalidate rate cache", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear rate cache"})
		return
	}

	logger.Info("Rate cache invalidated")
	c.Status(http.StatusNoContent)
}
