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
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:symbol", h.getCurrencyBySymbol)
	}
}

// listCurrencies godoc
// @Summary List all supported currencies
// @Description Retrieves a list of all currencies the converter supports
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 500 {object} map[string]string "Failed to list currencies"
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to list currencies")

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list currencies from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currencies"})
		return
	}

	logger.Info("Currencies listed successfully", slog.Int("count", len(currencies)))
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getCurrencyBySymbol godoc
// @Summary Get a currency by symbol
// @Description Retrieves details for a specific currency by its 3-letter symbol
// @Tags currencies
// @Produce  json
// @Param   symbol path string true "Currency Symbol (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid symbol"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 500 {object} map[string]string "Failed to retrieve currency"
// @Router /currencies/{symbol} [get]
func (h *currencyHandler) getCurrencyBySymbol(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	symbol := c.Param("symbol")

	if len(symbol) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency symbol must be 3 letters"})
		return
	}

	logger = logger.With(slog.String("symbol", symbol))
	logger.Info("Received request to get currency by symbol")

	currency, err := h.currencyService.GetCurrencyBySymbol(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Currency not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else {
			logger.Error("Failed to get currency from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve currency"})
		}
		return
	}

	logger.Info("Currency retrieved successfully")
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}
