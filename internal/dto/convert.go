package dto

import (
	"github.com/ratefeed/converter-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the query parameters for a conversion request.
// Amount is bound as a string and parsed to decimal in the handler so that
// malformed numbers produce a validation error instead of a bind panic.
type ConvertRequest struct {
	From   string `form:"from" binding:"required,currency"`
	To     string `form:"to" binding:"required,currency"`
	Amount string `form:"amount" binding:"required"`
}

// ConvertResponse defines the structure for API responses containing a
// conversion result.
type ConvertResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Result decimal.Decimal `json:"result"`
}

// ToConvertResponse converts a domain.ConversionResult to ConvertResponse DTO
func ToConvertResponse(result *domain.ConversionResult) ConvertResponse {
	return ConvertResponse{
		From:   result.From,
		To:     result.To,
		Amount: result.Amount,
		Result: result.Result,
	}
}
