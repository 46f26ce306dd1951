package repositories

import (
	"context"

	"github.com/ratefeed/converter-api/internal/core/domain"
)

// CurrencyRegistry is the currency-code lookup table mapping alphabetic
// symbols to ISO 4217 numeric codes. Lookups are case-insensitive; callers
// pass symbols already normalized to uppercase.
type CurrencyRegistry interface {
	// FindCurrencyBySymbol retrieves a currency by its 3-letter symbol.
	// Returns apperrors.ErrNotFound when the symbol is not registered.
	FindCurrencyBySymbol(ctx context.Context, symbol string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies in a stable order.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
