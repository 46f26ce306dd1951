package services

import (
	"context"

	"github.com/ratefeed/converter-api/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for currency data.
type CurrencyReaderSvc interface {
	// GetCurrencyBySymbol retrieves a specific currency by its symbol.
	GetCurrencyBySymbol(ctx context.Context, symbol string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// ListSupportedSymbols retrieves the supported currency symbols in a
	// stable order.
	ListSupportedSymbols(ctx context.Context) ([]string, error)
}

// CurrencySvcFacade combines all currency-related service interfaces.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}
