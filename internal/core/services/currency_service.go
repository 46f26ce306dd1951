package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ratefeed/converter-api/internal/core/domain"
	portsrepo "github.com/ratefeed/converter-api/internal/core/ports/repositories"
)

// CurrencyService provides read access to the supported-currency table.
type CurrencyService struct {
	registry portsrepo.CurrencyRegistry
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(registry portsrepo.CurrencyRegistry) *CurrencyService {
	return &CurrencyService{registry: registry}
}

// GetCurrencyBySymbol retrieves a currency by its symbol, case-insensitively.
func (s *CurrencyService) GetCurrencyBySymbol(ctx context.Context, symbol string) (*domain.Currency, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	currency, err := s.registry.FindCurrencyBySymbol(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by symbol in service: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves all supported currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.registry.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// ListSupportedSymbols retrieves the supported currency symbols in registry
// order.
func (s *CurrencyService) ListSupportedSymbols(ctx context.Context) ([]string, error) {
	currencies, err := s.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, len(currencies))
	for i, c := range currencies {
		symbols[i] = c.Symbol
	}
	return symbols, nil
}
