package registry

import (
	"context"
	"strings"

	"github.com/ratefeed/converter-api/internal/apperrors"
	"github.com/ratefeed/converter-api/internal/core/domain"
	portsrepo "github.com/ratefeed/converter-api/internal/core/ports/repositories"
)

// isoCurrencies is the embedded ISO 4217 table, ordered by symbol. It covers
// the currencies the upstream provider publishes rates for.
var isoCurrencies = []domain.Currency{
	{Symbol: "AED", NumericCode: 784, Name: "UAE Dirham"},
	{Symbol: "AUD", NumericCode: 36, Name: "Australian Dollar"},
	{Symbol: "AZN", NumericCode: 944, Name: "Azerbaijan Manat"},
	{Symbol: "BGN", NumericCode: 975, Name: "Bulgarian Lev"},
	{Symbol: "BRL", NumericCode: 986, Name: "Brazilian Real"},
	{Symbol: "CAD", NumericCode: 124, Name: "Canadian Dollar"},
	{Symbol: "CHF", NumericCode: 756, Name: "Swiss Franc"},
	{Symbol: "CNY", NumericCode: 156, Name: "Yuan Renminbi"},
	{Symbol: "CZK", NumericCode: 203, Name: "Czech Koruna"},
	{Symbol: "DKK", NumericCode: 208, Name: "Danish Krone"},
	{Symbol: "EGP", NumericCode: 818, Name: "Egyptian Pound"},
	{Symbol: "EUR", NumericCode: 978, Name: "Euro"},
	{Symbol: "GBP", NumericCode: 826, Name: "Pound Sterling"},
	{Symbol: "GEL", NumericCode: 981, Name: "Lari"},
	{Symbol: "HKD", NumericCode: 344, Name: "Hong Kong Dollar"},
	{Symbol: "HUF", NumericCode: 348, Name: "Forint"},
	{Symbol: "ILS", NumericCode: 376, Name: "New Israeli Sheqel"},
	{Symbol: "INR", NumericCode: 356, Name: "Indian Rupee"},
	{Symbol: "JPY", NumericCode: 392, Name: "Yen"},
	{Symbol: "KZT", NumericCode: 398, Name: "Tenge"},
	{Symbol: "MDL", NumericCode: 498, Name: "Moldovan Leu"},
	{Symbol: "MXN", NumericCode: 484, Name: "Mexican Peso"},
	{Symbol: "NOK", NumericCode: 578, Name: "Norwegian Krone"},
	{Symbol: "NZD", NumericCode: 554, Name: "New Zealand Dollar"},
	{Symbol: "PLN", NumericCode: 985, Name: "Zloty"},
	{Symbol: "RON", NumericCode: 946, Name: "Romanian Leu"},
	{Symbol: "RSD", NumericCode: 941, Name: "Serbian Dinar"},
	{Symbol: "SEK", NumericCode: 752, Name: "Swedish Krona"},
	{Symbol: "SGD", NumericCode: 702, Name: "Singapore Dollar"},
	{Symbol: "TRY", NumericCode: 949, Name: "Turkish Lira"},
	{Symbol: "UAH", NumericCode: 980, Name: "Hryvnia"},
	{Symbol: "USD", NumericCode: 840, Name: "US Dollar"},
	{Symbol: "VND", NumericCode: 704, Name: "Dong"},
	{Symbol: "ZAR", NumericCode: 710, Name: "Rand"},
}

// StaticRegistry serves the embedded ISO 4217 currency table. It is the
// default registry when no database is configured.
type StaticRegistry struct {
	bySymbol map[string]domain.Currency
	ordered  []domain.Currency
}

// NewStaticRegistry creates a registry over the embedded table.
func NewStaticRegistry() *StaticRegistry {
	bySymbol := make(map[string]domain.Currency, len(isoCurrencies))
	for _, c := range isoCurrencies {
		bySymbol[c.Symbol] = c
	}
	return &StaticRegistry{
		bySymbol: bySymbol,
		ordered:  isoCurrencies,
	}
}

// FindCurrencyBySymbol retrieves a currency by its symbol, case-insensitively.
func (r *StaticRegistry) FindCurrencyBySymbol(_ context.Context, symbol string) (*domain.Currency, error) {
	currency, ok := r.bySymbol[strings.ToUpper(symbol)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &currency, nil
}

// ListCurrencies retrieves all supported currencies ordered by symbol.
func (r *StaticRegistry) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	out := make([]domain.Currency, len(r.ordered))
	copy(out, r.ordered)
	return out, nil
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRegistry = (*StaticRegistry)(nil)
