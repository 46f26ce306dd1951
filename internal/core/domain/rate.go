package domain

import (
	"github.com/shopspring/decimal"
)

// RateRecord represents one provider-published exchange rate between an
// ordered pair of ISO 4217 numeric currency codes. The provider's ordering is
// not symmetric: a record for pair (A, B) does not imply a record for (B, A).
//
// At least one of RateCross or the RateBuy/RateSell pair is expected to be
// populated; thin-market currencies often carry only RateCross. A record with
// no rate field populated cannot be used for conversion.
type RateRecord struct {
	CurrencyCodeA int                 `json:"currencyCodeA"` // base side of the pair
	CurrencyCodeB int                 `json:"currencyCodeB"` // quote side of the pair
	Date          int64               `json:"date"`          // unix seconds, freshness marker
	RateBuy       decimal.NullDecimal `json:"rateBuy"`
	RateSell      decimal.NullDecimal `json:"rateSell"`
	RateCross     decimal.NullDecimal `json:"rateCross"`
}

// ConversionResult is the outcome of a single currency conversion.
// Symbols are echoed uppercased; Result is rounded to 4 decimal places.
type ConversionResult struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Result decimal.Decimal `json:"result"`
}
