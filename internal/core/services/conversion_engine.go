package services

import (
	"fmt"

	"github.com/ratefeed/converter-api/internal/apperrors"
	"github.com/ratefeed/converter-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// resultPrecision is the number of decimal places of the final converted
// amount. This rounding is the externally observable precision contract.
const resultPrecision = 4

type rateKind string

const (
	rateKindBuy   rateKind = "buy"
	rateKindSell  rateKind = "sell"
	rateKindCross rateKind = "cross"
)

// ConvertAmount computes the converted amount from a resolved rate record,
// selecting the rate field by the pair's direction relative to the base
// currency:
//
//   - converting into the base currency multiplies by the buy rate,
//   - converting out of the base currency divides by the sell rate,
//   - a cross-currency pair multiplies by the synthesized cross rate.
func ConvertAmount(amount decimal.Decimal, rate *domain.RateRecord, fromCode, toCode, baseCode int) (decimal.Decimal, error) {
	switch {
	case toCode == baseCode:
		buy, err := requiredRate(rate, rateKindBuy)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return amount.Mul(buy).Round(resultPrecision), nil

	case fromCode == baseCode:
		sell, err := requiredRate(rate, rateKindSell)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return amount.Div(sell).Round(resultPrecision), nil

	default:
		cross, err := requiredRate(rate, rateKindCross)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return amount.Mul(cross).Round(resultPrecision), nil
	}
}

// requiredRate picks the directional rate field from a record. Buy and sell
// fall back to the cross rate when absent; the cross kind accepts only the
// cross rate. An absent or non-positive value makes the record unusable for
// the requested direction.
func requiredRate(rate *domain.RateRecord, kind rateKind) (decimal.Decimal, error) {
	var v decimal.NullDecimal
	switch kind {
	case rateKindBuy:
		v = rate.RateBuy
		if !v.Valid {
			v = rate.RateCross
		}
	case rateKindSell:
		v = rate.RateSell
		if !v.Valid {
			v = rate.RateCross
		}
	case rateKindCross:
		v = rate.RateCross
	}

	if !v.Valid || !v.Decimal.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: no usable %s rate for pair %d/%d",
			apperrors.ErrIncompleteRateData, kind, rate.CurrencyCodeA, rate.CurrencyCodeB)
	}
	return v.Decimal, nil
}
