package services

import (
	"fmt"

	"github.com/ratefeed/converter-api/internal/apperrors"
	"github.com/ratefeed/converter-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ResolveRate finds or synthesizes the rate record to use for converting
// between fromCode and toCode, given a provider snapshot quoted against
// baseCode.
//
// When either side of the pair is the base currency, the snapshot is searched
// for the direct base-relative record of the other side. Otherwise a
// cross-rate record is synthesized from the two base-relative legs; if either
// leg is missing the pair is unresolvable.
func ResolveRate(records []domain.RateRecord, fromCode, toCode, baseCode int) (*domain.RateRecord, error) {
	if fromCode == baseCode || toCode == baseCode {
		foreignCode := fromCode
		if fromCode == baseCode {
			foreignCode = toCode
		}
		rec, ok := findBaseRecord(records, foreignCode, baseCode)
		if !ok {
			return nil, fmt.Errorf("%w: no rate for pair %d/%d", apperrors.ErrRateNotFound, fromCode, toCode)
		}
		return rec, nil
	}

	srcRec, ok := findBaseRecord(records, fromCode, baseCode)
	if !ok {
		return nil, fmt.Errorf("%w: no base rate for currency code %d", apperrors.ErrRateNotFound, fromCode)
	}
	tgtRec, ok := findBaseRecord(records, toCode, baseCode)
	if !ok {
		return nil, fmt.Errorf("%w: no base rate for currency code %d", apperrors.ErrRateNotFound, toCode)
	}

	return synthesizeCross(srcRec, tgtRec, fromCode, toCode), nil
}

// findBaseRecord locates the record quoting foreignCode against baseCode.
// The first match in snapshot order wins; snapshots are assumed
// provider-deduplicated.
func findBaseRecord(records []domain.RateRecord, foreignCode, baseCode int) (*domain.RateRecord, bool) {
	for i := range records {
		if records[i].CurrencyCodeA == foreignCode && records[i].CurrencyCodeB == baseCode {
			return &records[i], true
		}
	}
	return nil, false
}

// synthesizeCross derives a cross-rate record from two base-relative legs.
// The source leg contributes its buy side and the target leg its sell side.
// This spread-capturing convention follows the upstream provider's quoting
// rule; it is not a mid-rate synthesis.
func synthesizeCross(src, tgt *domain.RateRecord, fromCode, toCode int) *domain.RateRecord {
	numerator := firstValidOrOne(src.RateBuy, src.RateCross)
	denominator := firstValidOrOne(tgt.RateSell, tgt.RateCross)

	date := src.Date
	if tgt.Date > date {
		date = tgt.Date
	}

	out := &domain.RateRecord{
		CurrencyCodeA: fromCode,
		CurrencyCodeB: toCode,
		Date:          date,
	}
	// A zero denominator leaves the cross rate unset; the conversion engine
	// then reports the record as incomplete rather than dividing by zero.
	if denominator.IsPositive() {
		out.RateCross = decimal.NewNullDecimal(numerator.Div(denominator))
	}
	return out
}

// firstValidOrOne returns the first populated value, defaulting to 1.
func firstValidOrOne(candidates ...decimal.NullDecimal) decimal.Decimal {
	for _, c := range candidates {
		if c.Valid {
			return c.Decimal
		}
	}
	return decimal.NewFromInt(1)
}
