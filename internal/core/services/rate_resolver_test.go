package services_test

import (
	"testing"

	"github.com/ratefeed/converter-api/internal/apperrors"
	"github.com/ratefeed/converter-api/internal/core/domain"
	"github.com/ratefeed/converter-api/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nd builds a populated NullDecimal from its string form.
func nd(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func crossSnapshot() []domain.RateRecord {
	return []domain.RateRecord{
		{CurrencyCodeA: 840, CurrencyCodeB: 980, Date: 1716974340, RateBuy: nd("37.5"), RateSell: nd("38.0")},
		{CurrencyCodeA: 978, CurrencyCodeB: 980, Date: 1716974400, RateBuy: nd("41.0"), RateSell: nd("41.5")},
		{CurrencyCodeA: 826, CurrencyCodeB: 980, Date: 1716974340, RateCross: nd("48.2")},
	}
}

func TestResolveRate_DirectPair(t *testing.T) {
	records := crossSnapshot()

	// Direction does not matter for lookup, only for the arithmetic later.
	forward, err := services.ResolveRate(records, 840, 980, 980)
	require.NoError(t, err)
	assert.Equal(t, 840, forward.CurrencyCodeA)
	assert.True(t, forward.RateBuy.Decimal.Equal(decimal.RequireFromString("37.5")))

	reverse, err := services.ResolveRate(records, 980, 840, 980)
	require.NoError(t, err)
	assert.Equal(t, forward, reverse)
}

func TestResolveRate_FirstMatchWins(t *testing.T) {
	records := []domain.RateRecord{
		{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: nd("37.5"), RateSell: nd("38.0")},
		{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: nd("99.0"), RateSell: nd("99.0")},
	}

	rec, err := services.ResolveRate(records, 840, 980, 980)
	require.NoError(t, err)
	assert.True(t, rec.RateBuy.Decimal.Equal(decimal.RequireFromString("37.5")))
}

func TestResolveRate_SynthesizesCross(t *testing.T) {
	rec, err := services.ResolveRate(crossSnapshot(), 840, 978, 980)
	require.NoError(t, err)

	assert.Equal(t, 840, rec.CurrencyCodeA)
	assert.Equal(t, 978, rec.CurrencyCodeB)
	// Buy of the source leg over sell of the target leg.
	expected := decimal.RequireFromString("37.5").Div(decimal.RequireFromString("41.5"))
	require.True(t, rec.RateCross.Valid)
	assert.True(t, rec.RateCross.Decimal.Equal(expected), "got %s", rec.RateCross.Decimal)
	assert.False(t, rec.RateBuy.Valid)
	assert.False(t, rec.RateSell.Valid)
	// Newest leg timestamp wins.
	assert.Equal(t, int64(1716974400), rec.Date)
}

func TestResolveRate_CrossLegFallsBackToRateCross(t *testing.T) {
	// GBP only quotes a cross rate against the base; it still works as
	// either leg of a synthesized pair.
	rec, err := services.ResolveRate(crossSnapshot(), 826, 978, 980)
	require.NoError(t, err)

	expected := decimal.RequireFromString("48.2").Div(decimal.RequireFromString("41.5"))
	require.True(t, rec.RateCross.Valid)
	assert.True(t, rec.RateCross.Decimal.Equal(expected))
}

func TestResolveRate_MissingLeg(t *testing.T) {
	_, err := services.ResolveRate(crossSnapshot(), 840, 392, 980)
	assert.ErrorIs(t, err, apperrors.ErrRateNotFound)

	_, err = services.ResolveRate(crossSnapshot(), 392, 980, 980)
	assert.ErrorIs(t, err, apperrors.ErrRateNotFound)
}

func TestResolveRate_EmptySnapshot(t *testing.T) {
	_, err := services.ResolveRate(nil, 840, 980, 980)
	assert.ErrorIs(t, err, apperrors.ErrRateNotFound)
}

func TestResolveRate_ZeroDenominatorLeavesCrossUnset(t *testing.T) {
	records := []domain.RateRecord{
		{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: nd("37.5"), RateSell: nd("38.0")},
		{CurrencyCodeA: 978, CurrencyCodeB: 980, RateSell: nd("0")},
	}

	rec, err := services.ResolveRate(records, 840, 978, 980)
	require.NoError(t, err)
	assert.False(t, rec.RateCross.Valid)

	// The engine then rejects the record instead of dividing by zero.
	_, err = services.ConvertAmount(decimal.NewFromInt(100), rec, 840, 978, 980)
	assert.ErrorIs(t, err, apperrors.ErrIncompleteRateData)
}
