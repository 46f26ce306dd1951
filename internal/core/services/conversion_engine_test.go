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

func TestConvertAmount_ToBaseUsesBuyRate(t *testing.T) {
	rate := &domain.RateRecord{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: nd("37.5"), RateSell: nd("38.0")}

	got, err := services.ConvertAmount(decimal.NewFromInt(100), rate, 840, 980, 980)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("3750.0000")), "got %s", got)
}

func TestConvertAmount_FromBaseDividesBySellRate(t *testing.T) {
	rate := &domain.RateRecord{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: nd("37.5"), RateSell: nd("38.0")}

	got, err := services.ConvertAmount(decimal.NewFromInt(3800), rate, 980, 840, 980)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("100.0000")), "got %s", got)
}

func TestConvertAmount_CrossPairMultipliesByCrossRate(t *testing.T) {
	cross := decimal.RequireFromString("37.5").Div(decimal.RequireFromString("41.5"))
	rate := &domain.RateRecord{CurrencyCodeA: 840, CurrencyCodeB: 978, RateCross: decimal.NewNullDecimal(cross)}

	got, err := services.ConvertAmount(decimal.NewFromInt(100), rate, 840, 978, 980)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("90.3614")), "got %s", got)
}

func TestConvertAmount_RoundsToFourPlaces(t *testing.T) {
	rate := &domain.RateRecord{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: nd("37.5"), RateSell: nd("38.0")}

	got, err := services.ConvertAmount(decimal.RequireFromString("0.123456"), rate, 840, 980, 980)
	require.NoError(t, err)
	// 0.123456 * 37.5 = 4.6296
	assert.Equal(t, "4.6296", got.String())
}

func TestConvertAmount_BuyFallsBackToCross(t *testing.T) {
	rate := &domain.RateRecord{CurrencyCodeA: 826, CurrencyCodeB: 980, RateCross: nd("48.2")}

	toBase, err := services.ConvertAmount(decimal.NewFromInt(10), rate, 826, 980, 980)
	require.NoError(t, err)
	assert.True(t, toBase.Equal(decimal.RequireFromString("482.0000")), "got %s", toBase)

	fromBase, err := services.ConvertAmount(decimal.NewFromInt(482), rate, 980, 826, 980)
	require.NoError(t, err)
	assert.True(t, fromBase.Equal(decimal.RequireFromString("10.0000")), "got %s", fromBase)
}

func TestConvertAmount_MissingRateField(t *testing.T) {
	tests := []struct {
		name     string
		rate     *domain.RateRecord
		from, to int
	}{
		{"no buy or cross for to-base", &domain.RateRecord{RateSell: nd("38.0")}, 840, 980},
		{"no sell or cross for from-base", &domain.RateRecord{RateBuy: nd("37.5")}, 980, 840},
		{"no cross for cross pair", &domain.RateRecord{RateBuy: nd("37.5"), RateSell: nd("38.0")}, 840, 978},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.ConvertAmount(decimal.NewFromInt(100), tt.rate, tt.from, tt.to, 980)
			assert.ErrorIs(t, err, apperrors.ErrIncompleteRateData)
		})
	}
}

func TestConvertAmount_NonPositiveRateRejected(t *testing.T) {
	rate := &domain.RateRecord{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: nd("0"), RateSell: nd("-1")}

	_, err := services.ConvertAmount(decimal.NewFromInt(100), rate, 840, 980, 980)
	assert.ErrorIs(t, err, apperrors.ErrIncompleteRateData)

	_, err = services.ConvertAmount(decimal.NewFromInt(100), rate, 980, 840, 980)
	assert.ErrorIs(t, err, apperrors.ErrIncompleteRateData)
}
