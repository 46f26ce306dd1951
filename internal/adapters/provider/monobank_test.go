package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ratefeed/converter-api/internal/adapters/provider"
	"github.com/ratefeed/converter-api/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotJSON = `[
	{"currencyCodeA":840,"currencyCodeB":980,"date":1716974340,"rateBuy":37.5,"rateSell":38.0},
	{"currencyCodeA":826,"currencyCodeB":980,"date":1716974340,"rateCross":48.2}
]`

func TestMonobankProvider_FetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bank/currency", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(snapshotJSON))
	}))
	defer srv.Close()

	p := provider.NewMonobankProvider(srv.URL, 0)
	records, err := p.FetchRates(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 840, records[0].CurrencyCodeA)
	assert.Equal(t, 980, records[0].CurrencyCodeB)
	require.True(t, records[0].RateBuy.Valid)
	assert.True(t, records[0].RateBuy.Decimal.Equal(decimal.RequireFromString("37.5")))
	assert.False(t, records[0].RateCross.Valid)

	// Cross-only records keep buy and sell unset.
	assert.False(t, records[1].RateBuy.Valid)
	require.True(t, records[1].RateCross.Valid)
	assert.True(t, records[1].RateCross.Decimal.Equal(decimal.RequireFromString("48.2")))
}

func TestMonobankProvider_TrailingSlashBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bank/currency", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := provider.NewMonobankProvider(srv.URL+"/", 0)
	_, err := p.FetchRates(context.Background())
	require.NoError(t, err)
}

func TestMonobankProvider_NonOKStatusIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	p := provider.NewMonobankProvider(srv.URL, 0)
	records, err := p.FetchRates(context.Background())

	require.Error(t, err)
	assert.Nil(t, records)

	var upstream *apperrors.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Equal(t, "rate limited", upstream.Message)
	assert.True(t, upstream.IsClient())
}

func TestMonobankProvider_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	p := provider.NewMonobankProvider(srv.URL, 0)
	_, err := p.FetchRates(context.Background())
	require.Error(t, err)

	var upstream *apperrors.UpstreamError
	assert.False(t, errors.As(err, &upstream), "decode failures are not upstream errors")
}
