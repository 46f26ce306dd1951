package provider_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ratefeed/converter-api/internal/adapters/provider"
	"github.com/ratefeed/converter-api/internal/apperrors"
	"github.com/ratefeed/converter-api/internal/core/domain"
	"github.com/ratefeed/converter-api/pkg/breaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns canned responses and counts calls.
type stubProvider struct {
	calls   int
	records []domain.RateRecord
	errs    []error // consumed per call; the last entry repeats
}

func (s *stubProvider) FetchRates(ctx context.Context) ([]domain.RateRecord, error) {
	idx := s.calls
	s.calls++
	if len(s.errs) == 0 {
		return s.records, nil
	}
	if idx >= len(s.errs) {
		idx = len(s.errs) - 1
	}
	if s.errs[idx] != nil {
		return nil, s.errs[idx]
	}
	return s.records, nil
}

func newTestBreaker(now *time.Time) *breaker.Breaker {
	return breaker.NewWithClock(3, time.Minute, func() time.Time { return *now })
}

func TestResilientProvider_PassesThroughSuccess(t *testing.T) {
	now := time.Now()
	inner := &stubProvider{records: []domain.RateRecord{{CurrencyCodeA: 840, CurrencyCodeB: 980}}}
	p := provider.NewResilientProvider(inner, newTestBreaker(&now), nil, 3, time.Millisecond)

	records, err := p.FetchRates(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, inner.calls)
}

func TestResilientProvider_RetriesTransientErrors(t *testing.T) {
	now := time.Now()
	inner := &stubProvider{
		records: []domain.RateRecord{{CurrencyCodeA: 840, CurrencyCodeB: 980}},
		errs:    []error{errors.New("connection reset"), errors.New("connection reset"), nil},
	}
	p := provider.NewResilientProvider(inner, newTestBreaker(&now), nil, 3, time.Millisecond)

	records, err := p.FetchRates(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 3, inner.calls)
}

func TestResilientProvider_ExhaustedRetriesEscalate(t *testing.T) {
	now := time.Now()
	inner := &stubProvider{errs: []error{errors.New("connection reset")}}
	p := provider.NewResilientProvider(inner, newTestBreaker(&now), nil, 3, time.Millisecond)

	records, err := p.FetchRates(context.Background())

	require.Error(t, err)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	assert.Equal(t, 3, inner.calls)
}

func TestResilientProvider_ClientErrorAbortsImmediately(t *testing.T) {
	now := time.Now()
	inner := &stubProvider{errs: []error{&apperrors.UpstreamError{StatusCode: 404, Message: "not found"}}}
	p := provider.NewResilientProvider(inner, newTestBreaker(&now), nil, 3, time.Millisecond)

	_, err := p.FetchRates(context.Background())

	require.Error(t, err)
	var upstream *apperrors.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, 404, upstream.StatusCode)
	assert.NotErrorIs(t, err, apperrors.ErrServiceUnavailable)
	assert.Equal(t, 1, inner.calls, "client errors must not be retried")
}

func TestResilientProvider_ServerErrorsAreRetried(t *testing.T) {
	now := time.Now()
	inner := &stubProvider{
		records: []domain.RateRecord{{CurrencyCodeA: 840, CurrencyCodeB: 980}},
		errs:    []error{&apperrors.UpstreamError{StatusCode: 503}, nil},
	}
	p := provider.NewResilientProvider(inner, newTestBreaker(&now), nil, 3, time.Millisecond)

	records, err := p.FetchRates(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, inner.calls)
}

func TestResilientProvider_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	now := time.Now()
	inner := &stubProvider{errs: []error{errors.New("connection reset")}}
	p := provider.NewResilientProvider(inner, newTestBreaker(&now), nil, 1, time.Millisecond)

	// Threshold is 3 outer failures.
	for i := 0; i < 3; i++ {
		_, err := p.FetchRates(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, breaker.ErrOpen)
	}
	assert.Equal(t, 3, inner.calls)

	// The next call fast-fails without touching the transport.
	_, err := p.FetchRates(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	assert.Equal(t, 3, inner.calls)
}

func TestResilientProvider_BreakerRecoversAfterResetTimeout(t *testing.T) {
	now := time.Now()
	inner := &stubProvider{
		records: []domain.RateRecord{{CurrencyCodeA: 840, CurrencyCodeB: 980}},
		errs:    []error{errors.New("down"), errors.New("down"), errors.New("down"), nil},
	}
	br := newTestBreaker(&now)
	p := provider.NewResilientProvider(inner, br, nil, 1, time.Millisecond)

	for i := 0; i < 3; i++ {
		_, err := p.FetchRates(context.Background())
		require.Error(t, err)
	}
	assert.Equal(t, breaker.StateOpen, br.State())

	// Trial call goes through once the reset timeout elapses and closes
	// the breaker on success.
	now = now.Add(2 * time.Minute)
	records, err := p.FetchRates(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 4, inner.calls)
	assert.Equal(t, breaker.StateClosed, br.State())
}
