package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ratefeed/converter-api/internal/apperrors"
	"github.com/ratefeed/converter-api/internal/core/domain"
	portsrepo "github.com/ratefeed/converter-api/internal/core/ports/repositories"
	"github.com/ratefeed/converter-api/internal/platform/metrics"
	"github.com/ratefeed/converter-api/pkg/breaker"
	"github.com/sethvargo/go-retry"
)

// ResilientProvider decorates a RateProvider with a circuit breaker wrapped
// around an exponential-backoff retry loop. Breaker accounting happens once
// per outer call regardless of how many retry attempts ran, and a rejected
// call consumes neither a timeout nor a retry budget.
type ResilientProvider struct {
	inner   portsrepo.RateProvider
	breaker *breaker.Breaker
	metrics *metrics.ConverterMetrics

	maxAttempts int
	baseDelay   time.Duration
}

// NewResilientProvider wraps inner with the given breaker and retry budget.
func NewResilientProvider(
	inner portsrepo.RateProvider,
	br *breaker.Breaker,
	m *metrics.ConverterMetrics,
	maxAttempts int,
	baseDelay time.Duration,
) *ResilientProvider {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &ResilientProvider{
		inner:       inner,
		breaker:     br,
		metrics:     m,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

// FetchRates fetches the snapshot through the breaker and retry loop.
func (p *ResilientProvider) FetchRates(ctx context.Context) ([]domain.RateRecord, error) {
	if err := p.breaker.Allow(); err != nil {
		p.metrics.RecordUpstreamRequest("circuit_open", 0)
		p.publishBreakerState()
		return nil, apperrors.ErrCircuitOpen
	}

	start := time.Now()
	records, err := p.fetchWithRetry(ctx)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		p.breaker.Failure()
		p.metrics.RecordUpstreamRequest("error", elapsed)
	} else {
		p.breaker.Success()
		p.metrics.RecordUpstreamRequest("success", elapsed)
	}
	p.publishBreakerState()

	return records, err
}

// fetchWithRetry runs the provider call under the exponential backoff
// schedule baseDelay, 2*baseDelay, 4*baseDelay, ... for up to maxAttempts
// attempts. Client-class upstream errors abort immediately and surface the
// provider's status; an exhausted budget of transient failures escalates to
// ErrServiceUnavailable.
func (p *ResilientProvider) fetchWithRetry(ctx context.Context) ([]domain.RateRecord, error) {
	var records []domain.RateRecord

	backoff := retry.WithMaxRetries(uint64(p.maxAttempts-1), retry.NewExponential(p.baseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		fetched, err := p.inner.FetchRates(ctx)
		if err != nil {
			var upstream *apperrors.UpstreamError
			if errors.As(err, &upstream) && upstream.IsClient() {
				// Not retryable; retrying a rejected request cannot help.
				return err
			}
			return retry.RetryableError(err)
		}
		records = fetched
		return nil
	})
	if err != nil {
		var upstream *apperrors.UpstreamError
		if errors.As(err, &upstream) && upstream.IsClient() {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrServiceUnavailable, err)
	}

	return records, nil
}

func (p *ResilientProvider) publishBreakerState() {
	p.metrics.RecordBreakerState(float64(p.breaker.State()))
}

// Ensure implementation matches interface
var _ portsrepo.RateProvider = (*ResilientProvider)(nil)
