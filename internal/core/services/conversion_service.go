package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ratefeed/converter-api/internal/apperrors"
	"github.com/ratefeed/converter-api/internal/core/domain"
	portsrepo "github.com/ratefeed/converter-api/internal/core/ports/repositories"
	"github.com/ratefeed/converter-api/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

const (
	// rateSnapshotKey is the single cache key for the provider snapshot.
	rateSnapshotKey = "rates:snapshot"

	cacheNamespaceSnapshot   = "snapshot"
	cacheNamespaceConversion = "conversion"
)

// ConversionService orchestrates a conversion: registry lookups, the two
// cache namespaces, the resilient provider fetch, rate resolution, and the
// conversion arithmetic.
type ConversionService struct {
	registry portsrepo.CurrencyRegistry
	provider portsrepo.RateProvider
	cache    portsrepo.RateCache
	metrics  *metrics.ConverterMetrics

	baseCurrencyCode int
	cacheTTL         time.Duration
}

// NewConversionService creates a new ConversionService. The provider is
// expected to already be wrapped with retry and circuit-breaker behavior.
func NewConversionService(
	registry portsrepo.CurrencyRegistry,
	provider portsrepo.RateProvider,
	cache portsrepo.RateCache,
	m *metrics.ConverterMetrics,
	baseCurrencyCode int,
	cacheTTL time.Duration,
) *ConversionService {
	return &ConversionService{
		registry:         registry,
		provider:         provider,
		cache:            cache,
		metrics:          m,
		baseCurrencyCode: baseCurrencyCode,
		cacheTTL:         cacheTTL,
	}
}

// Convert converts amount between two currency symbols. Symbols are
// case-insensitive; the result echoes them uppercased, with the converted
// amount rounded to 4 decimal places. Results are cached per exact
// (from, to, amount) triple, so repeated identical calls within the cache TTL
// are answered without a second upstream fetch.
func (s *ConversionService) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		s.metrics.RecordConversion("invalid_input")
		return nil, fmt.Errorf("%w: amount must be a positive number", apperrors.ErrValidation)
	}

	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	fromCurrency, err := s.lookupCurrency(ctx, from)
	if err != nil {
		s.metrics.RecordConversion("invalid_input")
		return nil, err
	}
	toCurrency, err := s.lookupCurrency(ctx, to)
	if err != nil {
		s.metrics.RecordConversion("invalid_input")
		return nil, err
	}

	// Same-currency conversion needs neither snapshot nor resolver.
	if fromCurrency.NumericCode == toCurrency.NumericCode {
		s.metrics.RecordConversion("success")
		return &domain.ConversionResult{
			From:   from,
			To:     to,
			Amount: amount,
			Result: amount.Round(resultPrecision),
		}, nil
	}

	cacheKey := conversionCacheKey(from, to, amount)
	if cached := s.cachedConversion(ctx, cacheKey); cached != nil {
		s.metrics.RecordCacheHit(cacheNamespaceConversion)
		s.metrics.RecordConversion("success")
		return cached, nil
	}
	s.metrics.RecordCacheMiss(cacheNamespaceConversion)

	records, err := s.rateSnapshot(ctx)
	if err != nil {
		s.metrics.RecordConversion("upstream_error")
		return nil, err
	}

	rate, err := ResolveRate(records, fromCurrency.NumericCode, toCurrency.NumericCode, s.baseCurrencyCode)
	if err != nil {
		s.metrics.RecordConversion("rate_not_found")
		return nil, err
	}

	converted, err := ConvertAmount(amount, rate, fromCurrency.NumericCode, toCurrency.NumericCode, s.baseCurrencyCode)
	if err != nil {
		s.metrics.RecordConversion("incomplete_rate")
		return nil, err
	}

	result := &domain.ConversionResult{
		From:   from,
		To:     to,
		Amount: amount,
		Result: converted,
	}
	if raw, err := json.Marshal(result); err == nil {
		// Cache write failures are not fatal to the request.
		_ = s.cache.Set(ctx, cacheKey, raw, s.cacheTTL)
	}

	s.metrics.RecordConversion("success")
	return result, nil
}

// InvalidateRateCache clears both cache namespaces.
func (s *ConversionService) InvalidateRateCache(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to invalidate rate cache: %w", err)
	}
	return nil
}

// lookupCurrency resolves a symbol through the registry, mapping an unknown
// symbol to a validation error.
func (s *ConversionService) lookupCurrency(ctx context.Context, symbol string) (*domain.Currency, error) {
	currency, err := s.registry.FindCurrencyBySymbol(ctx, symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency symbol %q", apperrors.ErrValidation, symbol)
		}
		return nil, fmt.Errorf("failed to look up currency %s: %w", symbol, err)
	}
	return currency, nil
}

// cachedConversion returns the cached result for key, or nil on a miss.
// Cache read errors and undecodable entries are treated as misses.
func (s *ConversionService) cachedConversion(ctx context.Context, key string) *domain.ConversionResult {
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == nil {
		return nil
	}
	var cached domain.ConversionResult
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil
	}
	return &cached
}

// rateSnapshot returns the cached provider snapshot, fetching and caching a
// fresh one on a miss. Concurrent miss callers may each fetch and write;
// last write wins.
func (s *ConversionService) rateSnapshot(ctx context.Context) ([]domain.RateRecord, error) {
	if raw, err := s.cache.Get(ctx, rateSnapshotKey); err == nil && raw != nil {
		var records []domain.RateRecord
		if err := json.Unmarshal(raw, &records); err == nil {
			s.metrics.RecordCacheHit(cacheNamespaceSnapshot)
			return records, nil
		}
	}
	s.metrics.RecordCacheMiss(cacheNamespaceSnapshot)

	records, err := s.provider.FetchRates(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(records); err == nil {
		_ = s.cache.Set(ctx, rateSnapshotKey, raw, s.cacheTTL)
	}
	return records, nil
}

// conversionCacheKey builds the cache key for a conversion result. The exact
// amount is part of the key, so any change in amount is a cache miss.
func conversionCacheKey(from, to string, amount decimal.Decimal) string {
	return fmt.Sprintf("convert:%s:%s:%s", from, to, amount.String())
}
