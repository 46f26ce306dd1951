package services

import (
	"context"

	"github.com/ratefeed/converter-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConverterSvc defines conversion operations exposed at the service boundary.
type ConverterSvc interface {
	// Convert converts amount from one currency symbol to another. Symbols are
	// case-insensitive and echoed uppercased in the result.
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error)
}

// RateCacheAdminSvc defines cache administration operations.
type RateCacheAdminSvc interface {
	// InvalidateRateCache clears both the rate-snapshot and the
	// conversion-result cache namespaces.
	InvalidateRateCache(ctx context.Context) error
}

// ConverterSvcFacade combines all conversion-related service interfaces.
type ConverterSvcFacade interface {
	ConverterSvc
	RateCacheAdminSvc
}
