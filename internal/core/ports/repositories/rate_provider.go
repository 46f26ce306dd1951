package repositories

import (
	"context"

	"github.com/ratefeed/converter-api/internal/core/domain"
)

// RateProvider fetches the current exchange-rate snapshot from an upstream
// provider. One call returns the full ordered list of published rate records.
type RateProvider interface {
	FetchRates(ctx context.Context) ([]domain.RateRecord, error)
}
