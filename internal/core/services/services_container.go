package services

import (
	portsrepo "github.com/ratefeed/converter-api/internal/core/ports/repositories"
	portssvc "github.com/ratefeed/converter-api/internal/core/ports/services"
	"github.com/ratefeed/converter-api/internal/platform/config"
	"github.com/ratefeed/converter-api/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(
	cfg *config.Config,
	registry portsrepo.CurrencyRegistry,
	provider portsrepo.RateProvider,
	cache portsrepo.RateCache,
	m *metrics.ConverterMetrics,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(registry)
	container.Converter = NewConversionService(
		registry,
		provider,
		cache,
		m,
		cfg.BaseCurrencyCode,
		cfg.RateCacheTTL,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ConverterSvcFacade = (*ConversionService)(nil)
	_ portssvc.CurrencySvcFacade  = (*CurrencyService)(nil)
)
