package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	portssvc "github.com/ratefeed/converter-api/internal/core/ports/services"
	"github.com/ratefeed/converter-api/internal/middleware"
	"github.com/ratefeed/converter-api/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ratefeed/converter-api/cmd/docs"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", rateLimitMiddleware(cfg.RateLimit))

	// Delegate route registration to specific handlers, passing required services
	registerConvertRoutes(v1, service.Converter)
	registerCurrencyRoutes(v1, service.Currency)
}

// rateLimitMiddleware builds the IP rate limiter for the API group. The
// formatted rate comes from config, e.g. "100-M" for 100 requests per minute.
func rateLimitMiddleware(formattedRate string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// registerCustomValidators attaches the "currency" binding rule used by the
// conversion request DTO: a three-letter alphabetic currency symbol.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		symbol := fl.Field().String()
		if len(symbol) != 3 {
			return false
		}
		for _, r := range symbol {
			if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
				return false
			}
		}
		return true
	})
}
