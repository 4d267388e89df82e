package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	_ "github.com/ishan22399/Credit-Approval-System/cmd/docs"
	portssvc "github.com/ishan22399/Credit-Approval-System/internal/core/ports/services"
	"github.com/ishan22399/Credit-Approval-System/internal/middleware"
	"github.com/ishan22399/Credit-Approval-System/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces. redisClient may be nil, in which case the create-loan endpoint
// runs without idempotency protection.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
	redisClient *redis.Client,
) {
	RegisterValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services, limiterInstance, redisClient)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
	redisClient *redis.Client,
) {
	v1 := r.Group("/api/v1")
	if limiterInstance != nil {
		v1.Use(middleware.RateLimit(limiterInstance))
	}

	registerCustomerRoutes(v1, services.Customer)
	registerLoanRoutes(v1, services.Loan, redisClient)
}

func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)
	rg.POST("/register", h.register)
}

func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, redisClient *redis.Client) {
	h := newLoanHandler(loanService)

	rg.POST("/check-eligibility", h.checkEligibility)
	rg.GET("/view-loan/:loan_id", h.viewLoan)
	rg.GET("/view-loans/:customer_id", h.viewLoans)

	createLoan := rg.Group("")
	if redisClient != nil {
		createLoan.Use(middleware.Idempotency(redisClient, 24*time.Hour))
	}
	createLoan.POST("/create-loan", h.createLoan)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
