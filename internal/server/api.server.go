package serverApp

import (
	"context"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	funnelHandler "checkout-hub/internal/handler/funnel"
	paymentHandler "checkout-hub/internal/handler/payment"
	database "checkout-hub/internal/pkg/db"
	"checkout-hub/internal/pkg/middleware"
	"checkout-hub/internal/pkg/rabbitmq"
	"checkout-hub/internal/pkg/redis"
	stripePkg "checkout-hub/internal/pkg/stripe"
	"checkout-hub/internal/repository"
	orderRepo "checkout-hub/internal/repository/order"
	quizRepo "checkout-hub/internal/repository/quiz"
	funnelService "checkout-hub/internal/service/funnel"
	paymentService "checkout-hub/internal/service/payment"
)

// Setup initializes the HTTP server with middleware and routes
func Setup(
	engine *gin.Engine,
	ctx context.Context,
	wg *sync.WaitGroup,
	db *database.Database,
	redisClient redis.IRedis,
	rb *rabbitmq.ConnectionManager,
	publisher *rabbitmq.Publisher,
	stripe *stripePkg.StripeClient,
	baseURL string,
	checkoutURL string,
	planLabel string,
	port int,
) {
	InitMiddleware(engine)

	// Dependency health, separate from the wire-contract /api/health.
	engine.GET("/health", func(c *gin.Context) {
		rabbitmqHealth := "unhealthy"
		redisHealth := "unhealthy"
		databaseHealth := "unhealthy"
		rbCon := rb.GetConnection()

		if db != nil && !db.IsCloseConnection() {
			databaseHealth = "healthy"
		}
		if rbCon != nil && !rbCon.IsClosed() {
			rabbitmqHealth = "healthy"
		}
		if redisClient != nil {
			redisHealth = "healthy"
		}

		c.JSON(200, gin.H{
			"status": 200,
			"service": gin.H{
				"rabbitmq": gin.H{"status": rabbitmqHealth},
				"redis":    gin.H{"status": redisHealth},
				"database": gin.H{"status": databaseHealth},
			},
		})
	})

	e := engine.Group(BasePath())
	InitRoutes(e, ctx, db, redisClient, publisher, stripe, baseURL, checkoutURL, planLabel, port)
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine) {
	e.Use(middleware.CorsMiddleware())
	e.Use(middleware.RequestInit())
	e.Use(middleware.ResponseInit())
}

func InitRoutes(
	e *gin.RouterGroup,
	ctx context.Context,
	db *database.Database,
	redisClient redis.IRedis,
	publisher *rabbitmq.Publisher,
	stripe *stripePkg.StripeClient,
	baseURL string,
	checkoutURL string,
	planLabel string,
	port int,
) {
	// setup repo
	rp := repository.IRepository{
		Order: orderRepo.NewRepo(db),
		Quiz:  quizRepo.NewRepo(redisClient),
	}

	if checkoutURL == "" {
		checkoutURL = strings.TrimRight(baseURL, "/") + BasePath() + "/checkout"
	}

	// === Payment ===
	PaymentService := paymentService.NewService(ctx, rp, stripe, publisher, port)
	PaymentHandler := paymentHandler.NewHandler(ctx, PaymentService)
	PaymentHandler.NewRoutes(e)

	// === Funnel ===
	FunnelService := funnelService.NewService(ctx, rp, stripe.PublicKey, checkoutURL, planLabel)
	FunnelHandler := funnelHandler.NewHandler(ctx, FunnelService)
	FunnelHandler.NewRoutes(e)
}
