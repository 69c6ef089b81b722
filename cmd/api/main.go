package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	config "checkout-hub/configs"
	database "checkout-hub/internal/pkg/db"
	"checkout-hub/internal/pkg/logger"
	"checkout-hub/internal/pkg/rabbitmq"
	"checkout-hub/internal/pkg/redis"
	stripePkg "checkout-hub/internal/pkg/stripe"
	"checkout-hub/internal/pkg/validation"
	serverApp "checkout-hub/internal/server"
)

func main() {
	logger.Setup()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	// Setup Redis
	redisClient, err := setupRedis(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Redis", err)
		cancel()
		return
	}

	// Setup RabbitMQ
	rabbit, err := setupRabbitMQ(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up RabbitMQ", err)
		cancel()
		return
	}

	// Setup Database
	db, err := setupDB(env)
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		cancel()
		return
	}

	// Setup Stripe Client
	stripeClient := setupStripe(env)

	// Setup Server
	setupServer(&config.SetupServerDto{
		Rds:    redisClient,
		Env:    env,
		Ctx:    &ctx,
		Cancel: cancel,
		Db:     db,
		Wg:     &wg,
		Rb:     rabbit,
		Stripe: stripeClient,
	})
}

func setupRedis(ctx context.Context, env *config.Config) (redis.IRedis, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
	})
}

func setupDB(env *config.Config) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:     env.DBHost,
		Port:     env.DBPort,
		User:     env.DBUser,
		Password: env.DBPass,
		Database: env.DBName,
		SSLMode:  "disable",
		Driver:   "postgres",
	})
}

func setupStripe(env *config.Config) *stripePkg.StripeClient {
	return stripePkg.Setup(&stripePkg.Config{
		SecretKey:  env.StripeSecretKey,
		PublicKey:  env.StripePublicKey,
		MerchantID: env.StripeMerchantID,
	})
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg
	rb := payload.Rb
	db := payload.Db
	stripeClient := payload.Stripe

	defer func() {
		if rds != nil {
			_ = rds.Close()
		}
		cancel()
		wg.Wait()
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	e := gin.Default()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.AppPort),
		Handler: e,
	}

	publisher, err := rabbitmq.NewPublisher(*ctx, rb)
	if err != nil {
		panic(err)
	}

	serverApp.Setup(
		e, *ctx, wg, db, rds, rb, publisher, stripeClient,
		env.AppBaseURL, env.CheckoutAPIURL, env.PlanLabel, env.AppPort,
	)
	if env.AppEnv != "development" {
		go serverApp.InitWorker(*ctx, db, rds, rb)
	}

	go func() {
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.HTTP.Println("========= Server Shutting Down =========")
	_ = server.Shutdown(*ctx)
}
