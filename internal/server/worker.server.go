package serverApp

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"

	database "checkout-hub/internal/pkg/db"
	"checkout-hub/internal/pkg/logger"
	"checkout-hub/internal/pkg/rabbitmq"
	"checkout-hub/internal/pkg/redis"
	"checkout-hub/internal/repository"
	orderRepo "checkout-hub/internal/repository/order"
	quizRepo "checkout-hub/internal/repository/quiz"
	notifyService "checkout-hub/internal/service/notify"
	paymentService "checkout-hub/internal/service/payment"
)

// InitWorker starts the background consumers on a shared pool. It
// blocks until the context is cancelled, so run it on its own
// goroutine.
func InitWorker(
	ctx context.Context,
	db *database.Database,
	redisClient redis.IRedis,
	rb *rabbitmq.ConnectionManager,
) {
	rp := repository.IRepository{
		Order: orderRepo.NewRepo(db),
		Quiz:  quizRepo.NewRepo(redisClient),
	}
	poolOpts := ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    true,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Worker panic: %v\n", i)
		},
	}

	pool, err := ants.NewPool(100, ants.WithOptions(poolOpts))
	if err != nil {
		panic(fmt.Errorf("failed to create worker pool: %w", err))
	}
	defer pool.Release()

	notify := notifyService.NewService(ctx, rp)

	subscriber, err := rabbitmq.NewSubscriber(
		ctx,
		rb,
		notify.HandleCheckoutCompleted,
		rabbitmq.DefaultSubscribeOptions(paymentService.CheckoutCompletedQueue),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create checkout subscriber: %w", err))
	}
	defer subscriber.Close()

	err = pool.Submit(func() {
		if err := subscriber.Subscribe(); err != nil {
			logger.Error.Printf("Checkout subscriber stopped: %v\n", err)
		}
	})
	if err != nil {
		panic(fmt.Errorf("failed to submit task to pool: %w", err))
	}

	<-ctx.Done()
}
