package quiz

import (
	"context"
	"time"

	funnel "checkout-hub/internal/funnel/checkout"
	"checkout-hub/internal/pkg/helper"
	"checkout-hub/internal/pkg/redis"
)

const (
	keyPrefix = "funnel:quiz:"
	ttl       = 24 * time.Hour
)

type IRepository interface {
	Get(ctx context.Context, sessionID string) (*funnel.QuizData, error)
	Save(ctx context.Context, sessionID string, data *funnel.QuizData) error
	Delete(ctx context.Context, sessionID string) error
}

type Repository struct {
	redis redis.IRedis
}

func NewRepo(redis redis.IRedis) IRepository {
	return &Repository{redis: redis}
}

// Get returns the stored quiz context, or nil when the session has
// none yet.
func (r *Repository) Get(_ context.Context, sessionID string) (*funnel.QuizData, error) {
	raw, err := r.redis.Get(keyPrefix + sessionID)
	if err != nil {
		if err == redis.NilType {
			return nil, nil
		}
		return nil, err
	}

	return helper.StringToStruct[funnel.QuizData](raw)
}

func (r *Repository) Save(_ context.Context, sessionID string, data *funnel.QuizData) error {
	raw, err := helper.JSONToString(data)
	if err != nil {
		return err
	}
	return r.redis.Set(keyPrefix+sessionID, raw, ttl)
}

func (r *Repository) Delete(_ context.Context, sessionID string) error {
	return r.redis.Del(keyPrefix + sessionID)
}
