package notifier

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"scenario-booking/internal/pkg/config"
	"scenario-booking/internal/pkg/errs"
)

// RedisRealtimeSender publishes alert payloads on a per-user pub/sub channel.
// The websocket gateway that fans messages out to browsers subscribes on the
// same channel names; it lives outside this service.
type RedisRealtimeSender struct {
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisRealtimeSender(client *redis.Client) *RedisRealtimeSender {
	return &RedisRealtimeSender{client: client}
}

func (s *RedisRealtimeSender) SendRealtime(ctx context.Context, userID uuid.UUID, payload []byte) error {
	channel := "alerts:user:" + userID.String()
	if err := s.client.Publish(ctx, channel, payload).Err(); err != nil {
		return errs.Wrap(err, "redis publish failed")
	}
	return nil
}
