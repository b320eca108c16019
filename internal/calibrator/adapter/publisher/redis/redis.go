package redis

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/langowen/calibrator/internal/calibrator/service"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Publisher struct {
	rdb     redis.UniversalClient
	channel string
}

func NewPublisher(client redis.UniversalClient, channel string) *Publisher {
	return &Publisher{
		rdb:     client,
		channel: channel,
	}
}

func InitPublisher(ctx context.Context, options *redis.Options, channel string) (*Publisher, error) {
	const op = "publisher.redis.InitPublisher"

	redisClient := redis.NewClient(options)

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		_ = redisClient.Close()
		return nil, errors.Wrap(err, op)
	}

	return NewPublisher(redisClient, channel), nil
}

func (p *Publisher) PublishCalibration(ctx context.Context, event service.CalibrationEvent) error {
	const op = "publisher.redis.PublishCalibration"

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, op)
	}

	receivers, err := p.rdb.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return errors.Wrap(err, op)
	}

	slog.Debug("Calibration published", "channel", p.channel, "receivers", receivers)

	return nil
}

func (p *Publisher) Close() error {
	return p.rdb.Close()
}
