package redis

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/langowen/calibrator/internal/calibrator/service"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unusedAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

func TestInitPublisher_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := InitPublisher(ctx, &redis.Options{Addr: unusedAddr(t), MaxRetries: -1}, "calibration_completed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publisher.redis.InitPublisher")
}

func TestPublishCalibration_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: unusedAddr(t), MaxRetries: -1})
	p := NewPublisher(client, "calibration_completed")
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rate := 0.012
	err := p.PublishCalibration(ctx, service.CalibrationEvent{Base: "INR", Target: "USD", Rate: &rate})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publisher.redis.PublishCalibration")
}

func subscribe(t *testing.T, ctx context.Context, addr, channel string) *redis.PubSub {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: addr})
	sub := client.Subscribe(ctx, channel)
	t.Cleanup(func() {
		_ = sub.Close()
		_ = client.Close()
	})

	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	return sub
}

func TestPublishCalibration_WritesEvent(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := subscribe(t, ctx, mr.Addr(), "calibration_completed")

	p, err := InitPublisher(ctx, &redis.Options{Addr: mr.Addr()}, "calibration_completed")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	rate := 0.012
	at := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	event := service.CalibrationEvent{
		Base: "INR", Target: "USD", Amount: 100, Converted: 1.2, Rate: &rate,
		Average: 0.0119, Days: 30, Points: 22, At: at,
	}
	require.NoError(t, p.PublishCalibration(ctx, event))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "calibration_completed", msg.Channel)

	var got service.CalibrationEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	require.NotNil(t, got.Rate)
	assert.InDelta(t, 0.012, *got.Rate, 1e-12)
	assert.Equal(t, "INR", got.Base)
	assert.Equal(t, "USD", got.Target)
	assert.Equal(t, 100.0, got.Amount)
	assert.Equal(t, 1.2, got.Converted)
	assert.Equal(t, 0.0119, got.Average)
	assert.Equal(t, 30, got.Days)
	assert.Equal(t, 22, got.Points)
	assert.True(t, at.Equal(got.At))
}

func TestPublishCalibration_UndefinedRateIsNull(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := subscribe(t, ctx, mr.Addr(), "rates")

	p := NewPublisher(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "rates")
	t.Cleanup(func() { _ = p.Close() })

	require.NoError(t, p.PublishCalibration(ctx, service.CalibrationEvent{Base: "INR", Target: "USD"}))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &payload))
	assert.Contains(t, payload, "rate")
	assert.Nil(t, payload["rate"])
	for _, key := range []string{"base", "target", "amount", "converted", "average", "days", "points", "at"} {
		assert.Contains(t, payload, key)
	}
}
