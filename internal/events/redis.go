package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/balajimuthu0107/codance/internal/config"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const redisEventChannel = "codance:events"

// RedisBus is the multi-instance bus implementation. Events are published on
// a Redis channel; a background goroutine bridges received messages onto a
// local MemoryBus so subscriber semantics stay identical to the in-memory
// case. If the Redis publish fails the event is still delivered locally, so
// a broker outage degrades to single-instance behavior instead of silence.
type RedisBus struct {
	client *redis.Client
	local  *MemoryBus
	pubsub *redis.PubSub
	cancel context.CancelFunc
	logger *logger.Logger
}

func NewRedisBus(cfg config.RedisConfig, log *logger.Logger) (*RedisBus, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	opt.PoolSize = cfg.PoolSize
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opt)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connection to Redis failed: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	bus := &RedisBus{
		client: client,
		local:  NewMemoryBus(),
		pubsub: client.Subscribe(ctx, redisEventChannel),
		cancel: cancel,
		logger: log,
	}

	go bus.receive()

	log.Info("Redis event bus initialized", "channel", redisEventChannel)
	return bus, nil
}

func (b *RedisBus) receive() {
	for msg := range b.pubsub.Channel() {
		var event models.AppEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			b.logger.WithError(err).Warn("Dropping malformed bus event")
			continue
		}
		b.local.Publish(event)
	}
}

func (b *RedisBus) Publish(event models.AppEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.WithError(err).Warn("Failed to encode bus event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := b.client.Publish(ctx, redisEventChannel, payload).Err(); err != nil {
		b.logger.WithError(err).Warn("Redis publish failed, delivering locally only")
		b.local.Publish(event)
	}
}

func (b *RedisBus) Subscribe(fn Listener) func() {
	return b.local.Subscribe(fn)
}

func (b *RedisBus) Close() error {
	b.cancel()
	if err := b.pubsub.Close(); err != nil {
		b.logger.WithError(err).Warn("Failed to close Redis subscription")
	}
	if err := b.local.Close(); err != nil {
		return err
	}
	return b.client.Close()
}
