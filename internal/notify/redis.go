package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/faceoff/internal/log"
	"github.com/KirkDiggler/faceoff/internal/metrics"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	inboxKeyPrefix = "inbox:"

	// DefaultInboxTTL applies when neither the send nor the config names one
	DefaultInboxTTL = time.Hour
)

// RedisConfig holds configuration for the Redis inbox dispatcher
type RedisConfig struct {
	RedisClient *redis.Client

	// DefaultTTL is used when a send carries no TTL
	DefaultTTL time.Duration

	Logger *zerolog.Logger
}

// RedisInbox queues payloads per device token in a Redis list
type RedisInbox struct {
	client     *redis.Client
	defaultTTL time.Duration
	logger     zerolog.Logger
}

// NewRedisInbox creates a dispatcher that writes to per-device Redis lists
func NewRedisInbox(cfg *RedisConfig) (*RedisInbox, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = DefaultInboxTTL
	}

	logger := log.WithComponent("notify.redis")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &RedisInbox{
		client:     cfg.RedisClient,
		defaultTTL: ttl,
		logger:     logger,
	}, nil
}

func inboxKey(deviceToken string) string {
	return inboxKeyPrefix + deviceToken
}

// Send appends the payload to the recipient's inbox and refreshes its expiry
func (r *RedisInbox) Send(ctx context.Context, input *SendInput) error {
	if err := validateSend(input); err != nil {
		metrics.NotificationsTotal.WithLabelValues(TransportRedis, "error").Inc()
		return err
	}

	body, err := json.Marshal(input.Payload)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(TransportRedis, "error").Inc()
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.defaultTTL
	}

	key := inboxKey(input.Recipient.DeviceToken)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, body)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(TransportRedis, "error").Inc()
		return fmt.Errorf("failed to queue payload: %w", err)
	}

	metrics.NotificationsTotal.WithLabelValues(TransportRedis, "ok").Inc()
	r.logger.Debug().
		Str(log.FieldRecipientID, input.Recipient.ID).
		Str(log.FieldSubtype, string(input.Payload.Subtype)).
		Msg("payload queued")

	return nil
}

// Drain returns and removes every payload waiting for a device
func (r *RedisInbox) Drain(ctx context.Context, input *DrainInput) (*DrainOutput, error) {
	if input == nil || input.DeviceToken == "" {
		return nil, errors.New("input and device token cannot be empty")
	}

	key := inboxKey(input.DeviceToken)
	var rangeCmd *redis.StringSliceCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		rangeCmd = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to drain inbox: %w", err)
	}

	raw := rangeCmd.Val()
	payloads := make([]*models.Payload, 0, len(raw))
	for _, item := range raw {
		var p models.Payload
		if err := json.Unmarshal([]byte(item), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		payloads = append(payloads, &p)
	}

	return &DrainOutput{
		Payloads: payloads,
	}, nil
}

func validateSend(input *SendInput) error {
	if input == nil || input.Recipient == nil || input.Payload == nil {
		return errors.New("input, recipient and payload cannot be nil")
	}
	if input.Recipient.DeviceToken == "" {
		return ErrNoDeviceToken
	}
	return nil
}
