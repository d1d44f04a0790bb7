package duel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/faceoff/internal/common/uuid"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	duelKeyPrefix        = "duel:"
	participantDuelIndex = "duels:participant:" // Index of duels per participant, scored by creation time
)

var (
	// ErrDuelNotFound is returned when a duel is not found
	ErrDuelNotFound = errors.New("duel not found")

	// ErrDuelExists is returned when creating a duel whose ID is taken
	ErrDuelExists = errors.New("duel already exists")

	// ErrVersionConflict is returned when the stored duel changed since it was read
	ErrVersionConflict = errors.New("duel version conflict")
)

// createScript stores a duel and indexes it under its participants in one step.
// KEYS[1] is the duel key, the rest are participant indexes.
var createScript = redis.NewScript(`
if not redis.call('SET', KEYS[1], ARGV[1], 'NX') then
	return 0
end
for i = 2, #KEYS do
	redis.call('ZADD', KEYS[i], ARGV[2], ARGV[3])
end
return 1
`)

// Config holds configuration for the Redis duel repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// UUIDGenerator assigns IDs to new duels, defaults to random UUIDs
	UUIDGenerator uuid.UUID
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client        *redis.Client
	uuidGenerator uuid.UUID
}

// NewRedis creates a new Redis-backed duel repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	uuidGenerator := cfg.UUIDGenerator
	if uuidGenerator == nil {
		uuidGenerator = uuid.New()
	}

	return &redisRepository{
		client:        cfg.RedisClient,
		uuidGenerator: uuidGenerator,
	}, nil
}

func duelKey(id string) string {
	return duelKeyPrefix + id
}

func participantIndexKey(participantID string) string {
	return participantDuelIndex + participantID
}

// CreateDuel persists a new duel to Redis
func (r *redisRepository) CreateDuel(ctx context.Context, input *CreateDuelInput) (*models.Duel, error) {
	if input == nil || input.Duel == nil {
		return nil, errors.New("input and duel cannot be nil")
	}

	duel := input.Duel.Copy()
	if duel.ID == "" {
		duel.ID = r.uuidGenerator.NewUUID()
	}
	duel.Version = 1

	duelJSON, err := json.Marshal(duel)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal duel: %w", err)
	}

	keys := []string{duelKey(duel.ID)}
	for _, id := range []string{duel.ParticipantA.ID, duel.ParticipantB.ID} {
		if id != "" {
			keys = append(keys, participantIndexKey(id))
		}
	}

	// Index score is the creation time so history reads newest first
	score := strconv.FormatInt(duel.CreatedAt.UnixNano(), 10)
	created, err := createScript.Run(ctx, r.client, keys, duelJSON, score, duel.ID).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to create duel: %w", err)
	}
	if created == 0 {
		return nil, ErrDuelExists
	}

	return duel, nil
}

// GetDuel retrieves a duel by ID from Redis
func (r *redisRepository) GetDuel(ctx context.Context, input *GetDuelInput) (*models.Duel, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.New("input and duel ID cannot be empty")
	}

	duelJSON, err := r.client.Get(ctx, duelKey(input.DuelID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDuelNotFound
		}
		return nil, fmt.Errorf("failed to get duel: %w", err)
	}

	return decodeDuel(duelJSON)
}

// UpdateDuel writes the duel under WATCH so a concurrent writer aborts this transaction
func (r *redisRepository) UpdateDuel(ctx context.Context, input *UpdateDuelInput) (*models.Duel, error) {
	if input == nil || input.Duel == nil || input.Duel.ID == "" {
		return nil, errors.New("input and duel cannot be empty")
	}

	key := duelKey(input.Duel.ID)
	updated := input.Duel.Copy()
	updated.Version = input.ExpectedVersion + 1

	duelJSON, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal duel: %w", err)
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		storedJSON, err := tx.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrDuelNotFound
			}
			return fmt.Errorf("failed to read duel: %w", err)
		}

		stored, err := decodeDuel(storedJSON)
		if err != nil {
			return err
		}
		if stored.Version != input.ExpectedVersion {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, duelJSON, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		switch {
		case errors.Is(err, redis.TxFailedErr):
			return nil, ErrVersionConflict
		case errors.Is(err, ErrVersionConflict), errors.Is(err, ErrDuelNotFound):
			return nil, err
		}
		return nil, fmt.Errorf("failed to update duel: %w", err)
	}

	return updated, nil
}

// ListDuelsByParticipant retrieves a participant's duels from Redis, newest first
func (r *redisRepository) ListDuelsByParticipant(ctx context.Context, input *ListDuelsByParticipantInput) (*ListDuelsByParticipantOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	ids, err := r.client.ZRevRange(ctx, participantIndexKey(input.ParticipantID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list duel IDs: %w", err)
	}

	if len(ids) == 0 {
		return &ListDuelsByParticipantOutput{
			Duels: []*models.Duel{},
		}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, duelKey(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get duels: %w", err)
	}

	duels := make([]*models.Duel, 0, len(values))
	for _, v := range values {
		// Skip index entries whose duel disappeared
		s, ok := v.(string)
		if !ok {
			continue
		}
		duel, err := decodeDuel(s)
		if err != nil {
			return nil, err
		}
		duels = append(duels, duel)
	}

	return &ListDuelsByParticipantOutput{
		Duels: duels,
	}, nil
}

func decodeDuel(s string) (*models.Duel, error) {
	var duel models.Duel
	if err := json.Unmarshal([]byte(s), &duel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal duel: %w", err)
	}
	return &duel, nil
}
