package participant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/KirkDiggler/faceoff/internal/geo"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	participantKeyPrefix = "participant:"
	friendsKeySuffix     = ":friends"
	geoKey               = "participants:geo"

	// Hash fields
	fieldID            = "id"
	fieldName          = "name"
	fieldDeviceToken   = "device_token"
	fieldLongitude     = "longitude"
	fieldLatitude      = "latitude"
	fieldLastSeen      = "last_seen"
	fieldParticipating = "participating"
	fieldScore         = "score"
)

var (
	// ErrParticipantNotFound is returned when a participant is not found
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrInvalidLocation is returned for coordinates the geo index cannot hold
	ErrInvalidLocation = errors.New("location outside the indexable range")
)

// scoreDeltaScript increments the score only if the profile exists, so a delta
// never conjures a half-empty profile and never races a concurrent delta.
var scoreDeltaScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return false
end
return redis.call('HINCRBY', KEYS[1], ARGV[1], ARGV[2])
`)

// Config holds configuration for the Redis participant repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed participant directory
func NewRedis(cfg *Config) (*redisRepository, error) {
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

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func participantKey(id string) string {
	return participantKeyPrefix + id
}

func friendsKey(id string) string {
	return participantKeyPrefix + id + friendsKeySuffix
}

// SaveParticipant upserts a participant's profile fields
func (r *redisRepository) SaveParticipant(ctx context.Context, input *SaveParticipantInput) error {
	if input == nil || input.Participant == nil {
		return errors.New("input and participant cannot be nil")
	}

	p := input.Participant
	if p.ID == "" {
		return errors.New("participant ID cannot be empty")
	}

	// MULTI does not roll back, so a rejected GEOADD would strand the hash
	if !geo.Indexable(p.Location) {
		return ErrInvalidLocation
	}

	key := participantKey(p.ID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldID, p.ID,
			fieldName, p.Name,
			fieldDeviceToken, p.DeviceToken,
			fieldLongitude, strconv.FormatFloat(p.Location.Longitude, 'f', -1, 64),
			fieldLatitude, strconv.FormatFloat(p.Location.Latitude, 'f', -1, 64),
			fieldLastSeen, p.LastSeen,
			fieldParticipating, formatBool(p.Participating),
		)
		// A new profile starts at zero, an existing score is left alone
		pipe.HSetNX(ctx, key, fieldScore, 0)

		pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
			Name:      p.ID,
			Longitude: p.Location.Longitude,
			Latitude:  p.Location.Latitude,
		})

		if input.ReplaceFriends {
			pipe.Del(ctx, friendsKey(p.ID))
			if len(p.FriendIDs) > 0 {
				members := make([]interface{}, 0, len(p.FriendIDs))
				for _, id := range p.FriendIDs {
					members = append(members, id)
				}
				pipe.SAdd(ctx, friendsKey(p.ID), members...)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save participant: %w", err)
	}

	return nil
}

// GetParticipant retrieves a participant by ID from Redis
func (r *redisRepository) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	fieldsCmd := pipe.HGetAll(ctx, participantKey(input.ParticipantID))
	friendsCmd := pipe.SMembers(ctx, friendsKey(input.ParticipantID))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	fields := fieldsCmd.Val()
	if len(fields) == 0 {
		return nil, ErrParticipantNotFound
	}

	p, err := decodeParticipant(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode participant %s: %w", input.ParticipantID, err)
	}

	friends := friendsCmd.Val()
	sort.Strings(friends)
	p.FriendIDs = friends

	return p, nil
}

// ApplyScoreDelta atomically adjusts a participant's score
func (r *redisRepository) ApplyScoreDelta(ctx context.Context, input *ApplyScoreDeltaInput) (*ApplyScoreDeltaOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	score, err := scoreDeltaScript.Run(ctx, r.client,
		[]string{participantKey(input.ParticipantID)},
		fieldScore, input.Delta,
	).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to apply score delta: %w", err)
	}

	return &ApplyScoreDeltaOutput{
		Score: score,
	}, nil
}

// UpdateLocation moves an existing participant and reindexes them
func (r *redisRepository) UpdateLocation(ctx context.Context, input *UpdateLocationInput) error {
	if input == nil || input.ParticipantID == "" {
		return errors.New("input and participant ID cannot be empty")
	}

	if !geo.Indexable(input.Location) {
		return ErrInvalidLocation
	}

	if err := r.ensureExists(ctx, input.ParticipantID); err != nil {
		return err
	}

	key := participantKey(input.ParticipantID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldLongitude, strconv.FormatFloat(input.Location.Longitude, 'f', -1, 64),
			fieldLatitude, strconv.FormatFloat(input.Location.Latitude, 'f', -1, 64),
		)
		pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
			Name:      input.ParticipantID,
			Longitude: input.Location.Longitude,
			Latitude:  input.Location.Latitude,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	return nil
}

// UpdatePresence stamps last-seen and the participation flag
func (r *redisRepository) UpdatePresence(ctx context.Context, input *UpdatePresenceInput) error {
	if input == nil || input.ParticipantID == "" {
		return errors.New("input and participant ID cannot be empty")
	}

	if err := r.ensureExists(ctx, input.ParticipantID); err != nil {
		return err
	}

	err := r.client.HSet(ctx, participantKey(input.ParticipantID),
		fieldLastSeen, input.LastSeen,
		fieldParticipating, formatBool(input.Participating),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}

	return nil
}

// AddFriend adds an ID to a participant's social graph
func (r *redisRepository) AddFriend(ctx context.Context, input *AddFriendInput) error {
	if input == nil || input.ParticipantID == "" || input.FriendID == "" {
		return errors.New("input, participant ID and friend ID cannot be empty")
	}

	if err := r.ensureExists(ctx, input.ParticipantID); err != nil {
		return err
	}

	if err := r.client.SAdd(ctx, friendsKey(input.ParticipantID), input.FriendID).Err(); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}

	return nil
}

// FindNearby returns participating profiles within MaxDistance of Center
func (r *redisRepository) FindNearby(ctx context.Context, input *FindNearbyInput) (*FindNearbyOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	locations, err := r.client.GeoRadius(ctx, geoKey, input.Center.Longitude, input.Center.Latitude, &redis.GeoRadiusQuery{
		Radius: input.MaxDistance,
		Unit:   "m",
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby participants: %w", err)
	}

	participants := make([]*models.Participant, 0, len(locations))
	for _, loc := range locations {
		if input.Limit > 0 && len(participants) >= input.Limit {
			break
		}

		p, err := r.GetParticipant(ctx, &GetParticipantInput{ParticipantID: loc.Name})
		if err != nil {
			// Index entry outlived its profile
			if errors.Is(err, ErrParticipantNotFound) {
				continue
			}
			return nil, err
		}

		if !p.Participating {
			continue
		}
		participants = append(participants, p)
	}

	return &FindNearbyOutput{
		Participants: participants,
	}, nil
}

func (r *redisRepository) ensureExists(ctx context.Context, id string) error {
	n, err := r.client.Exists(ctx, participantKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to check participant: %w", err)
	}
	if n == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func decodeParticipant(fields map[string]string) (*models.Participant, error) {
	p := &models.Participant{
		ID:            fields[fieldID],
		Name:          fields[fieldName],
		DeviceToken:   fields[fieldDeviceToken],
		Participating: fields[fieldParticipating] == "1",
	}

	var err error
	if p.Location.Longitude, err = parseFloat(fields[fieldLongitude]); err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}
	if p.Location.Latitude, err = parseFloat(fields[fieldLatitude]); err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	if p.LastSeen, err = parseInt(fields[fieldLastSeen]); err != nil {
		return nil, fmt.Errorf("last seen: %w", err)
	}
	if p.Score, err = parseInt(fields[fieldScore]); err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}

	return p, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
