package participant

import (
	"time"

	"github.com/KirkDiggler/faceoff/internal/common/clock"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/KirkDiggler/faceoff/internal/notify"
	participantRepo "github.com/KirkDiggler/faceoff/internal/repositories/participant"
	"github.com/rs/zerolog"
)

const (
	// DefaultNearbyRadiusMeters is the nearby listing radius
	DefaultNearbyRadiusMeters = 100

	// DefaultNearbyLimit caps the nearby listing
	DefaultNearbyLimit = 20

	// DefaultPokeTTL bounds how long an undelivered poke is kept
	DefaultPokeTTL = time.Hour
)

// Config holds configuration for the participant service
type Config struct {
	Directory  participantRepo.Repository
	Dispatcher notify.Dispatcher
	Clock      clock.Clock

	// NearbyRadiusMeters defaults to DefaultNearbyRadiusMeters
	NearbyRadiusMeters float64

	// NearbyLimit defaults to DefaultNearbyLimit
	NearbyLimit int

	// PokeTTL defaults to DefaultPokeTTL
	PokeTTL time.Duration

	Logger *zerolog.Logger
}

// LoginInput contains the identity-resolved profile of the caller
type LoginInput struct {
	ParticipantID string
	Name          string
	DeviceToken   string
	Location      models.Coordinates

	// FriendIDs replaces the stored social graph when ReplaceFriends is set
	FriendIDs      []string
	ReplaceFriends bool
}

// LoginOutput contains the stored profile
type LoginOutput struct {
	Participant *models.Participant
}

// GetProfileInput contains parameters for retrieving a profile
type GetProfileInput struct {
	ParticipantID string
}

// GetProfileOutput contains the profile
type GetProfileOutput struct {
	Participant *models.Participant
}

// UpdateLocationInput contains parameters for moving a participant
type UpdateLocationInput struct {
	ParticipantID string
	Location      models.Coordinates
}

// UpdateLocationOutput is empty on success
type UpdateLocationOutput struct{}

// ListNearbyInput contains parameters for listing nearby participants
type ListNearbyInput struct {
	ParticipantID string
}

// ListNearbyOutput contains nearby participants, nearest first, without the caller
type ListNearbyOutput struct {
	Participants []*models.Participant
}

// AddFriendInput contains parameters for connecting two participants
type AddFriendInput struct {
	ParticipantID string
	FriendID      string
}

// AddFriendOutput contains the new friend
type AddFriendOutput struct {
	Friend *models.Participant
}

// PokeInput contains parameters for poking someone
type PokeInput struct {
	SenderID    string
	RecipientID string
}

// PokeOutput contains the poked participant
type PokeOutput struct {
	Recipient *models.Participant
}
