package participant

import "github.com/KirkDiggler/faceoff/internal/models"

// SaveParticipantInput contains parameters for saving a participant
type SaveParticipantInput struct {
	Participant *models.Participant

	// ReplaceFriends overwrites the stored social graph with Participant.FriendIDs
	ReplaceFriends bool
}

// GetParticipantInput contains parameters for retrieving a participant
type GetParticipantInput struct {
	ParticipantID string
}

// ApplyScoreDeltaInput contains parameters for changing a score
type ApplyScoreDeltaInput struct {
	ParticipantID string
	Delta         int64
}

// ApplyScoreDeltaOutput contains the score after the delta
type ApplyScoreDeltaOutput struct {
	Score int64
}

// UpdateLocationInput contains parameters for moving a participant
type UpdateLocationInput struct {
	ParticipantID string
	Location      models.Coordinates
}

// UpdatePresenceInput contains parameters for stamping presence
type UpdatePresenceInput struct {
	ParticipantID string

	// LastSeen is in unix seconds
	LastSeen      int64
	Participating bool
}

// AddFriendInput contains parameters for extending the social graph
type AddFriendInput struct {
	ParticipantID string
	FriendID      string
}

// FindNearbyInput contains parameters for a proximity search
type FindNearbyInput struct {
	Center      models.Coordinates
	MaxDistance float64 // meters
	Limit       int
}

// FindNearbyOutput contains the participants found, nearest first
type FindNearbyOutput struct {
	Participants []*models.Participant
}
