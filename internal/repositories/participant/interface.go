package participant

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/faceoff/internal/repositories/participant Repository

import (
	"context"

	"github.com/KirkDiggler/faceoff/internal/models"
)

// Repository is the participant directory
type Repository interface {
	// SaveParticipant upserts profile fields. The score is never written here.
	SaveParticipant(ctx context.Context, input *SaveParticipantInput) error

	// GetParticipant retrieves a participant by ID
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error)

	// ApplyScoreDelta atomically adds a delta to the score and returns the new score
	ApplyScoreDelta(ctx context.Context, input *ApplyScoreDeltaInput) (*ApplyScoreDeltaOutput, error)

	// UpdateLocation moves an existing participant
	UpdateLocation(ctx context.Context, input *UpdateLocationInput) error

	// UpdatePresence stamps last-seen and the participation flag
	UpdatePresence(ctx context.Context, input *UpdatePresenceInput) error

	// AddFriend adds an ID to a participant's social graph
	AddFriend(ctx context.Context, input *AddFriendInput) error

	// FindNearby returns participating profiles around a point, nearest first
	FindNearby(ctx context.Context, input *FindNearbyInput) (*FindNearbyOutput, error)
}
