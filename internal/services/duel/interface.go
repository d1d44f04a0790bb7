package duel

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/faceoff/internal/services/duel Service

import "context"

// Service defines the duel lifecycle operations
type Service interface {
	// CreateDuel opens a duel between two participants and proposes it to both
	CreateDuel(ctx context.Context, input *CreateDuelInput) (*CreateDuelOutput, error)

	// RequestDuel matches the participant with a nearby friend and creates a duel
	RequestDuel(ctx context.Context, input *RequestDuelInput) (*RequestDuelOutput, error)

	// AcceptDuel records a participant's acceptance
	AcceptDuel(ctx context.Context, input *AcceptDuelInput) (*AcceptDuelOutput, error)

	// AbortDuel gives up a duel at the cost of one point
	AbortDuel(ctx context.Context, input *AbortDuelInput) (*AbortDuelOutput, error)

	// RecordInteraction records the moment a participant met their opponent
	RecordInteraction(ctx context.Context, input *RecordInteractionInput) (*RecordInteractionOutput, error)

	// GetDuel retrieves a duel
	GetDuel(ctx context.Context, input *GetDuelInput) (*GetDuelOutput, error)

	// ListDuels returns a participant's duel history, newest first
	ListDuels(ctx context.Context, input *ListDuelsInput) (*ListDuelsOutput, error)
}
