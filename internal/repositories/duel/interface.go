package duel

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/faceoff/internal/repositories/duel Repository

import (
	"context"

	"github.com/KirkDiggler/faceoff/internal/models"
)

// Repository defines the interface for duel persistence
type Repository interface {
	// CreateDuel stores a new duel, assigning its ID and version 1
	CreateDuel(ctx context.Context, input *CreateDuelInput) (*models.Duel, error)

	// GetDuel retrieves a duel by ID
	GetDuel(ctx context.Context, input *GetDuelInput) (*models.Duel, error)

	// UpdateDuel replaces a duel only if the stored version still equals ExpectedVersion.
	// Returns ErrVersionConflict when another writer got there first.
	UpdateDuel(ctx context.Context, input *UpdateDuelInput) (*models.Duel, error)

	// ListDuelsByParticipant retrieves a participant's duels, newest first
	ListDuelsByParticipant(ctx context.Context, input *ListDuelsByParticipantInput) (*ListDuelsByParticipantOutput, error)
}
