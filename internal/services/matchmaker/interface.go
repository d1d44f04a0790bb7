package matchmaker

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/faceoff/internal/services/matchmaker Service

import "context"

// Service selects duel opponents
type Service interface {
	// FindOpponent picks one eligible friend of the requester uniformly at random
	FindOpponent(ctx context.Context, input *FindOpponentInput) (*FindOpponentOutput, error)
}
