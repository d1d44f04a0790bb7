package participant

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/faceoff/internal/services/participant Service

import "context"

// Service defines account level operations
type Service interface {
	// Login registers or refreshes a profile and opts it into matchmaking
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetProfile retrieves a participant's profile
	GetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error)

	// UpdateLocation moves a participant
	UpdateLocation(ctx context.Context, input *UpdateLocationInput) (*UpdateLocationOutput, error)

	// ListNearby lists participating users around a participant
	ListNearby(ctx context.Context, input *ListNearbyInput) (*ListNearbyOutput, error)

	// AddFriend connects two participants in both directions
	AddFriend(ctx context.Context, input *AddFriendInput) (*AddFriendOutput, error)

	// Poke nudges another participant
	Poke(ctx context.Context, input *PokeInput) (*PokeOutput, error)
}
