package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/faceoff/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetNotificationMessage renders a push payload as chat text
	GetNotificationMessage(ctx context.Context, input *GetNotificationMessageInput) (*GetNotificationMessageOutput, error)

	// GetDuelSummaryMessage returns a one-line summary of a duel from one participant's side
	GetDuelSummaryMessage(ctx context.Context, input *GetDuelSummaryMessageInput) (*GetDuelSummaryMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
