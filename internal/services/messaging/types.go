package messaging

import (
	"github.com/KirkDiggler/faceoff/internal/chance"
	"github.com/KirkDiggler/faceoff/internal/models"
)

// ErrorType classifies failures the chat surface explains to users
type ErrorType string

const (
	ErrorTypeNotRegistered        ErrorType = "not_registered"
	ErrorTypeNoOpponent           ErrorType = "no_opponent"
	ErrorTypeDuelNotFound         ErrorType = "duel_not_found"
	ErrorTypeNotInDuel            ErrorType = "not_in_duel"
	ErrorTypeRecipientUnavailable ErrorType = "recipient_unavailable"
	ErrorTypeBusy                 ErrorType = "busy"
	ErrorTypeUnknown              ErrorType = "unknown"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Random picks flavor lines, defaults to a time seeded roller
	Random chance.Source
}

// GetNotificationMessageInput contains the payload to render
type GetNotificationMessageInput struct {
	Payload *models.Payload
}

// GetNotificationMessageOutput contains the rendered notification
type GetNotificationMessageOutput struct {
	Title   string
	Message string
}

// GetDuelSummaryMessageInput contains parameters for summarizing a duel
type GetDuelSummaryMessageInput struct {
	Duel *models.Duel

	// ViewerID is the participant the summary is written for
	ViewerID string
}

// GetDuelSummaryMessageOutput contains the summary line
type GetDuelSummaryMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	ErrorType ErrorType
}

// GetErrorMessageOutput contains the error message
type GetErrorMessageOutput struct {
	Title   string
	Message string
}
