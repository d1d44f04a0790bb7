package duel

import (
	"time"

	"github.com/KirkDiggler/faceoff/internal/chance"
	"github.com/KirkDiggler/faceoff/internal/common/clock"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/KirkDiggler/faceoff/internal/notify"
	duelRepo "github.com/KirkDiggler/faceoff/internal/repositories/duel"
	participantRepo "github.com/KirkDiggler/faceoff/internal/repositories/participant"
	"github.com/KirkDiggler/faceoff/internal/services/matchmaker"
	"github.com/rs/zerolog"
)

const (
	// DefaultResolutionWindow is the largest interaction gap that still gets a coin flip
	DefaultResolutionWindow = 60 * time.Second

	// DefaultMaxRetries bounds attempts per transition when writers collide
	DefaultMaxRetries = 5

	// WinPoints is awarded to the winner
	WinPoints int64 = 5

	// AbortPenalty is applied to whoever aborts
	AbortPenalty int64 = -1
)

// Outcome describes how a duel was resolved
type Outcome string

const (
	// OutcomeWin means exactly one coin flip came up
	OutcomeWin Outcome = "win"

	// OutcomeDrawFlip means both flips agreed
	OutcomeDrawFlip Outcome = "draw_flip"

	// OutcomeDrawTimeout means the interactions were too far apart
	OutcomeDrawTimeout Outcome = "draw_timeout"
)

// Config holds configuration for the duel service
type Config struct {
	// Repository dependencies
	DuelRepo  duelRepo.Repository
	Directory participantRepo.Repository

	// Service dependencies
	Matchmaker matchmaker.Service
	Dispatcher notify.Dispatcher
	Random     chance.Source
	Clock      clock.Clock

	// ResolutionWindow defaults to DefaultResolutionWindow
	ResolutionWindow time.Duration

	// MaxRetries defaults to DefaultMaxRetries
	MaxRetries int

	// NotificationTTL is passed to the dispatcher, zero leaves the transport default
	NotificationTTL time.Duration

	Logger *zerolog.Logger
}

// CreateDuelInput contains parameters for creating a duel
type CreateDuelInput struct {
	ParticipantA *models.Participant
	ParticipantB *models.Participant
}

// CreateDuelOutput contains the created duel
type CreateDuelOutput struct {
	Duel *models.Duel
}

// RequestDuelInput contains parameters for requesting a duel
type RequestDuelInput struct {
	ParticipantID string
}

// RequestDuelOutput contains the duel and the matched opponent
type RequestDuelOutput struct {
	Duel     *models.Duel
	Opponent *models.Participant
}

// AcceptDuelInput contains parameters for accepting a duel
type AcceptDuelInput struct {
	DuelID        string
	ParticipantID string
}

// AcceptDuelOutput contains the result of accepting a duel
type AcceptDuelOutput struct {
	Duel *models.Duel

	// Established is true only for the call that moved the duel into progress
	Established bool

	// AlreadyAccepted indicates the participant had accepted before
	AlreadyAccepted bool

	// Ignored indicates the duel was aborted and nothing changed
	Ignored bool
}

// AbortDuelInput contains parameters for aborting a duel
type AbortDuelInput struct {
	DuelID        string
	ParticipantID string
}

// AbortDuelOutput contains the result of aborting a duel
type AbortDuelOutput struct {
	Duel *models.Duel

	// Aborted is true only for the call that aborted the duel
	Aborted bool
}

// RecordInteractionInput contains parameters for recording an interaction
type RecordInteractionInput struct {
	DuelID        string
	ParticipantID string
}

// RecordInteractionOutput contains the result of recording an interaction
type RecordInteractionOutput struct {
	Duel *models.Duel

	// Recorded is true when this call stored the participant's first interaction
	Recorded bool

	// Ignored indicates the duel was not in progress
	Ignored bool

	// Resolved is true only for the call that finished the duel
	Resolved bool

	// Outcome is set when Resolved is true
	Outcome Outcome
}

// GetDuelInput contains parameters for retrieving a duel
type GetDuelInput struct {
	DuelID string
}

// GetDuelOutput contains the duel
type GetDuelOutput struct {
	Duel *models.Duel
}

// ListDuelsInput contains parameters for listing a participant's duels
type ListDuelsInput struct {
	ParticipantID string

	// Limit caps the result, zero means everything
	Limit int
}

// ListDuelsOutput contains the duels, newest first
type ListDuelsOutput struct {
	Duels []*models.Duel
}
