package matchmaker

import (
	"time"

	"github.com/KirkDiggler/faceoff/internal/chance"
	"github.com/KirkDiggler/faceoff/internal/common/clock"
	"github.com/KirkDiggler/faceoff/internal/models"
	participantRepo "github.com/KirkDiggler/faceoff/internal/repositories/participant"
	"github.com/rs/zerolog"
)

const (
	// DefaultMaxDistanceMeters is how close a friend must be to be matched
	DefaultMaxDistanceMeters = 100

	// DefaultRecencyWindow is how recently a friend must have logged in
	DefaultRecencyWindow = time.Hour

	// DefaultConcurrency bounds parallel profile lookups
	DefaultConcurrency = 8
)

// Config holds configuration for the matchmaker
type Config struct {
	Directory participantRepo.Repository
	Random    chance.Source
	Clock     clock.Clock

	// MaxDistanceMeters defaults to DefaultMaxDistanceMeters
	MaxDistanceMeters float64

	// RecencyWindow defaults to DefaultRecencyWindow
	RecencyWindow time.Duration

	// Concurrency defaults to DefaultConcurrency
	Concurrency int

	Logger *zerolog.Logger
}

// FindOpponentInput contains parameters for finding an opponent
type FindOpponentInput struct {
	// Requester is the freshly loaded profile of the participant asking for a duel
	Requester *models.Participant
}

// FindOpponentOutput contains the chosen opponent
type FindOpponentOutput struct {
	Opponent *models.Participant

	// Candidates is how many friends were eligible
	Candidates int
}
