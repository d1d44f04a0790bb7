package duel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/faceoff/internal/chance"
	"github.com/KirkDiggler/faceoff/internal/common/clock"
	"github.com/KirkDiggler/faceoff/internal/log"
	"github.com/KirkDiggler/faceoff/internal/metrics"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/KirkDiggler/faceoff/internal/notify"
	duelRepo "github.com/KirkDiggler/faceoff/internal/repositories/duel"
	participantRepo "github.com/KirkDiggler/faceoff/internal/repositories/participant"
	"github.com/KirkDiggler/faceoff/internal/services/matchmaker"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	duelRepo         duelRepo.Repository
	directory        participantRepo.Repository
	matchmaker       matchmaker.Service
	dispatcher       notify.Dispatcher
	random           chance.Source
	clock            clock.Clock
	resolutionWindow time.Duration
	maxRetries       int
	notificationTTL  time.Duration
	logger           zerolog.Logger
}

// New creates a new duel service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.DuelRepo == nil {
		return nil, ErrNilDuelRepo
	}

	if cfg.Directory == nil {
		return nil, ErrNilDirectory
	}

	if cfg.Matchmaker == nil {
		return nil, ErrNilMatchmaker
	}

	if cfg.Dispatcher == nil {
		return nil, ErrNilDispatcher
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	window := cfg.ResolutionWindow
	if window <= 0 {
		window = DefaultResolutionWindow
	}

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = DefaultMaxRetries
	}

	logger := log.WithComponent("duel")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &service{
		duelRepo:         cfg.DuelRepo,
		directory:        cfg.Directory,
		matchmaker:       cfg.Matchmaker,
		dispatcher:       cfg.Dispatcher,
		random:           cfg.Random,
		clock:            cfg.Clock,
		resolutionWindow: window,
		maxRetries:       retries,
		notificationTTL:  cfg.NotificationTTL,
		logger:           logger,
	}, nil
}

// CreateDuel opens a duel between two participants and proposes it to both
func (s *service) CreateDuel(ctx context.Context, input *CreateDuelInput) (*CreateDuelOutput, error) {
	if input == nil || input.ParticipantA == nil || input.ParticipantB == nil {
		return nil, errors.New("input and both participants cannot be nil")
	}

	a, b := input.ParticipantA, input.ParticipantB
	if a.ID == b.ID {
		return nil, ErrSameParticipant
	}

	now := s.clock.Now()
	created, err := s.duelRepo.CreateDuel(ctx, &duelRepo.CreateDuelInput{
		Duel: &models.Duel{
			ParticipantA: models.Contender{ID: a.ID, Name: a.Name, InteractedAt: models.NoInteraction},
			ParticipantB: models.Contender{ID: b.ID, Name: b.Name, InteractedAt: models.NoInteraction},
			State:        models.DuelStateInitializing,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create duel: %w", err)
	}

	metrics.DuelsCreatedTotal.Inc()
	s.logger.Info().
		Str(log.FieldDuelID, created.ID).
		Str(log.FieldParticipantID, a.ID).
		Str(log.FieldOpponentID, b.ID).
		Msg("duel created")

	effectCtx := context.WithoutCancel(ctx)
	payload := proposedPayload(created)
	s.send(effectCtx, a, payload)
	s.send(effectCtx, b, payload)

	return &CreateDuelOutput{
		Duel: created,
	}, nil
}

// RequestDuel matches the participant with a nearby friend and creates a duel.
// Returns matchmaker.ErrNoOpponent when nobody is eligible.
func (s *service) RequestDuel(ctx context.Context, input *RequestDuelInput) (*RequestDuelOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	requester, err := s.lookup(ctx, input.ParticipantID)
	if err != nil {
		return nil, err
	}

	// Asking for a duel counts as activity for friends' recency checks
	if err := s.directory.UpdatePresence(ctx, &participantRepo.UpdatePresenceInput{
		ParticipantID: requester.ID,
		LastSeen:      s.clock.Now().Unix(),
		Participating: true,
	}); err != nil {
		s.logger.Warn().Err(err).
			Str(log.FieldParticipantID, requester.ID).
			Msg("failed to refresh presence")
	}

	match, err := s.matchmaker.FindOpponent(ctx, &matchmaker.FindOpponentInput{
		Requester: requester,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.CreateDuel(ctx, &CreateDuelInput{
		ParticipantA: requester,
		ParticipantB: match.Opponent,
	})
	if err != nil {
		return nil, err
	}

	return &RequestDuelOutput{
		Duel:     created.Duel,
		Opponent: match.Opponent,
	}, nil
}

// AcceptDuel records a participant's acceptance. The call that completes both
// acceptances moves the duel into progress and announces it.
func (s *service) AcceptDuel(ctx context.Context, input *AcceptDuelInput) (*AcceptDuelOutput, error) {
	if input == nil || input.DuelID == "" || input.ParticipantID == "" {
		return nil, errors.New("input, duel ID and participant ID cannot be empty")
	}

	duel, result, err := s.mutate(ctx, "accept", input.DuelID, func(d *models.Duel) (*transitionResult, error) {
		return applyAccept(d, input.ParticipantID)
	})
	if err != nil {
		return nil, err
	}

	if result.established {
		s.announceEstablished(context.WithoutCancel(ctx), duel)
	}

	return &AcceptDuelOutput{
		Duel:            duel,
		Established:     result.established,
		AlreadyAccepted: result.already,
		Ignored:         result.ignored,
	}, nil
}

// AbortDuel gives up a duel. The aborting participant loses a point once.
func (s *service) AbortDuel(ctx context.Context, input *AbortDuelInput) (*AbortDuelOutput, error) {
	if input == nil || input.DuelID == "" || input.ParticipantID == "" {
		return nil, errors.New("input, duel ID and participant ID cannot be empty")
	}

	duel, result, err := s.mutate(ctx, "abort", input.DuelID, func(d *models.Duel) (*transitionResult, error) {
		return applyAbort(d, input.ParticipantID)
	})
	if err != nil {
		return nil, err
	}

	if result.aborted {
		s.settleAbort(context.WithoutCancel(ctx), duel, input.ParticipantID)
	}

	return &AbortDuelOutput{
		Duel:    duel,
		Aborted: result.aborted,
	}, nil
}

// RecordInteraction stores the first interaction of a participant. Once both
// participants interacted the duel is resolved, exactly once.
func (s *service) RecordInteraction(ctx context.Context, input *RecordInteractionInput) (*RecordInteractionOutput, error) {
	if input == nil || input.DuelID == "" || input.ParticipantID == "" {
		return nil, errors.New("input, duel ID and participant ID cannot be empty")
	}

	// Taken once so retries do not move the interaction
	at := s.clock.Now().UnixMilli()

	duel, result, err := s.mutate(ctx, "interact", input.DuelID, func(d *models.Duel) (*transitionResult, error) {
		return s.applyInteraction(d, input.ParticipantID, at)
	})
	if err != nil {
		return nil, err
	}

	if result.outcome != "" {
		metrics.DuelOutcomesTotal.WithLabelValues(string(result.outcome)).Inc()
		s.settleResolution(context.WithoutCancel(ctx), duel)
	}

	return &RecordInteractionOutput{
		Duel:     duel,
		Recorded: result.recorded,
		Ignored:  result.ignored,
		Resolved: result.outcome != "",
		Outcome:  result.outcome,
	}, nil
}

// GetDuel retrieves a duel
func (s *service) GetDuel(ctx context.Context, input *GetDuelInput) (*GetDuelOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.New("input and duel ID cannot be empty")
	}

	duel, err := s.load(ctx, input.DuelID)
	if err != nil {
		return nil, err
	}

	return &GetDuelOutput{
		Duel: duel,
	}, nil
}

// ListDuels returns a participant's duel history, newest first
func (s *service) ListDuels(ctx context.Context, input *ListDuelsInput) (*ListDuelsOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	out, err := s.duelRepo.ListDuelsByParticipant(ctx, &duelRepo.ListDuelsByParticipantInput{
		ParticipantID: input.ParticipantID,
		Limit:         input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list duels: %w", err)
	}

	return &ListDuelsOutput{
		Duels: out.Duels,
	}, nil
}

func (s *service) load(ctx context.Context, duelID string) (*models.Duel, error) {
	duel, err := s.duelRepo.GetDuel(ctx, &duelRepo.GetDuelInput{
		DuelID: duelID,
	})
	if err != nil {
		if errors.Is(err, duelRepo.ErrDuelNotFound) {
			return nil, ErrDuelNotFound
		}
		return nil, fmt.Errorf("failed to get duel: %w", err)
	}
	return duel, nil
}

func (s *service) lookup(ctx context.Context, participantID string) (*models.Participant, error) {
	p, err := s.directory.GetParticipant(ctx, &participantRepo.GetParticipantInput{
		ParticipantID: participantID,
	})
	if err != nil {
		if errors.Is(err, participantRepo.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}
