package participant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/faceoff/internal/common/clock"
	"github.com/KirkDiggler/faceoff/internal/log"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/KirkDiggler/faceoff/internal/notify"
	participantRepo "github.com/KirkDiggler/faceoff/internal/repositories/participant"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	directory    participantRepo.Repository
	dispatcher   notify.Dispatcher
	clock        clock.Clock
	nearbyRadius float64
	nearbyLimit  int
	pokeTTL      time.Duration
	logger       zerolog.Logger
}

// New creates a new participant service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Directory == nil {
		return nil, ErrNilDirectory
	}

	if cfg.Dispatcher == nil {
		return nil, ErrNilDispatcher
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	radius := cfg.NearbyRadiusMeters
	if radius <= 0 {
		radius = DefaultNearbyRadiusMeters
	}

	limit := cfg.NearbyLimit
	if limit <= 0 {
		limit = DefaultNearbyLimit
	}

	pokeTTL := cfg.PokeTTL
	if pokeTTL <= 0 {
		pokeTTL = DefaultPokeTTL
	}

	logger := log.WithComponent("participant")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &service{
		directory:    cfg.Directory,
		dispatcher:   cfg.Dispatcher,
		clock:        cfg.Clock,
		nearbyRadius: radius,
		nearbyLimit:  limit,
		pokeTTL:      pokeTTL,
		logger:       logger,
	}, nil
}

// Login registers or refreshes a profile, marks it participating and confirms with a server event
func (s *service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	err := s.directory.SaveParticipant(ctx, &participantRepo.SaveParticipantInput{
		Participant: &models.Participant{
			ID:            input.ParticipantID,
			Name:          input.Name,
			DeviceToken:   input.DeviceToken,
			Location:      input.Location,
			LastSeen:      s.clock.Now().Unix(),
			Participating: true,
			FriendIDs:     input.FriendIDs,
		},
		ReplaceFriends: input.ReplaceFriends,
	})
	if err != nil {
		if errors.Is(err, participantRepo.ErrInvalidLocation) {
			return nil, ErrInvalidLocation
		}
		return nil, fmt.Errorf("failed to save participant: %w", err)
	}

	stored, err := s.lookup(ctx, input.ParticipantID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str(log.FieldParticipantID, stored.ID).
		Int("friends", len(stored.FriendIDs)).
		Msg("participant logged in")

	if err := s.dispatcher.Send(ctx, &notify.SendInput{
		Recipient: stored,
		Payload:   loginPayload(),
	}); err != nil {
		s.logger.Warn().Err(err).
			Str(log.FieldRecipientID, stored.ID).
			Msg("failed to deliver login event")
	}

	return &LoginOutput{
		Participant: stored,
	}, nil
}

// GetProfile retrieves a participant's profile
func (s *service) GetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	p, err := s.lookup(ctx, input.ParticipantID)
	if err != nil {
		return nil, err
	}

	return &GetProfileOutput{
		Participant: p,
	}, nil
}

// UpdateLocation moves an existing participant
func (s *service) UpdateLocation(ctx context.Context, input *UpdateLocationInput) (*UpdateLocationOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	err := s.directory.UpdateLocation(ctx, &participantRepo.UpdateLocationInput{
		ParticipantID: input.ParticipantID,
		Location:      input.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, participantRepo.ErrParticipantNotFound):
			return nil, ErrParticipantNotFound
		case errors.Is(err, participantRepo.ErrInvalidLocation):
			return nil, ErrInvalidLocation
		}
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	return &UpdateLocationOutput{}, nil
}

// ListNearby lists participating users around the caller, nearest first
func (s *service) ListNearby(ctx context.Context, input *ListNearbyInput) (*ListNearbyOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	me, err := s.lookup(ctx, input.ParticipantID)
	if err != nil {
		return nil, err
	}

	// One extra so dropping the caller still fills the page
	found, err := s.directory.FindNearby(ctx, &participantRepo.FindNearbyInput{
		Center:      me.Location,
		MaxDistance: s.nearbyRadius,
		Limit:       s.nearbyLimit + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby participants: %w", err)
	}

	nearby := make([]*models.Participant, 0, len(found.Participants))
	for _, p := range found.Participants {
		if p.ID == me.ID {
			continue
		}
		if len(nearby) == s.nearbyLimit {
			break
		}
		nearby = append(nearby, p)
	}

	return &ListNearbyOutput{
		Participants: nearby,
	}, nil
}

// AddFriend connects two existing participants in both directions
func (s *service) AddFriend(ctx context.Context, input *AddFriendInput) (*AddFriendOutput, error) {
	if input == nil || input.ParticipantID == "" || input.FriendID == "" {
		return nil, errors.New("input, participant ID and friend ID cannot be empty")
	}

	if input.ParticipantID == input.FriendID {
		return nil, ErrSelfFriendship
	}

	if _, err := s.lookup(ctx, input.ParticipantID); err != nil {
		return nil, err
	}

	friend, err := s.lookup(ctx, input.FriendID)
	if err != nil {
		return nil, err
	}

	for _, pair := range [][2]string{
		{input.ParticipantID, input.FriendID},
		{input.FriendID, input.ParticipantID},
	} {
		err := s.directory.AddFriend(ctx, &participantRepo.AddFriendInput{
			ParticipantID: pair[0],
			FriendID:      pair[1],
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add friend: %w", err)
		}
	}

	return &AddFriendOutput{
		Friend: friend,
	}, nil
}

// Poke nudges a participating user
func (s *service) Poke(ctx context.Context, input *PokeInput) (*PokeOutput, error) {
	if input == nil || input.SenderID == "" || input.RecipientID == "" {
		return nil, errors.New("input, sender ID and recipient ID cannot be empty")
	}

	sender, err := s.lookup(ctx, input.SenderID)
	if err != nil {
		return nil, err
	}

	recipient, err := s.lookup(ctx, input.RecipientID)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return nil, ErrRecipientUnavailable
		}
		return nil, err
	}

	if !recipient.Participating {
		return nil, ErrRecipientUnavailable
	}

	err = s.dispatcher.Send(ctx, &notify.SendInput{
		Recipient: recipient,
		Payload:   pokePayload(sender),
		TTL:       s.pokeTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deliver poke: %w", err)
	}

	return &PokeOutput{
		Recipient: recipient,
	}, nil
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
