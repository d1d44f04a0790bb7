package matchmaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/faceoff/internal/chance"
	"github.com/KirkDiggler/faceoff/internal/common/clock"
	"github.com/KirkDiggler/faceoff/internal/geo"
	"github.com/KirkDiggler/faceoff/internal/log"
	"github.com/KirkDiggler/faceoff/internal/metrics"
	"github.com/KirkDiggler/faceoff/internal/models"
	participantRepo "github.com/KirkDiggler/faceoff/internal/repositories/participant"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// service implements the Service interface
type service struct {
	directory         participantRepo.Repository
	random            chance.Source
	clock             clock.Clock
	maxDistanceMeters float64
	recencyWindow     time.Duration
	concurrency       int
	logger            zerolog.Logger
}

// New creates a new matchmaker
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Directory == nil {
		return nil, ErrNilDirectory
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	maxDistance := cfg.MaxDistanceMeters
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistanceMeters
	}

	recency := cfg.RecencyWindow
	if recency <= 0 {
		recency = DefaultRecencyWindow
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	logger := log.WithComponent("matchmaker")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &service{
		directory:         cfg.Directory,
		random:            cfg.Random,
		clock:             cfg.Clock,
		maxDistanceMeters: maxDistance,
		recencyWindow:     recency,
		concurrency:       concurrency,
		logger:            logger,
	}, nil
}

// FindOpponent picks one eligible friend of the requester uniformly at random.
// A friend is eligible when they exist, participate, are within range of the
// requester and logged in within the recency window.
func (s *service) FindOpponent(ctx context.Context, input *FindOpponentInput) (*FindOpponentOutput, error) {
	if input == nil || input.Requester == nil {
		return nil, ErrNilRequester
	}

	candidates, err := s.eligibleFriends(ctx, input.Requester)
	if err != nil {
		metrics.MatchmakingTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if len(candidates) == 0 {
		metrics.MatchmakingTotal.WithLabelValues("no_opponent").Inc()
		return nil, ErrNoOpponent
	}

	// Every candidate, the last one included, is equally likely
	opponent := candidates[0]
	if len(candidates) > 1 {
		opponent = candidates[s.random.Intn(len(candidates))]
	}

	metrics.MatchmakingTotal.WithLabelValues("matched").Inc()
	s.logger.Debug().
		Str(log.FieldParticipantID, input.Requester.ID).
		Str(log.FieldOpponentID, opponent.ID).
		Int("candidates", len(candidates)).
		Msg("opponent selected")

	return &FindOpponentOutput{
		Opponent:   opponent,
		Candidates: len(candidates),
	}, nil
}

// eligibleFriends looks friends up concurrently and returns the eligible ones in friend-list order
func (s *service) eligibleFriends(ctx context.Context, requester *models.Participant) ([]*models.Participant, error) {
	friendIDs := uniqueFriends(requester)
	if len(friendIDs) == 0 {
		return nil, nil
	}

	now := s.clock.Now().Unix()
	slots := make([]*models.Participant, len(friendIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range friendIDs {
		i, id := i, id
		g.Go(func() error {
			friend, err := s.directory.GetParticipant(gctx, &participantRepo.GetParticipantInput{
				ParticipantID: id,
			})
			if err != nil {
				if errors.Is(err, participantRepo.ErrParticipantNotFound) {
					return nil
				}
				return fmt.Errorf("failed to look up friend %s: %w", id, err)
			}

			if s.eligible(requester, friend, now) {
				slots[i] = friend
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]*models.Participant, 0, len(slots))
	for _, c := range slots {
		if c != nil {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

func (s *service) eligible(requester, friend *models.Participant, now int64) bool {
	if !friend.Participating {
		return false
	}
	if now-friend.LastSeen > int64(s.recencyWindow/time.Second) {
		return false
	}
	return geo.Within(requester.Location, friend.Location, s.maxDistanceMeters)
}

func uniqueFriends(requester *models.Participant) []string {
	seen := make(map[string]struct{}, len(requester.FriendIDs))
	ids := make([]string, 0, len(requester.FriendIDs))
	for _, id := range requester.FriendIDs {
		if id == "" || id == requester.ID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
