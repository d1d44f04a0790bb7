package duel

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/faceoff/internal/log"
	"github.com/KirkDiggler/faceoff/internal/metrics"
	"github.com/KirkDiggler/faceoff/internal/models"
	duelRepo "github.com/KirkDiggler/faceoff/internal/repositories/duel"
)

// transitionResult describes what a transition did to its duel copy
type transitionResult struct {
	changed bool

	// accept
	established bool
	already     bool

	// abort
	aborted bool

	// interact
	recorded bool
	outcome  Outcome

	// shared by accept and interact
	ignored bool
}

// transitionFunc mutates a private copy of the duel
type transitionFunc func(d *models.Duel) (*transitionResult, error)

// mutate runs fn against the latest duel and commits the result with a
// version check, retrying on conflicts. The result belongs to the attempt
// that committed, so callers may act on it exactly once.
func (s *service) mutate(ctx context.Context, operation, duelID string, fn transitionFunc) (*models.Duel, *transitionResult, error) {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		current, err := s.load(ctx, duelID)
		if err != nil {
			return nil, nil, err
		}

		next := current.Copy()
		result, err := fn(next)
		if err != nil {
			return nil, nil, err
		}

		if !result.changed {
			return current, result, nil
		}

		next.UpdatedAt = s.clock.Now()
		updated, err := s.duelRepo.UpdateDuel(ctx, &duelRepo.UpdateDuelInput{
			Duel:            next,
			ExpectedVersion: current.Version,
		})
		if err != nil {
			if errors.Is(err, duelRepo.ErrVersionConflict) {
				metrics.DuelConflictRetriesTotal.WithLabelValues(operation).Inc()
				s.logger.Debug().
					Str(log.FieldDuelID, duelID).
					Int(log.FieldAttempt, attempt).
					Int64(log.FieldVersion, current.Version).
					Msgf("%s lost a race, retrying", operation)
				continue
			}
			if errors.Is(err, duelRepo.ErrDuelNotFound) {
				return nil, nil, ErrDuelNotFound
			}
			return nil, nil, fmt.Errorf("failed to update duel: %w", err)
		}

		if updated.State != current.State {
			metrics.DuelTransitionsTotal.WithLabelValues(string(updated.State)).Inc()
			s.logger.Info().
				Str(log.FieldDuelID, duelID).
				Str(log.FieldOldState, string(current.State)).
				Str(log.FieldNewState, string(updated.State)).
				Msg("duel state changed")
		}

		return updated, result, nil
	}

	s.logger.Warn().
		Str(log.FieldDuelID, duelID).
		Int(log.FieldAttempt, s.maxRetries).
		Msgf("%s gave up after repeated conflicts", operation)

	return nil, nil, ErrTooManyConflicts
}

func applyAccept(d *models.Duel, participantID string) (*transitionResult, error) {
	me, ok := d.Contender(participantID)
	if !ok {
		return nil, ErrParticipantNotInDuel
	}

	if d.State == models.DuelStateAborted {
		return &transitionResult{ignored: true}, nil
	}

	if me.Accepted {
		return &transitionResult{already: true}, nil
	}

	me.Accepted = true
	result := &transitionResult{changed: true}
	if d.IsEstablished() && d.State.IsInitializing() {
		d.State = models.DuelStateInProgress
		result.established = true
	}

	return result, nil
}

func applyAbort(d *models.Duel, participantID string) (*transitionResult, error) {
	if _, ok := d.Contender(participantID); !ok {
		return nil, ErrParticipantNotInDuel
	}

	if d.State.IsTerminal() {
		return &transitionResult{}, nil
	}

	d.Aborted = true
	d.AbortedBy = participantID
	d.State = models.DuelStateAborted

	return &transitionResult{changed: true, aborted: true}, nil
}

func (s *service) applyInteraction(d *models.Duel, participantID string, at int64) (*transitionResult, error) {
	me, ok := d.Contender(participantID)
	if !ok {
		return nil, ErrParticipantNotInDuel
	}

	if !d.State.IsInProgress() {
		return &transitionResult{ignored: true}, nil
	}

	if me.HasInteracted() {
		return &transitionResult{}, nil
	}

	me.InteractedAt = at
	result := &transitionResult{changed: true, recorded: true}

	if d.ParticipantA.HasInteracted() && d.ParticipantB.HasInteracted() {
		result.outcome = s.resolve(d)
	}

	return result, nil
}

// resolve decides the winner of a duel whose contenders both interacted
func (s *service) resolve(d *models.Duel) Outcome {
	d.State = models.DuelStateFinished

	gap := d.ParticipantA.InteractedAt - d.ParticipantB.InteractedAt
	if gap < 0 {
		gap = -gap
	}
	if gap >= s.resolutionWindow.Milliseconds() {
		d.WinnerName = models.DrawMarker
		return OutcomeDrawTimeout
	}

	flipA := s.random.Flip(0.5)
	flipB := s.random.Flip(0.5)
	if flipA == flipB {
		d.WinnerName = models.DrawMarker
		return OutcomeDrawFlip
	}

	winner := d.ParticipantB
	if flipA {
		winner = d.ParticipantA
	}
	d.WinnerID = winner.ID
	d.WinnerName = winner.Name

	return OutcomeWin
}
