package duel

import (
	"context"

	"github.com/KirkDiggler/faceoff/internal/log"
	"github.com/KirkDiggler/faceoff/internal/metrics"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/KirkDiggler/faceoff/internal/notify"
	participantRepo "github.com/KirkDiggler/faceoff/internal/repositories/participant"
)

// Everything here runs after a transition committed. Failures are logged and
// counted but never undo or fail the transition.

func (s *service) announceEstablished(ctx context.Context, d *models.Duel) {
	payload := establishedPayload(d)
	s.sendToID(ctx, d.ParticipantA.ID, payload)
	s.sendToID(ctx, d.ParticipantB.ID, payload)
}

func (s *service) settleAbort(ctx context.Context, d *models.Duel, aborterID string) {
	s.applyScoreDelta(ctx, d.ID, aborterID, AbortPenalty)

	aborter, _ := d.Contender(aborterID)
	payload := abortedPayload(d, aborter)
	s.sendToID(ctx, d.ParticipantA.ID, payload)
	s.sendToID(ctx, d.ParticipantB.ID, payload)
}

func (s *service) settleResolution(ctx context.Context, d *models.Duel) {
	if d.IsDraw() {
		s.sendToID(ctx, d.ParticipantA.ID, drawPayload(d.ParticipantB.Name))
		s.sendToID(ctx, d.ParticipantB.ID, drawPayload(d.ParticipantA.Name))
		return
	}

	winner, _ := d.Contender(d.WinnerID)
	loser, _ := d.Opponent(d.WinnerID)

	winnerScore := s.applyScoreDelta(ctx, d.ID, winner.ID, WinPoints)

	var loserScore *int64
	loserProfile, err := s.lookup(ctx, loser.ID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str(log.FieldDuelID, d.ID).
			Str(log.FieldParticipantID, loser.ID).
			Msg("failed to load loser for notification")
	} else {
		score := loserProfile.Score
		loserScore = &score
	}

	s.sendToID(ctx, winner.ID, wonPayload(winnerScore, loser.Name))
	if loserProfile != nil {
		s.send(ctx, loserProfile, lostPayload(loserScore, winner.Name))
	}
}

// applyScoreDelta returns the new score, or nil if the delta failed
func (s *service) applyScoreDelta(ctx context.Context, duelID, participantID string, delta int64) *int64 {
	out, err := s.directory.ApplyScoreDelta(ctx, &participantRepo.ApplyScoreDeltaInput{
		ParticipantID: participantID,
		Delta:         delta,
	})
	if err != nil {
		metrics.ScoreDeltaFailuresTotal.Inc()
		s.logger.Error().Err(err).
			Str(log.FieldDuelID, duelID).
			Str(log.FieldParticipantID, participantID).
			Int64("delta", delta).
			Msg("failed to apply score delta")
		return nil
	}

	score := out.Score
	return &score
}

func (s *service) sendToID(ctx context.Context, participantID string, payload *models.Payload) {
	recipient, err := s.lookup(ctx, participantID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str(log.FieldRecipientID, participantID).
			Str(log.FieldSubtype, string(payload.Subtype)).
			Msg("failed to load recipient")
		return
	}
	s.send(ctx, recipient, payload)
}

func (s *service) send(ctx context.Context, recipient *models.Participant, payload *models.Payload) {
	err := s.dispatcher.Send(ctx, &notify.SendInput{
		Recipient: recipient,
		Payload:   payload,
		TTL:       s.notificationTTL,
	})
	if err != nil {
		s.logger.Warn().Err(err).
			Str(log.FieldRecipientID, recipient.ID).
			Str(log.FieldSubtype, string(payload.Subtype)).
			Msg("failed to deliver notification")
	}
}
