package duel

import "github.com/KirkDiggler/faceoff/internal/models"

func proposedPayload(d *models.Duel) *models.Payload {
	return &models.Payload{
		Type:             models.PayloadTypeGame,
		Subtype:          models.PayloadSubtypeProposed,
		SessionID:        d.ID,
		ParticipantAID:   d.ParticipantA.ID,
		ParticipantBID:   d.ParticipantB.ID,
		ParticipantAName: d.ParticipantA.Name,
		ParticipantBName: d.ParticipantB.Name,
	}
}

func establishedPayload(d *models.Duel) *models.Payload {
	return &models.Payload{
		Type:      models.PayloadTypeGame,
		Subtype:   models.PayloadSubtypeEstablished,
		SessionID: d.ID,
	}
}

func abortedPayload(d *models.Duel, aborter *models.Contender) *models.Payload {
	return &models.Payload{
		Type:        models.PayloadTypeGame,
		Subtype:     models.PayloadSubtypeAborted,
		SessionID:   d.ID,
		AborterID:   aborter.ID,
		AborterName: aborter.Name,
	}
}

// wonPayload and lostPayload leave newScore out when the score is unknown
func wonPayload(newScore *int64, opponentName string) *models.Payload {
	return &models.Payload{
		Type:         models.PayloadTypeGame,
		Subtype:      models.PayloadSubtypeWon,
		NewScore:     newScore,
		OpponentName: opponentName,
	}
}

func lostPayload(newScore *int64, opponentName string) *models.Payload {
	return &models.Payload{
		Type:         models.PayloadTypeGame,
		Subtype:      models.PayloadSubtypeLost,
		NewScore:     newScore,
		OpponentName: opponentName,
	}
}

func drawPayload(opponentName string) *models.Payload {
	return &models.Payload{
		Type:         models.PayloadTypeGame,
		Subtype:      models.PayloadSubtypeDraw,
		OpponentName: opponentName,
	}
}
