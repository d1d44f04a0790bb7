package duel

import "github.com/KirkDiggler/faceoff/internal/models"

type CreateDuelInput struct {
	Duel *models.Duel
}

type GetDuelInput struct {
	DuelID string
}

type UpdateDuelInput struct {
	Duel            *models.Duel
	ExpectedVersion int64
}

type ListDuelsByParticipantInput struct {
	ParticipantID string

	// Limit caps the result, zero means everything
	Limit int
}

type ListDuelsByParticipantOutput struct {
	Duels []*models.Duel
}
