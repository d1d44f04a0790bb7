package participant

import "github.com/KirkDiggler/faceoff/internal/models"

func loginPayload() *models.Payload {
	return &models.Payload{
		Type:    models.PayloadTypeServer,
		Subtype: models.PayloadSubtypeLogin,
	}
}

func pokePayload(sender *models.Participant) *models.Payload {
	return &models.Payload{
		Type:       models.PayloadTypeGame,
		Subtype:    models.PayloadSubtypePoke,
		SenderID:   sender.ID,
		SenderName: sender.Name,
	}
}
