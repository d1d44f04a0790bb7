package models

// PayloadType is the coarse category of a push payload
type PayloadType string

const (
	// PayloadTypeGame covers everything a duel emits
	PayloadTypeGame PayloadType = "game"

	// PayloadTypeServer covers account level events
	PayloadTypeServer PayloadType = "server"
)

// PayloadSubtype names one entry of the payload catalogue
type PayloadSubtype string

const (
	PayloadSubtypeProposed    PayloadSubtype = "proposed"
	PayloadSubtypeEstablished PayloadSubtype = "established"
	PayloadSubtypeAborted     PayloadSubtype = "aborted"
	PayloadSubtypeWon         PayloadSubtype = "won"
	PayloadSubtypeLost        PayloadSubtype = "lost"
	PayloadSubtypeDraw        PayloadSubtype = "draw"
	PayloadSubtypePoke        PayloadSubtype = "poke"
	PayloadSubtypeLogin       PayloadSubtype = "login"
)

// Payload is the message delivered to a participant's device.
// Only the fields belonging to the subtype are set.
type Payload struct {
	Type    PayloadType    `json:"type"`
	Subtype PayloadSubtype `json:"subtype"`

	SessionID string `json:"sessionId,omitempty"`

	ParticipantAID   string `json:"participantAId,omitempty"`
	ParticipantBID   string `json:"participantBId,omitempty"`
	ParticipantAName string `json:"participantAName,omitempty"`
	ParticipantBName string `json:"participantBName,omitempty"`

	AborterID   string `json:"aborterId,omitempty"`
	AborterName string `json:"aborterName,omitempty"`

	// NewScore is a pointer so a score of zero is still sent
	NewScore     *int64 `json:"newScore,omitempty"`
	OpponentName string `json:"opponentName,omitempty"`

	SenderID   string `json:"senderId,omitempty"`
	SenderName string `json:"senderName,omitempty"`
}
