package log

// Canonical field names for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"

	FieldDuelID        = "duel_id"
	FieldParticipantID = "participant_id"
	FieldOpponentID    = "opponent_id"
	FieldRecipientID   = "recipient_id"
	FieldSubtype       = "subtype"
	FieldTransport     = "transport"

	FieldOldState = "old_state"
	FieldNewState = "new_state"
	FieldAttempt  = "attempt"
	FieldVersion  = "version"
)
