package duel

// DuelError is a custom error type for duel errors
type DuelError string

// Error implements the error interface
func (e DuelError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrDuelNotFound         DuelError = "duel not found"
	ErrParticipantNotFound  DuelError = "participant not found"
	ErrParticipantNotInDuel DuelError = "participant not in duel"
	ErrSameParticipant      DuelError = "a participant cannot duel themselves"
	ErrTooManyConflicts     DuelError = "too many concurrent updates, giving up"
	ErrNilConfig            DuelError = "config cannot be nil"
	ErrNilDuelRepo          DuelError = "duel repository cannot be nil"
	ErrNilDirectory         DuelError = "participant directory cannot be nil"
	ErrNilMatchmaker        DuelError = "matchmaker cannot be nil"
	ErrNilDispatcher        DuelError = "notification dispatcher cannot be nil"
	ErrNilRandom            DuelError = "random source cannot be nil"
	ErrNilClock             DuelError = "clock cannot be nil"
)
