package participant

// ParticipantError is a custom error type for account errors
type ParticipantError string

// Error implements the error interface
func (e ParticipantError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrParticipantNotFound  ParticipantError = "participant not found"
	ErrRecipientUnavailable ParticipantError = "recipient is not participating"
	ErrSelfFriendship       ParticipantError = "a participant cannot befriend themselves"
	ErrInvalidLocation      ParticipantError = "location is too close to a pole to be matched"
	ErrNilConfig            ParticipantError = "config cannot be nil"
	ErrNilDirectory         ParticipantError = "participant directory cannot be nil"
	ErrNilDispatcher        ParticipantError = "notification dispatcher cannot be nil"
	ErrNilClock             ParticipantError = "clock cannot be nil"
)
