package matchmaker

// MatchmakerError is a custom error type for matchmaking errors
type MatchmakerError string

// Error implements the error interface
func (e MatchmakerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNoOpponent   MatchmakerError = "no eligible opponent"
	ErrNilConfig    MatchmakerError = "config cannot be nil"
	ErrNilDirectory MatchmakerError = "participant directory cannot be nil"
	ErrNilRandom    MatchmakerError = "random source cannot be nil"
	ErrNilClock     MatchmakerError = "clock cannot be nil"
	ErrNilRequester MatchmakerError = "requester cannot be nil"
)
