package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/faceoff/internal/chance"
	"github.com/KirkDiggler/faceoff/internal/models"
)

// service implements the Service interface
type service struct {
	// Random source for selecting flavor lines
	random chance.Source
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	random := chance.Source(chance.New(nil))
	if config != nil && config.Random != nil {
		random = config.Random
	}

	return &service{
		random: random,
	}, nil
}

func (s *service) pick(lines []string) string {
	return lines[s.random.Intn(len(lines))]
}

// GetNotificationMessage renders a push payload as chat text
func (s *service) GetNotificationMessage(ctx context.Context, input *GetNotificationMessageInput) (*GetNotificationMessageOutput, error) {
	if input == nil || input.Payload == nil {
		return nil, errors.New("input and payload cannot be nil")
	}

	p := input.Payload
	var title, message string

	switch p.Subtype {
	case models.PayloadSubtypeProposed:
		title = "Duel proposed"
		message = fmt.Sprintf("%s vs %s. %s\nAccept with `/duel accept %s`.",
			p.ParticipantAName, p.ParticipantBName,
			s.pick([]string{
				"Someone nearby wants to settle this.",
				"A challenger is within shouting distance.",
				"Stand your ground, or don't.",
			}),
			p.SessionID)
	case models.PayloadSubtypeEstablished:
		title = "Duel on"
		message = fmt.Sprintf("Both sides accepted duel %s. %s\nHit `/duel interact %s` when you face your opponent.",
			p.SessionID,
			s.pick([]string{
				"Go find them.",
				"The clock starts when you meet.",
				"Eyes up.",
			}),
			p.SessionID)
	case models.PayloadSubtypeAborted:
		title = "Duel aborted"
		message = fmt.Sprintf("%s walked away from duel %s.", p.AborterName, p.SessionID)
	case models.PayloadSubtypeWon:
		title = "Victory"
		message = fmt.Sprintf("You beat %s! %s", p.OpponentName, s.pick([]string{
			"Fortune favors the bold.",
			"The coin liked you better.",
			"Flawless.",
		}))
		message += scoreSuffix(p.NewScore)
	case models.PayloadSubtypeLost:
		title = "Defeat"
		message = fmt.Sprintf("%s got the better of you. %s", p.OpponentName, s.pick([]string{
			"Next time.",
			"The coin is fickle.",
			"Shake it off.",
		}))
		message += scoreSuffix(p.NewScore)
	case models.PayloadSubtypeDraw:
		title = "Draw"
		message = fmt.Sprintf("Your duel with %s ended in a draw. Nobody scores.", p.OpponentName)
	case models.PayloadSubtypePoke:
		title = "Poke"
		message = fmt.Sprintf("%s poked you. %s", p.SenderName, s.pick([]string{
			"Looks like someone wants a duel.",
			"Maybe poke back?",
			"Are you around?",
		}))
	case models.PayloadSubtypeLogin:
		title = "Welcome back"
		message = "You are logged in and visible to nearby friends."
	default:
		return nil, fmt.Errorf("unknown payload subtype %q", p.Subtype)
	}

	return &GetNotificationMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}

func scoreSuffix(score *int64) string {
	if score == nil {
		return ""
	}
	return fmt.Sprintf(" Score: %d.", *score)
}

// GetDuelSummaryMessage returns a one-line summary of a duel from the viewer's side
func (s *service) GetDuelSummaryMessage(ctx context.Context, input *GetDuelSummaryMessageInput) (*GetDuelSummaryMessageOutput, error) {
	if input == nil || input.Duel == nil {
		return nil, errors.New("input and duel cannot be nil")
	}

	d := input.Duel
	opponentName := d.ParticipantA.Name + " vs " + d.ParticipantB.Name
	if opponent, ok := d.Opponent(input.ViewerID); ok {
		opponentName = "vs " + opponent.Name
	}

	var outcome string
	switch d.State {
	case models.DuelStateInitializing:
		outcome = "waiting for acceptance"
	case models.DuelStateInProgress:
		outcome = "in progress"
	case models.DuelStateAborted:
		outcome = "aborted"
		if d.AbortedBy == input.ViewerID {
			outcome = "aborted by you"
		}
	case models.DuelStateFinished:
		switch {
		case d.IsDraw():
			outcome = "draw"
		case d.WinnerID == input.ViewerID:
			outcome = "won"
		default:
			outcome = "lost"
		}
	default:
		outcome = string(d.State)
	}

	return &GetDuelSummaryMessageOutput{
		Message: fmt.Sprintf("`%s` %s: %s (%s)", d.ID, opponentName, outcome, d.CreatedAt.Format("2006-01-02 15:04")),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var title string
	var messages []string

	// Select messages based on error type
	switch input.ErrorType {
	case ErrorTypeNotRegistered:
		title = "Not logged in"
		messages = []string{
			"I don't know you yet. Run `/duel login` first.",
			"Log in with `/duel login` so I know where you are.",
		}
	case ErrorTypeNoOpponent:
		title = "Nobody around"
		messages = []string{
			"No friend is close enough right now. Try again later.",
			"The coast is clear. Too clear. No opponent nearby.",
			"Nobody within range. Go for a walk?",
		}
	case ErrorTypeDuelNotFound:
		title = "Unknown duel"
		messages = []string{
			"That duel doesn't exist. Check the ID.",
			"Never heard of that duel.",
		}
	case ErrorTypeNotInDuel:
		title = "Not your duel"
		messages = []string{
			"You are not part of that duel.",
			"Hands off, that duel belongs to someone else.",
		}
	case ErrorTypeRecipientUnavailable:
		title = "Can't reach them"
		messages = []string{
			"They aren't logged in or have stopped participating.",
			"That person isn't around right now.",
		}
	case ErrorTypeBusy:
		title = "Too busy"
		messages = []string{
			"That duel is changing too fast. Try again.",
			"Lots going on with that duel. Give it another go.",
		}
	default:
		title = "Something went wrong"
		messages = []string{
			"Something went wrong! Try again later.",
			"Oops! Try again in a moment.",
		}
	}

	return &GetErrorMessageOutput{
		Title:   title,
		Message: s.pick(messages),
	}, nil
}
