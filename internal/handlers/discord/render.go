package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/faceoff/internal/geo"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/KirkDiggler/faceoff/internal/services/duel"
	"github.com/KirkDiggler/faceoff/internal/services/matchmaker"
	"github.com/KirkDiggler/faceoff/internal/services/messaging"
	"github.com/KirkDiggler/faceoff/internal/services/participant"
	"github.com/bwmarrin/discordgo"
)

// Button custom IDs carry the duel ID after the prefix
const (
	ButtonAcceptPrefix   = "duel_accept:"
	ButtonAbortPrefix    = "duel_abort:"
	ButtonInteractPrefix = "duel_interact:"
)

// buttonActions maps button prefixes to the subcommand they trigger
var buttonActions = map[string]string{
	ButtonAcceptPrefix:   subcommandAccept,
	ButtonAbortPrefix:    subcommandAbort,
	ButtonInteractPrefix: subcommandInteract,
}

// parseButton splits a custom ID into its subcommand and duel ID
func parseButton(customID string) (string, string, bool) {
	for prefix, subcommand := range buttonActions {
		if duelID, ok := strings.CutPrefix(customID, prefix); ok && duelID != "" {
			return subcommand, duelID, true
		}
	}
	return "", "", false
}

func acceptButtons(duelID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Accept",
			Style:    discordgo.SuccessButton,
			CustomID: ButtonAcceptPrefix + duelID,
		},
		discordgo.Button{
			Label:    "Abort",
			Style:    discordgo.DangerButton,
			CustomID: ButtonAbortPrefix + duelID,
		},
	}
}

func interactButtons(duelID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Interact",
			Style:    discordgo.PrimaryButton,
			CustomID: ButtonInteractPrefix + duelID,
		},
		discordgo.Button{
			Label:    "Abort",
			Style:    discordgo.DangerButton,
			CustomID: ButtonAbortPrefix + duelID,
		},
	}
}

// errorTypeFor classifies service errors for user-facing text
func errorTypeFor(err error) messaging.ErrorType {
	switch {
	case errors.Is(err, duel.ErrParticipantNotFound),
		errors.Is(err, participant.ErrParticipantNotFound):
		return messaging.ErrorTypeNotRegistered
	case errors.Is(err, matchmaker.ErrNoOpponent):
		return messaging.ErrorTypeNoOpponent
	case errors.Is(err, duel.ErrDuelNotFound):
		return messaging.ErrorTypeDuelNotFound
	case errors.Is(err, duel.ErrParticipantNotInDuel):
		return messaging.ErrorTypeNotInDuel
	case errors.Is(err, participant.ErrRecipientUnavailable):
		return messaging.ErrorTypeRecipientUnavailable
	case errors.Is(err, duel.ErrTooManyConflicts):
		return messaging.ErrorTypeBusy
	}
	return messaging.ErrorTypeUnknown
}

// renderError turns a service error into an ephemeral reply
func (c *DuelCommand) renderError(ctx context.Context, err error) *reply {
	errorType := errorTypeFor(err)

	// Validation errors already read well
	var duelErr duel.DuelError
	var participantErr participant.ParticipantError
	if errorType == messaging.ErrorTypeUnknown && (errors.As(err, &duelErr) || errors.As(err, &participantErr)) {
		return &reply{
			Title:       "Can't do that",
			Description: capitalize(err.Error()) + ".",
			Color:       colorError,
			Ephemeral:   true,
		}
	}

	msg, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if msgErr != nil {
		return &reply{
			Title:       "Error",
			Description: "Something went wrong.",
			Color:       colorError,
			Ephemeral:   true,
		}
	}

	return &reply{
		Title:       msg.Title,
		Description: msg.Message,
		Color:       colorError,
		Ephemeral:   true,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// duelFields renders the two sides of a duel
func duelFields(d *models.Duel) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		contenderField(d.ParticipantA),
		contenderField(d.ParticipantB),
		{
			Name:   "State",
			Value:  string(d.State),
			Inline: true,
		},
	}
}

func contenderField(c models.Contender) *discordgo.MessageEmbedField {
	var status []string
	if c.Accepted {
		status = append(status, "accepted")
	} else {
		status = append(status, "pending")
	}
	if c.HasInteracted() {
		status = append(status, "interacted")
	}

	return &discordgo.MessageEmbedField{
		Name:   c.Name,
		Value:  strings.Join(status, ", "),
		Inline: true,
	}
}

// resolutionText describes a finished duel from the caller's side
func resolutionText(d *models.Duel, callerID string, outcome duel.Outcome) string {
	opponentName := "your opponent"
	if opponent, ok := d.Opponent(callerID); ok {
		opponentName = opponent.Name
	}

	switch outcome {
	case duel.OutcomeDrawTimeout:
		return fmt.Sprintf("You and %s met too far apart in time. It's a draw.", opponentName)
	case duel.OutcomeDrawFlip:
		return fmt.Sprintf("The coins agreed. You and %s drew.", opponentName)
	}

	if d.WinnerID == callerID {
		return fmt.Sprintf("You beat %s! +%d points.", opponentName, duel.WinPoints)
	}
	return fmt.Sprintf("%s won this one.", d.WinnerName)
}

// nearbyFields lists participants with their distance from center
func nearbyFields(center models.Coordinates, participants []*models.Participant) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, 0, len(participants))
	for _, p := range participants {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   p.Name,
			Value:  fmt.Sprintf("%.0f m, score %d", geo.Distance(center, p.Location), p.Score),
			Inline: false,
		})
	}
	return fields
}
