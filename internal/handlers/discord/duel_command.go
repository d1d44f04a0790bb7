package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/faceoff/internal/geo"
	"github.com/KirkDiggler/faceoff/internal/log"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/KirkDiggler/faceoff/internal/notify"
	"github.com/KirkDiggler/faceoff/internal/services/duel"
	"github.com/KirkDiggler/faceoff/internal/services/messaging"
	"github.com/KirkDiggler/faceoff/internal/services/participant"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Subcommand names
const (
	subcommandLogin    = "login"
	subcommandLocation = "location"
	subcommandBefriend = "befriend"
	subcommandNearby   = "nearby"
	subcommandRequest  = "request"
	subcommandAccept   = "accept"
	subcommandAbort    = "abort"
	subcommandInteract = "interact"
	subcommandPoke     = "poke"
	subcommandHistory  = "history"
	subcommandInbox    = "inbox"
)

// Option names
const (
	optionLongitude = "longitude"
	optionLatitude  = "latitude"
	optionUser      = "user"
	optionID        = "id"
)

// historyLimit caps the duels shown by the history subcommand
const historyLimit = 10

// maxEmbedFields is the most fields Discord renders in one embed
const maxEmbedFields = 25

// commandTimeout bounds service calls made for one interaction
const commandTimeout = 10 * time.Second

// DuelCommand handles the /duel command
type DuelCommand struct {
	BaseCommand
	duelService        duel.Service
	participantService participant.Service
	messagingService   messaging.Service
	inbox              notify.Inbox
	logger             zerolog.Logger
}

// DuelCommandConfig holds the services the command drives
type DuelCommandConfig struct {
	DuelService        duel.Service
	ParticipantService participant.Service
	MessagingService   messaging.Service

	// Inbox enables the inbox subcommand when notifications are queued rather than DMed
	Inbox notify.Inbox

	Logger *zerolog.Logger
}

// invocation is one resolved call of a subcommand
type invocation struct {
	CallerID   string
	CallerName string
	Subcommand string
	Options    map[string]*discordgo.ApplicationCommandInteractionDataOption
}

func (inv *invocation) number(name string) (float64, bool) {
	opt, ok := inv.Options[name]
	if !ok {
		return 0, false
	}
	v, ok := opt.Value.(float64)
	return v, ok
}

func (inv *invocation) text(name string) string {
	opt, ok := inv.Options[name]
	if !ok {
		return ""
	}
	v, _ := opt.Value.(string)
	return strings.TrimSpace(v)
}

func coordinateOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        optionLongitude,
			Description: "Longitude in degrees",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        optionLatitude,
			Description: "Latitude in degrees",
			Required:    true,
		},
	}
}

func userOption(description string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        optionUser,
			Description: description,
			Required:    true,
		},
	}
}

func duelIDOption() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optionID,
			Description: "Duel ID",
			Required:    true,
		},
	}
}

// NewDuelCommand creates a new duel command handler
func NewDuelCommand(cfg *DuelCommandConfig) (*DuelCommand, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DuelService == nil {
		return nil, errors.New("duel service cannot be nil")
	}

	if cfg.ParticipantService == nil {
		return nil, errors.New("participant service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := log.WithComponent("discord")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	cmd := &DuelCommand{
		BaseCommand: BaseCommand{
			Name:        "duel",
			Description: "Challenge nearby friends to a duel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandLogin,
					Description: "Log in at your current position",
					Options:     coordinateOptions(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandLocation,
					Description: "Update your position",
					Options:     coordinateOptions(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandBefriend,
					Description: "Add someone to your duel friends",
					Options:     userOption("Who to befriend"),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandNearby,
					Description: "List participants near you",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandRequest,
					Description: "Duel a random nearby friend",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandAccept,
					Description: "Accept a proposed duel",
					Options:     duelIDOption(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandAbort,
					Description: "Walk away from a duel (costs a point)",
					Options:     duelIDOption(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandInteract,
					Description: "Record that you met your opponent",
					Options:     duelIDOption(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandPoke,
					Description: "Poke another participant",
					Options:     userOption("Who to poke"),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandHistory,
					Description: "Show your score and recent duels",
				},
			},
		},
		duelService:        cfg.DuelService,
		participantService: cfg.ParticipantService,
		messagingService:   cfg.MessagingService,
		inbox:              cfg.Inbox,
		logger:             logger,
	}

	if cfg.Inbox != nil {
		cmd.Options = append(cmd.Options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        subcommandInbox,
			Description: "Collect your pending notifications",
		})
	}

	return cmd, nil
}

// Handle processes a Discord interaction for the duel command
func (c *DuelCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		options[opt.Name] = opt
	}

	callerID, callerName := caller(i)
	return c.run(s, i, &invocation{
		CallerID:   callerID,
		CallerName: callerName,
		Subcommand: sub.Name,
		Options:    options,
	})
}

// HandleButton processes a click on one of the duel buttons
func (c *DuelCommand) HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate) (bool, error) {
	subcommand, duelID, ok := parseButton(i.MessageComponentData().CustomID)
	if !ok {
		return false, nil
	}

	callerID, callerName := caller(i)
	return true, c.run(s, i, &invocation{
		CallerID:   callerID,
		CallerName: callerName,
		Subcommand: subcommand,
		Options: map[string]*discordgo.ApplicationCommandInteractionDataOption{
			optionID: {
				Name:  optionID,
				Type:  discordgo.ApplicationCommandOptionString,
				Value: duelID,
			},
		},
	})
}

func (c *DuelCommand) run(s *discordgo.Session, i *discordgo.InteractionCreate, inv *invocation) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	r := c.execute(ctx, inv)
	return respond(s, i, r)
}

// caller resolves who triggered an interaction in a guild or a DM
func caller(i *discordgo.InteractionCreate) (string, string) {
	if i.Member != nil && i.Member.User != nil {
		name := i.Member.User.Username
		if i.Member.Nick != "" {
			name = i.Member.Nick
		}
		return i.Member.User.ID, name
	}
	if i.User != nil {
		return i.User.ID, i.User.Username
	}
	return "", ""
}

// execute runs a subcommand and renders the outcome
func (c *DuelCommand) execute(ctx context.Context, inv *invocation) *reply {
	if inv.CallerID == "" {
		return &reply{Title: "Error", Description: "Could not identify you.", Color: colorError, Ephemeral: true}
	}

	var r *reply
	var err error
	switch inv.Subcommand {
	case subcommandLogin:
		r, err = c.handleLogin(ctx, inv)
	case subcommandLocation:
		r, err = c.handleLocation(ctx, inv)
	case subcommandBefriend:
		r, err = c.handleBefriend(ctx, inv)
	case subcommandNearby:
		r, err = c.handleNearby(ctx, inv)
	case subcommandRequest:
		r, err = c.handleRequest(ctx, inv)
	case subcommandAccept:
		r, err = c.handleAccept(ctx, inv)
	case subcommandAbort:
		r, err = c.handleAbort(ctx, inv)
	case subcommandInteract:
		r, err = c.handleInteract(ctx, inv)
	case subcommandPoke:
		r, err = c.handlePoke(ctx, inv)
	case subcommandHistory:
		r, err = c.handleHistory(ctx, inv)
	case subcommandInbox:
		r, err = c.handleInbox(ctx, inv)
	default:
		err = fmt.Errorf("unknown subcommand %q", inv.Subcommand)
	}

	if err != nil {
		if errorTypeFor(err) == messaging.ErrorTypeUnknown {
			c.logger.Error().Err(err).
				Str(log.FieldParticipantID, inv.CallerID).
				Str("subcommand", inv.Subcommand).
				Msg("duel command failed")
		}
		return c.renderError(ctx, err)
	}

	return r
}

func (c *DuelCommand) coordinates(inv *invocation) (models.Coordinates, error) {
	lon, okLon := inv.number(optionLongitude)
	lat, okLat := inv.number(optionLatitude)
	if !okLon || !okLat {
		return models.Coordinates{}, errors.New("longitude and latitude are required")
	}
	location := models.Coordinates{Longitude: lon, Latitude: lat}
	if !geo.Indexable(location) {
		return models.Coordinates{}, fmt.Errorf("coordinates out of range, latitude must be within ±%.4f", geo.MaxIndexedLatitude)
	}
	return location, nil
}

func (c *DuelCommand) handleLogin(ctx context.Context, inv *invocation) (*reply, error) {
	location, err := c.coordinates(inv)
	if err != nil {
		return invalidInput(err), nil
	}

	// The Discord user doubles as the device a DM is delivered to
	out, err := c.participantService.Login(ctx, &participant.LoginInput{
		ParticipantID: inv.CallerID,
		Name:          inv.CallerName,
		DeviceToken:   inv.CallerID,
		Location:      location,
	})
	if err != nil {
		return nil, err
	}

	return &reply{
		Title:       "Logged in",
		Description: fmt.Sprintf("Welcome, %s. Friends nearby can now challenge you.", out.Participant.Name),
		Color:       colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Score", Value: fmt.Sprintf("%d", out.Participant.Score), Inline: true},
			{Name: "Friends", Value: fmt.Sprintf("%d", len(out.Participant.FriendIDs)), Inline: true},
		},
		Ephemeral: true,
	}, nil
}

func (c *DuelCommand) handleLocation(ctx context.Context, inv *invocation) (*reply, error) {
	location, err := c.coordinates(inv)
	if err != nil {
		return invalidInput(err), nil
	}

	_, err = c.participantService.UpdateLocation(ctx, &participant.UpdateLocationInput{
		ParticipantID: inv.CallerID,
		Location:      location,
	})
	if err != nil {
		return nil, err
	}

	return &reply{
		Title:       "Location updated",
		Description: fmt.Sprintf("You are now at %.5f, %.5f.", location.Latitude, location.Longitude),
		Color:       colorSuccess,
		Ephemeral:   true,
	}, nil
}

func (c *DuelCommand) handleBefriend(ctx context.Context, inv *invocation) (*reply, error) {
	friendID := inv.text(optionUser)
	if friendID == "" {
		return invalidInput(errors.New("pick someone to befriend")), nil
	}

	out, err := c.participantService.AddFriend(ctx, &participant.AddFriendInput{
		ParticipantID: inv.CallerID,
		FriendID:      friendID,
	})
	if err != nil {
		return nil, err
	}

	return &reply{
		Title:       "Friends",
		Description: fmt.Sprintf("You and %s can now duel each other.", out.Friend.Name),
		Color:       colorSuccess,
		Ephemeral:   true,
	}, nil
}

func (c *DuelCommand) handleNearby(ctx context.Context, inv *invocation) (*reply, error) {
	me, err := c.participantService.GetProfile(ctx, &participant.GetProfileInput{
		ParticipantID: inv.CallerID,
	})
	if err != nil {
		return nil, err
	}

	out, err := c.participantService.ListNearby(ctx, &participant.ListNearbyInput{
		ParticipantID: inv.CallerID,
	})
	if err != nil {
		return nil, err
	}

	if len(out.Participants) == 0 {
		return &reply{
			Title:       "Nearby",
			Description: "Nobody is around right now.",
			Ephemeral:   true,
		}, nil
	}

	return &reply{
		Title:       "Nearby",
		Description: fmt.Sprintf("%d participant(s) close to you.", len(out.Participants)),
		Fields:      nearbyFields(me.Participant.Location, out.Participants),
		Ephemeral:   true,
	}, nil
}

func (c *DuelCommand) handleRequest(ctx context.Context, inv *invocation) (*reply, error) {
	out, err := c.duelService.RequestDuel(ctx, &duel.RequestDuelInput{
		ParticipantID: inv.CallerID,
	})
	if err != nil {
		return nil, err
	}

	return &reply{
		Title:       "Duel proposed",
		Description: fmt.Sprintf("You challenged %s. Duel `%s` starts once you both accept.", out.Opponent.Name, out.Duel.ID),
		Color:       colorSuccess,
		Fields:      duelFields(out.Duel),
		Buttons:     acceptButtons(out.Duel.ID),
		Ephemeral:   true,
	}, nil
}

func (c *DuelCommand) handleAccept(ctx context.Context, inv *invocation) (*reply, error) {
	duelID := inv.text(optionID)
	if duelID == "" {
		return invalidInput(errors.New("a duel ID is required")), nil
	}

	out, err := c.duelService.AcceptDuel(ctx, &duel.AcceptDuelInput{
		DuelID:        duelID,
		ParticipantID: inv.CallerID,
	})
	if err != nil {
		return nil, err
	}

	r := &reply{
		Title:     "Duel " + duelID,
		Fields:    duelFields(out.Duel),
		Ephemeral: true,
	}

	switch {
	case out.Ignored:
		r.Description = "That duel was aborted."
	case out.Established:
		r.Description = "Both sides accepted. Find your opponent and interact!"
		r.Color = colorSuccess
		r.Buttons = interactButtons(duelID)
	case out.AlreadyAccepted:
		r.Description = "You already accepted this duel."
	default:
		r.Description = "Accepted. Waiting for your opponent."
		r.Color = colorSuccess
	}

	return r, nil
}

func (c *DuelCommand) handleAbort(ctx context.Context, inv *invocation) (*reply, error) {
	duelID := inv.text(optionID)
	if duelID == "" {
		return invalidInput(errors.New("a duel ID is required")), nil
	}

	out, err := c.duelService.AbortDuel(ctx, &duel.AbortDuelInput{
		DuelID:        duelID,
		ParticipantID: inv.CallerID,
	})
	if err != nil {
		return nil, err
	}

	if !out.Aborted {
		return &reply{
			Title:       "Duel " + duelID,
			Description: fmt.Sprintf("Nothing to abort, the duel is %s.", out.Duel.State),
			Ephemeral:   true,
		}, nil
	}

	return &reply{
		Title:       "Duel aborted",
		Description: fmt.Sprintf("You walked away. %d point.", duel.AbortPenalty),
		Color:       colorError,
		Ephemeral:   true,
	}, nil
}

func (c *DuelCommand) handleInteract(ctx context.Context, inv *invocation) (*reply, error) {
	duelID := inv.text(optionID)
	if duelID == "" {
		return invalidInput(errors.New("a duel ID is required")), nil
	}

	out, err := c.duelService.RecordInteraction(ctx, &duel.RecordInteractionInput{
		DuelID:        duelID,
		ParticipantID: inv.CallerID,
	})
	if err != nil {
		return nil, err
	}

	r := &reply{
		Title:     "Duel " + duelID,
		Ephemeral: true,
	}

	switch {
	case out.Ignored:
		r.Description = fmt.Sprintf("The duel is %s, nothing to record.", out.Duel.State)
	case out.Resolved:
		r.Description = resolutionText(out.Duel, inv.CallerID, out.Outcome)
		r.Color = colorSuccess
	case out.Recorded:
		r.Description = "Interaction recorded. Waiting for your opponent."
		r.Color = colorSuccess
	default:
		r.Description = "You already interacted in this duel."
	}

	return r, nil
}

func (c *DuelCommand) handlePoke(ctx context.Context, inv *invocation) (*reply, error) {
	recipientID := inv.text(optionUser)
	if recipientID == "" {
		return invalidInput(errors.New("pick someone to poke")), nil
	}

	out, err := c.participantService.Poke(ctx, &participant.PokeInput{
		SenderID:    inv.CallerID,
		RecipientID: recipientID,
	})
	if err != nil {
		return nil, err
	}

	return &reply{
		Title:       "Poke",
		Description: fmt.Sprintf("You poked %s.", out.Recipient.Name),
		Color:       colorSuccess,
		Ephemeral:   true,
	}, nil
}

func (c *DuelCommand) handleHistory(ctx context.Context, inv *invocation) (*reply, error) {
	me, err := c.participantService.GetProfile(ctx, &participant.GetProfileInput{
		ParticipantID: inv.CallerID,
	})
	if err != nil {
		return nil, err
	}

	out, err := c.duelService.ListDuels(ctx, &duel.ListDuelsInput{
		ParticipantID: inv.CallerID,
		Limit:         historyLimit,
	})
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(out.Duels))
	for _, d := range out.Duels {
		summary, err := c.messagingService.GetDuelSummaryMessage(ctx, &messaging.GetDuelSummaryMessageInput{
			Duel:     d,
			ViewerID: inv.CallerID,
		})
		if err != nil {
			return nil, err
		}
		lines = append(lines, summary.Message)
	}

	description := "No duels yet. Try `/duel request`."
	if len(lines) > 0 {
		description = strings.Join(lines, "\n")
	}

	return &reply{
		Title:       fmt.Sprintf("%s: %d points", me.Participant.Name, me.Participant.Score),
		Description: description,
		Ephemeral:   true,
	}, nil
}

func (c *DuelCommand) handleInbox(ctx context.Context, inv *invocation) (*reply, error) {
	if c.inbox == nil {
		return nil, fmt.Errorf("unknown subcommand %q", inv.Subcommand)
	}

	out, err := c.inbox.Drain(ctx, &notify.DrainInput{
		DeviceToken: inv.CallerID,
	})
	if err != nil {
		return nil, err
	}

	if len(out.Payloads) == 0 {
		return &reply{
			Title:       "Inbox",
			Description: "Nothing new.",
			Ephemeral:   true,
		}, nil
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(out.Payloads))
	for _, p := range out.Payloads {
		if len(fields) == maxEmbedFields {
			break
		}
		msg, err := c.messagingService.GetNotificationMessage(ctx, &messaging.GetNotificationMessageInput{
			Payload: p,
		})
		if err != nil {
			c.logger.Warn().Err(err).Str(log.FieldSubtype, string(p.Subtype)).Msg("skipping unrenderable payload")
			continue
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  msg.Title,
			Value: msg.Message,
		})
	}

	return &reply{
		Title:       "Inbox",
		Description: fmt.Sprintf("%d notification(s).", len(fields)),
		Fields:      fields,
		Ephemeral:   true,
	}, nil
}

func invalidInput(err error) *reply {
	return &reply{
		Title:       "Invalid input",
		Description: capitalize(err.Error()) + ".",
		Color:       colorError,
		Ephemeral:   true,
	}
}
