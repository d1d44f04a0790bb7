package discord

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/faceoff/internal/log"
	"github.com/KirkDiggler/faceoff/internal/notify"
	"github.com/KirkDiggler/faceoff/internal/services/duel"
	"github.com/KirkDiggler/faceoff/internal/services/messaging"
	"github.com/KirkDiggler/faceoff/internal/services/participant"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	duelCommand *DuelCommand
	config      *Config
	logger      zerolog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token, used when Session is nil
	Token string

	// Session is an already created Discord session, shared with the DM dispatcher
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Services
	DuelService        duel.Service
	ParticipantService participant.Service
	MessagingService   messaging.Service

	// Inbox is set when notifications are queued in Redis instead of DMed
	Inbox notify.Inbox

	Logger *zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil && cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	logger := log.WithComponent("discord")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	duelCommand, err := NewDuelCommand(&DuelCommandConfig{
		DuelService:        cfg.DuelService,
		ParticipantService: cfg.ParticipantService,
		MessagingService:   cfg.MessagingService,
		Inbox:              cfg.Inbox,
		Logger:             &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create duel command: %w", err)
	}

	session := cfg.Session
	if session == nil {
		session, err = discordgo.New("Bot " + cfg.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
	}

	bot := &Bot{
		session:     session,
		commands:    make(map[string]CommandHandler),
		commandIDs:  make(map[string]string),
		duelCommand: duelCommand,
		config:      cfg,
		logger:      logger,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.duelCommand); err != nil {
		return fmt.Errorf("failed to register duel command: %w", err)
	}

	b.logger.Info().Msg("bot is running")
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn().Err(err).
				Str("command", cmdName).
				Str("command_id", cmdID).
				Msg("failed to delete command")
			continue
		}
		b.logger.Info().Str("command", cmdName).Msg("deleted command")
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord, for one guild when GuildID is set
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", b.config.GuildID).
		Msg("registered command")

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error().Err(err).Str("command", name).Msg("error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		handled, err := b.duelCommand.HandleButton(s, i)
		if err != nil {
			b.logger.Error().Err(err).Msg("error handling button")
			return
		}
		if !handled {
			customID := i.MessageComponentData().CustomID
			if err := RespondWithError(s, i, "Error", fmt.Sprintf("Unknown button: %s", customID)); err != nil {
				b.logger.Error().Err(err).Msg("error responding to unknown button")
			}
		}
	}
}
