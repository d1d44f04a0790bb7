package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/faceoff/internal/log"
	"github.com/KirkDiggler/faceoff/internal/metrics"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/KirkDiggler/faceoff/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Embed colors per payload outcome
const (
	colorNeutral = 0x3498DB
	colorWin     = 0x2ECC71
	colorLoss    = 0xE74C3C
	colorDraw    = 0x95A5A6
)

// DiscordConfig holds configuration for the Discord DM dispatcher
type DiscordConfig struct {
	// Session is usually the bot's *discordgo.Session
	Session DirectMessenger

	MessagingService messaging.Service

	Logger *zerolog.Logger
}

// DiscordDM delivers payloads as direct messages. The device token is the Discord user ID.
// Discord keeps DMs indefinitely, so TTL is ignored.
type DiscordDM struct {
	session          DirectMessenger
	messagingService messaging.Service
	logger           zerolog.Logger
}

// NewDiscordDM creates a dispatcher that DMs rendered payloads
func NewDiscordDM(cfg *DiscordConfig) (*DiscordDM, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := log.WithComponent("notify.discord")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &DiscordDM{
		session:          cfg.Session,
		messagingService: cfg.MessagingService,
		logger:           logger,
	}, nil
}

// Send renders the payload and DMs it to the recipient
func (d *DiscordDM) Send(ctx context.Context, input *SendInput) error {
	err := d.send(ctx, input)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(TransportDiscord, "error").Inc()
		return err
	}

	metrics.NotificationsTotal.WithLabelValues(TransportDiscord, "ok").Inc()
	d.logger.Debug().
		Str(log.FieldRecipientID, input.Recipient.ID).
		Str(log.FieldSubtype, string(input.Payload.Subtype)).
		Msg("direct message sent")

	return nil
}

func (d *DiscordDM) send(ctx context.Context, input *SendInput) error {
	if err := validateSend(input); err != nil {
		return err
	}

	rendered, err := d.messagingService.GetNotificationMessage(ctx, &messaging.GetNotificationMessageInput{
		Payload: input.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to render payload: %w", err)
	}

	channel, err := d.session.UserChannelCreate(input.Recipient.DeviceToken, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       rendered.Title,
		Description: rendered.Message,
		Color:       embedColor(input.Payload.Subtype),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if input.Payload.SessionID != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Duel " + input.Payload.SessionID,
		}
	}

	if _, err := d.session.ChannelMessageSendEmbed(channel.ID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}

	return nil
}

func embedColor(subtype models.PayloadSubtype) int {
	switch subtype {
	case models.PayloadSubtypeWon:
		return colorWin
	case models.PayloadSubtypeLost, models.PayloadSubtypeAborted:
		return colorLoss
	case models.PayloadSubtypeDraw:
		return colorDraw
	default:
		return colorNeutral
	}
}
