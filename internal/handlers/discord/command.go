package discord

import (
	"github.com/bwmarrin/discordgo"
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// Embed colors
const (
	colorInfo    = 0x3498db
	colorSuccess = 0x00ff00
	colorError   = 0xff0000
)

// reply is what a command wants shown to the user who invoked it
type reply struct {
	Title       string
	Description string
	Color       int
	Fields      []*discordgo.MessageEmbedField
	Buttons     []discordgo.MessageComponent

	// Ephemeral replies are only visible to the caller
	Ephemeral bool
}

// respond sends a reply as an embed response to an interaction
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, r *reply) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(r),
	})
}

func responseData(r *reply) *discordgo.InteractionResponseData {
	color := r.Color
	if color == 0 {
		color = colorInfo
	}

	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       r.Title,
				Description: r.Description,
				Color:       color,
				Fields:      r.Fields,
			},
		},
	}

	if len(r.Buttons) > 0 {
		data.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: r.Buttons,
			},
		}
	}

	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return data
}

// RespondWithError sends an ephemeral error response to an interaction
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, title, message string) error {
	return respond(s, i, &reply{
		Title:       title,
		Description: message,
		Color:       colorError,
		Ephemeral:   true,
	})
}
