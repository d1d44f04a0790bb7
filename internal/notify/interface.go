package notify

//go:generate mockgen -package=mocks -destination=mocks/mock_dispatcher.go github.com/KirkDiggler/faceoff/internal/notify Dispatcher
//go:generate mockgen -package=mocks -destination=mocks/mock_direct_messenger.go github.com/KirkDiggler/faceoff/internal/notify DirectMessenger
//go:generate mockgen -package=mocks -destination=mocks/mock_inbox.go github.com/KirkDiggler/faceoff/internal/notify Inbox

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Dispatcher delivers payloads to a participant's device.
// Delivery is best effort; callers log failures and move on.
type Dispatcher interface {
	Send(ctx context.Context, input *SendInput) error
}

// Inbox is a transport that holds payloads until the device collects them
type Inbox interface {
	Drain(ctx context.Context, input *DrainInput) (*DrainOutput, error)
}

// DirectMessenger is the slice of *discordgo.Session used to DM a user
type DirectMessenger interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}
