package notify

import (
	"errors"
	"time"

	"github.com/KirkDiggler/faceoff/internal/models"
)

const (
	// TransportRedis labels deliveries into the Redis inbox
	TransportRedis = "redis"

	// TransportDiscord labels deliveries as Discord direct messages
	TransportDiscord = "discord"
)

// ErrNoDeviceToken is returned when the recipient has nowhere to deliver to
var ErrNoDeviceToken = errors.New("recipient has no device token")

// SendInput contains parameters for delivering one payload
type SendInput struct {
	Recipient *models.Participant
	Payload   *models.Payload

	// TTL bounds how long an undelivered payload is kept, zero means the transport default
	TTL time.Duration
}

// DrainInput contains parameters for collecting a device's inbox
type DrainInput struct {
	DeviceToken string
}

// DrainOutput contains the payloads that were waiting, oldest first
type DrainOutput struct {
	Payloads []*models.Payload
}
