package models

// Coordinates is a point on the globe in degrees
type Coordinates struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Participant is a registered profile that can be matched into duels
type Participant struct {
	// ID is the stable identifier handed out by the identity provider
	ID string `json:"id"`

	// Name is the display name of the participant
	Name string `json:"name"`

	// DeviceToken addresses the participant's device for push delivery
	DeviceToken string `json:"device_token"`

	// Location is the last reported position
	Location Coordinates `json:"location"`

	// LastSeen is when the participant last logged in, in unix seconds
	LastSeen int64 `json:"last_seen"`

	// Participating indicates the participant has opted into matchmaking
	Participating bool `json:"participating"`

	// Score is the cumulative duel score. It only changes through atomic deltas.
	Score int64 `json:"score"`

	// FriendIDs is the participant's social graph
	FriendIDs []string `json:"friend_ids"`
}

// IsFriendOf reports whether other appears in the participant's social graph
func (p *Participant) IsFriendOf(other *Participant) bool {
	if other == nil {
		return false
	}
	for _, id := range p.FriendIDs {
		if id == other.ID {
			return true
		}
	}
	return false
}
