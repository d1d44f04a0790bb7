package models

import (
	"time"
)

// DuelState represents where a duel is in its lifecycle
type DuelState string

const (
	// DuelStateInitializing indicates the duel is waiting for both participants to accept
	DuelStateInitializing DuelState = "initializing"

	// DuelStateInProgress indicates both participants accepted and interactions are being collected
	DuelStateInProgress DuelState = "in_progress"

	// DuelStateFinished indicates the duel has been resolved
	DuelStateFinished DuelState = "finished"

	// DuelStateAborted indicates a participant gave up
	DuelStateAborted DuelState = "aborted"
)

// IsInitializing checks if the duel still waits for acceptance
func (s DuelState) IsInitializing() bool {
	return s == DuelStateInitializing
}

// IsInProgress checks if the duel is collecting interactions
func (s DuelState) IsInProgress() bool {
	return s == DuelStateInProgress
}

// IsTerminal checks if the duel admits no further transitions
func (s DuelState) IsTerminal() bool {
	return s == DuelStateFinished || s == DuelStateAborted
}

// NoInteraction marks a contender that has not interacted yet
const NoInteraction int64 = -1

// DrawMarker is stored as the winner name when nobody won
const DrawMarker = "draw"

// Contender is a participant snapshot frozen when the duel is created
type Contender struct {
	// ID is the participant ID
	ID string `json:"id"`

	// Name is the participant's display name at creation time
	Name string `json:"name"`

	// Accepted indicates the participant accepted the duel
	Accepted bool `json:"accepted"`

	// InteractedAt is the first interaction time in unix milliseconds, or NoInteraction
	InteractedAt int64 `json:"interacted_at"`
}

// HasInteracted checks if the contender recorded an interaction
func (c Contender) HasInteracted() bool {
	return c.InteractedAt != NoInteraction
}

// Duel is one two-party session
type Duel struct {
	// ID is the unique identifier for the duel
	ID string `json:"id"`

	// Version is bumped by the store on every committed update
	Version int64 `json:"version"`

	// ParticipantA is the requesting side
	ParticipantA Contender `json:"participant_a"`

	// ParticipantB is the matched opponent
	ParticipantB Contender `json:"participant_b"`

	// WinnerID is the ID of the winner, empty until resolved or on a draw
	WinnerID string `json:"winner_id"`

	// WinnerName is the winner's name or DrawMarker
	WinnerName string `json:"winner_name"`

	// Aborted indicates a participant gave up
	Aborted bool `json:"aborted"`

	// AbortedBy is the ID of the participant who gave up
	AbortedBy string `json:"aborted_by"`

	// State is the current lifecycle state
	State DuelState `json:"state"`

	// CreatedAt is when the duel was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the duel was last changed
	UpdatedAt time.Time `json:"updated_at"`
}

// Contender returns the side belonging to participantID
func (d *Duel) Contender(participantID string) (*Contender, bool) {
	switch participantID {
	case d.ParticipantA.ID:
		return &d.ParticipantA, true
	case d.ParticipantB.ID:
		return &d.ParticipantB, true
	}
	return nil, false
}

// Opponent returns the side facing participantID
func (d *Duel) Opponent(participantID string) (*Contender, bool) {
	switch participantID {
	case d.ParticipantA.ID:
		return &d.ParticipantB, true
	case d.ParticipantB.ID:
		return &d.ParticipantA, true
	}
	return nil, false
}

// IsEstablished checks if both participants accepted
func (d *Duel) IsEstablished() bool {
	return d.ParticipantA.Accepted && d.ParticipantB.Accepted
}

// IsDraw checks if the duel resolved without a single winner.
// WinnerName is display only, a contender may well be called DrawMarker.
func (d *Duel) IsDraw() bool {
	return d.State == DuelStateFinished && d.WinnerID == ""
}

// Copy returns a snapshot that shares no state with d
func (d *Duel) Copy() *Duel {
	cp := *d
	return &cp
}
