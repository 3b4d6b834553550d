package models

import (
	"fmt"
	"time"
)

// Membership represents one ordered slot of a video inside a playlist.
//
// For a given playlist, positions form a contiguous 0..N-1 sequence reflecting
// remote order at last sync. The full set for a playlist is deleted and recreated
// on every refresh rather than patched in place.
type Membership struct {
	id         string
	playlistID string
	videoID    string
	position   int
	createdAt  time.Time
}

// NewMembership creates a link row placing videoID at position inside playlistID.
func NewMembership(playlistID, videoID string, position int) *Membership {
	return &Membership{
		playlistID: playlistID,
		videoID:    videoID,
		position:   position,
		createdAt:  time.Now(),
	}
}

func (m *Membership) ID() string           { return m.id }
func (m *Membership) PlaylistID() string   { return m.playlistID }
func (m *Membership) VideoID() string      { return m.videoID }
func (m *Membership) Position() int        { return m.position }
func (m *Membership) CreatedAt() time.Time { return m.createdAt }

func (m *Membership) SetID(id string)        { m.id = id }
func (m *Membership) SetCreatedAt(t time.Time) { m.createdAt = t }

// Validate checks required link fields and position bounds.
func (m *Membership) Validate() error {
	if m.playlistID == "" {
		return fmt.Errorf("membership playlist id is required")
	}
	if m.videoID == "" {
		return fmt.Errorf("membership video id is required")
	}
	if m.position < 0 {
		return fmt.Errorf("membership position cannot be negative")
	}
	return nil
}
