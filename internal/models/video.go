package models

import (
	"fmt"
	"time"
)

// Video represents one remote video cached locally for one owning user.
//
// The pair (owner, remote id) is unique per owner: a user never has two local
// Video records for the same remote video. Videos are created on first reference
// (standalone add or first appearance in an imported playlist) and are never
// deleted by playlist sync operations.
type Video struct {
	id        string
	sequence  int
	ownerID   string
	remoteID  string
	meta      VideoMetadata
	createdAt time.Time
	updatedAt time.Time
}

// NewVideo creates a Video for the given owner from fetched metadata.
// The ID is assigned by the repository on Create.
func NewVideo(sequence int, ownerID, remoteID string, meta VideoMetadata) *Video {
	now := time.Now()
	meta.RemoteID = remoteID
	return &Video{
		sequence:  sequence,
		ownerID:   ownerID,
		remoteID:  remoteID,
		meta:      meta,
		createdAt: now,
		updatedAt: now,
	}
}

func (v *Video) ID() string            { return v.id }
func (v *Video) Sequence() int         { return v.sequence }
func (v *Video) OwnerID() string       { return v.ownerID }
func (v *Video) RemoteID() string      { return v.remoteID }
func (v *Video) Title() string         { return v.meta.Title }
func (v *Video) Description() string   { return v.meta.Description }
func (v *Video) ThumbnailURL() string  { return v.meta.ThumbnailURL }
func (v *Video) Duration() int         { return v.meta.Duration }
func (v *Video) ChannelName() string   { return v.meta.ChannelName }
func (v *Video) Metadata() VideoMetadata { return v.meta }
func (v *Video) CreatedAt() time.Time  { return v.createdAt }
func (v *Video) UpdatedAt() time.Time  { return v.updatedAt }

func (v *Video) SetID(id string)            { v.id = id }
func (v *Video) SetSequence(seq int)        { v.sequence = seq }
func (v *Video) SetUpdatedAt(t time.Time)   { v.updatedAt = t }
func (v *Video) SetCreatedAt(t time.Time)   { v.createdAt = t }

// Validate checks required fields: owner, remote identifier, and title.
func (v *Video) Validate() error {
	if v.ownerID == "" {
		return fmt.Errorf("video owner is required")
	}
	if v.remoteID == "" {
		return fmt.Errorf("video remote id is required")
	}
	if v.meta.Title == "" {
		return fmt.Errorf("video title is required")
	}
	if v.meta.Duration < 0 {
		return fmt.Errorf("video duration cannot be negative")
	}
	return nil
}
