package models

import (
	"fmt"
	"time"
)

// Playlist represents one remote playlist imported by a user, plus a denormalized
// summary (video count, total duration in seconds).
//
// The summary fields must always equal the cardinality and duration-sum of the
// playlist's current membership set; both are recomputed and overwritten on every
// import and refresh. A playlist without a remote identifier cannot be refreshed.
type Playlist struct {
	id            string
	sequence      int
	ownerID       string
	remoteID      string
	name          string
	description   string
	thumbnailURL  string
	videoCount    int
	totalDuration int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPlaylist creates a Playlist for the given owner from fetched metadata.
// remoteID may be empty for playlists that cannot be refreshed.
func NewPlaylist(sequence int, ownerID, remoteID string, meta PlaylistMetadata) *Playlist {
	now := time.Now()
	return &Playlist{
		sequence:     sequence,
		ownerID:      ownerID,
		remoteID:     remoteID,
		name:         meta.Name,
		description:  meta.Description,
		thumbnailURL: meta.ThumbnailURL,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (p *Playlist) ID() string           { return p.id }
func (p *Playlist) Sequence() int        { return p.sequence }
func (p *Playlist) OwnerID() string      { return p.ownerID }
func (p *Playlist) RemoteID() string     { return p.remoteID }
func (p *Playlist) Name() string         { return p.name }
func (p *Playlist) Description() string  { return p.description }
func (p *Playlist) ThumbnailURL() string { return p.thumbnailURL }
func (p *Playlist) VideoCount() int      { return p.videoCount }
func (p *Playlist) TotalDuration() int   { return p.totalDuration }
func (p *Playlist) CreatedAt() time.Time { return p.createdAt }
func (p *Playlist) UpdatedAt() time.Time { return p.updatedAt }

// Refreshable reports whether the playlist has a stored remote identifier.
func (p *Playlist) Refreshable() bool { return p.remoteID != "" }

func (p *Playlist) SetID(id string)          { p.id = id }
func (p *Playlist) SetSequence(seq int)      { p.sequence = seq }
func (p *Playlist) SetUpdatedAt(t time.Time) { p.updatedAt = t }
func (p *Playlist) SetCreatedAt(t time.Time) { p.createdAt = t }

// ApplyMetadata overwrites name, description, and thumbnail from a fresh fetch.
func (p *Playlist) ApplyMetadata(meta PlaylistMetadata) {
	p.name = meta.Name
	p.description = meta.Description
	p.thumbnailURL = meta.ThumbnailURL
}

// SetSummary overwrites the denormalized member count and total duration.
func (p *Playlist) SetSummary(videoCount, totalDuration int) {
	p.videoCount = videoCount
	p.totalDuration = totalDuration
}

// Validate checks required fields: owner and name.
func (p *Playlist) Validate() error {
	if p.ownerID == "" {
		return fmt.Errorf("playlist owner is required")
	}
	if p.name == "" {
		return fmt.Errorf("playlist name is required")
	}
	if p.videoCount < 0 || p.totalDuration < 0 {
		return fmt.Errorf("playlist summary cannot be negative")
	}
	return nil
}
