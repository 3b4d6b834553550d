package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the library service.
// Implementations include User, Video, and Playlist.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// VideoMetadata is the provider's representation of a single remote video.
//
// Duration is whole seconds; the provider resolves ISO-8601 period strings before
// metadata crosses this boundary. Zero means the duration is unknown.
type VideoMetadata struct {
	RemoteID     string `json:"remote_id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	ChannelName  string `json:"channel_name,omitempty"`
}

// PlaylistMetadata is the provider's summary of a remote playlist.
type PlaylistMetadata struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	ItemCount    int    `json:"item_count"`
}

// PlaylistFetch is the result of fetching a remote playlist: its metadata plus the
// ordered list of member videos (first page only; the provider caps at 50 items).
type PlaylistFetch struct {
	Playlist PlaylistMetadata `json:"playlist"`
	Videos   []VideoMetadata  `json:"videos"`
}

// MembershipEntry is one joined membership row as read back from the store:
// the link row plus the remote identifier of the video it points to, so callers
// never unwrap a relation to discover the video's remote id.
type MembershipEntry struct {
	MembershipID  string `json:"membership_id"`
	VideoID       string `json:"video_id"`
	RemoteVideoID string `json:"remote_video_id"`
	Position      int    `json:"position"`
}
