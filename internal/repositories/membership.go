package repositories

import (
	"database/sql"
	"fmt"

	"tubevault/internal/models"
	"tubevault/internal/shared"
)

// MembershipRepository handles persistence for playlist membership rows.
//
// A playlist's membership set is always replaced wholesale during sync:
// DeleteByPlaylist followed by one Insert per fetched entry, in remote order.
type MembershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new MembershipRepository with the given database connection
func NewMembershipRepository(db *sql.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Insert creates a membership row with a generated ID
func (r *MembershipRepository) Insert(membership *models.Membership) error {
	membership.SetID(shared.GenerateID())

	if err := membership.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO memberships (id, playlist_id, video_id, position, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		membership.ID(),
		membership.PlaylistID(),
		membership.VideoID(),
		membership.Position(),
		membership.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert membership: %v", shared.ErrStore, err)
	}

	return nil
}

// ListByPlaylist returns the playlist's membership entries ordered by position,
// joined with each video's remote identifier.
func (r *MembershipRepository) ListByPlaylist(playlistID string) ([]models.MembershipEntry, error) {
	query := `
		SELECT m.id, m.video_id, v.remote_id, m.position
		FROM memberships m
		JOIN videos v ON v.id = m.video_id
		WHERE m.playlist_id = ?
		ORDER BY m.position ASC
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query memberships: %v", shared.ErrStore, err)
	}
	defer rows.Close()

	var entries []models.MembershipEntry
	for rows.Next() {
		var entry models.MembershipEntry
		if err := rows.Scan(&entry.MembershipID, &entry.VideoID, &entry.RemoteVideoID, &entry.Position); err != nil {
			return nil, fmt.Errorf("%w: failed to scan membership: %v", shared.ErrStore, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %v", shared.ErrStore, err)
	}

	return entries, nil
}

// VideoIDsByPlaylist returns the distinct local video ids currently linked to the playlist
func (r *MembershipRepository) VideoIDsByPlaylist(playlistID string) ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT video_id FROM memberships WHERE playlist_id = ?", playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query membership video ids: %v", shared.ErrStore, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: failed to scan video id: %v", shared.ErrStore, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %v", shared.ErrStore, err)
	}

	return ids, nil
}

// MemberVideoIDs returns the set of the owner's video ids that appear in at
// least one playlist. Videos outside this set are standalone.
func (r *MembershipRepository) MemberVideoIDs(ownerID string) (map[string]struct{}, error) {
	query := `
		SELECT DISTINCT m.video_id
		FROM memberships m
		JOIN playlists p ON p.id = m.playlist_id
		WHERE p.owner_id = ?
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query member video ids: %v", shared.ErrStore, err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: failed to scan video id: %v", shared.ErrStore, err)
		}
		ids[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %v", shared.ErrStore, err)
	}

	return ids, nil
}

// DeleteByPlaylist removes every membership row for the playlist
func (r *MembershipRepository) DeleteByPlaylist(playlistID string) error {
	if _, err := r.db.Exec("DELETE FROM memberships WHERE playlist_id = ?", playlistID); err != nil {
		return fmt.Errorf("%w: failed to delete memberships: %v", shared.ErrStore, err)
	}
	return nil
}

// DeleteByVideo removes every membership row referencing the video
func (r *MembershipRepository) DeleteByVideo(videoID string) error {
	if _, err := r.db.Exec("DELETE FROM memberships WHERE video_id = ?", videoID); err != nil {
		return fmt.Errorf("%w: failed to delete memberships: %v", shared.ErrStore, err)
	}
	return nil
}
