package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"tubevault/internal/models"
	"tubevault/internal/shared"
)

// PlaylistRepository handles persistence for imported playlists.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

const playlistColumns = "id, sequence, owner_id, remote_id, name, description, thumbnail_url, video_count, total_duration, created_at, updated_at"

// Create inserts a new playlist into the database with generated ID and sequence
func (r *PlaylistRepository) Create(playlist *models.Playlist) error {
	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("%w: failed to generate sequence: %v", shared.ErrStore, err)
	}

	playlist.SetSequence(sequence)
	playlist.SetID(shared.GenerateID())

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO playlists (` + playlistColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		playlist.ID(),
		playlist.Sequence(),
		playlist.OwnerID(),
		playlist.RemoteID(),
		playlist.Name(),
		playlist.Description(),
		playlist.ThumbnailURL(),
		playlist.VideoCount(),
		playlist.TotalDuration(),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert playlist: %v", shared.ErrStore, err)
	}

	return nil
}

// Get retrieves a playlist by ID for the given owner
func (r *PlaylistRepository) Get(id, ownerID string) (*models.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE id = ? AND owner_id = ?`
	return r.scanOne(r.db.QueryRow(query, id, ownerID))
}

// ListByOwner retrieves all of the owner's playlists, newest first
func (r *PlaylistRepository) ListByOwner(ownerID string) ([]*models.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE owner_id = ? ORDER BY sequence DESC`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query playlists: %v", shared.ErrStore, err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		playlist, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %v", shared.ErrStore, err)
	}

	return playlists, nil
}

// Update overwrites a playlist's metadata and summary fields
func (r *PlaylistRepository) Update(playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	playlist.SetUpdatedAt(now)

	query := `
		UPDATE playlists
		SET name = ?, description = ?, thumbnail_url = ?, video_count = ?, total_duration = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`

	result, err := r.db.Exec(query,
		playlist.Name(),
		playlist.Description(),
		playlist.ThumbnailURL(),
		playlist.VideoCount(),
		playlist.TotalDuration(),
		now,
		playlist.ID(),
		playlist.OwnerID(),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update playlist: %v", shared.ErrStore, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get affected rows: %v", shared.ErrStore, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: playlist %s", shared.ErrNotFound, playlist.ID())
	}

	return nil
}

// Delete removes a playlist row. Membership and video cleanup is the caller's responsibility.
func (r *PlaylistRepository) Delete(id, ownerID string) error {
	result, err := r.db.Exec("DELETE FROM playlists WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete playlist: %v", shared.ErrStore, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get affected rows: %v", shared.ErrStore, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: playlist %s", shared.ErrNotFound, id)
	}

	return nil
}

// scanOne scans a single row into a [models.Playlist]
func (r *PlaylistRepository) scanOne(row *sql.Row) (*models.Playlist, error) {
	var (
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
	)

	err := row.Scan(&id, &sequence, &ownerID, &remoteID, &name, &description, &thumbnailURL, &videoCount, &totalDuration, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: playlist", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan playlist: %v", shared.ErrStore, err)
	}

	meta := models.PlaylistMetadata{
		Name:         name,
		Description:  description,
		ThumbnailURL: thumbnailURL,
	}

	playlist := models.NewPlaylist(sequence, ownerID, remoteID, meta)
	playlist.SetID(id)
	playlist.SetSummary(videoCount, totalDuration)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)

	return playlist, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Playlist]
func (r *PlaylistRepository) scanRow(rows *sql.Rows) (*models.Playlist, error) {
	var (
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
	)

	err := rows.Scan(&id, &sequence, &ownerID, &remoteID, &name, &description, &thumbnailURL, &videoCount, &totalDuration, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan playlist: %v", shared.ErrStore, err)
	}

	meta := models.PlaylistMetadata{
		Name:         name,
		Description:  description,
		ThumbnailURL: thumbnailURL,
	}

	playlist := models.NewPlaylist(sequence, ownerID, remoteID, meta)
	playlist.SetID(id)
	playlist.SetSummary(videoCount, totalDuration)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)

	return playlist, nil
}
