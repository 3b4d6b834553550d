package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tubevault/internal/models"
	"tubevault/internal/shared"
)

// VideoRepository handles persistence for cached video records.
//
// Videos are unique per (owner, remote id); GetByRemoteID is the lookup that
// playlist sync uses to reuse existing records instead of creating duplicates.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

const videoColumns = "id, sequence, owner_id, remote_id, title, description, thumbnail_url, duration, channel_name, created_at, updated_at"

// Create inserts a new video into the database with generated ID and sequence
func (r *VideoRepository) Create(video *models.Video) error {
	sequence, err := NextSequence(r.db, "videos")
	if err != nil {
		return fmt.Errorf("%w: failed to generate sequence: %v", shared.ErrStore, err)
	}

	video.SetSequence(sequence)
	video.SetID(shared.GenerateID())

	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO videos (` + videoColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		video.ID(),
		video.Sequence(),
		video.OwnerID(),
		video.RemoteID(),
		video.Title(),
		video.Description(),
		video.ThumbnailURL(),
		video.Duration(),
		video.ChannelName(),
		video.CreatedAt(),
		video.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert video: %v", shared.ErrStore, err)
	}

	return nil
}

// Get retrieves a video by ID for the given owner
func (r *VideoRepository) Get(id, ownerID string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = ? AND owner_id = ?`
	return r.scanOne(r.db.QueryRow(query, id, ownerID))
}

// GetByRemoteID retrieves the owner's video record for a remote identifier
func (r *VideoRepository) GetByRemoteID(ownerID, remoteID string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE owner_id = ? AND remote_id = ?`
	return r.scanOne(r.db.QueryRow(query, ownerID, remoteID))
}

// ListByOwner retrieves all of the owner's videos, newest first
func (r *VideoRepository) ListByOwner(ownerID string) ([]*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE owner_id = ? ORDER BY sequence DESC`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query videos: %v", shared.ErrStore, err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %v", shared.ErrStore, err)
	}

	return videos, nil
}

// Delete removes a video row. Membership cleanup is the caller's responsibility.
func (r *VideoRepository) Delete(id, ownerID string) error {
	result, err := r.db.Exec("DELETE FROM videos WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete video: %v", shared.ErrStore, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get affected rows: %v", shared.ErrStore, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: video %s", shared.ErrNotFound, id)
	}

	return nil
}

// DeleteByIDs removes a batch of video rows belonging to the owner.
func (r *VideoRepository) DeleteByIDs(ownerID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, ownerID)
	for _, id := range ids {
		args = append(args, id)
	}

	query := fmt.Sprintf("DELETE FROM videos WHERE owner_id = ? AND id IN (%s)", placeholders)
	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("%w: failed to delete videos: %v", shared.ErrStore, err)
	}

	return nil
}

// scanOne scans a single row into a [models.Video]
func (r *VideoRepository) scanOne(row *sql.Row) (*models.Video, error) {
	var (
		id           string
		sequence     int
		ownerID      string
		remoteID     string
		title        string
		description  string
		thumbnailURL string
		duration     int
		channelName  string
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := row.Scan(&id, &sequence, &ownerID, &remoteID, &title, &description, &thumbnailURL, &duration, &channelName, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: video", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan video: %v", shared.ErrStore, err)
	}

	meta := models.VideoMetadata{
		Title:        title,
		Description:  description,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		ChannelName:  channelName,
	}

	video := models.NewVideo(sequence, ownerID, remoteID, meta)
	video.SetID(id)
	video.SetCreatedAt(createdAt)
	video.SetUpdatedAt(updatedAt)

	return video, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Video]
func (r *VideoRepository) scanRow(rows *sql.Rows) (*models.Video, error) {
	var (
		id           string
		sequence     int
		ownerID      string
		remoteID     string
		title        string
		description  string
		thumbnailURL string
		duration     int
		channelName  string
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := rows.Scan(&id, &sequence, &ownerID, &remoteID, &title, &description, &thumbnailURL, &duration, &channelName, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan video: %v", shared.ErrStore, err)
	}

	meta := models.VideoMetadata{
		Title:        title,
		Description:  description,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		ChannelName:  channelName,
	}

	video := models.NewVideo(sequence, ownerID, remoteID, meta)
	video.SetID(id)
	video.SetCreatedAt(createdAt)
	video.SetUpdatedAt(updatedAt)

	return video, nil
}
