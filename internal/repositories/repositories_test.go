package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"tubevault/internal/models"
	"tubevault/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Every pooled connection to :memory: is a separate database, so the pool
	// must stay at one connection for the migrated schema to be visible.
	shared.ConfigureDatabase(db, 1, 1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	user := models.NewUser(0, "owner@example.com", "Owner")
	if err := NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	first, err := NextSequence(db, "videos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NextSequence(db, "videos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first+1 {
		t.Errorf("expected %d, got %d", first+1, second)
	}
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	t.Run("create and get", func(t *testing.T) {
		user := models.NewUser(0, "a@example.com", "A")
		if err := repo.Create(user); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if user.ID() == "" || user.Sequence() == 0 {
			t.Error("create should assign id and sequence")
		}

		got, err := repo.Get(user.ID())
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Email() != "a@example.com" {
			t.Errorf("unexpected email: %q", got.Email())
		}
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := repo.GetByEmail("a@example.com")
		if err != nil {
			t.Fatalf("get by email failed: %v", err)
		}
		if got.DisplayName() != "A" {
			t.Errorf("unexpected display name: %q", got.DisplayName())
		}
	})

	t.Run("missing user", func(t *testing.T) {
		if _, err := repo.GetByEmail("nobody@example.com"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestVideoRepository(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	repo := NewVideoRepository(db)

	meta := models.VideoMetadata{Title: "First", Duration: 120, ChannelName: "Chan"}
	video := models.NewVideo(0, owner.ID(), "vid00000001", meta)
	if err := repo.Create(video); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	t.Run("get", func(t *testing.T) {
		got, err := repo.Get(video.ID(), owner.ID())
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Title() != "First" || got.Duration() != 120 {
			t.Errorf("unexpected video: %q %d", got.Title(), got.Duration())
		}
	})

	t.Run("get by remote id", func(t *testing.T) {
		got, err := repo.GetByRemoteID(owner.ID(), "vid00000001")
		if err != nil {
			t.Fatalf("get by remote id failed: %v", err)
		}
		if got.ID() != video.ID() {
			t.Errorf("expected id %s, got %s", video.ID(), got.ID())
		}
	})

	t.Run("scoped to owner", func(t *testing.T) {
		other := models.NewUser(0, "b@example.com", "B")
		if err := NewUserRepository(db).Create(other); err != nil {
			t.Fatal(err)
		}
		if _, err := repo.Get(video.ID(), other.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound across owners, got %v", err)
		}
	})

	t.Run("duplicate remote id rejected", func(t *testing.T) {
		dup := models.NewVideo(0, owner.ID(), "vid00000001", meta)
		if err := repo.Create(dup); !errors.Is(err, shared.ErrStore) {
			t.Errorf("expected ErrStore on duplicate, got %v", err)
		}
	})

	t.Run("list by owner", func(t *testing.T) {
		second := models.NewVideo(0, owner.ID(), "vid00000002", models.VideoMetadata{Title: "Second", Duration: 60})
		if err := repo.Create(second); err != nil {
			t.Fatal(err)
		}

		videos, err := repo.ListByOwner(owner.ID())
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(videos) != 2 {
			t.Fatalf("expected 2 videos, got %d", len(videos))
		}
		if videos[0].RemoteID() != "vid00000002" {
			t.Errorf("expected newest first, got %q", videos[0].RemoteID())
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(video.ID(), owner.ID()); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := repo.Get(video.ID(), owner.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(video.ID(), owner.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("delete by ids", func(t *testing.T) {
		a := models.NewVideo(0, owner.ID(), "vid0000000a", models.VideoMetadata{Title: "A"})
		b := models.NewVideo(0, owner.ID(), "vid0000000b", models.VideoMetadata{Title: "B"})
		for _, v := range []*models.Video{a, b} {
			if err := repo.Create(v); err != nil {
				t.Fatal(err)
			}
		}

		if err := repo.DeleteByIDs(owner.ID(), []string{a.ID(), b.ID()}); err != nil {
			t.Fatalf("delete by ids failed: %v", err)
		}
		if _, err := repo.Get(a.ID(), owner.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := repo.DeleteByIDs(owner.ID(), nil); err != nil {
			t.Errorf("empty batch should be a no-op, got %v", err)
		}
	})
}

func TestPlaylistRepository(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	repo := NewPlaylistRepository(db)

	meta := models.PlaylistMetadata{Name: "Mix", Description: "desc"}
	playlist := models.NewPlaylist(0, owner.ID(), "PLmix", meta)
	if err := repo.Create(playlist); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	t.Run("get", func(t *testing.T) {
		got, err := repo.Get(playlist.ID(), owner.ID())
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Name() != "Mix" || got.RemoteID() != "PLmix" {
			t.Errorf("unexpected playlist: %q %q", got.Name(), got.RemoteID())
		}
	})

	t.Run("update summary", func(t *testing.T) {
		playlist.ApplyMetadata(models.PlaylistMetadata{Name: "Mix v2"})
		playlist.SetSummary(3, 540)
		if err := repo.Update(playlist); err != nil {
			t.Fatalf("update failed: %v", err)
		}

		got, err := repo.Get(playlist.ID(), owner.ID())
		if err != nil {
			t.Fatal(err)
		}
		if got.Name() != "Mix v2" || got.VideoCount() != 3 || got.TotalDuration() != 540 {
			t.Errorf("update not persisted: %q %d %d", got.Name(), got.VideoCount(), got.TotalDuration())
		}
	})

	t.Run("list by owner newest first", func(t *testing.T) {
		later := models.NewPlaylist(0, owner.ID(), "PLlater", models.PlaylistMetadata{Name: "Later"})
		if err := repo.Create(later); err != nil {
			t.Fatal(err)
		}

		playlists, err := repo.ListByOwner(owner.ID())
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
		if playlists[0].Name() != "Later" {
			t.Errorf("expected newest first, got %q", playlists[0].Name())
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(playlist.ID(), owner.ID()); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := repo.Get(playlist.ID(), owner.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestMembershipRepository(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)

	videoRepo := NewVideoRepository(db)
	playlistRepo := NewPlaylistRepository(db)
	repo := NewMembershipRepository(db)

	playlist := models.NewPlaylist(0, owner.ID(), "PLmix", models.PlaylistMetadata{Name: "Mix"})
	if err := playlistRepo.Create(playlist); err != nil {
		t.Fatal(err)
	}

	var videos []*models.Video
	for _, remoteID := range []string{"vid0000000a", "vid0000000b", "vid0000000c"} {
		v := models.NewVideo(0, owner.ID(), remoteID, models.VideoMetadata{Title: remoteID, Duration: 60})
		if err := videoRepo.Create(v); err != nil {
			t.Fatal(err)
		}
		videos = append(videos, v)
	}

	for i, v := range videos {
		if err := repo.Insert(models.NewMembership(playlist.ID(), v.ID(), i)); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	t.Run("list ordered by position", func(t *testing.T) {
		entries, err := repo.ListByPlaylist(playlist.ID())
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		for i, entry := range entries {
			if entry.Position != i {
				t.Errorf("entry %d has position %d", i, entry.Position)
			}
			if entry.RemoteVideoID != videos[i].RemoteID() {
				t.Errorf("entry %d: expected remote id %q, got %q", i, videos[i].RemoteID(), entry.RemoteVideoID)
			}
		}
	})

	t.Run("member video ids", func(t *testing.T) {
		standalone := models.NewVideo(0, owner.ID(), "vid0000000d", models.VideoMetadata{Title: "Standalone"})
		if err := videoRepo.Create(standalone); err != nil {
			t.Fatal(err)
		}

		ids, err := repo.MemberVideoIDs(owner.ID())
		if err != nil {
			t.Fatalf("member video ids failed: %v", err)
		}
		if len(ids) != 3 {
			t.Errorf("expected 3 member ids, got %d", len(ids))
		}
		if _, ok := ids[standalone.ID()]; ok {
			t.Error("standalone video should not be a member")
		}
	})

	t.Run("video ids by playlist", func(t *testing.T) {
		ids, err := repo.VideoIDsByPlaylist(playlist.ID())
		if err != nil {
			t.Fatalf("video ids failed: %v", err)
		}
		if len(ids) != 3 {
			t.Errorf("expected 3 ids, got %d", len(ids))
		}
	})

	t.Run("delete by video", func(t *testing.T) {
		if err := repo.DeleteByVideo(videos[1].ID()); err != nil {
			t.Fatalf("delete by video failed: %v", err)
		}
		entries, err := repo.ListByPlaylist(playlist.ID())
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 2 {
			t.Errorf("expected 2 entries after delete, got %d", len(entries))
		}
	})

	t.Run("delete by playlist", func(t *testing.T) {
		if err := repo.DeleteByPlaylist(playlist.ID()); err != nil {
			t.Fatalf("delete by playlist failed: %v", err)
		}
		entries, err := repo.ListByPlaylist(playlist.ID())
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %d", len(entries))
		}
	})
}
