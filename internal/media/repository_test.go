package media

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/skotter-marq/video-editor-agent/internal/db"
)

func setupTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewRepository(database.Conn())
}

func testAsset(name string) *Asset {
	return &Asset{
		ID:        NewID(),
		Name:      name,
		Duration:  12.5,
		Size:      1024,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestCreateAndGetAsset(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	a := testAsset("beach.mp4")
	a.Path = "/media/beach.mp4"
	a.ThumbnailURL = "http://localhost/thumbs/beach.jpg"
	if err := repo.CreateAsset(ctx, a); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	got, err := repo.GetAsset(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if got == nil {
		t.Fatal("GetAsset returned nil for an existing asset")
	}
	if got.Name != a.Name || got.Path != a.Path || got.ThumbnailURL != a.ThumbnailURL {
		t.Errorf("got %+v, want %+v", got, a)
	}
	if got.Duration != a.Duration || got.Size != a.Size {
		t.Errorf("duration/size = %v/%v, want %v/%v", got.Duration, got.Size, a.Duration, a.Size)
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, a.CreatedAt)
	}
}

func TestGetAsset_Unknown(t *testing.T) {
	repo := setupTestRepo(t)

	got, err := repo.GetAsset(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if got != nil {
		t.Errorf("GetAsset(unknown) = %+v, want nil", got)
	}
}

func TestCreateAsset_EmptyOptionalFields(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	a := testAsset("pathless.mp4")
	if err := repo.CreateAsset(ctx, a); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	got, err := repo.GetAsset(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if got.Path != "" || got.ThumbnailURL != "" {
		t.Errorf("optional fields = %q/%q, want empty", got.Path, got.ThumbnailURL)
	}
}

func TestListAndCountAssets(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for i, name := range []string{"a.mp4", "b.mp4", "c.mp4"} {
		a := testAsset(name)
		a.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		if err := repo.CreateAsset(ctx, a); err != nil {
			t.Fatalf("CreateAsset(%s): %v", name, err)
		}
	}

	assets, err := repo.ListAssets(ctx)
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("ListAssets returned %d assets, want 3", len(assets))
	}
	// Newest first.
	if assets[0].Name != "c.mp4" {
		t.Errorf("first asset = %s, want c.mp4", assets[0].Name)
	}

	count, err := repo.CountAssets(ctx)
	if err != nil {
		t.Fatalf("CountAssets: %v", err)
	}
	if count != 3 {
		t.Errorf("CountAssets = %d, want 3", count)
	}
}

func TestDeleteAsset(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	a := testAsset("gone.mp4")
	if err := repo.CreateAsset(ctx, a); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if err := repo.DeleteAsset(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}

	got, err := repo.GetAsset(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if got != nil {
		t.Error("asset still present after delete")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if v, err := repo.GetConfig(ctx, "auth_token"); err != nil || v != "" {
		t.Fatalf("GetConfig(missing) = %q, %v; want empty, nil", v, err)
	}

	if err := repo.SetConfig(ctx, "auth_token", "abc123"); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if v, _ := repo.GetConfig(ctx, "auth_token"); v != "abc123" {
		t.Errorf("GetConfig = %q, want abc123", v)
	}

	// Upsert replaces.
	if err := repo.SetConfig(ctx, "auth_token", "def456"); err != nil {
		t.Fatalf("SetConfig(update): %v", err)
	}
	if v, _ := repo.GetConfig(ctx, "auth_token"); v != "def456" {
		t.Errorf("GetConfig after update = %q, want def456", v)
	}
}
