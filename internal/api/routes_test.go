package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skotter-marq/video-editor-agent/internal/db"
	"github.com/skotter-marq/video-editor-agent/internal/editor"
	"github.com/skotter-marq/video-editor-agent/internal/media"
	"github.com/skotter-marq/video-editor-agent/internal/playback"
)

const testToken = "test-token"

func setupTestAPIRepo(t *testing.T) *media.SQLiteRepository {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return media.NewRepository(database.Conn())
}

type testServer struct {
	router  *chi.Mux
	library media.LibraryService
	engine  *editor.Engine
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := setupTestAPIRepo(t)
	if err := repo.SetConfig(context.Background(), "auth_token", testToken); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	library := media.NewService(repo, logger)
	engine := editor.New(editor.Options{Library: library, Logger: logger})

	cfg := ServerConfig{
		Port:       0,
		Engine:     engine,
		Library:    library,
		Repository: repo,
		Streamer:   playback.NewStreamer(logger),
		FrameRate:  30.0,
		Logger:     logger,
		StartTime:  time.Now(),
	}

	return &testServer{
		router:  NewRouter(cfg),
		library: library,
		engine:  engine,
	}
}

// do issues an authenticated request against the router.
func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decodeJSONBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

// registerAsset seeds the library over the API and returns the asset ID.
func (s *testServer) registerAsset(t *testing.T, name string, duration float64) string {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/media", RegisterAssetRequest{Name: name, Duration: duration})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register asset status = %d, body %s", rr.Code, rr.Body.String())
	}
	body := decodeJSONBody(t, rr)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatal("registered asset response has no id")
	}
	return id
}

// addClip places an asset and returns the clip ID.
func (s *testServer) addClip(t *testing.T, sourceID string, at float64) string {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/project/clips", AddClipRequest{SourceID: sourceID, At: at})
	if rr.Code != http.StatusCreated {
		t.Fatalf("add clip status = %d, body %s", rr.Code, rr.Body.String())
	}
	body := decodeJSONBody(t, rr)
	clip, _ := body["clip"].(map[string]interface{})
	id, _ := clip["id"].(string)
	if id == "" {
		t.Fatal("add clip response has no clip id")
	}
	return id
}

func TestHealth_NoAuthRequired(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := decodeJSONBody(t, rr)
	if body["status"] != "ok" {
		t.Errorf(`status field = %v, want "ok"`, body["status"])
	}
}

func TestAuthedRoutes_RejectWithoutToken(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodGet, "/status", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	body := decodeJSONBody(t, rr)
	if body["project_name"] != "Untitled Project" {
		t.Errorf("project_name = %v", body["project_name"])
	}
	if body["clip_count"].(float64) != 0 {
		t.Errorf("clip_count = %v, want 0", body["clip_count"])
	}
}

func TestMediaLifecycle(t *testing.T) {
	s := setupTestServer(t)

	id := s.registerAsset(t, "beach.mp4", 10.0)

	rr := s.do(t, http.MethodGet, "/media", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	body := decodeJSONBody(t, rr)
	assets, _ := body["assets"].([]interface{})
	if len(assets) != 1 {
		t.Fatalf("listed %d assets, want 1", len(assets))
	}

	rr = s.do(t, http.MethodDelete, "/media/"+id, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rr.Code, http.StatusNoContent)
	}

	rr = s.do(t, http.MethodGet, "/media", nil)
	body = decodeJSONBody(t, rr)
	assets, _ = body["assets"].([]interface{})
	if len(assets) != 0 {
		t.Errorf("listed %d assets after delete, want 0", len(assets))
	}
}

func TestRegisterAsset_Validation(t *testing.T) {
	s := setupTestServer(t)

	tests := []struct {
		name string
		req  RegisterAssetRequest
	}{
		{"missing name", RegisterAssetRequest{Duration: 5}},
		{"zero duration", RegisterAssetRequest{Name: "a.mp4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, http.MethodPost, "/media", tt.req)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestAddClip_UnknownSource(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPost, "/project/clips", AddClipRequest{SourceID: "ghost"})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	body := decodeJSONBody(t, rr)
	if body["code"] != "MISSING_SOURCE" {
		t.Errorf("code = %v, want MISSING_SOURCE", body["code"])
	}
}

func TestClipLifecycle(t *testing.T) {
	s := setupTestServer(t)
	assetID := s.registerAsset(t, "beach.mp4", 10.0)
	clipID := s.addClip(t, assetID, 2.0)

	// Property edit.
	rr := s.do(t, http.MethodPatch, "/project/clips/"+clipID, map[string]interface{}{"rotation": 90.0})
	if rr.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rr.Code, rr.Body.String())
	}

	p := s.engine.Project()
	if got := p.Clips[0].Transform.Rotation; got != 90.0 {
		t.Errorf("Rotation = %v, want 90", got)
	}

	// Remove.
	rr = s.do(t, http.MethodDelete, "/project/clips/"+clipID, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	rr = s.do(t, http.MethodDelete, "/project/clips/"+clipID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestGestureRoundTrip(t *testing.T) {
	s := setupTestServer(t)
	assetID := s.registerAsset(t, "beach.mp4", 4.0)
	clipID := s.addClip(t, assetID, 1.0)

	rr := s.do(t, http.MethodPost, "/gesture/begin", BeginGestureRequest{
		ClipID: clipID, Mode: "move", PointerTime: 2.0,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("begin status = %d", rr.Code)
	}
	if body := decodeJSONBody(t, rr); body["accepted"] != true {
		t.Fatalf("begin accepted = %v, want true", body["accepted"])
	}

	rr = s.do(t, http.MethodPost, "/gesture/update", UpdateGestureRequest{PointerTime: 5.0})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("update status = %d", rr.Code)
	}

	rr = s.do(t, http.MethodPost, "/gesture/commit", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("commit status = %d", rr.Code)
	}

	if got := s.engine.Project().Clips[0].TimelineStart; got != 4.0 {
		t.Errorf("TimelineStart after commit = %v, want 4", got)
	}

	// Undo over the API restores the placement.
	rr = s.do(t, http.MethodPost, "/history/undo", nil)
	if body := decodeJSONBody(t, rr); body["applied"] != true {
		t.Fatalf("undo applied = %v, want true", body["applied"])
	}
	if got := s.engine.Project().Clips[0].TimelineStart; got != 1.0 {
		t.Errorf("TimelineStart after undo = %v, want 1", got)
	}

	rr = s.do(t, http.MethodPost, "/history/redo", nil)
	if body := decodeJSONBody(t, rr); body["applied"] != true {
		t.Fatalf("redo applied = %v, want true", body["applied"])
	}
}

func TestGestureBegin_BadMode(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPost, "/gesture/begin", BeginGestureRequest{Mode: "wiggle"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHitTestEndpoint(t *testing.T) {
	s := setupTestServer(t)
	assetID := s.registerAsset(t, "beach.mp4", 4.0)
	clipID := s.addClip(t, assetID, 2.0) // [100px, 300px] at 50px/s, zoom 1

	tests := []struct {
		pixelX float64
		want   string
	}{
		{103.0, "trim-left"},
		{200.0, "move"},
		{297.0, "trim-right"},
		{500.0, "none"},
	}
	for _, tt := range tests {
		rr := s.do(t, http.MethodPost, "/gesture/hittest", HitTestRequest{ClipID: clipID, PixelX: tt.pixelX})
		if rr.Code != http.StatusOK {
			t.Fatalf("hittest status = %d", rr.Code)
		}
		if body := decodeJSONBody(t, rr); body["mode"] != tt.want {
			t.Errorf("hittest(%v) mode = %v, want %v", tt.pixelX, body["mode"], tt.want)
		}
	}
}

func TestPlaybackEndpoints(t *testing.T) {
	s := setupTestServer(t)
	assetID := s.registerAsset(t, "beach.mp4", 4.0)
	s.addClip(t, assetID, 0)

	rr := s.do(t, http.MethodPost, "/playback/play", nil)
	if body := decodeJSONBody(t, rr); body["playing"] != true {
		t.Fatalf("playing = %v after play, want true", body["playing"])
	}

	rr = s.do(t, http.MethodPost, "/playback/tick", TickRequest{Elapsed: 1.5})
	if body := decodeJSONBody(t, rr); body["playhead"].(float64) != 1.5 {
		t.Errorf("playhead = %v after tick, want 1.5", body["playhead"])
	}

	rr = s.do(t, http.MethodPost, "/playback/pause", nil)
	if body := decodeJSONBody(t, rr); body["playing"] != false {
		t.Errorf("playing = %v after pause, want false", body["playing"])
	}

	rr = s.do(t, http.MethodPost, "/playback/stop", nil)
	if body := decodeJSONBody(t, rr); body["playhead"].(float64) != 0 {
		t.Errorf("playhead = %v after stop, want 0", body["playhead"])
	}
}

func TestZoomEndpoint(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPut, "/zoom", ZoomRequest{Zoom: 3.0})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if body := decodeJSONBody(t, rr); body["zoom"].(float64) != 1.75 {
		t.Errorf("zoom = %v, want clamp to 1.75", body["zoom"])
	}
}

func TestViewportEndpoint(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPut, "/viewport", ViewportRequest{Left: 0, Width: 800})
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestNewProjectEndpoint(t *testing.T) {
	s := setupTestServer(t)
	assetID := s.registerAsset(t, "beach.mp4", 4.0)
	s.addClip(t, assetID, 0)

	rr := s.do(t, http.MethodPost, "/project", NewProjectRequest{Name: "fresh"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}

	p := s.engine.Project()
	if p.Name != "fresh" || len(p.Clips) != 0 {
		t.Errorf("project = %q with %d clips, want fresh with 0", p.Name, len(p.Clips))
	}
}

func TestStreamAsset_NotFound(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodGet, "/media/no-such-id/stream", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestStreamAsset_NoLocalFile(t *testing.T) {
	s := setupTestServer(t)
	assetID := s.registerAsset(t, "browser-only.mp4", 4.0)

	rr := s.do(t, http.MethodGet, fmt.Sprintf("/media/%s/stream", assetID), nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
