package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/skotter-marq/video-editor-agent/internal/api"
	"github.com/skotter-marq/video-editor-agent/internal/config"
	"github.com/skotter-marq/video-editor-agent/internal/db"
	"github.com/skotter-marq/video-editor-agent/internal/editor"
	"github.com/skotter-marq/video-editor-agent/internal/logging"
	"github.com/skotter-marq/video-editor-agent/internal/media"
	"github.com/skotter-marq/video-editor-agent/internal/playback"
	"github.com/skotter-marq/video-editor-agent/internal/timeline"
	"github.com/skotter-marq/video-editor-agent/internal/ui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting video editor agent", "version", config.Version, "data_dir", cfg.DataDir())

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := media.NewRepository(database.Conn())

	authToken, err := ensureAuthToken(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure auth token: %w", err)
	}

	apiURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Port())

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Printf("║              VIDEO EDITOR AGENT v%-8s                 ║\n", config.Version)
	fmt.Println("╠═══════════════════════════════════════════════════════════╣")
	fmt.Printf("║  API URL:    %-45s ║\n", apiURL)
	fmt.Printf("║  Auth Token: %-45s ║\n", authToken)
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	librarySvc := media.NewService(repo, logger)
	streamer := playback.NewStreamer(logger)

	notifier := &trayNotifier{}
	engine := editor.New(editor.Options{
		HistoryDepth:    cfg.HistoryDepth(),
		PixelsPerSecond: cfg.PixelsPerSecond(),
		Library:         librarySvc,
		Notifier:        notifier,
		Logger:          logging.WithComponent(logger, "editor"),
	})

	apiServer := api.NewServer(api.ServerConfig{
		Port:       cfg.Port(),
		Engine:     engine,
		Library:    librarySvc,
		Repository: repo,
		Streamer:   streamer,
		FrameRate:  cfg.ExportFrameRate(),
		Logger:     logging.WithComponent(logger, "api"),
		StartTime:  startTime,
	})

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	quitCh := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			close(quitCh)
		case <-quitCh:
		}
	}()

	if cfg.Headless() {
		logger.Info("running in headless mode (no system tray)")
	} else {
		tray := ui.NewTray(ui.TrayConfig{
			Engine: engine,
			APIURL: apiURL,
			Logger: logging.WithComponent(logger, "tray"),
			OnQuit: func() {
				close(quitCh)
			},
		})
		notifier.SetTray(tray)
		go tray.Run()
	}

	<-quitCh

	logger.Info("initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// trayNotifier mirrors engine changes into the tray menu. Playhead and
// auto-scroll updates are for the browser UI, which polls over HTTP, so they
// are dropped here. The tray is attached after the HTTP server is already
// serving, so the field is mutex-guarded against notifications racing the
// attach.
type trayNotifier struct {
	mu   sync.Mutex
	tray *ui.Tray
}

func (n *trayNotifier) SetTray(t *ui.Tray) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tray = t
}

func (n *trayNotifier) OnProjectChanged(_ *timeline.Project) {
	n.mu.Lock()
	tray := n.tray
	n.mu.Unlock()
	if tray != nil {
		tray.Refresh()
	}
}

func (n *trayNotifier) OnPlayheadChanged(float64) {}

func (n *trayNotifier) OnAutoScroll(float64) {}

func ensureAuthToken(repo media.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "auth_token")
	if err == nil && existing != "" {
		return existing, nil
	}

	tokenBytes := make([]byte, 24)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	if err := repo.SetConfig(ctx, "auth_token", token); err != nil {
		return "", err
	}

	return token, nil
}
