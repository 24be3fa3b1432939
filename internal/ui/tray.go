package ui

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"

	"github.com/skotter-marq/video-editor-agent/internal/editor"
)

type Tray struct {
	engine *editor.Engine
	logger *slog.Logger

	statusItem *systray.MenuItem
	clipsItem  *systray.MenuItem
	apiItem    *systray.MenuItem

	mu sync.Mutex

	apiURL string
	onQuit func()
}

type TrayConfig struct {
	Engine *editor.Engine
	APIURL string
	Logger *slog.Logger
	OnQuit func()
}

func NewTray(cfg TrayConfig) *Tray {
	return &Tray{
		engine: cfg.Engine,
		apiURL: cfg.APIURL,
		logger: cfg.Logger,
		onQuit: cfg.OnQuit,
	}
}

func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconBytes)
	systray.SetTitle("Editor")
	systray.SetTooltip("Video Editor Agent")

	t.statusItem = systray.AddMenuItem("Status: Stopped", "Playback state")
	t.statusItem.Disable()

	t.clipsItem = systray.AddMenuItem("Clips: 0", "Clips on the timeline")
	t.clipsItem.Disable()

	t.apiItem = systray.AddMenuItem("API: "+t.apiURL, "Local API address")
	t.apiItem.Disable()

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit Video Editor Agent")

	go func() {
		for range quitItem.ClickedCh {
			t.logger.Info("quit requested from tray")
			if t.onQuit != nil {
				t.onQuit()
			}
			systray.Quit()
			return
		}
	}()

	t.logger.Info("system tray ready")
}

func (t *Tray) onExit() {
	t.logger.Info("system tray exiting")
}

// Refresh re-reads the engine status into the menu. Called by the agent's
// notifier whenever the project or transport changes.
func (t *Tray) Refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.statusItem == nil {
		return
	}

	st := t.engine.Status()
	if st.Playing {
		t.statusItem.SetTitle("Status: Playing")
	} else {
		t.statusItem.SetTitle("Status: Stopped")
	}
	t.clipsItem.SetTitle(fmt.Sprintf("Clips: %d", st.ClipCount))
}

func (t *Tray) Quit() {
	systray.Quit()
}
