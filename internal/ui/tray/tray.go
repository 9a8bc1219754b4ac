package tray

import (
	"fmt"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"
)

const trayGlyph = "🍅"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowTimer     func()
	OnPreferences   func()
	OnToggleRunning func()
	OnReset         func()
	OnSwitchMode    func(model.Mode)
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	app          desktop.App
	callbacks    Callbacks
	setTitle     func(string)
	statusItem   *fyne.MenuItem
	toggleItem   *fyne.MenuItem
	resetItem    *fyne.MenuItem
	modeItem     *fyne.MenuItem
	modeItems    map[model.Mode]*fyne.MenuItem
	menuBarClock bool
	title        string
	completed    model.Mode
	snapshot     session.Snapshot
}

// New creates a tray manager with the provided callbacks. app may be nil
// when no system tray is available.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:          app,
		callbacks:    callbacks,
		setTitle:     systray.SetTitle,
		modeItems:    make(map[model.Mode]*fyne.MenuItem),
		menuBarClock: true,
	}

	manager.statusItem = fyne.NewMenuItem("Status: Ready", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggleRunning != nil {
			manager.callbacks.OnToggleRunning()
		}
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	var modeMenu []*fyne.MenuItem
	for _, mode := range model.Modes() {
		item := fyne.NewMenuItem(mode.Title(), func() {
			if manager.callbacks.OnSwitchMode != nil {
				manager.callbacks.OnSwitchMode(mode)
			}
		})
		manager.modeItems[mode] = item
		modeMenu = append(modeMenu, item)
	}
	manager.modeItem = fyne.NewMenuItem("Switch mode", nil)
	manager.modeItem.ChildMenu = fyne.NewMenu("", modeMenu...)

	manager.refreshMenu()
	return manager
}

// SetMenuBarClock toggles the countdown next to the tray icon.
func (manager *Manager) SetMenuBarClock(enabled bool) {
	manager.menuBarClock = enabled
	manager.refreshTitle()
}

// Render updates the menu and the menu-bar title from snapshot.
func (manager *Manager) Render(snapshot session.Snapshot) {
	manager.snapshot = snapshot
	if snapshot.Running {
		manager.completed = ""
	}

	manager.statusItem.Label = "Status: " + statusText(snapshot, manager.completed)
	if snapshot.Running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.modeItem.Disabled = snapshot.Running
	for mode, item := range manager.modeItems {
		item.Disabled = snapshot.Running
		item.Checked = mode == snapshot.Mode
	}

	manager.refreshTitle()
	manager.refreshMenu()
}

// SetCompleted marks mode as just finished until the next start.
func (manager *Manager) SetCompleted(mode model.Mode) {
	manager.completed = mode
	manager.Render(manager.snapshot)
}

// Title returns the current menu-bar title.
func (manager *Manager) Title() string {
	return manager.title
}

func (manager *Manager) refreshTitle() {
	title := MenuBarTitle(manager.snapshot, manager.menuBarClock)
	if title == manager.title {
		return
	}
	manager.title = title
	if manager.app != nil && manager.setTitle != nil {
		manager.setTitle(title)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Pomodoro",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		manager.modeItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show Timer", func() {
			if manager.callbacks.OnShowTimer != nil {
				manager.callbacks.OnShowTimer()
			}
		}),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}

// MenuBarTitle is "🍅 MM:SS" while running with the clock enabled, "🍅"
// otherwise.
func MenuBarTitle(snapshot session.Snapshot, showClock bool) string {
	if snapshot.Running && showClock {
		return fmt.Sprintf("%s %s", trayGlyph, snapshot.Clock())
	}
	return trayGlyph
}

func statusText(snapshot session.Snapshot, completed model.Mode) string {
	switch {
	case snapshot.Running:
		return fmt.Sprintf("%s %s", snapshot.Mode.Label(), snapshot.Clock())
	case completed != "":
		return completed.Label() + " complete"
	case snapshot.Remaining < snapshot.Total:
		return fmt.Sprintf("%s paused at %s", snapshot.Mode.Label(), snapshot.Clock())
	default:
		return "Ready"
	}
}
