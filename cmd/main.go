package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/terminal"
	"pomodoro/internal/ui/timer"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const appName = "Pomodoro"

type options struct {
	configPath string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "pomodoro",
		Short:         "Pomodoro work/break timer with a menu-bar presence",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDesktop(opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "settings file (default <user config dir>/Pomodoro/settings.yaml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTerminal(opts)
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	config := &cobra.Command{Use: "config", Short: "Inspect timer settings"}

	config.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := opts.settingsPath()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	})

	config.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := opts.settingsPath()
			if err != nil {
				return err
			}
			settings, err := storage.LoadSettings(path)
			if err != nil {
				return err
			}
			prefs := settings.Preferences()
			out := cmd.OutOrStdout()
			_, err = fmt.Fprintf(out, "work: %d min\nshort break: %d min\nlong break: %d min\nsound: %s\nmenu bar clock: %t\n",
				prefs.WorkMinutes, prefs.ShortBreakMinutes, prefs.LongBreakMinutes, prefs.Sound, settings.MenuBarClock)
			return err
		},
	})

	return config
}

func (opts *options) settingsPath() (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return storage.DefaultPath(appName)
}

func newLogger(writer io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
}

func loadSettings(opts *options, logger *slog.Logger) (preferences.Settings, string) {
	path, err := opts.settingsPath()
	if err != nil {
		logger.Warn("settings path unavailable, using defaults", "error", err)
		return preferences.DefaultSettings(), ""
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		logger.Warn("settings unreadable, using defaults", "path", path, "error", err)
	}
	return settings, path
}

func runDesktop(opts *options) error {
	logger := newLogger(os.Stderr, opts.debug)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, settingsPath := loadSettings(opts, logger)

	fyneApp := app.NewWithID("com.pomodoro.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))

	dispatcher := notify.NewDispatcher(notify.NewFynePoster(fyneApp), platform.NewSoundPlayer(), notify.WithLogger(logger))
	engine := session.New(settings.Preferences(), dispatcher, session.Config{
		TickInterval: time.Second,
		Logger:       logger,
	})
	defer engine.Close()

	var prefsWindow *preferences.Window
	var trayManager *tray.Manager

	timerWindow := timer.New(fyneApp, engine, func() {
		prefsWindow.Show()
	})

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		engine.UpdatePreferences(settings.Preferences())
		if trayManager != nil {
			trayManager.SetMenuBarClock(settings.MenuBarClock)
		}
		if settingsPath == "" {
			return
		}
		if err := storage.SaveSettings(settingsPath, settings); err != nil {
			logger.Error("save settings", "path", settingsPath, "error", err)
		}
	}, dispatcher.Preview)

	activeIcon := resources.MustIcon(resources.IconActive)
	idleIcon := resources.MustIcon(resources.IconIdle)

	desktopApp, ok := fyneApp.(desktop.App)
	if ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShowTimer:   timerWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnToggleRunning: func() {
				if engine.Snapshot().Running {
					engine.Pause()
				} else {
					engine.Start()
				}
			},
			OnReset:      engine.Reset,
			OnSwitchMode: func(mode model.Mode) { engine.SwitchMode(mode) },
			OnQuit:       fyneApp.Quit,
		})
		trayManager.SetMenuBarClock(settings.MenuBarClock)
		trayManager.Render(engine.Snapshot())
		desktopApp.SetSystemTrayIcon(idleIcon)
		timerWindow.Window().SetCloseIntercept(timerWindow.Window().Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		timerWindow.Window().SetMaster()
	}

	events := engine.Subscribe(16)
	go func() {
		for event := range events {
			fyne.Do(func() {
				handleEvent(event, engine, timerWindow, trayManager, desktopApp, activeIcon, idleIcon)
			})
		}
	}()

	timerWindow.Show()
	fyneApp.Run()
	return nil
}

func handleEvent(event session.Event, engine *session.Engine, timerWindow *timer.Window, trayManager *tray.Manager, desktopApp desktop.App, activeIcon, idleIcon fyne.Resource) {
	snapshot := engine.Snapshot()
	timerWindow.Render(snapshot)

	if event.Type == session.EventCompleted {
		timerWindow.ShowCompleted(event.Snapshot.Mode)
	}
	if trayManager == nil {
		return
	}
	trayManager.Render(snapshot)
	if event.Type == session.EventCompleted {
		trayManager.SetCompleted(event.Snapshot.Mode)
	}

	switch event.Type {
	case session.EventStarted:
		desktopApp.SetSystemTrayIcon(activeIcon)
	case session.EventPaused, session.EventReset, session.EventCompleted:
		desktopApp.SetSystemTrayIcon(idleIcon)
	}
}

func runTerminal(opts *options) error {
	logger := newLogger(io.Discard, false)
	if opts.debug {
		logFile, err := tea.LogToFile("pomodoro-debug.log", "pomodoro")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer logFile.Close()
		logger = newLogger(logFile, true)
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, _ := loadSettings(opts, logger)

	dispatcher := notify.NewDispatcher(nil, platform.NewSoundPlayer(), notify.WithLogger(logger))
	engine := session.New(settings.Preferences(), dispatcher, session.Config{
		TickInterval: time.Second,
		Logger:       logger,
	})
	defer engine.Close()

	return terminal.Run(engine, engine.Subscribe(64))
}
