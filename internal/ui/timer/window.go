package timer

import (
	"image/color"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Controller is the part of the session engine the window drives.
type Controller interface {
	Start()
	Pause()
	Reset()
	SwitchMode(mode model.Mode) bool
	Snapshot() session.Snapshot
}

var modeColors = map[model.Mode]color.NRGBA{
	model.ModeWork:       {R: 229, G: 57, B: 53, A: 255},
	model.ModeShortBreak: {R: 67, G: 160, B: 71, A: 255},
	model.ModeLongBreak:  {R: 30, G: 136, B: 229, A: 255},
}

var idleClockColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// ModeColor returns the accent color of mode.
func ModeColor(mode model.Mode) color.NRGBA {
	if accent, ok := modeColors[mode]; ok {
		return accent
	}
	return modeColors[model.ModeWork]
}

// Window is the main timer window. Render must run on the fyne thread.
type Window struct {
	window      fyne.Window
	controller  Controller
	titleLabel  *canvas.Text
	clockLabel  *canvas.Text
	statusLabel *widget.Label
	bannerLabel *widget.Label
	progress    *widget.ProgressBar
	startButton *widget.Button
	pauseButton *widget.Button
	resetButton *widget.Button
	modeButtons map[model.Mode]*widget.Button
}

// New creates the timer window. onSettings opens the preferences panel.
func New(app fyne.App, controller Controller, onSettings func()) *Window {
	window := app.NewWindow("Pomodoro")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	titleLabel := canvas.NewText("", ModeColor(model.ModeWork))
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 24

	clockLabel := canvas.NewText("--:--", idleClockColor)
	clockLabel.Alignment = fyne.TextAlignCenter
	clockLabel.TextStyle = fyne.TextStyle{Monospace: true}
	clockLabel.TextSize = 56

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	statusLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	bannerLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	timerWindow := &Window{
		window:      window,
		controller:  controller,
		titleLabel:  titleLabel,
		clockLabel:  clockLabel,
		statusLabel: statusLabel,
		bannerLabel: bannerLabel,
		progress:    progress,
		modeButtons: make(map[model.Mode]*widget.Button),
	}

	timerWindow.startButton = widget.NewButton("Start", timerWindow.handleStart)
	timerWindow.startButton.Importance = widget.HighImportance
	timerWindow.pauseButton = widget.NewButton("Pause", controller.Pause)
	timerWindow.resetButton = widget.NewButton("Reset", timerWindow.handleReset)

	modes := container.NewGridWithColumns(len(model.Modes()))
	for _, mode := range model.Modes() {
		button := widget.NewButton(mode.Title(), func() {
			timerWindow.handleSwitch(mode)
		})
		timerWindow.modeButtons[mode] = button
		modes.Add(button)
	}

	settingsButton := widget.NewButton("Settings", func() {
		if onSettings != nil {
			onSettings()
		}
	})

	controls := container.NewGridWithColumns(3, timerWindow.startButton, timerWindow.pauseButton, timerWindow.resetButton)
	content := container.NewVBox(
		titleLabel,
		layout.NewSpacer(),
		clockLabel,
		statusLabel,
		progress,
		bannerLabel,
		controls,
		widget.NewSeparator(),
		modes,
		container.NewHBox(layout.NewSpacer(), settingsButton),
	)

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(400, 520))
	window.SetFixedSize(true)

	timerWindow.Render(controller.Snapshot())
	return timerWindow
}

// Window returns the underlying fyne window.
func (timerWindow *Window) Window() fyne.Window {
	return timerWindow.window
}

// Show displays the window.
func (timerWindow *Window) Show() {
	timerWindow.window.Show()
	timerWindow.window.RequestFocus()
}

// Render updates every widget from snapshot.
func (timerWindow *Window) Render(snapshot session.Snapshot) {
	accent := ModeColor(snapshot.Mode)

	timerWindow.titleLabel.Text = snapshot.Mode.Title()
	timerWindow.titleLabel.Color = accent
	timerWindow.titleLabel.Refresh()

	timerWindow.clockLabel.Text = snapshot.Clock()
	if snapshot.Running {
		timerWindow.clockLabel.Color = accent
	} else {
		timerWindow.clockLabel.Color = idleClockColor
	}
	timerWindow.clockLabel.Refresh()

	timerWindow.progress.SetValue(snapshot.Progress())

	if snapshot.Running {
		timerWindow.statusLabel.SetText("Running...")
		timerWindow.bannerLabel.SetText("")
		timerWindow.startButton.Disable()
		timerWindow.pauseButton.Enable()
	} else {
		timerWindow.statusLabel.SetText("Ready")
		timerWindow.startButton.Enable()
		timerWindow.pauseButton.Disable()
	}

	for mode, button := range timerWindow.modeButtons {
		if snapshot.Running {
			button.Disable()
		} else {
			button.Enable()
		}
		if mode == snapshot.Mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Refresh()
	}
}

// ShowCompleted displays the in-app completion banner.
func (timerWindow *Window) ShowCompleted(mode model.Mode) {
	timerWindow.bannerLabel.SetText(mode.Label() + " complete!")
}

func (timerWindow *Window) handleStart() {
	timerWindow.bannerLabel.SetText("")
	timerWindow.controller.Start()
}

func (timerWindow *Window) handleReset() {
	timerWindow.bannerLabel.SetText("")
	timerWindow.controller.Reset()
}

func (timerWindow *Window) handleSwitch(mode model.Mode) {
	if timerWindow.controller.SwitchMode(mode) {
		timerWindow.bannerLabel.SetText("")
	}
}
