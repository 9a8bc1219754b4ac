package preferences

import (
	"fmt"

	"pomodoro/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	onPreview func(model.Sound)
	sliders   map[model.Mode]*widget.Slider
	values    map[model.Mode]*widget.Label
	sound     *widget.Select
	clock     *widget.Check
}

// New creates a preferences window. onPreview plays a sound for the Test
// button and may be nil.
func New(app fyne.App, settings Settings, onSave func(Settings), onPreview func(model.Sound)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:    window,
		settings:  settings,
		onSave:    onSave,
		onPreview: onPreview,
		sliders:   make(map[model.Mode]*widget.Slider),
		values:    make(map[model.Mode]*widget.Label),
	}

	durations := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, mode := range model.Modes() {
		durations.Add(prefs.durationRow(mode))
	}

	prefs.sound = widget.NewSelect(model.SoundNames(), nil)
	testButton := widget.NewButton("Test", func() {
		if prefs.onPreview != nil {
			prefs.onPreview(prefs.selectedSound())
		}
	})
	prefs.clock = widget.NewCheck("Show countdown in the menu bar", nil)

	form := container.NewVBox(
		durations,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Sound"), testButton, prefs.sound),
		prefs.clock,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(cancelButton, layout.NewSpacer(), saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 360))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

func (prefs *Window) durationRow(mode model.Mode) fyne.CanvasObject {
	low, high := model.DurationRange(mode)
	value := widget.NewLabel("")
	slider := widget.NewSlider(float64(low), float64(high))
	slider.Step = 1
	slider.OnChanged = func(minutes float64) {
		value.SetText(fmt.Sprintf("%d min", int(minutes)))
	}
	prefs.sliders[mode] = slider
	prefs.values[mode] = value
	return container.NewBorder(nil, nil, widget.NewLabel(mode.Title()), value, slider)
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	for mode, slider := range prefs.sliders {
		minutes := settings.Minutes(mode)
		slider.SetValue(float64(minutes))
		prefs.values[mode].SetText(fmt.Sprintf("%d min", minutes))
	}
	prefs.sound.SetSelected(string(settings.Preferences().Sound))
	prefs.clock.SetChecked(settings.MenuBarClock)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	for mode, slider := range prefs.sliders {
		settings = settings.WithMinutes(mode, int(slider.Value))
	}
	settings.Sound = prefs.selectedSound()
	settings.MenuBarClock = prefs.clock.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) selectedSound() model.Sound {
	sound, err := model.ParseSound(prefs.sound.Selected)
	if err != nil {
		return model.DefaultSound
	}
	return sound
}
