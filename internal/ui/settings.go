package ui

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"
)

// settingsDialog edits the persisted display, sound and theme settings.
type settingsDialog struct {
	window       fyne.Window
	form         *widget.Form
	darkMode     *widget.Check
	showLapDelta *widget.Check
	soundEnabled *widget.Check
	volume       *widget.Entry
	tickInterval *widget.Entry
}

func (w *MainWindow) showSettings() *settingsDialog {
	cfg := w.config
	d := &settingsDialog{
		window:       w.app.NewWindow("Stopwatch Settings"),
		darkMode:     widget.NewCheck("", nil),
		showLapDelta: widget.NewCheck("", nil),
		soundEnabled: widget.NewCheck("", nil),
		volume:       widget.NewEntry(),
		tickInterval: widget.NewEntry(),
	}
	d.darkMode.SetChecked(cfg.Theme.DarkMode)
	d.showLapDelta.SetChecked(cfg.Display.ShowLapDelta)
	d.soundEnabled.SetChecked(cfg.Sound.Enabled)
	d.volume.SetText(strconv.FormatFloat(cfg.Sound.Volume, 'g', -1, 64))
	d.tickInterval.SetText(cfg.Display.TickInterval.String())

	d.form = &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Dark mode", Widget: d.darkMode},
			{Text: "Show lap time", Widget: d.showLapDelta},
			{Text: "Sound", Widget: d.soundEnabled},
			{Text: "Volume", Widget: d.volume, HintText: "-10 to 10, 0 is unchanged"},
			{Text: "Refresh interval", Widget: d.tickInterval, HintText: "e.g. 10ms"},
		},
		OnSubmit: func() {
			if err := w.applySettings(d); err != nil {
				w.logger.Warn("settings rejected", "err", err)
				dialog.ShowError(err, d.window)
				return
			}
			d.window.Close()
		},
		OnCancel: d.window.Close,
	}

	d.window.SetContent(container.NewVBox(
		d.form,
		widget.NewLabel("Saved to "+w.manager.Path()),
	))
	d.window.Resize(fyne.NewSize(360, 260))
	d.window.Show()
	return d
}

// applySettings validates the form, saves it and applies it to the
// running window. Nothing is saved if any field is invalid.
func (w *MainWindow) applySettings(d *settingsDialog) error {
	tick, err := time.ParseDuration(strings.TrimSpace(d.tickInterval.Text))
	if err != nil {
		return errors.Wrap(err, "refresh interval")
	}
	volume, err := strconv.ParseFloat(strings.TrimSpace(d.volume.Text), 64)
	if err != nil {
		return errors.Wrap(err, "volume")
	}

	next := *w.config
	next.Display.TickInterval = tick
	next.Display.ShowLapDelta = d.showLapDelta.Checked
	next.Sound.Enabled = d.soundEnabled.Checked
	next.Sound.Volume = volume
	next.Theme.DarkMode = d.darkMode.Checked
	if err := next.Validate(); err != nil {
		return err
	}

	if err := w.manager.UpdateDisplayConfig(next.Display); err != nil {
		return err
	}
	if err := w.manager.UpdateSoundConfig(next.Sound); err != nil {
		return err
	}
	if err := w.manager.UpdateThemeConfig(next.Theme); err != nil {
		return err
	}

	soundChanged := next.Sound != w.config.Sound
	*w.config = next

	w.applyTheme()
	w.view.SetShowLapDelta(next.Display.ShowLapDelta)
	w.refresher.SetInterval(next.Display.TickInterval)
	if soundChanged {
		w.view.SetPlayer(w.newPlayer(next.Sound))
	}
	w.logger.Info("settings saved", "path", w.manager.Path())
	return nil
}
