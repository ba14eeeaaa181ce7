package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/klu2300033421/StopWatch/internal/config"
	"github.com/klu2300033421/StopWatch/internal/sound"
	"github.com/klu2300033421/StopWatch/internal/stopwatch"
)

type MainWindow struct {
	app       fyne.App
	window    fyne.Window
	view      *StopwatchView
	refresher *Refresher
	logger    *log.Logger
	manager   *config.Manager
	config    *config.Config // effective settings, flag overrides included

	newPlayer func(config.SoundConfig) sound.Player
}

// NewMainWindow builds the window for sw. cfg holds the settings in effect;
// changes made in the settings dialog are saved through manager.
func NewMainWindow(app fyne.App, manager *config.Manager, cfg *config.Config, sw *stopwatch.Stopwatch, player sound.Player, logger *log.Logger) *MainWindow {
	w := &MainWindow{
		app:       app,
		window:    app.NewWindow(cfg.App.Name),
		view:      NewStopwatchView(sw, player, logger, cfg.Display),
		refresher: NewRefresher(cfg.Display.TickInterval),
		logger:    logger,
		manager:   manager,
		config:    cfg,
		newPlayer: func(c config.SoundConfig) sound.Player {
			return sound.New(c, logger)
		},
	}
	w.setup()
	return w
}

func (w *MainWindow) SetSize(width, height float32) {
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) setup() {
	w.applyTheme()

	toolbar := widget.NewToolbar(
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), func() { w.showSettings() }),
	)

	w.window.SetContent(container.NewBorder(
		toolbar,
		nil, nil, nil,
		w.view.Container(),
	))
	w.window.Canvas().SetOnTypedKey(w.handleKey)
	w.SetSize(float32(w.config.App.WindowWidth), float32(w.config.App.WindowHeight))
}

func (w *MainWindow) applyTheme() {
	w.app.Settings().SetTheme(newVariantTheme(w.config.Theme.DarkMode))
}

// handleKey maps keyboard shortcuts onto the stopwatch controls.
func (w *MainWindow) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeySpace:
		w.view.Toggle()
	case fyne.KeyL, fyne.KeyReturn, fyne.KeyEnter:
		w.view.Split()
	case fyne.KeyR:
		w.view.Reset()
	}
}

// Show runs the window until it is closed. The readout is refreshed every
// tick interval for as long as the window is open.
func (w *MainWindow) Show() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w.window.SetOnClosed(cancel)
	go w.refresher.Run(ctx, func() {
		fyne.Do(w.view.Refresh)
	})

	w.logger.Info("window opened", "tick", w.refresher.Interval(), "config", w.manager.Path())
	w.window.ShowAndRun()
	w.logger.Info("window closed", "elapsed", stopwatch.FormatTime(w.view.sw.Elapsed()))
}
