package ui

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/klu2300033421/StopWatch/internal/config"
	"github.com/klu2300033421/StopWatch/internal/models"
	"github.com/klu2300033421/StopWatch/internal/sound"
	"github.com/klu2300033421/StopWatch/internal/stopwatch"
)

// StopwatchView shows the readout, the controls and the lap list for one
// stopwatch. All methods must be called on the Fyne UI goroutine.
type StopwatchView struct {
	sw      *stopwatch.Stopwatch
	player  sound.Player
	logger  *log.Logger
	display config.DisplayConfig

	laps []models.Lap // rows currently shown in lapList

	// UI components
	container   *fyne.Container
	header      *fyne.Container
	timeLabel   *canvas.Text
	statusLabel *canvas.Text
	startButton *widget.Button
	splitButton *widget.Button
	pauseButton *widget.Button
	resetButton *widget.Button
	lapList     *widget.List
}

var (
	panelColor   = color.NRGBA{R: 0x2A, G: 0x2D, B: 0x3E, A: 0xFF}
	borderColor  = color.NRGBA{R: 0x4A, G: 0x4D, B: 0x5E, A: 0xFF}
	readoutColor = color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF} // gold
	captionColor = color.NRGBA{R: 0xC8, G: 0xC8, B: 0xC8, A: 0xFF}
)

const (
	statusReady   = "Ready"
	statusRunning = "Running"
	statusPaused  = "Paused"
)

func NewStopwatchView(sw *stopwatch.Stopwatch, player sound.Player, logger *log.Logger, display config.DisplayConfig) *StopwatchView {
	v := &StopwatchView{
		sw:      sw,
		player:  player,
		logger:  logger,
		display: display,
	}

	v.timeLabel = canvas.NewText(stopwatch.FormatTime(0), readoutColor)
	v.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	v.timeLabel.TextSize = display.FontSize
	v.timeLabel.Alignment = fyne.TextAlignCenter

	v.statusLabel = canvas.NewText(statusReady, captionColor)
	v.statusLabel.TextSize = 16
	v.statusLabel.Alignment = fyne.TextAlignCenter

	panel := canvas.NewRectangle(panelColor)
	panel.CornerRadius = 12
	panel.StrokeColor = borderColor
	panel.StrokeWidth = 3

	v.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), v.Start)
	v.startButton.Importance = widget.SuccessImportance

	v.splitButton = widget.NewButtonWithIcon("Split", theme.ContentAddIcon(), v.Split)
	v.splitButton.Importance = widget.HighImportance

	v.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), v.Pause)
	v.pauseButton.Importance = widget.WarningImportance

	v.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), v.Reset)
	v.resetButton.Importance = widget.DangerImportance

	v.lapList = widget.NewList(
		func() int { return len(v.laps) },
		v.createLapRow,
		v.updateLapRow,
	)

	readout := container.NewStack(
		panel,
		container.NewPadded(container.NewVBox(
			container.NewPadded(v.timeLabel),
			v.statusLabel,
		)),
	)

	controls := container.NewCenter(container.NewHBox(
		v.startButton,
		v.splitButton,
		v.pauseButton,
		v.resetButton,
	))

	v.header = container.NewGridWithColumns(v.columns(), v.headerCells()...)

	top := container.NewVBox(
		widget.NewLabelWithStyle("Stopwatch", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		readout,
		controls,
		v.header,
	)

	v.container = container.NewBorder(top, nil, nil, nil, v.lapList)

	v.updateControls()
	return v
}

func (v *StopwatchView) Container() *fyne.Container {
	return v.container
}

// SetShowLapDelta adds or removes the lap time column.
func (v *StopwatchView) SetShowLapDelta(show bool) {
	if v.display.ShowLapDelta == show {
		return
	}
	v.display.ShowLapDelta = show

	v.header.Layout = layout.NewGridLayoutWithColumns(v.columns())
	v.header.Objects = v.headerCells()
	v.header.Refresh()
	v.lapList.Refresh()
}

func (v *StopwatchView) SetPlayer(player sound.Player) {
	v.player = player
}

// Start starts or resumes the stopwatch.
func (v *StopwatchView) Start() {
	if v.sw.Running() {
		return
	}
	v.sw.Start()
	v.player.Play(sound.EffectStart)
	v.logger.Debug("started", "elapsed", v.sw.Elapsed())
	v.updateControls()
	v.Refresh()
}

func (v *StopwatchView) Pause() {
	if !v.sw.Running() {
		return
	}
	v.sw.Pause()
	v.player.Play(sound.EffectPause)
	v.logger.Debug("paused", "elapsed", v.sw.Elapsed())
	v.updateControls()
	v.Refresh()
}

// Toggle pauses a running stopwatch and starts a stopped one.
func (v *StopwatchView) Toggle() {
	if v.sw.Running() {
		v.Pause()
	} else {
		v.Start()
	}
}

// Split records a lap and scrolls it into view. Ignored while stopped.
func (v *StopwatchView) Split() {
	lap, ok := v.sw.Split()
	if !ok {
		return
	}
	v.player.Play(sound.EffectSplit)
	v.logger.Debug("split", "lap", lap.Index, "split", lap.Split, "delta", lap.Delta)

	v.laps = v.sw.Laps()
	v.lapList.Refresh()
	v.lapList.ScrollToBottom()
}

// Reset zeroes the stopwatch and clears the readout and lap list.
func (v *StopwatchView) Reset() {
	v.sw.Reset()
	v.player.Play(sound.EffectReset)
	v.logger.Debug("reset")

	v.laps = nil
	v.lapList.UnselectAll()
	v.lapList.Refresh()
	v.updateControls()
	v.Refresh()
}

// Refresh redraws the readout from the current elapsed time. It only reads
// the stopwatch and is what the periodic tick calls.
func (v *StopwatchView) Refresh() {
	snap := v.sw.Snapshot()

	if text := stopwatch.FormatTime(snap.Elapsed); text != v.timeLabel.Text {
		v.timeLabel.Text = text
		v.timeLabel.Refresh()
	}
	if status := statusText(snap.State, snap.Elapsed); status != v.statusLabel.Text {
		v.statusLabel.Text = status
		v.statusLabel.Refresh()
	}
}

func statusText(state models.TimerState, elapsed time.Duration) string {
	switch {
	case state == models.StateRunning:
		return statusRunning
	case elapsed > 0:
		return statusPaused
	default:
		return statusReady
	}
}

func (v *StopwatchView) updateControls() {
	if v.sw.Running() {
		v.startButton.Disable()
		v.pauseButton.Enable()
		v.splitButton.Enable()
	} else {
		v.startButton.Enable()
		v.pauseButton.Disable()
		v.splitButton.Disable()
	}
}

func (v *StopwatchView) columns() int {
	if v.display.ShowLapDelta {
		return 3
	}
	return 2
}

func (v *StopwatchView) headerCells() []fyne.CanvasObject {
	bold := fyne.TextStyle{Bold: true}
	cells := []fyne.CanvasObject{
		widget.NewLabelWithStyle("Lap #", fyne.TextAlignCenter, bold),
		widget.NewLabelWithStyle("Split", fyne.TextAlignCenter, bold),
	}
	if v.display.ShowLapDelta {
		cells = append(cells, widget.NewLabelWithStyle("Lap", fyne.TextAlignCenter, bold))
	}
	return cells
}

func (v *StopwatchView) lapCells() []fyne.CanvasObject {
	mono := fyne.TextStyle{Monospace: true}
	cells := make([]fyne.CanvasObject, v.columns())
	for i := range cells {
		cells[i] = widget.NewLabelWithStyle("", fyne.TextAlignCenter, mono)
	}
	return cells
}

func (v *StopwatchView) createLapRow() fyne.CanvasObject {
	return container.NewGridWithColumns(v.columns(), v.lapCells()...)
}

func (v *StopwatchView) updateLapRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id < 0 || id >= len(v.laps) {
		return
	}
	lap := v.laps[id]
	row := obj.(*fyne.Container)
	// rows created before the column setting changed are rebuilt in place
	if len(row.Objects) != v.columns() {
		row.Layout = layout.NewGridLayoutWithColumns(v.columns())
		row.Objects = v.lapCells()
	}
	cells := row.Objects

	cells[0].(*widget.Label).SetText(fmt.Sprintf("#%d", lap.Index))
	cells[1].(*widget.Label).SetText(stopwatch.FormatTime(lap.Split))
	if v.display.ShowLapDelta {
		cells[2].(*widget.Label).SetText("+" + stopwatch.FormatTime(lap.Delta))
	}
}
