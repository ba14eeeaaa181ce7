package ui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/klu2300033421/StopWatch/internal/clock"
	"github.com/klu2300033421/StopWatch/internal/config"
	"github.com/klu2300033421/StopWatch/internal/sound"
	"github.com/klu2300033421/StopWatch/internal/stopwatch"
)

func newTestWindow(t *testing.T, sw *stopwatch.Stopwatch) (*MainWindow, string) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	path := filepath.Join(t.TempDir(), "config.yaml")
	manager, err := config.NewManager(path)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	cfg := *manager.GetConfig()
	w := NewMainWindow(a, manager, &cfg, sw, sound.Silent{}, log.New(io.Discard))
	return w, path
}

func readConfigFile(t *testing.T, path string) *config.Config {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return cfg
}

func TestKeyboardShortcuts(t *testing.T) {
	c := clock.NewManual(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	sw := stopwatch.New(c)
	w, _ := newTestWindow(t, sw)

	w.handleKey(&fyne.KeyEvent{Name: fyne.KeySpace})
	if !sw.Running() {
		t.Fatal("space did not start the stopwatch")
	}

	c.Advance(time.Second)
	w.handleKey(&fyne.KeyEvent{Name: fyne.KeyL})
	w.handleKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	if n := len(sw.Laps()); n != 2 {
		t.Fatalf("got %d laps, want 2", n)
	}

	w.handleKey(&fyne.KeyEvent{Name: fyne.KeySpace})
	if sw.Running() {
		t.Fatal("space did not pause the stopwatch")
	}

	w.handleKey(&fyne.KeyEvent{Name: fyne.KeyX})
	if n := len(sw.Laps()); n != 2 {
		t.Fatalf("unbound key changed laps: %d", n)
	}

	w.handleKey(&fyne.KeyEvent{Name: fyne.KeyR})
	if sw.Elapsed() != 0 || len(sw.Laps()) != 0 {
		t.Fatal("r did not reset the stopwatch")
	}
}

func TestRefresherStopsOnCancel(t *testing.T) {
	r := NewRefresher(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx, func() { ticks.Add(1) })
	}()

	deadline := time.After(5 * time.Second)
	for ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("refresher did not tick")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	n := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	if ticks.Load() != n {
		t.Fatal("refresher ticked after Run returned")
	}
}

func TestSettingsSubmitSavesAndApplies(t *testing.T) {
	c := clock.NewManual(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	sw := stopwatch.New(c)
	w, path := newTestWindow(t, sw)

	var players []config.SoundConfig
	w.newPlayer = func(sc config.SoundConfig) sound.Player {
		players = append(players, sc)
		return sound.Silent{}
	}

	// a lap recorded before the change must render with the new columns
	w.view.Start()
	c.Advance(time.Second)
	w.view.Split()
	staleRow := w.view.createLapRow()

	d := w.showSettings()
	d.darkMode.SetChecked(false)
	d.showLapDelta.SetChecked(false)
	d.soundEnabled.SetChecked(false)
	d.volume.SetText("-2.5")
	d.tickInterval.SetText("25ms")
	d.form.OnSubmit()

	want := config.DefaultConfig()
	want.Theme.DarkMode = false
	want.Display.ShowLapDelta = false
	want.Display.TickInterval = 25 * time.Millisecond
	want.Sound.Enabled = false
	want.Sound.Volume = -2.5
	if diff := cmp.Diff(want, readConfigFile(t, path)); diff != "" {
		t.Fatalf("saved config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, w.config); diff != "" {
		t.Fatalf("window config mismatch (-want +got):\n%s", diff)
	}

	if got := w.refresher.Interval(); got != 25*time.Millisecond {
		t.Errorf("refresher interval = %v, want 25ms", got)
	}
	if got := len(w.view.header.Objects); got != 2 {
		t.Errorf("header has %d columns, want 2", got)
	}
	if got := cellText(t, w.view, 0); len(got) != 2 || got[0] != "#1" {
		t.Errorf("lap row = %v, want two cells starting with #1", got)
	}
	w.view.updateLapRow(0, staleRow)
	if got := len(staleRow.(*fyne.Container).Objects); got != 2 {
		t.Errorf("row built with the old setting has %d cells, want 2", got)
	}
	if len(players) != 1 || players[0].Enabled {
		t.Errorf("player rebuilt with %+v, want one disabled sound config", players)
	}
	if _, ok := w.app.Settings().Theme().(*variantTheme); !ok {
		t.Errorf("theme = %T, want *variantTheme", w.app.Settings().Theme())
	}
}

func TestSettingsRejectsInvalidInput(t *testing.T) {
	w, path := newTestWindow(t, stopwatch.New(nil))
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, tick := range []string{"soon", "0s", "5s"} {
		d := w.showSettings()
		d.tickInterval.SetText(tick)
		d.darkMode.SetChecked(false)
		if err := w.applySettings(d); err == nil {
			t.Fatalf("tick interval %q accepted", tick)
		}
	}

	d := w.showSettings()
	d.volume.SetText("loud")
	if err := w.applySettings(d); err == nil {
		t.Fatal("volume \"loud\" accepted")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(before), string(after)); diff != "" {
		t.Fatalf("rejected settings changed the file (-before +after):\n%s", diff)
	}
	if !w.config.Theme.DarkMode || w.refresher.Interval() != 10*time.Millisecond {
		t.Fatal("rejected settings were applied to the window")
	}
}

func TestRefresherSetInterval(t *testing.T) {
	r := NewRefresher(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticked := make(chan struct{}, 1)
	go r.Run(ctx, func() {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	r.SetInterval(time.Millisecond)
	select {
	case <-ticked:
	case <-time.After(5 * time.Second):
		t.Fatal("refresher kept the old interval")
	}
}
