package sound

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/klu2300033421/StopWatch/internal/config"
)

func TestToneLength(t *testing.T) {
	sr := beep.SampleRate(8000)
	buffer := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buffer.Append(Tone(sr, 440, 50*time.Millisecond))

	if got, want := buffer.Len(), 400; got != want {
		t.Fatalf("tone has %d samples, want %d", got, want)
	}
}

func TestToneAmplitude(t *testing.T) {
	samples := make([][2]float64, 512)
	n, ok := Tone(Format.SampleRate, 1000, time.Second).Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("Stream() = %d, %v; want %d, true", n, ok, len(samples))
	}
	for i, s := range samples {
		if s[0] != s[1] {
			t.Fatalf("sample %d: channels differ %v", i, s)
		}
		if s[0] > 0.3 || s[0] < -0.3 {
			t.Fatalf("sample %d: %v exceeds amplitude 0.3", i, s[0])
		}
	}
}

func TestLoadBuffersGeneratesAllCues(t *testing.T) {
	buffers, err := loadBuffers(Format, "")
	if err != nil {
		t.Fatalf("loadBuffers: %v", err)
	}
	for _, effect := range []Effect{EffectStart, EffectSplit, EffectPause, EffectReset} {
		b, ok := buffers[effect]
		if !ok {
			t.Fatalf("no buffer for effect %d", effect)
		}
		if want := Format.SampleRate.N(tones[effect].duration); b.Len() != want {
			t.Fatalf("effect %d: %d samples, want %d", effect, b.Len(), want)
		}
	}
}

func TestLoadBuffersSplitWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "split.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	const samples = 1000
	if err := wav.Encode(f, beep.Take(samples, Tone(Format.SampleRate, 500, time.Second)), Format); err != nil {
		t.Fatalf("wav.Encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	buffers, err := loadBuffers(Format, path)
	if err != nil {
		t.Fatalf("loadBuffers: %v", err)
	}
	if got := buffers[EffectSplit].Len(); got != samples {
		t.Fatalf("split buffer has %d samples, want %d", got, samples)
	}
}

func TestLoadBuffersBadWav(t *testing.T) {
	dir := t.TempDir()

	if _, err := loadBuffers(Format, filepath.Join(dir, "missing.wav")); err == nil {
		t.Fatal("loadBuffers succeeded with a missing file")
	}

	junk := filepath.Join(dir, "junk.wav")
	if err := os.WriteFile(junk, []byte("not a wav file"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadBuffers(Format, junk); err == nil {
		t.Fatal("loadBuffers succeeded with a corrupt file")
	}
}

func TestNewDisabledIsSilent(t *testing.T) {
	p := New(config.SoundConfig{Enabled: false}, log.New(os.Stderr))
	if _, ok := p.(Silent); !ok {
		t.Fatalf("New() with sound disabled = %T, want Silent", p)
	}
	p.Play(EffectSplit)
}
