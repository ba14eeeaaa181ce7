// Package sound plays short audible cues for stopwatch actions.
package sound

import (
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"

	"github.com/klu2300033421/StopWatch/internal/config"
)

type Effect int

const (
	EffectStart Effect = iota
	EffectSplit
	EffectPause
	EffectReset
)

// Player plays a cue without blocking the caller.
type Player interface {
	Play(Effect)
}

// Silent is a Player that plays nothing.
type Silent struct{}

func (Silent) Play(Effect) {}

// Format is the mixer format every cue is decoded or resampled to.
var Format = beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

type tone struct {
	freq     float64
	duration time.Duration
}

var tones = map[Effect]tone{
	EffectStart: {freq: 880, duration: 60 * time.Millisecond},
	EffectSplit: {freq: 1320, duration: 40 * time.Millisecond},
	EffectPause: {freq: 660, duration: 60 * time.Millisecond},
	EffectReset: {freq: 440, duration: 120 * time.Millisecond},
}

// Speaker plays cues on the default audio device.
type Speaker struct {
	buffers map[Effect]*beep.Buffer
	volume  float64
}

// New returns a Speaker for cfg, or Silent when sound is disabled or the
// audio device cannot be opened.
func New(cfg config.SoundConfig, logger *log.Logger) Player {
	if !cfg.Enabled {
		return Silent{}
	}
	s, err := NewSpeaker(cfg)
	if err != nil {
		logger.Warn("sound disabled", "err", err)
		return Silent{}
	}
	return s
}

func NewSpeaker(cfg config.SoundConfig) (*Speaker, error) {
	buffers, err := loadBuffers(Format, cfg.SplitSound)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(Format.SampleRate, Format.SampleRate.N(time.Second/10)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	return &Speaker{
		buffers: buffers,
		volume:  cfg.Volume,
	}, nil
}

func (s *Speaker) Play(effect Effect) {
	buffer, ok := s.buffers[effect]
	if !ok {
		return
	}
	speaker.Play(&effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
		Volume:   s.volume,
		Silent:   false,
	})
}

// Tone returns a sine wave of the given frequency lasting d.
func Tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	step := 2 * math.Pi * freq / float64(sr)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			v := 0.3 * math.Sin(step*float64(pos))
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}

func loadBuffers(format beep.Format, splitSound string) (map[Effect]*beep.Buffer, error) {
	buffers := make(map[Effect]*beep.Buffer, len(tones))
	for effect, t := range tones {
		buffer := beep.NewBuffer(format)
		buffer.Append(Tone(format.SampleRate, t.freq, t.duration))
		buffers[effect] = buffer
	}

	if splitSound != "" {
		buffer, err := loadWav(format, splitSound)
		if err != nil {
			return nil, err
		}
		buffers[EffectSplit] = buffer
	}
	return buffers, nil
}

func loadWav(format beep.Format, path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open sound")
	}
	defer f.Close()

	streamer, wavFormat, err := wav.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if wavFormat.SampleRate != format.SampleRate {
		s = beep.Resample(4, wavFormat.SampleRate, format.SampleRate, streamer)
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(s)
	return buffer, nil
}
