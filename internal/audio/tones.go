package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/ten-second-life/internal/core"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// oscillator produces a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// Tone returns a streamer playing freq for d.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay fades a streamer out exponentially, like a plucked note.
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	speed    float64 // e-folds per second
	position int
}

func newDecay(s beep.Streamer, speed float64, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, rate: rate, speed: speed}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.position) / float64(d.rate)
		g := math.Exp(-t * d.speed)
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// withVolume scales s by a linear gain. Zero or less is silent.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// note is one step of a cue.
type note struct {
	freq  float64
	dur   time.Duration
	wave  Wave
	decay float64
	gain  float64
}

func (n note) streamer(rate beep.SampleRate) beep.Streamer {
	s := Tone(n.freq, n.dur, n.wave, rate)
	if n.decay > 0 {
		s = newDecay(s, n.decay, rate)
	}
	return withVolume(s, n.gain)
}

// arpeggio plays notes one after another.
func arpeggio(rate beep.SampleRate, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = n.streamer(rate)
	}
	return beep.Seq(parts...)
}

// chord plays notes together, each entering stagger after the previous one.
func chord(rate beep.SampleRate, stagger time.Duration, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		lead := beep.Silence(rate.N(stagger * time.Duration(i)))
		parts[i] = beep.Seq(lead, n.streamer(rate))
	}
	return beep.Mix(parts...)
}

const (
	noteC4 = 261.63
	noteD4 = 293.66
	noteE4 = 329.63
	noteF4 = 349.23
	noteG4 = 392.00
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
	noteA5 = 880.00
)

// Cue builds the one-shot streamer for s. SoundNone and loop-only sounds
// return nil.
func Cue(s core.Sound, rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	switch s {
	case core.SoundPickup:
		return note{noteA5, ms(300), WaveSine, 8, 0.4}.streamer(rate)
	case core.SoundKey:
		return arpeggio(rate,
			note{noteE4 * 2, ms(80), WaveSine, 6, 0.35},
			note{noteA4 * 2, ms(160), WaveSine, 6, 0.35})
	case core.SoundTimeBonus:
		return arpeggio(rate,
			note{noteC5, ms(70), WaveSine, 4, 0.3},
			note{noteE4 * 2, ms(70), WaveSine, 4, 0.3},
			note{noteG4 * 2, ms(200), WaveSine, 4, 0.3})
	case core.SoundDoor:
		return beep.Mix(
			note{150, ms(500), WaveSine, 3, 0.3}.streamer(rate),
			note{0, ms(500), WaveNoise, 6, 0.05}.streamer(rate))
	case core.SoundSwitch:
		return arpeggio(rate,
			note{600, ms(40), WaveSquare, 0, 0.15},
			note{900, ms(60), WaveSquare, 20, 0.15})
	case core.SoundTalk:
		return note{800, ms(50), WaveSine, 0, 0.3}.streamer(rate)
	case core.SoundLocked:
		return note{110, ms(200), WaveSquare, 6, 0.2}.streamer(rate)
	case core.SoundTick:
		return note{1000, ms(100), WaveSquare, 0, 0.25}.streamer(rate)
	case core.SoundDeath:
		return arpeggio(rate,
			note{noteG4, ms(180), WaveSine, 3, 0.35},
			note{noteE4, ms(180), WaveSine, 3, 0.35},
			note{noteC4, ms(400), WaveSine, 3, 0.35})
	case core.SoundLevelComplete:
		scale := []float64{noteC4, noteD4, noteE4, noteF4, noteG4, noteA4, noteB4, noteC5}
		notes := make([]note, len(scale))
		for i, f := range scale {
			notes[i] = note{f, ms(1500 / len(scale)), WaveSine, 3, 0.3}
		}
		return arpeggio(rate, notes...)
	case core.SoundVictory:
		return chord(rate, ms(100),
			note{noteC4, ms(1000), WaveSine, 2, 0.25},
			note{noteE4, ms(900), WaveSine, 2, 0.25},
			note{noteG4, ms(800), WaveSine, 2, 0.25},
			note{noteC5, ms(700), WaveSine, 2, 0.25})
	case core.SoundGameOver:
		return chord(rate, ms(150),
			note{noteC4, ms(1200), WaveSine, 1.5, 0.25},
			note{noteD4 * 1.06, ms(1050), WaveSine, 1.5, 0.2},
			note{noteG4 * 0.94, ms(900), WaveSine, 1.5, 0.2})
	}
	return nil
}

// heartbeat is an endless lub-dub pulse.
type heartbeat struct {
	rate     beep.SampleRate
	period   int
	position int
}

func newHeartbeat(rate beep.SampleRate, period time.Duration) *heartbeat {
	return &heartbeat{rate: rate, period: rate.N(period)}
}

func (h *heartbeat) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(h.position%h.period) / float64(h.rate)
		var val float64
		if t <= 0.15 {
			bt := t / 0.15
			val += 0.5 * math.Sin(2*math.Pi*60*t) * (1 - bt)
		}
		if t >= 0.2 && t <= 0.3 {
			bt := (t - 0.2) / 0.1
			val += 0.4 * math.Sin(2*math.Pi*80*(t-0.2)) * (1 - bt)
		}
		samples[i][0] = val
		samples[i][1] = val
		h.position++
	}
	return len(samples), true
}

func (h *heartbeat) Err() error { return nil }

// Loop builds the endless streamer for a looping sound, or nil if s has none.
func Loop(s core.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case core.SoundHeartbeat:
		return newHeartbeat(rate, time.Second)
	}
	return nil
}
