package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/ten-second-life/internal/core"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// queueSize bounds pending cues. Cues beyond it are dropped.
const queueSize = 32

// Player accepts sound events from the game loop. Dispatch must never block.
type Player interface {
	Dispatch(core.SoundEvent)
	Close()
}

// Nop discards every event. Used when muted or when no audio device exists.
type Nop struct{}

func (Nop) Dispatch(core.SoundEvent) {}
func (Nop) Close()                   {}

// deck owns the mixer and the running loops. Every mixer mutation goes
// through lock/unlock so the speaker callback never sees a half update.
type deck struct {
	rate   beep.SampleRate
	mixer  *beep.Mixer
	loops  map[core.Sound]*beep.Ctrl
	lock   func()
	unlock func()
}

func newDeck(rate beep.SampleRate, lock, unlock func()) *deck {
	return &deck{
		rate:   rate,
		mixer:  &beep.Mixer{},
		loops:  make(map[core.Sound]*beep.Ctrl),
		lock:   lock,
		unlock: unlock,
	}
}

func (d *deck) apply(ev core.SoundEvent) {
	d.lock()
	defer d.unlock()

	switch ev.Playback {
	case core.PlayOnce:
		s := Cue(ev.Sound, d.rate)
		if s == nil {
			return
		}
		if ev.Volume > 0 {
			s = withVolume(s, ev.Volume)
		}
		d.mixer.Add(s)

	case core.LoopStart:
		if ctrl, ok := d.loops[ev.Sound]; ok && !ctrl.Paused {
			return
		}
		s := Loop(ev.Sound, d.rate)
		if s == nil {
			return
		}
		if ev.Volume > 0 {
			s = withVolume(s, ev.Volume)
		}
		ctrl := &beep.Ctrl{Streamer: s}
		d.loops[ev.Sound] = ctrl
		d.mixer.Add(ctrl)

	case core.LoopStop:
		if ctrl, ok := d.loops[ev.Sound]; ok {
			ctrl.Paused = true
			// A paused Ctrl keeps producing silence; drop its streamer so
			// the mixer releases it.
			ctrl.Streamer = nil
			delete(d.loops, ev.Sound)
		}
	}
}

func (d *deck) stopAll() {
	d.lock()
	defer d.unlock()
	for s, ctrl := range d.loops {
		ctrl.Paused = true
		ctrl.Streamer = nil
		delete(d.loops, s)
	}
	d.mixer.Clear()
}

// Speaker plays cues on the system audio device.
type Speaker struct {
	deck    *deck
	events  chan core.SoundEvent
	done    chan struct{}
	once    sync.Once
	dropped atomic.Int64
	logger  *log.Logger
}

var speakerOnce struct {
	sync.Once
	err error
}

// Open initializes the audio device and starts the dispatch goroutine.
// On failure it returns Nop together with the error so callers can log it
// and keep running silently.
func Open(logger *log.Logger) (Player, error) {
	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond))
	})
	if speakerOnce.err != nil {
		return Nop{}, fmt.Errorf("audio: init speaker: %w", speakerOnce.err)
	}

	s := &Speaker{
		deck:   newDeck(SampleRate, speaker.Lock, speaker.Unlock),
		events: make(chan core.SoundEvent, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
	speaker.Play(s.deck.mixer)
	go s.run()
	return s, nil
}

// Dispatch queues ev. A full queue drops the event.
func (s *Speaker) Dispatch(ev core.SoundEvent) {
	select {
	case s.events <- ev:
	case <-s.done:
	default:
		if n := s.dropped.Add(1); n%queueSize == 1 && s.logger != nil {
			s.logger.Debug("audio queue full, dropping cues", "dropped", n)
		}
	}
}

// Close stops every sound and the dispatch goroutine.
func (s *Speaker) Close() {
	s.once.Do(func() {
		close(s.done)
		s.deck.stopAll()
	})
}

func (s *Speaker) run() {
	for {
		select {
		case ev := <-s.events:
			s.deck.apply(ev)
		case <-s.done:
			return
		}
	}
}
