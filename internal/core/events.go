package core

// Sound identifies an audio cue emitted by the game.
type Sound int

const (
	SoundNone Sound = iota
	SoundPickup
	SoundKey
	SoundDoor
	SoundSwitch
	SoundTalk
	SoundTimeBonus
	SoundTick // last seconds of a life
	SoundDeath
	SoundLevelComplete
	SoundVictory
	SoundGameOver
	SoundLocked
	SoundHeartbeat // ambient loop while an attempt runs
)

var soundNames = map[Sound]string{
	SoundNone:          "none",
	SoundPickup:        "pickup",
	SoundKey:           "key",
	SoundDoor:          "door",
	SoundSwitch:        "switch",
	SoundTalk:          "talk",
	SoundTimeBonus:     "time_bonus",
	SoundTick:          "tick",
	SoundDeath:         "death",
	SoundLevelComplete: "level_complete",
	SoundVictory:       "victory",
	SoundGameOver:      "game_over",
	SoundLocked:        "locked",
	SoundHeartbeat:     "heartbeat",
}

// String returns the snake_case name of the sound.
func (s Sound) String() string {
	if n, ok := soundNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseSound looks up a sound by its snake_case name.
func ParseSound(name string) (Sound, bool) {
	for s, n := range soundNames {
		if n == name {
			return s, true
		}
	}
	return SoundNone, false
}

// Playback selects how a SoundEvent is played.
type Playback int

const (
	PlayOnce Playback = iota
	LoopStart
	LoopStop
)

// SoundEvent asks the platform to play an audio cue.
// The game emits these; it never blocks on playback.
type SoundEvent struct {
	Sound    Sound
	Playback Playback
	Volume   float64 // 0..1, 0 means default
}

// Play returns a one-shot event for s.
func Play(s Sound) SoundEvent {
	return SoundEvent{Sound: s}
}
