// Package audio tracks music and sound effect state requested by scripts.
package audio

import (
	"github.com/pixil98/go-grim/internal/eventlog"
)

// Callback receives play and stop notifications. Implementations must not
// block.
type Callback interface {
	MusicPlay(cue string, params []string)
	// MusicStop receives the stop mode, or "" when none was given.
	MusicStop(mode string)
	SfxPlay(cue string, params []string, handle string)
	// SfxStop receives the stop target, or "" when every effect stopped.
	SfxStop(target string)
}

type Runtime struct {
	events   *eventlog.Log
	callback Callback
	music    musicState
	sfx      sfxState
}

type RuntimeOpt func(*Runtime)

func WithCallback(cb Callback) RuntimeOpt {
	return func(r *Runtime) {
		r.callback = cb
	}
}

func NewRuntime(events *eventlog.Log, opts ...RuntimeOpt) *Runtime {
	r := &Runtime{
		events: events,
		music:  newMusicState(),
		sfx:    newSfxState(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// SetCallback replaces the audio sink. A nil callback disables notifications.
func (r *Runtime) SetCallback(cb Callback) {
	r.callback = cb
}
