package audio

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type Cue struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters"`
}

// Music is a copy of the music state.
type Music struct {
	Current      *Cue     `json:"current"`
	Queued       []Cue    `json:"queued"`
	CurrentState *string  `json:"current_state"`
	StateStack   []string `json:"state_stack"`
	Paused       bool     `json:"paused"`
	MutedGroups  []string `json:"muted_groups"`
	Volume       *float64 `json:"volume"`
	History      []string `json:"history"`
}

type musicState struct {
	current      *Cue
	queued       []Cue
	currentState *string
	stateStack   []string
	paused       bool
	muted        map[string]bool
	volume       *float64
	history      []string
}

func newMusicState() musicState {
	return musicState{muted: map[string]bool{}}
}

func cueDetail(action, cue string, params []string) string {
	if len(params) == 0 {
		return fmt.Sprintf("%s %s", action, cue)
	}
	return fmt.Sprintf("%s %s [%s]", action, cue, strings.Join(params, ", "))
}

func (r *Runtime) PlayMusic(cue string, params []string) {
	r.music.current = &Cue{Name: cue, Parameters: slices.Clone(params)}
	r.music.history = append(r.music.history, cueDetail("play", cue, params))
	if r.callback != nil {
		r.callback.MusicPlay(cue, params)
	}
	r.events.Addf("music.play %s", cue)
}

func (r *Runtime) QueueMusic(cue string, params []string) {
	r.music.queued = append(r.music.queued, Cue{Name: cue, Parameters: slices.Clone(params)})
	r.music.history = append(r.music.history, cueDetail("queue", cue, params))
	r.events.Addf("music.queue %s", cue)
}

// StopMusic clears the current cue. An empty mode is recorded as a plain stop.
func (r *Runtime) StopMusic(mode string) {
	r.music.current = nil
	r.music.paused = false

	entry := "stop"
	if mode != "" {
		entry = "stop " + mode
	}
	r.music.history = append(r.music.history, entry)
	if r.callback != nil {
		r.callback.MusicStop(mode)
	}
	r.events.Add("music." + entry)
}

func (r *Runtime) PauseMusic() {
	r.music.paused = true
	r.music.history = append(r.music.history, "pause")
	r.events.Add("music.pause")
}

func (r *Runtime) ResumeMusic() {
	r.music.paused = false
	r.music.history = append(r.music.history, "resume")
	r.events.Add("music.resume")
}

// SetMusicState replaces the top of the state stack. A nil state clears the
// current state and leaves the stack alone.
func (r *Runtime) SetMusicState(state *string) {
	if state == nil {
		r.music.currentState = nil
		r.recordMusic("state <nil>")
		return
	}
	if n := len(r.music.stateStack); n > 0 {
		r.music.stateStack[n-1] = *state
	}
	s := *state
	r.music.currentState = &s
	r.recordMusic("state " + s)
}

func (r *Runtime) PushMusicState(state *string) {
	if state == nil {
		r.recordMusic("state.push <nil>")
		return
	}
	s := *state
	r.music.stateStack = append(r.music.stateStack, s)
	r.music.currentState = &s
	r.recordMusic("state.push " + s)
}

func (r *Runtime) PopMusicState() {
	label := "<none>"
	if n := len(r.music.stateStack); n > 0 {
		label = r.music.stateStack[n-1]
		r.music.stateStack = r.music.stateStack[:n-1]
	}
	r.music.currentState = nil
	if n := len(r.music.stateStack); n > 0 {
		s := r.music.stateStack[n-1]
		r.music.currentState = &s
	}
	r.recordMusic("state.pop " + label)
}

func (r *Runtime) MuteMusicGroup(group *string) {
	if group == nil {
		r.recordMusic("mute <nil>")
		return
	}
	r.music.muted[*group] = true
	r.recordMusic("mute " + *group)
}

func (r *Runtime) UnmuteMusicGroup(group *string) {
	if group == nil {
		r.recordMusic("unmute <nil>")
		return
	}
	delete(r.music.muted, *group)
	r.recordMusic("unmute " + *group)
}

func (r *Runtime) SetMusicVolume(volume *float64) {
	r.music.volume = nil
	detail := "volume <nil>"
	if volume != nil {
		v := *volume
		r.music.volume = &v
		detail = fmt.Sprintf("volume %.3f", v)
	}
	r.recordMusic(detail)
}

// MusicStub records a call to a music method with no implementation.
func (r *Runtime) MusicStub(method string) {
	r.events.Addf("music.stub %s", method)
}

// recordMusic appends detail to the music history and logs it as a music
// event.
func (r *Runtime) recordMusic(detail string) {
	r.music.history = append(r.music.history, detail)
	r.events.Add("music." + detail)
}

func (r *Runtime) Music() Music {
	m := Music{
		Queued:      slices.Clone(r.music.queued),
		StateStack:  slices.Clone(r.music.stateStack),
		Paused:      r.music.paused,
		MutedGroups: slices.Sorted(maps.Keys(r.music.muted)),
		History:     slices.Clone(r.music.history),
	}
	if r.music.current != nil {
		c := *r.music.current
		m.Current = &c
	}
	if r.music.currentState != nil {
		s := *r.music.currentState
		m.CurrentState = &s
	}
	if r.music.volume != nil {
		v := *r.music.volume
		m.Volume = &v
	}
	if m.Queued == nil {
		m.Queued = []Cue{}
	}
	if m.StateStack == nil {
		m.StateStack = []string{}
	}
	if m.MutedGroups == nil {
		m.MutedGroups = []string{}
	}
	if m.History == nil {
		m.History = []string{}
	}
	return m
}
