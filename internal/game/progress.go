package game

import "slices"

type Achievement struct {
	Eligible    bool `json:"eligible"`
	Established bool `json:"established"`
}

func (w *WorldState) SetAchievementEligible(id string, eligible bool) {
	a, ok := w.achievements[id]
	if !ok {
		a = &Achievement{}
		w.achievements[id] = a
	}
	a.Eligible = eligible
	a.Established = true

	state := "ineligible"
	if eligible {
		state = "eligible"
	}
	w.log("achievement.%s %s", id, state)
}

func (w *WorldState) IsAchievementEligible(id string) bool {
	a, ok := w.achievements[id]
	return ok && a.Eligible
}

func (w *WorldState) HasAchievementBeenEstablished(id string) bool {
	a, ok := w.achievements[id]
	return ok && a.Established
}

// Achievements returns a copy of every achievement keyed by id.
func (w *WorldState) Achievements() map[string]Achievement {
	out := make(map[string]Achievement, len(w.achievements))
	for id, a := range w.achievements {
		out[id] = *a
	}
	return out
}

type PauseEvent struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

type PauseState struct {
	Active  bool         `json:"active"`
	History []PauseEvent `json:"history"`
}

// RecordPause handles a pause or resume request from the game pauser.
func (w *WorldState) RecordPause(label string, active bool) {
	w.pause.History = append(w.pause.History, PauseEvent{Label: label, Active: active})
	w.pause.Active = active
	w.log("game_pauser.%s %s", label, onOff(active))
}

func (w *WorldState) Pause() PauseState {
	return PauseState{
		Active:  w.pause.Active,
		History: slices.Clone(w.pause.History),
	}
}

func (w *WorldState) SetVoiceEffect(effect string) {
	w.voiceEffect = effect
	w.log("prefs.voice_effect %s", effect)
}

func (w *WorldState) VoiceEffect() string {
	return w.voiceEffect
}
