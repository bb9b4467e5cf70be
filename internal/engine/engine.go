// Package engine binds the world, cutscene, audio and script runtimes
// together and keeps their derived state consistent.
package engine

import (
	"strings"

	"github.com/pixil98/go-grim/internal/audio"
	"github.com/pixil98/go-grim/internal/cutscene"
	"github.com/pixil98/go-grim/internal/eventlog"
	"github.com/pixil98/go-grim/internal/game"
	"github.com/pixil98/go-grim/internal/scheduler"
)

const commentaryHiddenReason = "not_visible"

type Engine struct {
	events    *eventlog.Log
	world     *game.WorldState
	cutscenes *cutscene.Runtime
	audio     *audio.Runtime
	scripts   *scheduler.Scheduler
}

type EngineOpt func(*engineOptions)

type engineOptions struct {
	audio []audio.RuntimeOpt
}

// WithAudioCallback routes music and sound effect notifications to cb.
func WithAudioCallback(cb audio.Callback) EngineOpt {
	return func(o *engineOptions) {
		o.audio = append(o.audio, audio.WithCallback(cb))
	}
}

// NewEngine builds the runtimes around world and registers itself as the
// world's observer.
func NewEngine(world *game.WorldState, opts ...EngineOpt) *Engine {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	events := world.Events()
	e := &Engine{
		events:    events,
		world:     world,
		cutscenes: cutscene.NewRuntime(events),
		audio:     audio.NewRuntime(events, o.audio...),
		scripts:   scheduler.NewScheduler(events),
	}
	world.SetObserver(e)
	return e
}

func (e *Engine) Events() *eventlog.Log         { return e.events }
func (e *Engine) World() *game.WorldState       { return e.world }
func (e *Engine) Cutscenes() *cutscene.Runtime  { return e.cutscenes }
func (e *Engine) Audio() *audio.Runtime         { return e.audio }
func (e *Engine) Scripts() *scheduler.Scheduler { return e.scripts }

// SectorActivationChanged blocks or unblocks cutscenes recorded against the
// sector and rechecks commentary.
func (e *Engine) SectorActivationChanged(setFile, sector string, active bool) {
	e.cutscenes.HandleSectorActivation(setFile, sector, active)
	e.refreshCommentary()
}

func (e *Engine) VisibilityChanged() {
	e.refreshCommentary()
}

func (e *Engine) commentaryVisible(c cutscene.Commentary) bool {
	if c.ObjectHandle == nil {
		return e.world.CommentaryObjectVisible(0, false)
	}
	return e.world.CommentaryObjectVisible(*c.ObjectHandle, true)
}

func (e *Engine) refreshCommentary() {
	c, ok := e.cutscenes.Commentary()
	if !ok {
		return
	}
	e.cutscenes.UpdateCommentaryVisibility(e.commentaryVisible(c), commentaryHiddenReason)
}

// SetCommentaryActive starts commentary anchored to the best visible object,
// or turns it off.
func (e *Engine) SetCommentaryActive(enabled bool, label string) {
	if !enabled {
		e.cutscenes.DisableCommentary()
		return
	}

	c := cutscene.Commentary{Label: label, Active: true}
	if h, ok := e.world.CommentaryCandidate(); ok {
		c.ObjectHandle = &h
	}
	if !e.commentaryVisible(c) {
		c.Active = false
		c.SuppressedReason = commentaryHiddenReason
	}
	e.cutscenes.SetCommentary(c)
}

// PushCutScene opens a cutscene tied to the hot sector under the focus
// actor, falling back to the walk sector.
func (e *Engine) PushCutScene(label string, flags []string) {
	cur, ok := e.world.CurrentSet()
	if !ok {
		e.cutscenes.PushCutScene(label, flags, "", "", false)
		return
	}

	actor := game.PrimaryActor
	if a, ok := e.world.FocusActor(); ok {
		actor = a.ID
	}

	var sector string
	if hit, ok := e.world.GeometrySectorHit(actor, "hot"); ok {
		sector = hit.Name
	} else if hit, ok := e.world.GeometrySectorHit(actor, "walk"); ok {
		sector = hit.Name
	}

	suppressed := sector != "" && !e.world.IsSectorActive(cur.File, sector)
	e.cutscenes.PushCutScene(label, flags, cur.File, sector, suppressed)
}

func (e *Engine) PopCutScene() bool {
	return e.cutscenes.PopCutScene()
}

// BeginDialog makes line the active line, spoken by the given actor.
func (e *Engine) BeginDialog(actor, line string) {
	e.world.SetActorSpeaking(actor, line, true)
	a, _ := e.world.Actor(actor)

	e.events.Addf("dialog.begin %s %s", a.ID, line)
	e.cutscenes.SetDialog(cutscene.Dialog{ActorID: a.ID, ActorLabel: actor, Line: line})
}

// FinishDialog ends the active line. When expected is set, only a line
// spoken by that actor is ended.
func (e *Engine) FinishDialog(expected string) (cutscene.Dialog, bool) {
	d, ok := e.cutscenes.ActiveDialog()
	if !ok {
		return cutscene.Dialog{}, false
	}
	if expected != "" && !matchesActor(d, expected) {
		return cutscene.Dialog{}, false
	}

	e.cutscenes.TakeDialog()
	if _, ok := e.world.Actor(d.ActorID); ok {
		e.world.SetActorSpeaking(d.ActorID, "", false)
	}
	e.events.Addf("dialog.end %s %s", d.ActorID, d.Line)
	e.cutscenes.ClearDialogFlags()
	return d, true
}

func matchesActor(d cutscene.Dialog, expected string) bool {
	return strings.EqualFold(d.ActorID, expected) ||
		strings.EqualFold(d.ActorLabel, expected) ||
		d.ActorID == game.CanonicalActorID(expected)
}
