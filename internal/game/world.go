// Package game holds the mutable world the scripts act upon: actors,
// objects, sets and their sector activation, inventory and progress.
package game

import (
	"github.com/pixil98/go-grim/internal/eventlog"
	"github.com/pixil98/go-grim/internal/geometry"
	"github.com/pixil98/go-grim/internal/storage"
)

const (
	firstActorHandle = 1100
	// PrimaryActor is the fallback focus when no actor is selected.
	PrimaryActor = "manny"
	officeSet    = "mo.set"
)

var (
	officeSeedPosition = Vec3{X: 0.606999993, Y: 2.04099989, Z: 0}
	officeSeedRotation = Vec3{X: 0, Y: 222.210007, Z: 0}
)

// Observer is told about changes that other runtimes derive state from.
type Observer interface {
	// SectorActivationChanged fires for applied and repeated toggles alike.
	SectorActivationChanged(setFile, sector string, active bool)
	// VisibilityChanged fires whenever object visibility may have changed.
	VisibilityChanged()
}

// WorldState is the single source of truth for the simulated world. It is
// not safe for concurrent use; the driver goroutine owns it.
type WorldState struct {
	events      *eventlog.Log
	descriptors storage.Storer[*geometry.SetDescriptor]
	provider    geometry.Provider
	observer    Observer
	verbose     bool

	actors     map[string]*Actor
	labels     map[string]string
	handles    map[int]string
	selected   string
	nextHandle int
	moving     map[int]bool

	objects        map[int]*Object
	objectsByActor map[int]int
	visible        []VisibleObject
	hotlist        []int

	current *CurrentSet
	sets    map[string]*setRuntime

	inventory    map[string]bool
	rooms        map[string]bool
	achievements map[string]*Achievement
	voiceEffect  string
	pause        PauseState
	menus        map[string]*MenuState
}

type WorldOpt func(*WorldState)

// WithDescriptors supplies the static set index.
func WithDescriptors(st storage.Storer[*geometry.SetDescriptor]) WorldOpt {
	return func(w *WorldState) {
		w.descriptors = st
	}
}

// WithGeometry supplies set geometry on demand.
func WithGeometry(p geometry.Provider) WorldOpt {
	return func(w *WorldState) {
		w.provider = p
	}
}

// WithVerbose enables geometry diagnostics.
func WithVerbose(v bool) WorldOpt {
	return func(w *WorldState) {
		w.verbose = v
	}
}

func NewWorldState(events *eventlog.Log, opts ...WorldOpt) *WorldState {
	w := &WorldState{
		events:         events,
		actors:         map[string]*Actor{},
		labels:         map[string]string{},
		handles:        map[int]string{},
		nextHandle:     firstActorHandle,
		moving:         map[int]bool{},
		objects:        map[int]*Object{},
		objectsByActor: map[int]int{},
		sets:           map[string]*setRuntime{},
		inventory:      map[string]bool{},
		rooms:          map[string]bool{},
		achievements:   map[string]*Achievement{},
		menus:          map[string]*MenuState{},
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// SetObserver installs the observer notified of derived state changes.
func (w *WorldState) SetObserver(o Observer) {
	w.observer = o
}

// Events returns the log the world appends to.
func (w *WorldState) Events() *eventlog.Log {
	return w.events
}

func (w *WorldState) log(format string, args ...any) {
	w.events.Addf(format, args...)
}

func (w *WorldState) visibilityChanged() {
	if w.observer != nil {
		w.observer.VisibilityChanged()
	}
}

func (w *WorldState) sectorActivationChanged(setFile, sector string, active bool) {
	if w.observer != nil {
		w.observer.SectorActivationChanged(setFile, sector, active)
	}
}
