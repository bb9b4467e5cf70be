// Package cutscene tracks the cutscene and override stacks, the commentary
// record, the active dialogue line and fullscreen movies.
package cutscene

import (
	"slices"
	"strings"

	"github.com/pixil98/go-grim/internal/eventlog"
)

const defaultMovieYields = 6

// Record is one open cutscene. SetFile and Sector are the hot sector under
// the focus actor when the cutscene started.
type Record struct {
	Label      string   `json:"label,omitempty"`
	Flags      []string `json:"flags"`
	SetFile    string   `json:"set_file,omitempty"`
	Sector     string   `json:"sector,omitempty"`
	Suppressed bool     `json:"suppressed"`
}

func (r Record) displayLabel() string {
	if r.Label == "" {
		return "<unnamed>"
	}
	return r.Label
}

type Runtime struct {
	events     *eventlog.Log
	stack      []Record
	overrides  []string
	commentary *Commentary
	dialog     *Dialog
	speaking   string
	message    bool
	movie      *Movie
}

func NewRuntime(events *eventlog.Log) *Runtime {
	return &Runtime{events: events}
}

// PushCutScene opens a cutscene. A suppressed cutscene names the inactive
// sector that blocks it.
func (r *Runtime) PushCutScene(label string, flags []string, setFile, sector string, suppressed bool) {
	rec := Record{
		Label:      label,
		Flags:      slices.Clone(flags),
		SetFile:    setFile,
		Sector:     sector,
		Suppressed: suppressed,
	}

	msg := "cut_scene.start " + rec.displayLabel()
	if len(flags) > 0 {
		msg += " [" + strings.Join(flags, ", ") + "]"
	}
	if suppressed {
		name := sector
		if name == "" {
			name = "<unknown>"
		}
		msg += " (sector " + name + " inactive)"
	}

	r.stack = append(r.stack, rec)
	r.events.Add(msg)
}

// PopCutScene closes the innermost cutscene and reports whether one was open.
func (r *Runtime) PopCutScene() bool {
	n := len(r.stack)
	if n == 0 {
		return false
	}
	rec := r.stack[n-1]
	r.stack = r.stack[:n-1]

	if rec.Suppressed {
		r.events.Addf("cut_scene.end %s (suppressed)", rec.displayLabel())
	} else {
		r.events.Addf("cut_scene.end %s", rec.displayLabel())
	}
	return true
}

// HandleSectorActivation blocks or unblocks every open cutscene recorded
// against the sector. Stack order is preserved.
func (r *Runtime) HandleSectorActivation(setFile, sector string, active bool) {
	for i := range r.stack {
		rec := &r.stack[i]
		if rec.SetFile == "" || !strings.EqualFold(rec.SetFile, setFile) {
			continue
		}
		if rec.Sector == "" || !strings.EqualFold(rec.Sector, sector) {
			continue
		}
		switch {
		case active && rec.Suppressed:
			rec.Suppressed = false
			r.events.Addf("cut_scene.unblock %s", rec.displayLabel())
		case !active && !rec.Suppressed:
			rec.Suppressed = true
			r.events.Addf("cut_scene.block %s", rec.displayLabel())
		}
	}
}

// CutScenes returns the open cutscenes, outermost first.
func (r *Runtime) CutScenes() []Record {
	out := make([]Record, 0, len(r.stack))
	for _, rec := range r.stack {
		rec.Flags = slices.Clone(rec.Flags)
		out = append(out, rec)
	}
	return out
}

func (r *Runtime) PushOverride(description string) {
	r.overrides = append(r.overrides, description)
	r.events.Addf("cut_scene.override.push %s", description)
}

// PopOverride removes the latest override and reports whether there was one.
func (r *Runtime) PopOverride() bool {
	n := len(r.overrides)
	if n == 0 {
		return false
	}
	desc := r.overrides[n-1]
	r.overrides = r.overrides[:n-1]
	r.events.Addf("cut_scene.override.pop %s", desc)
	return true
}

func (r *Runtime) ClearOverrides() {
	for r.PopOverride() {
	}
}

// Overrides returns the override stack, oldest first.
func (r *Runtime) Overrides() []string {
	out := slices.Clone(r.overrides)
	if out == nil {
		out = []string{}
	}
	return out
}
