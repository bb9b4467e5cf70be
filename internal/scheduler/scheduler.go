// Package scheduler runs cooperative scripts. Each script is a resumable body
// that runs until it yields or finishes; nothing runs in parallel.
package scheduler

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-grim/internal/eventlog"
)

// DefaultWaitCeiling bounds how many resumes Wait performs.
const DefaultWaitCeiling = 10000

// Coroutine is a resumable script body.
type Coroutine interface {
	// Resume runs the body until it yields or finishes. done reports that
	// the body finished.
	Resume() (done bool, err error)
	// Close releases the body. It is called exactly once.
	Close()
}

type State int

const (
	StatePending State = iota
	StateRunning
	StateYielded
	StateCompleted
	StateErrored
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateYielded:
		return "yielded"
	case StateCompleted:
		return "completed"
	default:
		return "errored"
	}
}

// Step is the outcome of a single resume.
type Step int

const (
	StepYielded Step = iota
	StepCompleted
	StepErrored
)

type record struct {
	handle int
	label  string
	state  State
	yields int
	body   Coroutine
}

type Scheduler struct {
	events  *eventlog.Log
	next    int
	records map[int]*record
}

func NewScheduler(events *eventlog.Log) *Scheduler {
	return &Scheduler{
		events:  events,
		next:    1,
		records: map[int]*record{},
	}
}

// Start registers a script and returns its handle. A nil body completes
// immediately.
func (s *Scheduler) Start(label string, body Coroutine) int {
	h := s.next
	s.next++

	rec := &record{handle: h, label: label, state: StatePending, body: body}
	s.records[h] = rec
	s.events.Addf("script.start %s (#%d)", label, h)

	if body == nil {
		s.complete(rec)
	}
	return h
}

// SingleStart starts the script unless a live script already has the label,
// in which case it returns 0.
func (s *Scheduler) SingleStart(label string, body Coroutine) int {
	if s.HasLabel(label) {
		if body != nil {
			body.Close()
		}
		return 0
	}
	return s.Start(label, body)
}

// Resume runs a script once. Unknown handles report StepCompleted.
func (s *Scheduler) Resume(handle int) (Step, error) {
	rec, ok := s.records[handle]
	if !ok {
		return StepCompleted, nil
	}
	if rec.state == StateRunning {
		return StepErrored, fmt.Errorf("resuming %s (#%d): %w", rec.label, handle, ErrScriptRunning)
	}

	rec.state = StateRunning
	done, err := rec.body.Resume()

	if s.records[handle] != rec {
		// Stopped from inside its own body.
		return StepCompleted, nil
	}

	switch {
	case err != nil:
		rec.state = StateErrored
		s.events.Addf("script.error %s: %s", rec.label, err)
		s.release(rec)
		return StepErrored, fmt.Errorf("script %s: %w", rec.label, err)
	case done:
		s.complete(rec)
		return StepCompleted, nil
	default:
		rec.yields++
		rec.state = StateYielded
		return StepYielded, nil
	}
}

func (s *Scheduler) complete(rec *record) {
	rec.state = StateCompleted
	s.events.Addf("script.complete %s (#%d)", rec.label, rec.handle)
	s.release(rec)
}

func (s *Scheduler) release(rec *record) {
	delete(s.records, rec.handle)
	if rec.body != nil {
		rec.body.Close()
	}
}

// Wait resumes a script until it finishes. It fails with ErrStepCeiling when
// the script is still live after ceiling resumes.
func (s *Scheduler) Wait(handle, ceiling int) error {
	if ceiling <= 0 {
		ceiling = DefaultWaitCeiling
	}

	for steps := 0; s.IsRunning(handle); {
		if _, err := s.Resume(handle); err != nil {
			return err
		}
		steps++
		if steps >= ceiling && s.IsRunning(handle) {
			return fmt.Errorf("waiting on %s (#%d) for %d steps: %w", s.records[handle].label, handle, steps, ErrStepCeiling)
		}
	}
	return nil
}

// Stop forgets a script without running it again.
func (s *Scheduler) Stop(handle int) bool {
	rec, ok := s.records[handle]
	if !ok {
		s.events.Addf("script.stop #%d", handle)
		return false
	}
	s.events.Addf("script.stop %s (#%d)", rec.label, handle)
	s.release(rec)
	return true
}

func (s *Scheduler) HasLabel(label string) bool {
	_, ok := s.FindHandle(label)
	return ok
}

// FindHandle returns the lowest live handle with the label.
func (s *Scheduler) FindHandle(label string) (int, bool) {
	for _, h := range s.ActiveHandles() {
		if s.records[h].label == label {
			return h, true
		}
	}
	return 0, false
}

// ActiveHandles lists live scripts in ascending handle order.
func (s *Scheduler) ActiveHandles() []int {
	return slices.Sorted(maps.Keys(s.records))
}

func (s *Scheduler) IsRunning(handle int) bool {
	_, ok := s.records[handle]
	return ok
}

func (s *Scheduler) Label(handle int) (string, bool) {
	rec, ok := s.records[handle]
	if !ok {
		return "", false
	}
	return rec.label, true
}

func (s *Scheduler) YieldCount(handle int) int {
	if rec, ok := s.records[handle]; ok {
		return rec.yields
	}
	return 0
}

// State reports a live script's state. Finished scripts are forgotten and
// report StateCompleted.
func (s *Scheduler) State(handle int) State {
	if rec, ok := s.records[handle]; ok {
		return rec.state
	}
	return StateCompleted
}

// Info describes a live script.
type Info struct {
	Handle int    `json:"handle"`
	Label  string `json:"label"`
	State  string `json:"state"`
	Yields int    `json:"yields"`
}

// Scripts lists the live scripts in ascending handle order.
func (s *Scheduler) Scripts() []Info {
	out := []Info{}
	for _, h := range s.ActiveHandles() {
		rec := s.records[h]
		out = append(out, Info{Handle: h, Label: rec.label, State: rec.state.String(), Yields: rec.yields})
	}
	return out
}
