// Package luahost runs game scripts in an embedded Lua state and exposes the
// world to them as globals.
package luahost

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/pixil98/go-grim/internal/engine"
	"github.com/pixil98/go-grim/internal/eventlog"
	"github.com/pixil98/go-grim/internal/game"
	"github.com/pixil98/go-grim/internal/scheduler"
	"github.com/pixil98/go-grim/internal/snapshot"
)

const (
	DefaultDrainPasses = 16
	DefaultYieldCap    = 1
	defaultQueueSize   = 16

	// scriptsKey names the registry table holding live script bodies by slot.
	scriptsKey = "grim.scripts"
)

// request is work queued from another goroutine. run executes on the tick
// goroutine and done is closed once it returns.
type request struct {
	run  func()
	done chan struct{}
}

// Host owns the Lua state. Everything except Exec must be called from the
// goroutine that calls Tick.
type Host struct {
	engine *engine.Engine
	state  *lua.State

	requests chan request
	done     chan struct{}
	closed   bool

	passes      int
	yieldCap    int
	waitCeiling int
	nextSlot    int
}

type HostOpt func(*Host)

// WithDrainLimits bounds how far scripts advance on each tick.
func WithDrainLimits(passes, yieldCap int) HostOpt {
	return func(h *Host) {
		if passes > 0 {
			h.passes = passes
		}
		if yieldCap > 0 {
			h.yieldCap = yieldCap
		}
	}
}

// WithWaitCeiling bounds the resumes a wait_for_script call may perform.
func WithWaitCeiling(n int) HostOpt {
	return func(h *Host) {
		h.waitCeiling = n
	}
}

func WithQueueSize(n int) HostOpt {
	return func(h *Host) {
		if n > 0 {
			h.requests = make(chan request, n)
		}
	}
}

func NewHost(e *engine.Engine, opts ...HostOpt) *Host {
	h := &Host{
		engine:      e,
		state:       lua.NewState(),
		requests:    make(chan request, defaultQueueSize),
		done:        make(chan struct{}),
		passes:      DefaultDrainPasses,
		yieldCap:    DefaultYieldCap,
		waitCeiling: scheduler.DefaultWaitCeiling,
		nextSlot:    1,
	}

	for _, opt := range opts {
		opt(h)
	}

	lua.OpenLibraries(h.state)
	h.state.NewTable()
	h.state.SetField(lua.RegistryIndex, scriptsKey)
	h.register()

	return h
}

func (h *Host) world() *game.WorldState {
	return h.engine.World()
}

func (h *Host) events() *eventlog.Log {
	return h.engine.Events()
}

func (h *Host) scripts() *scheduler.Scheduler {
	return h.engine.Scripts()
}

// DoString runs a chunk of Lua source.
func (h *Host) DoString(chunk string) error {
	if h.closed {
		return ErrHostClosed
	}
	top := h.state.Top()
	defer h.state.SetTop(top)

	if err := lua.DoString(h.state, chunk); err != nil {
		return fmt.Errorf("running chunk: %w", err)
	}
	return nil
}

// DoFile runs a Lua source file.
func (h *Host) DoFile(path string) error {
	if h.closed {
		return ErrHostClosed
	}
	top := h.state.Top()
	defer h.state.SetTop(top)

	if err := lua.DoFile(h.state, path); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}
	return nil
}

// Exec queues a chunk for the next tick and waits for its printed results.
// It is safe to call from any goroutine.
func (h *Host) Exec(ctx context.Context, chunk string) (string, error) {
	var (
		out     string
		evalErr error
	)
	err := h.submit(ctx, func() {
		out, evalErr = h.eval(chunk)
	})
	if err != nil {
		return "", err
	}
	return out, evalErr
}

// Snapshot queues a snapshot for the next tick and waits for it. It is safe
// to call from any goroutine.
func (h *Host) Snapshot(ctx context.Context) (*snapshot.Document, error) {
	var doc *snapshot.Document
	err := h.submit(ctx, func() {
		doc = h.engine.Snapshot()
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (h *Host) submit(ctx context.Context, fn func()) error {
	req := request{run: fn, done: make(chan struct{})}

	select {
	case h.requests <- req:
	case <-h.done:
		return ErrHostClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-req.done:
		return nil
	case <-h.done:
		return ErrHostClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// eval runs a console chunk, trying it as an expression first, and formats
// whatever it returns.
func (h *Host) eval(chunk string) (string, error) {
	l := h.state
	top := l.Top()
	defer l.SetTop(top)

	if err := lua.LoadString(l, "return "+chunk); err != nil {
		l.SetTop(top)
		if err := lua.LoadString(l, chunk); err != nil {
			return "", fmt.Errorf("compiling chunk: %w", err)
		}
	}
	if err := l.ProtectedCall(0, lua.MultipleReturns, 0); err != nil {
		return "", fmt.Errorf("running chunk: %w", err)
	}

	var out []string
	for i, n := top+1, l.Top(); i <= n; i++ {
		s, _ := lua.ToStringMeta(l, i)
		l.Pop(1)
		out = append(out, s)
	}
	return strings.Join(out, "\t"), nil
}

// Tick answers queued console requests, then advances every live script.
func (h *Host) Tick(ctx context.Context) error {
	if h.closed {
		return ErrHostClosed
	}

	h.serveRequests()

	if err := h.scripts().Drain(h.passes, h.yieldCap); err != nil {
		slog.WarnContext(ctx, "script drain failed", "error", err)
	}
	return nil
}

func (h *Host) serveRequests() {
	for {
		select {
		case req := <-h.requests:
			req.run()
			close(req.done)
		default:
			return
		}
	}
}

// Close stops every live script and releases the Lua state.
func (h *Host) Close() {
	if h.closed {
		return
	}
	for _, handle := range h.scripts().ActiveHandles() {
		h.scripts().Stop(handle)
	}
	h.closed = true
	close(h.done)
	h.state = nil
}
