// Package console serves a Lua console over telnet.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
	"github.com/pixil98/go-grim/internal/display"
)

const DefaultPrompt = "grim> "

type Console struct {
	port    uint16
	backend Backend
	prompt  string
	width   int
	events  Subscriber
	subject string
}

type ConsoleOpt func(*Console)

func WithPrompt(prompt string) ConsoleOpt {
	return func(c *Console) {
		c.prompt = prompt
	}
}

// WithWidth sets the column width output is wrapped to.
func WithWidth(width int) ConsoleOpt {
	return func(c *Console) {
		if width > 0 {
			c.width = width
		}
	}
}

// WithEvents lets sessions stream event notifications published on subject.
func WithEvents(sub Subscriber, subject string) ConsoleOpt {
	return func(c *Console) {
		c.events = sub
		c.subject = subject
	}
}

func NewConsole(port uint16, backend Backend, opts ...ConsoleOpt) *Console {
	c := &Console{
		port:    port,
		backend: backend,
		prompt:  DefaultPrompt,
		width:   display.DefaultWidth,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start listens for telnet connections until ctx is canceled.
func (c *Console) Start(ctx context.Context) error {
	connCtx, cancelConns := context.WithCancel(context.Background())

	handler := &telnetHandler{
		console:     c,
		connCtx:     connCtx,
		cancelConns: cancelConns,
	}

	svr := telnet.NewServer(fmt.Sprintf(":%d", c.port), handler)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			handler.Stop()
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "console listening", "port", c.port)
	err := svr.ListenAndServe()
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", c.port)
		}
		return fmt.Errorf("serving console on port %d: %w", c.port, err)
	}

	return nil
}

type telnetHandler struct {
	wg          sync.WaitGroup
	console     *Console
	connCtx     context.Context
	cancelConns context.CancelFunc
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("closing console connection", "error", err)
		}
	}()

	if err := h.console.RunSession(h.connCtx, newCRLFConn(conn)); err != nil && !errors.Is(err, context.Canceled) {
		slog.WarnContext(h.connCtx, "console session", "error", err)
	}
}

// Stop cancels every open session and waits for them to end.
func (h *telnetHandler) Stop() {
	h.cancelConns()
	h.wg.Wait()
}
