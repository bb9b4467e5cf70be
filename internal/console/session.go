package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pixil98/go-grim/internal/display"
	"github.com/pixil98/go-grim/internal/messaging"
	"github.com/pixil98/go-grim/internal/snapshot"
)

// Backend evaluates console input against the running world. Both calls must
// be safe from any goroutine.
type Backend interface {
	Exec(ctx context.Context, chunk string) (string, error)
	Snapshot(ctx context.Context) (*snapshot.Document, error)
}

// Subscriber delivers published messages. Handlers may run on another
// goroutine.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

const helpText = `Lua chunks are run against the live world; expressions print their values.
  :report <name>  render a report (%s)
  :watch [off]    stream event log entries as they happen
  :help           show this text
  :quit           close the console
`

type session struct {
	conn    io.ReadWriter
	backend Backend
	prompt  string
	width   int

	events  Subscriber
	subject string
	stop    func()

	mu sync.Mutex
}

// RunSession serves one console connection until the input ends, the user
// quits or ctx is canceled.
func (c *Console) RunSession(ctx context.Context, conn io.ReadWriter) error {
	s := &session{
		conn:    conn,
		backend: c.backend,
		prompt:  c.prompt,
		width:   c.width,
		events:  c.events,
		subject: c.subject,
	}
	defer s.unwatch()
	return s.run(ctx)
}

func (s *session) run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		defer close(inputChan)
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-done:
				return
			}
		}
		inputErrChan <- scanner.Err()
	}()

	if err := s.write("grim console, :help for commands\n" + s.prompt); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-inputChan:
			if !ok {
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			err := s.handle(ctx, strings.TrimSpace(line))
			if errors.Is(err, ErrQuit) {
				return s.write("bye\n")
			}
			if err != nil {
				return err
			}
			if err := s.write(s.prompt); err != nil {
				return err
			}
		}
	}
}

// handle runs one line of input. Only connection failures and ErrQuit are
// returned; evaluation errors are shown to the user.
func (s *session) handle(ctx context.Context, line string) error {
	if line == "" {
		return nil
	}

	if !strings.HasPrefix(line, ":") {
		out, err := s.backend.Exec(ctx, line)
		if err != nil {
			slog.DebugContext(ctx, "console chunk failed", "error", err)
			return s.writeLine("error: " + err.Error())
		}
		if out == "" {
			return nil
		}
		return s.writeLine(out)
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return s.writeLine("unknown command, try :help")
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return ErrQuit
	case "help":
		return s.write(fmt.Sprintf(helpText, strings.Join(display.ReportNames(), ", ")))
	case "report":
		name := "world"
		if len(fields) > 1 {
			name = fields[1]
		}
		return s.report(ctx, name)
	case "watch":
		if len(fields) > 1 && strings.EqualFold(fields[1], "off") {
			s.unwatch()
			return s.writeLine("stopped watching events")
		}
		return s.watch(ctx)
	default:
		return s.writeLine(fmt.Sprintf("unknown command %q, try :help", fields[0]))
	}
}

func (s *session) report(ctx context.Context, name string) error {
	doc, err := s.backend.Snapshot(ctx)
	if err != nil {
		return s.writeLine("error: " + err.Error())
	}
	out, err := display.Report(name, doc, s.width)
	if err != nil {
		return s.writeLine("error: " + err.Error())
	}
	return s.write(out)
}

func (s *session) watch(ctx context.Context) error {
	if s.events == nil {
		return s.writeLine("event stream not available")
	}
	if s.stop != nil {
		return s.writeLine("already watching events")
	}

	stop, err := s.events.Subscribe(s.subject, func(data []byte) {
		var env messaging.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			slog.DebugContext(ctx, "decoding event notification", "error", err)
			return
		}
		if err := s.writeLine(fmt.Sprintf("[%d] %s", env.Seq, env.Entry)); err != nil {
			slog.DebugContext(ctx, "writing event to console", "error", err)
		}
	})
	if err != nil {
		return s.writeLine("error: " + err.Error())
	}
	s.stop = stop
	return s.writeLine("watching events on " + s.subject)
}

func (s *session) unwatch() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *session) writeLine(msg string) error {
	return s.write(display.Wrap(msg, s.width) + "\n")
}

func (s *session) write(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.conn, msg)
	if err != nil {
		return fmt.Errorf("writing to console: %w", err)
	}
	return nil
}
