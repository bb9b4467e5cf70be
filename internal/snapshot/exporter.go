package snapshot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-grim/internal/storage"
)

// Source builds documents on demand.
type Source interface {
	Snapshot() *Document
}

// Exporter writes a document to disk every few ticks.
type Exporter struct {
	source Source
	path   string
	every  int
	format string
	ticks  int
}

type ExporterOpt func(*Exporter)

// WithEvery sets how many ticks pass between writes.
func WithEvery(n int) ExporterOpt {
	return func(e *Exporter) {
		if n > 0 {
			e.every = n
		}
	}
}

func WithFormat(format string) ExporterOpt {
	return func(e *Exporter) {
		e.format = format
	}
}

func NewExporter(source Source, path string, opts ...ExporterOpt) *Exporter {
	e := &Exporter{
		source: source,
		path:   path,
		every:  1,
		format: FormatJSON,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Exporter) Tick(ctx context.Context) error {
	e.ticks++
	if e.ticks%e.every != 0 {
		return nil
	}
	return e.Export(ctx)
}

// Export writes the current document immediately.
func (e *Exporter) Export(ctx context.Context) error {
	data, err := Encode(e.source.Snapshot(), e.format)
	if err != nil {
		return err
	}
	if err := storage.AtomicWrite(e.path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	slog.DebugContext(ctx, "snapshot written", "path", e.path, "bytes", len(data))
	return nil
}
