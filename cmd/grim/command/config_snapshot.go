package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-grim/internal/snapshot"
)

// SnapshotConfig enables periodic snapshot export when Path is set.
type SnapshotConfig struct {
	Path       string `json:"path"`
	EveryTicks int    `json:"every_ticks"`
	Format     string `json:"format"`
}

func (c *SnapshotConfig) validate() error {
	el := errors.NewErrorList()

	if c.EveryTicks < 0 {
		el.Add(fmt.Errorf("every_ticks must not be negative"))
	}

	switch c.Format {
	case "", snapshot.FormatJSON, snapshot.FormatYAML:
	default:
		el.Add(fmt.Errorf("unknown snapshot format %q", c.Format))
	}

	if c.Path != "" {
		dir := filepath.Dir(c.Path)
		if _, err := os.Stat(dir); err != nil {
			el.Add(fmt.Errorf("snapshot directory %q: %w", dir, err))
		}
	}

	return el.Err()
}

func (c *SnapshotConfig) buildExporter(source snapshot.Source) *snapshot.Exporter {
	opts := []snapshot.ExporterOpt{snapshot.WithEvery(c.EveryTicks)}
	if c.Format != "" {
		opts = append(opts, snapshot.WithFormat(c.Format))
	}
	return snapshot.NewExporter(source, c.Path, opts...)
}
