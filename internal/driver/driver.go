// Package driver advances the world on a fixed tick.
package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Millisecond * 100
)

type Manager interface {
	Tick(context.Context) error
}

// Closer is implemented by managers that hold resources owned by the driver
// goroutine.
type Closer interface {
	Close()
}

type Driver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start ticks every manager until ctx is done or a manager fails, then closes
// the managers that need it.
func (d *Driver) Start(ctx context.Context) error {
	defer d.close(ctx)

	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *Driver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) close(ctx context.Context) {
	for _, m := range d.managers {
		if c, ok := m.(Closer); ok {
			c.Close()
		}
	}
	slog.InfoContext(ctx, "driver stopped")
}
