package command

import (
	"fmt"
	"os"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string          `json:"tick_interval"`
	Verbose      bool            `json:"verbose"`
	Scripts      []string        `json:"scripts"`
	Storage      StorageConfig   `json:"storage"`
	Scheduler    SchedulerConfig `json:"scheduler"`
	Nats         NatsConfig      `json:"nats"`
	Console      ConsoleConfig   `json:"console"`
	Snapshot     SnapshotConfig  `json:"snapshot"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("tick_interval must be positive"))
		}
	}

	for i, path := range c.Scripts {
		if _, err := os.Stat(path); err != nil {
			el.Add(fmt.Errorf("script %d: invalid path %q: %w", i, path, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Scheduler.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Console.validate())
	el.Add(c.Snapshot.validate())

	return el.Err()
}

// tickLength returns the configured tick interval, or zero for the driver
// default.
func (c *Config) tickLength() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0
	}
	return d
}
