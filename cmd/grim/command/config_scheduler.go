package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-grim/internal/luahost"
)

type SchedulerConfig struct {
	MaxPasses   int `json:"max_passes"`
	MaxYields   int `json:"max_yields"`
	WaitCeiling int `json:"wait_ceiling"`
	QueueSize   int `json:"queue_size"`
}

func (c *SchedulerConfig) validate() error {
	el := errors.NewErrorList()

	if c.MaxPasses < 0 {
		el.Add(fmt.Errorf("max_passes must not be negative"))
	}
	if c.MaxYields < 0 {
		el.Add(fmt.Errorf("max_yields must not be negative"))
	}
	if c.WaitCeiling < 0 {
		el.Add(fmt.Errorf("wait_ceiling must not be negative"))
	}
	if c.QueueSize < 0 {
		el.Add(fmt.Errorf("queue_size must not be negative"))
	}

	return el.Err()
}

// hostOpts leaves zero values at the host defaults.
func (c *SchedulerConfig) hostOpts() []luahost.HostOpt {
	opts := []luahost.HostOpt{
		luahost.WithDrainLimits(c.MaxPasses, c.MaxYields),
		luahost.WithQueueSize(c.QueueSize),
	}
	if c.WaitCeiling > 0 {
		opts = append(opts, luahost.WithWaitCeiling(c.WaitCeiling))
	}
	return opts
}
