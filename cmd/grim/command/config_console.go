package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-grim/internal/console"
)

// ConsoleConfig enables the telnet console when Port is set.
type ConsoleConfig struct {
	Port   uint16 `json:"port"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
}

func (c *ConsoleConfig) validate() error {
	el := errors.NewErrorList()

	if c.Width < 0 {
		el.Add(fmt.Errorf("console width must not be negative"))
	}

	return el.Err()
}

func (c *ConsoleConfig) buildConsole(backend console.Backend, extra ...console.ConsoleOpt) *console.Console {
	opts := append([]console.ConsoleOpt{console.WithWidth(c.Width)}, extra...)
	if c.Prompt != "" {
		opts = append(opts, console.WithPrompt(c.Prompt))
	}
	return console.NewConsole(c.Port, backend, opts...)
}
