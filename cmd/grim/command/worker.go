package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-grim/internal/console"
	"github.com/pixil98/go-grim/internal/driver"
	"github.com/pixil98/go-grim/internal/engine"
	"github.com/pixil98/go-grim/internal/eventlog"
	"github.com/pixil98/go-grim/internal/game"
	"github.com/pixil98/go-grim/internal/luahost"
	"github.com/pixil98/go-grim/internal/messaging"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	workers := service.WorkerList{}
	events := eventlog.New()

	// Mirror audio and the event log onto the broker
	var engineOpts []engine.EngineOpt
	var consoleOpts []console.ConsoleOpt
	if cfg.Nats.Enabled {
		natsServer, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		events.Attach(messaging.NewEventPublisher(natsServer, cfg.Nats.SubjectPrefix))
		engineOpts = append(engineOpts, engine.WithAudioCallback(messaging.NewAudioPublisher(natsServer, cfg.Nats.SubjectPrefix)))
		consoleOpts = append(consoleOpts, console.WithEvents(natsServer, messaging.EventSubject(cfg.Nats.SubjectPrefix)))
		workers["nats"] = natsServer
	}

	// Build the world
	worldOpts, err := cfg.Storage.worldOpts()
	if err != nil {
		return nil, err
	}
	worldOpts = append(worldOpts, game.WithVerbose(cfg.Verbose))
	world := game.NewWorldState(events, worldOpts...)
	eng := engine.NewEngine(world, engineOpts...)

	// Boot the scripting host
	host := luahost.NewHost(eng, cfg.Scheduler.hostOpts()...)
	for _, path := range cfg.Scripts {
		if err := host.DoFile(path); err != nil {
			host.Close()
			return nil, fmt.Errorf("loading boot script: %w", err)
		}
		slog.Info("boot script loaded", "path", path)
	}

	// Setup the driver
	managers := []driver.Manager{host}
	if cfg.Snapshot.Path != "" {
		managers = append(managers, cfg.Snapshot.buildExporter(eng))
	}
	workers["driver"] = driver.NewDriver(managers, driver.WithTickLength(cfg.tickLength()))

	if cfg.Console.Port != 0 {
		workers["console"] = cfg.Console.buildConsole(host, consoleOpts...)
	}

	return workers, nil
}
