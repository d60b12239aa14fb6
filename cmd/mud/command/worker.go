package command

import (
	"fmt"

	"github.com/pixil98/go-mudengine/internal/driver"
	"github.com/pixil98/go-mudengine/internal/engine"
	"github.com/pixil98/go-mudengine/internal/listener"
	"github.com/pixil98/go-mudengine/internal/messaging"
	"github.com/pixil98/go-mudengine/internal/observability"
	"github.com/pixil98/go-mudengine/internal/player"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	tickLength, err := cfg.tickLength()
	if err != nil {
		return nil, err
	}

	// Build the world
	stores, err := cfg.Content.openStores()
	if err != nil {
		return nil, fmt.Errorf("opening content: %w", err)
	}
	opts, err := cfg.Game.engineOpts()
	if err != nil {
		return nil, err
	}
	eng, err := engine.NewEngine(append(opts, engine.WithLoader(stores.Loader()))...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	natsServer, err := cfg.Bus.buildBus()
	if err != nil {
		return nil, fmt.Errorf("creating message bus: %w", err)
	}

	sessions := player.NewSessionManager(eng, natsServer)
	cm := listener.NewConnectionManager(sessions)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d-%s", i, l.Protocol)] = w
	}

	workers := service.WorkerList{
		"driver":    driver.NewMudDriver([]driver.Manager{eng}, driver.WithTickLength(tickLength)),
		"nats":      natsServer,
		"listeners": &listeners,
	}

	if cfg.Metrics.Addr != "" {
		workers["observability"] = observability.NewServer(
			cfg.Metrics.Addr,
			natsReady(natsServer),
			engine.RegisterMetrics,
			sessions.RegisterMetrics,
		)
	}

	return workers, nil
}

func natsReady(s *messaging.NatsServer) observability.ReadinessChecker {
	return func() bool {
		select {
		case <-s.Ready():
			return true
		default:
			return false
		}
	}
}
