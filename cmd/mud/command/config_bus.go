package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudengine/internal/messaging"
)

// maxBusPayload caps max_payload at the NATS server's hard limit.
const maxBusPayload = 64 << 20

// BusConfig configures the embedded NATS server that carries each player's
// outbound game messages from the engine to their session.
type BusConfig struct {
	Host string `json:"host"`
	// Port -1 picks a free port. Zero uses the NATS default.
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
	// MaxPayload bounds one encoded message in bytes. Map and location
	// descriptions are the largest.
	MaxPayload int `json:"max_payload"`
}

func (b *BusConfig) validate() error {
	el := errors.NewErrorList()

	if b.Port < -1 || b.Port > 65535 {
		el.Add(fmt.Errorf("bus.port %d is out of range", b.Port))
	}
	if _, err := b.startTimeout(); err != nil {
		el.Add(err)
	}
	if b.MaxPayload < 0 || b.MaxPayload > maxBusPayload {
		el.Add(fmt.Errorf("bus.max_payload must be between 0 and %d bytes", maxBusPayload))
	}

	return el.Err()
}

// startTimeout returns zero when no timeout is configured.
func (b *BusConfig) startTimeout() (time.Duration, error) {
	if b.StartTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(b.StartTimeout)
	if err != nil {
		return 0, fmt.Errorf("parsing bus.start_timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("bus.start_timeout must be positive")
	}
	return d, nil
}

func (b *BusConfig) buildBus() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt

	d, err := b.startTimeout()
	if err != nil {
		return nil, err
	}
	if d > 0 {
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if b.Host != "" {
		opts = append(opts, messaging.WithHost(b.Host))
	}
	if b.Port != 0 {
		opts = append(opts, messaging.WithPort(b.Port))
	}
	if b.MaxPayload > 0 {
		opts = append(opts, messaging.WithMaxPayload(int32(b.MaxPayload)))
	}

	return messaging.NewNatsServer(opts...)
}
