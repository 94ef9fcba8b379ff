package driver

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	natsClientName    = "storefront"
	natsMaxReconnects = 10
	natsReconnectWait = 2 * time.Second
	natsTimeout       = 5 * time.Second
)

// ConnectNATS connects to the NATS server that carries cart events.
func ConnectNATS(url string, logger *zap.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(natsClientName),
		nats.Timeout(natsTimeout),
		nats.MaxReconnects(natsMaxReconnects),
		nats.ReconnectWait(natsReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connection error: %w", err)
	}

	return conn, nil
}
