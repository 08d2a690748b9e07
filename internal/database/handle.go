package database

import (
	"context"
	"time"

	"github.com/pawshearts/pawshearts/backend/go-services/internal/config"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handle is the long-lived store connection created once at startup and
// shared read-only by every request.
type Handle struct {
	Client *mongo.Client
	DB     *mongo.Database

	timeout time.Duration
	retries int
}

// OpenMongo creates the client for cfg.URL and selects cfg.Name without
// waiting for the server. It fails only when the URI cannot be used at all.
func OpenMongo(cfg config.DatabaseConfig) (*Handle, error) {
	client, err := NewClient(cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Handle{
		Client:  client,
		DB:      client.Database(cfg.Name),
		timeout: cfg.Timeout,
		retries: cfg.ConnectRetries,
	}, nil
}

// WaitReady pings the server, retrying with backoff. A failure leaves the
// handle usable: the driver reconnects on its own once the server is back.
func (h *Handle) WaitReady(ctx context.Context) error {
	ping := func(ctx context.Context) error {
		return Ping(ctx, h.Client, h.timeout)
	}
	notify := func(attempt int, err error) {
		logger.Warnf("attempt %d/%d: failed to reach MongoDB: %v", attempt, h.retries, err)
	}
	return RetryWithBackoff(ctx, h.retries, time.Second, ping, notify)
}

// Close disconnects the client.
func (h *Handle) Close(ctx context.Context) error {
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.Disconnect(ctx)
}
