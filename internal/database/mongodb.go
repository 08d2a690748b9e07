package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewClient builds a client for uri. The driver dials lazily and keeps
// reconnecting in the background, so an unreachable server is not an error
// here; only a malformed URI is. timeout bounds server selection and dialing
// for every later operation. Caller should call client.Disconnect(ctx).
func NewClient(uri string, timeout time.Duration) (*mongo.Client, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, nil
}

// Ping checks that the deployment answers within timeout.
func Ping(ctx context.Context, client *mongo.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

// RetryWithBackoff calls op up to attempts times with exponential backoff
// starting at initial. notify is invoked after every failed attempt that will be retried.
func RetryWithBackoff(ctx context.Context, attempts int, initial time.Duration, op func(context.Context) error, notify func(attempt int, err error)) error {
	if attempts < 1 {
		attempts = 1
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initial
	bo.MaxElapsedTime = 0

	attempt := 0
	try := func() error {
		attempt++
		return op(ctx)
	}
	onRetry := func(err error, _ time.Duration) {
		if notify != nil {
			notify(attempt, err)
		}
	}
	b := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(attempts-1)), ctx)
	if err := backoff.RetryNotify(try, b, onRetry); err != nil {
		return fmt.Errorf("mongo unreachable after %d attempts: %w", attempt, err)
	}
	return nil
}
