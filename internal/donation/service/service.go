package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawshearts/pawshearts/backend/go-services/internal/donation"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/donation/repository"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/metrics"
)

var (
	// ErrUnavailable is returned when no store handle was initialized at startup.
	ErrUnavailable = errors.New("database not available")
)

// DefaultLimit is the page size used when the caller does not give one.
const DefaultLimit int64 = 10

// Service records and lists donations through a Gateway.
type Service struct {
	gw repository.Gateway
}

// New returns a Service over gw. gw may be nil when the store could not be
// initialized; every call then fails with ErrUnavailable.
func New(gw repository.Gateway) *Service {
	return &Service{gw: gw}
}

// Create validates d, applies inbound defaults and inserts it.
// Validation failures never reach the store.
func (s *Service) Create(ctx context.Context, d *donation.Donation) (string, error) {
	if err := donation.Validate(d); err != nil {
		metrics.ValidationFailures.Inc()
		return "", err
	}
	if s.gw == nil {
		return "", ErrUnavailable
	}
	d.Normalize()
	id, err := s.gw.Create(ctx, donation.Collection, d)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("create").Inc()
		return "", fmt.Errorf("create donation: %w", err)
	}
	metrics.DonationsCreated.Inc()
	return id, nil
}

// List returns up to limit donations in outbound shape.
func (s *Service) List(ctx context.Context, limit int64) ([]donation.Out, error) {
	if limit < 0 {
		metrics.ValidationFailures.Inc()
		return nil, donation.NewValidationError("query", fmt.Errorf("limit must be non-negative, got %d", limit))
	}
	if s.gw == nil {
		return nil, ErrUnavailable
	}
	docs, err := s.gw.List(ctx, donation.Collection, limit)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("list").Inc()
		return nil, fmt.Errorf("list donations: %w", err)
	}
	metrics.DonationsListed.Add(float64(len(docs)))
	return donation.FromDocuments(docs), nil
}
