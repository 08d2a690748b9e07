package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pawshearts/pawshearts/backend/go-services/internal/donation"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/donation/repository"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type failingGateway struct{ err error }

func (f failingGateway) Create(context.Context, string, interface{}) (string, error) {
	return "", f.err
}

func (f failingGateway) List(context.Context, string, int64) ([]bson.M, error) {
	return nil, f.err
}

func strPtr(s string) *string { return &s }

func TestService_CreateThenListRoundTrip(t *testing.T) {
	gw := repository.NewMemoryGateway()
	svc := New(gw)
	ctx := context.Background()

	cases := []struct {
		in     donation.Donation
		animal string
	}{
		{donation.Donation{Name: "Jo", Email: "jo@x.com", Amount: 12.5, Animal: "dog", Recurring: true}, "dog"},
		{donation.Donation{Name: "Sam", Email: "sam@example.org", Amount: 3, Message: strPtr("hi")}, "all"},
	}
	for _, tc := range cases {
		in := tc.in
		id, err := svc.Create(ctx, &in)
		require.NoError(t, err)
		require.NotEmpty(t, id)
	}

	list, err := svc.List(ctx, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, list, len(cases))
	for i, tc := range cases {
		got := list[i]
		require.NotEmpty(t, got.ID)
		require.Equal(t, tc.in.Name, got.Name)
		require.Equal(t, tc.in.Email, got.Email)
		require.Equal(t, tc.in.Amount, got.Amount)
		require.Equal(t, tc.animal, got.Animal)
		require.Equal(t, tc.in.Message, got.Message)
		require.Equal(t, tc.in.Recurring, got.Recurring)
	}
}

func TestService_InvalidPayloadNeverReachesStore(t *testing.T) {
	gw := repository.NewMemoryGateway()
	svc := New(gw)
	before := testutil.ToFloat64(metrics.ValidationFailures)

	bad := []donation.Donation{
		{Email: "jo@x.com", Amount: 1},
		{Name: "Jo", Amount: 1},
		{Name: "Jo", Email: "jo@x.com"},
		{Name: "Jo", Email: "jo-at-x.com", Amount: 1},
		{Name: "Jo", Email: "jo@x.com", Amount: -1},
	}
	for _, d := range bad {
		d := d
		_, err := svc.Create(context.Background(), &d)
		var ve *donation.ValidationError
		require.ErrorAs(t, err, &ve)
	}
	require.Equal(t, 0, gw.Creates())
	require.Equal(t, before+float64(len(bad)), testutil.ToFloat64(metrics.ValidationFailures))
}

func TestService_ListLimits(t *testing.T) {
	gw := repository.NewMemoryGateway()
	svc := New(gw)
	for i := 0; i < 4; i++ {
		_, err := svc.Create(context.Background(), &donation.Donation{Name: "Jo", Email: "jo@x.com", Amount: 1})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = svc.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = svc.List(context.Background(), -1)
	var ve *donation.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestService_StoreErrorsPropagate(t *testing.T) {
	storeErr := errors.New("connection reset by peer")
	svc := New(failingGateway{err: storeErr})
	before := testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("create"))

	_, err := svc.Create(context.Background(), &donation.Donation{Name: "Jo", Email: "jo@x.com", Amount: 1})
	require.ErrorIs(t, err, storeErr)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("create")))

	_, err = svc.List(context.Background(), 5)
	require.ErrorIs(t, err, storeErr)
}

func TestService_Unavailable(t *testing.T) {
	svc := New(nil)
	_, err := svc.Create(context.Background(), &donation.Donation{Name: "Jo", Email: "jo@x.com", Amount: 1})
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = svc.List(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestService_SparseLegacyDocuments(t *testing.T) {
	gw := repository.NewMemoryGateway()
	gw.Insert(donation.Collection, bson.M{"_id": "legacy-1", "amount": int32(20)})
	svc := New(gw)

	list, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "legacy-1", list[0].ID)
	require.Equal(t, "Anonymous", list[0].Name)
	require.Equal(t, 20.0, list[0].Amount)
	require.Equal(t, "all", list[0].Animal)
	require.Nil(t, list[0].Message)
	require.False(t, list[0].Recurring)
}
