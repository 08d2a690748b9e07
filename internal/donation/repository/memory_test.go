package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/pawshearts/pawshearts/backend/go-services/internal/donation"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryGateway_CreateList(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()
	msg := "for the shelter"
	d := &donation.Donation{Name: "Jo", Email: "jo@x.com", Amount: 12.5, Animal: "dog", Message: &msg, Recurring: true}

	id, err := g.Create(ctx, donation.Collection, d)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	_, err = primitive.ObjectIDFromHex(id)
	require.NoError(t, err)

	docs, err := g.List(ctx, donation.Collection, 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "Jo", docs[0]["name"])
	require.Equal(t, 12.5, docs[0]["amount"])
	require.Equal(t, true, docs[0]["recurring"])
	require.Equal(t, "for the shelter", docs[0]["message"])

	out := donation.FromDocument(docs[0])
	require.Equal(t, id, out.ID)
	require.Equal(t, 1, g.Creates())
	require.Equal(t, 1, g.Lists())
}

func TestMemoryGateway_NilMessageStoredAsNull(t *testing.T) {
	g := NewMemoryGateway()
	_, err := g.Create(context.Background(), donation.Collection, &donation.Donation{Name: "A", Email: "a@b.co", Amount: 1})
	require.NoError(t, err)

	docs, err := g.List(context.Background(), donation.Collection, 1)
	require.NoError(t, err)
	v, ok := docs[0]["message"]
	require.True(t, ok)
	require.Nil(t, v)
}

func TestMemoryGateway_LimitBounds(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := g.Create(ctx, donation.Collection, bson.M{"name": fmt.Sprintf("donor-%d", i)})
		require.NoError(t, err)
	}

	docs, err := g.List(ctx, donation.Collection, 0)
	require.NoError(t, err)
	require.Empty(t, docs)

	docs, err = g.List(ctx, donation.Collection, 3)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	require.Equal(t, "donor-0", docs[0]["name"])

	docs, err = g.List(ctx, donation.Collection, 50)
	require.NoError(t, err)
	require.Len(t, docs, 5)

	docs, err = g.List(ctx, "other", 10)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestMemoryGateway_ListReturnsCopies(t *testing.T) {
	g := NewMemoryGateway()
	g.Insert(donation.Collection, bson.M{"_id": "legacy", "name": "Old"})

	docs, err := g.List(context.Background(), donation.Collection, 1)
	require.NoError(t, err)
	docs[0]["name"] = "changed"

	again, err := g.List(context.Background(), donation.Collection, 1)
	require.NoError(t, err)
	require.Equal(t, "Old", again[0]["name"])
}

func TestMemoryGateway_ListCollectionNames(t *testing.T) {
	g := NewMemoryGateway()
	g.Insert("donation", bson.M{"name": "a"})
	g.Insert("audit", bson.M{"name": "b"})

	names, err := g.ListCollectionNames(context.Background(), bson.D{})
	require.NoError(t, err)
	require.Equal(t, []string{"audit", "donation"}, names)
	require.Equal(t, "memory", g.Name())
}
