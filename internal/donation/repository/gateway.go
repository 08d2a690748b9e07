package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Gateway is the document-store facade used by the donation service.
// Store errors are returned unmodified; nothing here retries.
type Gateway interface {
	// Create inserts record as a new document and returns the store-assigned id as text.
	Create(ctx context.Context, collection string, record interface{}) (string, error)
	// List returns up to limit raw documents in the store's natural order.
	List(ctx context.Context, collection string, limit int64) ([]bson.M, error)
}
