package repository

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MemoryGateway is an in-memory Gateway used for local runs and unit tests.
// Records are BSON round-tripped so reads see the same shapes Mongo returns.
type MemoryGateway struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
	creates     int
	lists       int
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{collections: make(map[string][]bson.M)}
}

func (m *MemoryGateway) Create(_ context.Context, collection string, record interface{}) (string, error) {
	m.mu.Lock()
	m.creates++
	m.mu.Unlock()

	raw, err := bson.Marshal(record)
	if err != nil {
		return "", err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return "", err
	}
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = primitive.NewObjectID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], doc)
	return insertedID(doc["_id"]), nil
}

func (m *MemoryGateway) List(_ context.Context, collection string, limit int64) ([]bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	docs := m.collections[collection]
	if limit < 0 {
		limit = 0
	}
	if int64(len(docs)) > limit {
		docs = docs[:limit]
	}
	out := make([]bson.M, 0, len(docs))
	for _, d := range docs {
		cp := make(bson.M, len(d))
		for k, v := range d {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out, nil
}

// Insert stores a raw document as-is, bypassing validation. Useful for
// seeding documents that predate the current schema.
func (m *MemoryGateway) Insert(collection string, doc bson.M) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], doc)
}

// Creates reports how many Create calls reached the gateway.
func (m *MemoryGateway) Creates() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creates
}

// Lists reports how many List calls reached the gateway.
func (m *MemoryGateway) Lists() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lists
}

// Name identifies the in-memory store in connectivity reports.
func (m *MemoryGateway) Name() string { return "memory" }

// ListCollectionNames returns the names of non-empty collections, sorted.
// The filter is ignored.
func (m *MemoryGateway) ListCollectionNames(_ context.Context, _ interface{}, _ ...*options.ListCollectionsOptions) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
