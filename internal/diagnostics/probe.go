package diagnostics

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Status strings reported by Probe.
const (
	BackendRunning = "✅ Running"

	DatabaseNotAvailable   = "❌ Not Available"
	DatabaseAvailable      = "✅ Available"
	DatabaseNotInitialized = "⚠️ Available but not initialized"
	DatabaseWorking        = "✅ Connected & Working"
	DatabaseConnectedError = "⚠️ Connected but Error: "

	URLSet    = "✅ Set"
	URLNotSet = "❌ Not Set"

	Connected    = "Connected"
	NotConnected = "Not Connected"
)

// MaxCollections caps the collection names included in a Report.
const MaxCollections = 10

// errTextLimit bounds the error text folded into status strings.
const errTextLimit = 50

// Inspector is the part of *mongo.Database the probe needs.
type Inspector interface {
	Name() string
	ListCollectionNames(ctx context.Context, filter interface{}, opts ...*options.ListCollectionsOptions) ([]string, error)
}

// Report is the connectivity report served on /test.
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Probe inspects db and never fails: any error, or panic, while probing is
// folded into Report.Database. db may be nil when no store handle exists.
func Probe(ctx context.Context, db Inspector, urlConfigured bool) (r Report) {
	r = Report{
		Backend:          BackendRunning,
		Database:         DatabaseNotAvailable,
		ConnectionStatus: NotConnected,
		Collections:      []string{},
	}
	defer func() {
		if p := recover(); p != nil {
			r.Database = "❌ Error: " + truncate(fmt.Sprint(p))
		}
	}()

	if db == nil {
		r.Database = DatabaseNotInitialized
		return r
	}

	r.Database = DatabaseAvailable
	url := URLNotSet
	if urlConfigured {
		url = URLSet
	}
	r.DatabaseURL = &url
	name := db.Name()
	if name == "" {
		name = "✅ Connected"
	}
	r.DatabaseName = &name
	r.ConnectionStatus = Connected

	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		r.Database = DatabaseConnectedError + truncate(err.Error())
		return r
	}
	if len(names) > MaxCollections {
		names = names[:MaxCollections]
	}
	if names != nil {
		r.Collections = names
	}
	r.Database = DatabaseWorking
	return r
}

func truncate(s string) string {
	rs := []rune(s)
	if len(rs) > errTextLimit {
		return string(rs[:errTextLimit])
	}
	return s
}
