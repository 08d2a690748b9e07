package donation

import (
	"fmt"
	"strconv"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is the document collection donations are stored in.
const Collection = "donation"

// Read-time defaults for documents that lack optional fields.
const (
	DefaultName   = "Anonymous"
	DefaultAnimal = "all"
)

// Donation is the inbound donation payload. The binding tags are enforced by
// gin's validator before anything reaches the store.
type Donation struct {
	Name      string  `json:"name" bson:"name" binding:"required"`
	Email     string  `json:"email" bson:"email" binding:"required,email"`
	Amount    float64 `json:"amount" bson:"amount" binding:"required,gt=0"`
	Animal    string  `json:"animal" bson:"animal"`
	Message   *string `json:"message" bson:"message"`
	Recurring bool    `json:"recurring" bson:"recurring"`
}

// Normalize fills inbound defaults so the stored document is complete.
func (d *Donation) Normalize() {
	if d.Animal == "" {
		d.Animal = DefaultAnimal
	}
}

// Out is the list view of a stored donation.
type Out struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Amount    float64 `json:"amount"`
	Animal    string  `json:"animal"`
	Message   *string `json:"message"`
	Recurring bool    `json:"recurring"`
}

// FromDocument maps a raw stored document to Out. It never fails: missing or
// null keys take the documented defaults and values are coerced to the
// expected types, so documents written before stricter validation still render.
func FromDocument(doc bson.M) Out {
	return Out{
		ID:        idString(doc["_id"]),
		Name:      stringOr(doc, "name", DefaultName),
		Email:     stringOr(doc, "email", ""),
		Amount:    toFloat(doc["amount"]),
		Animal:    stringOr(doc, "animal", DefaultAnimal),
		Message:   optionalString(doc["message"]),
		Recurring: toBool(doc["recurring"]),
	}
}

// FromDocuments converts every document in order.
func FromDocuments(docs []bson.M) []Out {
	out := make([]Out, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromDocument(d))
	}
	return out
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func stringOr(doc bson.M, key, def string) string {
	v, ok := doc[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return cast.ToString(v)
}

func optionalString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		s = cast.ToString(v)
	}
	return &s
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0
		}
		return f
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

func toBool(v interface{}) bool {
	if v == nil {
		return false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}
