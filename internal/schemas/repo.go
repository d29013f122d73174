package schemas

import (
	"context"
	"encoding/json"
	"reflect"
)

// Repo defines persistence operations for JSON schema documents.
type Repo interface {
	Create(ctx context.Context, doc SchemaDocument) error
	GetByID(ctx context.Context, id string) (SchemaDocument, error)
	// FindBySchema returns a document whose schema content deep-equals the
	// given value, skipping excludeID. ErrNotFound when no document matches.
	FindBySchema(ctx context.Context, schema json.RawMessage, excludeID string) (SchemaDocument, error)
	Update(ctx context.Context, doc SchemaDocument) error
	Delete(ctx context.Context, id string) (SchemaDocument, error)
	List(ctx context.Context) ([]SchemaDocument, error)
}

// jsonEqual reports structural deep equality of two JSON values,
// independent of key order and formatting.
func jsonEqual(a, b json.RawMessage) bool {
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	return reflect.DeepEqual(av, bv)
}
