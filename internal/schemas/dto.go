package schemas

import (
	"encoding/json"
	"time"
)

// Success messages for the CRUD surface.
const (
	MessageSchemaCreated = "SCHEMA_CREATED_SUCCESSFULLY"
	MessageSchemaUpdated = "SCHEMA_UPDATED_SUCCESSFULLY"
	MessageSchemaDeleted = "SCHEMA_DELETED_SUCCESSFULLY"
)

// SchemaResponse is the outward-facing representation of a schema document.
type SchemaResponse struct {
	ID        string          `json:"id"`
	Schema    json.RawMessage `json:"schema"`
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToResponse converts a stored document into its wire shape.
func ToResponse(doc SchemaDocument) SchemaResponse {
	return SchemaResponse{
		ID:        doc.ID,
		Schema:    doc.Schema,
		Version:   doc.Version,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// ToResponses converts a document slice, preserving order.
func ToResponses(docs []SchemaDocument) []SchemaResponse {
	out := make([]SchemaResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, ToResponse(doc))
	}
	return out
}
