package schemas

import (
	"encoding/json"
	"time"
)

// SchemaDocument is a stored JSON-schema record. Schema stays opaque since
// the payload is genuinely schema-less.
type SchemaDocument struct {
	ID        string
	Schema    json.RawMessage
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
