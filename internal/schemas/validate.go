package schemas

import (
	"encoding/json"
	"errors"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// bodySchema is the structural contract for POST/PUT request bodies: a
// single required "schema" key holding an object.
const bodySchema = `{
	"type": "object",
	"required": ["schema"],
	"properties": {
		"schema": {"type": "object"}
	},
	"additionalProperties": false
}`

var bodyValidator = jsonschema.MustCompileString("schemas/body.json", bodySchema)

// ValidateBody checks a raw request body against the body schema and returns
// human-readable validation messages, empty when the body is valid.
func ValidateBody(body []byte) []string {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return []string{"request body must be valid JSON"}
	}
	err := bodyValidator.Validate(value)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return leafMessages(ve)
	}
	return []string{err.Error()}
}

func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		msg := ve.Message
		if ve.InstanceLocation != "" {
			msg = ve.InstanceLocation + ": " + msg
		}
		return []string{msg}
	}
	var out []string
	for _, cause := range ve.Causes {
		out = append(out, leafMessages(cause)...)
	}
	return out
}
