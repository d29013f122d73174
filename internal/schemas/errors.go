package schemas

import "errors"

var (
	ErrNotFound          = errors.New("schema not found")
	ErrConflictingSchema = errors.New("conflicting schema")
	ErrNothingToUpdate   = errors.New("nothing to be updated")
	ErrSkillsNotFound    = errors.New("skills not found")
)

// Wire-level error names for the schema CRUD surface.
const (
	ErrorNameInvalidInput    = "INVALID_INPUT_ERROR"
	ErrorNameConflict        = "CONFLICTING_SCHEMA"
	ErrorNameNothingToUpdate = "NOTHING_TOBE_UPDATED"
	ErrorNameNotFound        = "SCHEMA_NOT_FOUND"
	ErrorNameSkillsNotFound  = "SKILLS_NOT_FOUND"
)
