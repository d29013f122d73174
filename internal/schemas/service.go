package schemas

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service contains the business rules for JSON schema documents: value-level
// uniqueness of schema content, no-op update rejection and version bumping.
type Service struct {
	Repo Repo
}

// Create stores a new schema document. Fails with ErrConflictingSchema when
// any existing document holds deep-equal schema content.
func (s *Service) Create(ctx context.Context, schema json.RawMessage) (SchemaDocument, error) {
	if _, err := s.Repo.FindBySchema(ctx, schema, ""); err == nil {
		return SchemaDocument{}, ErrConflictingSchema
	} else if !errors.Is(err, ErrNotFound) {
		return SchemaDocument{}, err
	}

	now := time.Now().UTC()
	doc := SchemaDocument{
		ID:        uuid.NewString(),
		Schema:    schema,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return SchemaDocument{}, err
	}
	return doc, nil
}

// Get returns the document for an id, ErrNotFound when missing.
func (s *Service) Get(ctx context.Context, id string) (SchemaDocument, error) {
	return s.Repo.GetByID(ctx, id)
}

// Update replaces schema content and bumps the version. A payload deep-equal
// to the stored content fails with ErrNothingToUpdate; content already held
// by another document fails with ErrConflictingSchema. Version never changes
// on a rejected update.
func (s *Service) Update(ctx context.Context, id string, schema json.RawMessage) (SchemaDocument, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return SchemaDocument{}, err
	}
	if jsonEqual(doc.Schema, schema) {
		return SchemaDocument{}, ErrNothingToUpdate
	}
	if _, err := s.Repo.FindBySchema(ctx, schema, id); err == nil {
		return SchemaDocument{}, ErrConflictingSchema
	} else if !errors.Is(err, ErrNotFound) {
		return SchemaDocument{}, err
	}

	doc.Schema = schema
	doc.Version++
	doc.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, doc); err != nil {
		return SchemaDocument{}, err
	}
	return doc, nil
}

// Delete removes and returns a document, ErrNotFound when the id is unknown.
func (s *Service) Delete(ctx context.Context, id string) (SchemaDocument, error) {
	return s.Repo.Delete(ctx, id)
}

// List returns every stored document.
func (s *Service) List(ctx context.Context) ([]SchemaDocument, error) {
	return s.Repo.List(ctx)
}

// Skills reads the skills field out of a stored schema. ErrNotFound for an
// unknown id, ErrSkillsNotFound when the field is absent, empty or not a
// sequence.
func (s *Service) Skills(ctx context.Context, id string) ([]json.RawMessage, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Skills []json.RawMessage `json:"skills"`
	}
	if err := json.Unmarshal(doc.Schema, &payload); err != nil {
		return nil, ErrSkillsNotFound
	}
	if len(payload.Skills) == 0 {
		return nil, ErrSkillsNotFound
	}
	return payload.Skills, nil
}
