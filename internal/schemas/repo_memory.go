package schemas

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used in dev and tests.
// The mutex is held across check-then-write so concurrent creates with
// identical content cannot both pass the uniqueness check.
type MemoryRepo struct {
	mu    sync.RWMutex
	data  map[string]SchemaDocument
	order []string // insertion order for deterministic List
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]SchemaDocument),
	}
}

// Create inserts a new document, rejecting deep-equal schema content.
func (r *MemoryRepo) Create(ctx context.Context, doc SchemaDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if jsonEqual(r.data[id].Schema, doc.Schema) {
			return ErrConflictingSchema
		}
	}
	r.data[doc.ID] = doc
	r.order = append(r.order, doc.ID)
	return nil
}

// GetByID returns the document for an id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (SchemaDocument, error) {
	if err := ctx.Err(); err != nil {
		return SchemaDocument{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[id]
	if !ok {
		return SchemaDocument{}, ErrNotFound
	}
	return doc, nil
}

// FindBySchema returns a document with deep-equal schema content, skipping excludeID.
func (r *MemoryRepo) FindBySchema(ctx context.Context, schema json.RawMessage, excludeID string) (SchemaDocument, error) {
	if err := ctx.Err(); err != nil {
		return SchemaDocument{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if id == excludeID {
			continue
		}
		if jsonEqual(r.data[id].Schema, schema) {
			return r.data[id], nil
		}
	}
	return SchemaDocument{}, ErrNotFound
}

// Update replaces a stored document.
func (r *MemoryRepo) Update(ctx context.Context, doc SchemaDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[doc.ID]; !ok {
		return ErrNotFound
	}
	for _, id := range r.order {
		if id != doc.ID && jsonEqual(r.data[id].Schema, doc.Schema) {
			return ErrConflictingSchema
		}
	}
	r.data[doc.ID] = doc
	return nil
}

// Delete removes and returns a document.
func (r *MemoryRepo) Delete(ctx context.Context, id string) (SchemaDocument, error) {
	if err := ctx.Err(); err != nil {
		return SchemaDocument{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[id]
	if !ok {
		return SchemaDocument{}, ErrNotFound
	}
	delete(r.data, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return doc, nil
}

// List returns every stored document in insertion order.
func (r *MemoryRepo) List(ctx context.Context) ([]SchemaDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SchemaDocument, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.data[id])
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
