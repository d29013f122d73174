package schemas

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo on Postgres. Schema content lives in a jsonb
// column; jsonb equality is structural, so conflict lookups are key-order
// independent. A unique index on md5(schema::text) backs up the
// check-then-write sequence against concurrent creates.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc SchemaDocument) error {
	const query = `
INSERT INTO json_schemas (id, schema, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(ctx, query, doc.ID, []byte(doc.Schema), doc.Version, doc.CreatedAt, doc.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrConflictingSchema
	}
	return err
}

// GetByID fetches a document by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (SchemaDocument, error) {
	const query = `
SELECT id, schema, version, created_at, updated_at
FROM json_schemas
WHERE id = $1`

	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// FindBySchema returns a document with equal schema content, skipping excludeID.
// Stored ids are never empty, so an empty excludeID matches nothing.
func (r *PGRepo) FindBySchema(ctx context.Context, schema json.RawMessage, excludeID string) (SchemaDocument, error) {
	const query = `
SELECT id, schema, version, created_at, updated_at
FROM json_schemas
WHERE schema = $1::jsonb AND id <> $2
LIMIT 1`

	return r.scanOne(r.DB.QueryRowContext(ctx, query, []byte(schema), excludeID))
}

// Update replaces schema content, version and updated_at for a document.
func (r *PGRepo) Update(ctx context.Context, doc SchemaDocument) error {
	const query = `
UPDATE json_schemas
SET schema = $1, version = $2, updated_at = $3
WHERE id = $4`

	res, err := r.DB.ExecContext(ctx, query, []byte(doc.Schema), doc.Version, doc.UpdatedAt, doc.ID)
	if isUniqueViolation(err) {
		return ErrConflictingSchema
	}
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes and returns a document.
func (r *PGRepo) Delete(ctx context.Context, id string) (SchemaDocument, error) {
	const query = `
DELETE FROM json_schemas
WHERE id = $1
RETURNING id, schema, version, created_at, updated_at`

	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// List returns every stored document, oldest first.
func (r *PGRepo) List(ctx context.Context) ([]SchemaDocument, error) {
	const query = `
SELECT id, schema, version, created_at, updated_at
FROM json_schemas
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SchemaDocument, 0)
	for rows.Next() {
		var doc SchemaDocument
		var raw []byte
		if err := rows.Scan(&doc.ID, &raw, &doc.Version, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, err
		}
		doc.Schema = json.RawMessage(raw)
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanOne(row *sql.Row) (SchemaDocument, error) {
	var doc SchemaDocument
	var raw []byte
	err := row.Scan(&doc.ID, &raw, &doc.Version, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SchemaDocument{}, ErrNotFound
		}
		return SchemaDocument{}, err
	}
	doc.Schema = json.RawMessage(raw)
	return doc, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

var _ Repo = (*PGRepo)(nil)
