package schemas

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return &Service{Repo: NewMemoryRepo()}
}

func TestCreateAssignsVersionOne(t *testing.T) {
	svc := newTestService()

	doc, err := svc.Create(context.Background(), json.RawMessage(`{"type":"object"}`))
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID)
	require.Equal(t, 1, doc.Version)
	require.False(t, doc.CreatedAt.IsZero())
	require.Equal(t, doc.CreatedAt, doc.UpdatedAt)
}

func TestCreateDuplicateContentConflicts(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), json.RawMessage(`{"a":1,"b":2}`))
	require.NoError(t, err)

	// Same content, different key order and formatting.
	_, err = svc.Create(context.Background(), json.RawMessage(`{ "b": 2, "a": 1 }`))
	require.ErrorIs(t, err, ErrConflictingSchema)

	docs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1, "store size must grow by exactly 1, not 2")
}

func TestUpdateNoOpRejected(t *testing.T) {
	svc := newTestService()

	doc, err := svc.Create(context.Background(), json.RawMessage(`{"a":1}`))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), doc.ID, json.RawMessage(`{"a": 1}`))
	require.ErrorIs(t, err, ErrNothingToUpdate)

	got, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Version, "version must not change on a rejected update")
}

func TestUpdateBumpsVersionAndPersists(t *testing.T) {
	svc := newTestService()

	doc, err := svc.Create(context.Background(), json.RawMessage(`{"a":1}`))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), doc.ID, json.RawMessage(`{"a":2}`))
	require.NoError(t, err)
	require.Equal(t, 2, updated.Version)
	require.Equal(t, doc.ID, updated.ID)

	got, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Version)
	require.JSONEq(t, `{"a":2}`, string(got.Schema))
}

func TestUpdateConflictsWithOtherDocument(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), json.RawMessage(`{"a":1}`))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), json.RawMessage(`{"a":2}`))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), second.ID, json.RawMessage(`{"a":1}`))
	require.ErrorIs(t, err, ErrConflictingSchema)

	got, err := svc.Get(context.Background(), second.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Version)
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newTestService()

	_, err := svc.Update(context.Background(), "nonexistent_id", json.RawMessage(`{"a":1}`))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReturnsDocumentOrNotFound(t *testing.T) {
	svc := newTestService()

	doc, err := svc.Create(context.Background(), json.RawMessage(`{"a":1}`))
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, doc.ID, deleted.ID)

	_, err = svc.Delete(context.Background(), doc.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSkills(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		want    []string
		wantErr error
	}{
		{
			name:   "non-empty skills returned verbatim",
			schema: `{"skills":["go","sql"]}`,
			want:   []string{`"go"`, `"sql"`},
		},
		{
			name:    "empty skills",
			schema:  `{"skills":[]}`,
			wantErr: ErrSkillsNotFound,
		},
		{
			name:    "absent skills",
			schema:  `{"name":"John"}`,
			wantErr: ErrSkillsNotFound,
		},
		{
			name:    "skills not a sequence",
			schema:  `{"skills":"go"}`,
			wantErr: ErrSkillsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			doc, err := svc.Create(context.Background(), json.RawMessage(tt.schema))
			require.NoError(t, err)

			skills, err := svc.Skills(context.Background(), doc.ID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, skills, len(tt.want))
			for i, want := range tt.want {
				require.JSONEq(t, want, string(skills[i]))
			}
		})
	}
}

func TestSkillsUnknownID(t *testing.T) {
	svc := newTestService()

	_, err := svc.Skills(context.Background(), "nonexistent_id")
	require.ErrorIs(t, err, ErrNotFound)
}
