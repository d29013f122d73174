package uploads

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"parser-backend/internal/schemas"
)

type fakeExtractor struct {
	calls []string
	err   error
}

func (f *fakeExtractor) Text(ctx context.Context, data []byte, fileName string) (string, error) {
	f.calls = append(f.calls, fileName)
	if f.err != nil {
		return "", f.err
	}
	return "text of " + fileName, nil
}

type fakeAI struct {
	calls []string
	err   error
}

func (f *fakeAI) ExtractCV(ctx context.Context, text string) (json.RawMessage, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(fmt.Sprintf(`{"source":%q}`, text)), nil
}

type fakeCreator struct {
	created []json.RawMessage
	failAt  int // 1-based call index that fails, 0 for never
}

func (f *fakeCreator) Create(ctx context.Context, schema json.RawMessage) (schemas.SchemaDocument, error) {
	if f.failAt > 0 && len(f.created)+1 == f.failAt {
		return schemas.SchemaDocument{}, schemas.ErrConflictingSchema
	}
	f.created = append(f.created, schema)
	return schemas.SchemaDocument{ID: fmt.Sprintf("id-%d", len(f.created)), Schema: schema, Version: 1}, nil
}

func TestHandleUploadEmptyInput(t *testing.T) {
	extractor := &fakeExtractor{}
	aiClient := &fakeAI{}
	creator := &fakeCreator{}
	svc := &Service{Extractor: extractor, AI: aiClient, Schemas: creator}

	docs, err := svc.HandleUpload(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, docs)
	require.Empty(t, extractor.calls)
	require.Empty(t, aiClient.calls)
	require.Empty(t, creator.created)
}

func TestHandleUploadPreservesOrder(t *testing.T) {
	extractor := &fakeExtractor{}
	aiClient := &fakeAI{}
	creator := &fakeCreator{}
	svc := &Service{Extractor: extractor, AI: aiClient, Schemas: creator}

	docs, err := svc.HandleUpload(context.Background(), []File{
		{Name: "first.pdf", Data: []byte("a")},
		{Name: "second.pdf", Data: []byte("b")},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, []string{"first.pdf", "second.pdf"}, extractor.calls)
	require.Equal(t, []string{"text of first.pdf", "text of second.pdf"}, aiClient.calls)
	require.JSONEq(t, `{"source":"text of first.pdf"}`, string(docs[0].Schema))
	require.JSONEq(t, `{"source":"text of second.pdf"}`, string(docs[1].Schema))
}

func TestHandleUploadExtractFailureAbortsBeforeAI(t *testing.T) {
	wantErr := fmt.Errorf("bad pdf")
	extractor := &fakeExtractor{err: wantErr}
	aiClient := &fakeAI{}
	creator := &fakeCreator{}
	svc := &Service{Extractor: extractor, AI: aiClient, Schemas: creator}

	_, err := svc.HandleUpload(context.Background(), []File{{Name: "broken.pdf"}})
	require.ErrorIs(t, err, wantErr)
	require.Empty(t, aiClient.calls, "AI client must not be invoked after extract failure")
	require.Empty(t, creator.created, "store must not be invoked after extract failure")
}

func TestHandleUploadAIFailureAbortsBeforeStore(t *testing.T) {
	wantErr := fmt.Errorf("ai down")
	extractor := &fakeExtractor{}
	aiClient := &fakeAI{err: wantErr}
	creator := &fakeCreator{}
	svc := &Service{Extractor: extractor, AI: aiClient, Schemas: creator}

	_, err := svc.HandleUpload(context.Background(), []File{{Name: "cv.pdf"}})
	require.ErrorIs(t, err, wantErr)
	require.Empty(t, creator.created)
}

func TestHandleUploadStoreFailureKeepsEarlierDocuments(t *testing.T) {
	extractor := &fakeExtractor{}
	aiClient := &fakeAI{}
	creator := &fakeCreator{failAt: 2}
	svc := &Service{Extractor: extractor, AI: aiClient, Schemas: creator}

	_, err := svc.HandleUpload(context.Background(), []File{
		{Name: "first.pdf"},
		{Name: "second.pdf"},
	})
	require.ErrorIs(t, err, schemas.ErrConflictingSchema)
	// Phase one ran for both files, phase two persisted only the first.
	require.Len(t, extractor.calls, 2)
	require.Len(t, aiClient.calls, 2)
	require.Len(t, creator.created, 1)
}
