package uploads

import (
	"context"
	"encoding/json"

	"parser-backend/internal/ai"
	"parser-backend/internal/schemas"
)

// File is one uploaded file's name and raw bytes.
type File struct {
	Name string
	Data []byte
}

// Extractor pulls plain text out of an uploaded file's bytes.
type Extractor interface {
	Text(ctx context.Context, data []byte, fileName string) (string, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, data []byte, fileName string) (string, error)

// Text calls f.
func (f ExtractorFunc) Text(ctx context.Context, data []byte, fileName string) (string, error) {
	return f(ctx, data, fileName)
}

// SchemaCreator persists one structured object as a new schema document.
type SchemaCreator interface {
	Create(ctx context.Context, schema json.RawMessage) (schemas.SchemaDocument, error)
}

// Service runs the upload pipeline: extract text, call the AI microservice,
// persist the structured result. Files are processed strictly in input order.
type Service struct {
	Extractor Extractor
	AI        ai.Client
	Schemas   SchemaCreator
}

// HandleUpload processes the files in two phases. Phase one extracts text
// and calls the AI client per file; any failure aborts the whole call before
// anything is persisted. Phase two creates one schema document per result;
// a failure aborts and propagates, but documents created earlier in the same
// call stay persisted.
func (s *Service) HandleUpload(ctx context.Context, files []File) ([]schemas.SchemaDocument, error) {
	created := make([]schemas.SchemaDocument, 0, len(files))
	if len(files) == 0 {
		return created, nil
	}

	pending := make([]json.RawMessage, 0, len(files))
	for _, file := range files {
		text, err := s.Extractor.Text(ctx, file.Data, file.Name)
		if err != nil {
			return nil, err
		}
		structured, err := s.AI.ExtractCV(ctx, text)
		if err != nil {
			return nil, err
		}
		pending = append(pending, structured)
	}

	for _, schema := range pending {
		doc, err := s.Schemas.Create(ctx, schema)
		if err != nil {
			return nil, err
		}
		created = append(created, doc)
	}
	return created, nil
}
