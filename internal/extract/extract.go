package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// ErrPDFParse marks failures to parse uploaded bytes as a PDF. The wrapped
// message carries the originating file name.
var ErrPDFParse = errors.New("error parsing pdf file")

// Text extracts plain text from a PDF payload using github.com/ledongthuc/pdf.
func Text(ctx context.Context, data []byte, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w %s: empty file", ErrPDFParse, fileName)
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrPDFParse, fileName, err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrPDFParse, fileName, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrPDFParse, fileName, err)
	}
	return buf.String(), nil
}
