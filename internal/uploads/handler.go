package uploads

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"parser-backend/internal/ai"
	"parser-backend/internal/extract"
	"parser-backend/internal/schemas"
	"parser-backend/internal/shared/server/respond"
)

const (
	maxUploadSize = 10 << 20 // 10MB per file
	mimePDF       = "application/pdf"
)

// Wire-level error names for the upload surface.
const (
	ErrorNameInvalidFileType = "INVALID_FILE_TYPE_ERROR"
	ErrorNameNoPDFUploaded   = "NO_PDF_FILE_WERE_UPLOADED"
	ErrorNamePDFParse        = "ERROR_PARSING_PDF_FILE"
	ErrorNameAIMicroservice  = "AI_MICROSERVICE_ERROR"
)

const defaultMaxFiles = 10

// Handler wires the PDF upload endpoints to the pipeline service.
type Handler struct {
	Svc      *Service
	MaxFiles int
}

// NewHandler constructs a Handler. maxFiles caps the parsePDFs batch size.
func NewHandler(svc *Service, maxFiles int) *Handler {
	if maxFiles <= 0 {
		maxFiles = defaultMaxFiles
	}
	return &Handler{Svc: svc, MaxFiles: maxFiles}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parsePDF", h.parsePDF)
	rg.POST("/parsePDFs", h.parsePDFs)
}

func (h *Handler) parsePDF(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusInternalServerError, respond.ErrorNameUnexpected, "File too large")
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorNameNoPDFUploaded, "No PDF files were uploaded")
		return
	}

	file, ok := h.readPDF(c, fileHeader)
	if !ok {
		return
	}

	docs, err := h.Svc.HandleUpload(c.Request.Context(), []File{file})
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	respond.OK(c, schemas.ToResponses(docs))
}

func (h *Handler) parsePDFs(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorNameNoPDFUploaded, "No PDF files were uploaded")
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		respond.Error(c, http.StatusBadRequest, ErrorNameNoPDFUploaded, "No PDF files were uploaded")
		return
	}
	if len(fileHeaders) > h.MaxFiles {
		respond.Error(c, http.StatusBadRequest, schemas.ErrorNameInvalidInput, "Too many files uploaded")
		return
	}

	files := make([]File, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		file, ok := h.readPDF(c, fileHeader)
		if !ok {
			return
		}
		files = append(files, file)
	}

	docs, err := h.Svc.HandleUpload(c.Request.Context(), files)
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	respond.OK(c, schemas.ToResponses(docs))
}

// readPDF validates mimetype and size before any parsing, then reads the
// file's bytes. The error response has been written when ok is false.
func (h *Handler) readPDF(c *gin.Context, fileHeader *multipart.FileHeader) (File, bool) {
	if ct := fileHeader.Header.Get("Content-Type"); ct != mimePDF {
		respond.Error(c, http.StatusBadRequest, ErrorNameInvalidFileType, "Only PDF files are allowed")
		return File{}, false
	}
	if fileHeader.Size > maxUploadSize {
		respond.Error(c, http.StatusInternalServerError, respond.ErrorNameUnexpected, "File too large")
		return File{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorNameNoPDFUploaded, "unable to read uploaded file")
		return File{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorNameNoPDFUploaded, "unable to read uploaded file")
		return File{}, false
	}
	return File{Name: fileHeader.Filename, Data: data}, true
}

func respondPipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, extract.ErrPDFParse):
		respond.Error(c, http.StatusInternalServerError, ErrorNamePDFParse, err.Error())
	case errors.Is(err, ai.ErrMicroservice):
		respond.Error(c, http.StatusInternalServerError, ErrorNameAIMicroservice, err.Error())
	case errors.Is(err, schemas.ErrConflictingSchema):
		respond.Error(c, http.StatusBadRequest, schemas.ErrorNameConflict, "Schema with the same content already exists")
	default:
		respond.Unexpected(c, err)
	}
}
