package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"parser-backend/internal/shared/server/respond"
)

// Handler wires the schema CRUD surface to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches schema CRUD routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.remove)
	rg.GET("/skills/:id", h.skills)
}

type schemaRequest struct {
	Schema json.RawMessage `json:"schema"`
}

func (h *Handler) create(c *gin.Context) {
	req, ok := bindSchemaBody(c)
	if !ok {
		return
	}

	doc, err := h.Svc.Create(c.Request.Context(), req.Schema)
	if err != nil {
		switch {
		case errors.Is(err, ErrConflictingSchema):
			respond.Error(c, http.StatusBadRequest, ErrorNameConflict, "Schema with the same content already exists")
		default:
			respond.Unexpected(c, err)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"message": MessageSchemaCreated, "data": ToResponse(doc)})
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Unexpected(c, err)
		return
	}
	respond.OK(c, ToResponses(docs))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorNameNotFound, notFoundDetails(id))
		default:
			respond.Unexpected(c, err)
		}
		return
	}
	respond.OK(c, ToResponse(doc))
}

func (h *Handler) update(c *gin.Context) {
	req, ok := bindSchemaBody(c)
	if !ok {
		return
	}

	id := c.Param("id")
	doc, err := h.Svc.Update(c.Request.Context(), id, req.Schema)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorNameNotFound, notFoundDetails(id))
		case errors.Is(err, ErrNothingToUpdate):
			respond.Error(c, http.StatusBadRequest, ErrorNameNothingToUpdate, "There is nothing to be updated (the same schema)")
		case errors.Is(err, ErrConflictingSchema):
			respond.Error(c, http.StatusBadRequest, ErrorNameConflict, "Updating the schema will cause a conflict with an existing schema with the same schema")
		default:
			respond.Unexpected(c, err)
		}
		return
	}

	respond.OK(c, gin.H{"message": MessageSchemaUpdated, "data": ToResponse(doc)})
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorNameNotFound, notFoundDetails(id))
		default:
			respond.Unexpected(c, err)
		}
		return
	}
	respond.OK(c, gin.H{"message": MessageSchemaDeleted})
}

func (h *Handler) skills(c *gin.Context) {
	id := c.Param("id")
	skills, err := h.Svc.Skills(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorNameNotFound, notFoundDetails(id))
		case errors.Is(err, ErrSkillsNotFound):
			respond.Error(c, http.StatusNotFound, ErrorNameSkillsNotFound, "Skills not found in the schema")
		default:
			respond.Unexpected(c, err)
		}
		return
	}
	respond.OK(c, gin.H{"skills": skills})
}

// bindSchemaBody validates the raw body against the body schema before
// decoding it; validation failures have already been written to the response
// when ok is false.
func bindSchemaBody(c *gin.Context) (schemaRequest, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorNameInvalidInput, "unable to read request body")
		return schemaRequest{}, false
	}
	if msgs := ValidateBody(body); len(msgs) != 0 {
		respond.Error(c, http.StatusBadRequest, ErrorNameInvalidInput, msgs)
		return schemaRequest{}, false
	}
	var req schemaRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorNameInvalidInput, "unable to decode request body")
		return schemaRequest{}, false
	}
	return req, true
}

func notFoundDetails(id string) string {
	return fmt.Sprintf("Schema not found for ID: %s", id)
}
