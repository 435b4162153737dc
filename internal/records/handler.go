package records

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admitportal-backend/internal/shared/server/middleware"
	"admitportal-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches academic record routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/academic-records", h.listMine)
	rg.POST("/academic-records", h.upload)
	rg.POST("/academic-records/:id/verification", h.applyVerification)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	recordType := c.PostForm("type")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	rec, err := h.Svc.UploadOrReplace(c.Request.Context(), userID, recordType, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidType):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid document type", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotStudent):
			respond.Error(c, http.StatusForbidden, "forbidden", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload record", nil)
		}
		return
	}

	c.Set("recordId", rec.ID)
	respond.Created(c, ToResponse(rec))
}

func (h *Handler) listMine(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	recs, err := h.Svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list records", nil)
		return
	}

	resp := make([]RecordResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, ToResponse(rec))
	}
	respond.JSON(c, http.StatusOK, resp)
}

// applyVerification accepts the payload produced by the external extraction
// service. Exposed to admins and the internal worker only.
func (h *Handler) applyVerification(c *gin.Context) {
	if middleware.UserRoleFromContext(c) != middleware.RoleAdmin {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
		return
	}

	recordID := c.Param("id")
	if recordID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "record id is required", nil)
		return
	}

	var payload AIPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rec, err := h.Svc.ApplyVerificationResult(c.Request.Context(), recordID, payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "academic record not found", nil)
		case errors.Is(err, ErrInvalidPayload):
			respond.Error(c, http.StatusBadRequest, "validation_error", "confidence score must be between 0 and 100", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to apply verification", nil)
		}
		return
	}

	c.Set("recordId", rec.ID)
	respond.JSON(c, http.StatusOK, ToResponse(rec))
}
