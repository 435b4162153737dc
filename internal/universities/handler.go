package universities

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admitportal-backend/internal/shared/server/respond"
)

// Handler exposes the university/program catalog.
type Handler struct {
	Repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/universities", h.list)
	rg.GET("/universities/:id", h.get)
	rg.GET("/programs", h.listPrograms)
}

func (h *Handler) list(c *gin.Context) {
	universities, err := h.Repo.ListUniversities(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list universities", nil)
		return
	}
	if universities == nil {
		universities = []University{}
	}
	respond.JSON(c, http.StatusOK, universities)
}

func (h *Handler) get(c *gin.Context) {
	universityID := c.Param("id")
	if universityID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "university id is required", nil)
		return
	}
	university, err := h.Repo.GetUniversity(c.Request.Context(), universityID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "university not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch university", nil)
		return
	}
	respond.JSON(c, http.StatusOK, university)
}

func (h *Handler) listPrograms(c *gin.Context) {
	programs, err := h.Repo.ListPrograms(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list programs", nil)
		return
	}
	if programs == nil {
		programs = []Program{}
	}
	respond.JSON(c, http.StatusOK, programs)
}
