package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admitportal-backend/internal/shared/server/middleware"
	"admitportal-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.create)
	rg.GET("/applications/my", h.listMine)
	rg.GET("/applications", middleware.RequireAdmin(), h.listAll)
	rg.GET("/applications/:id", h.get)
	rg.PUT("/applications/:id/status", middleware.RequireAdmin(), h.updateStatus)
	rg.PUT("/applications/:id/pay", h.payFee)
	rg.PUT("/applications/:id/withdraw", h.withdraw)
}

type createRequest struct {
	UniversityID    string           `json:"universityId"`
	ProgramID       string           `json:"programId"`
	PersonalDetails *PersonalDetails `json:"personalDetails"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	detail, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		UniversityID:    req.UniversityID,
		ProgramID:       req.ProgramID,
		PersonalDetails: req.PersonalDetails,
	})
	if err != nil {
		h.writeError(c, err, "failed to create application")
		return
	}

	c.Set("applicationId", detail.ID)
	respond.Created(c, toResponse(detail))
}

func (h *Handler) listMine(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	details, err := h.Svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(details))
}

func (h *Handler) listAll(c *gin.Context) {
	details, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(details))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	isAdmin := middleware.UserRoleFromContext(c) == middleware.RoleAdmin

	detail, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"), userID, isAdmin)
	if err != nil {
		h.writeError(c, err, "failed to load application")
		return
	}

	c.Set("applicationId", detail.ID)
	respond.JSON(c, http.StatusOK, toResponse(detail))
}

type statusUpdateRequest struct {
	Status           *string           `json:"status"`
	AdminComments    *string           `json:"adminComments"`
	DocumentStatuses *DocumentStatuses `json:"documentStatuses"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	detail, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), StatusUpdate{
		Status:           req.Status,
		AdminComments:    req.AdminComments,
		DocumentStatuses: req.DocumentStatuses,
	})
	if err != nil {
		h.writeError(c, err, "failed to update application")
		return
	}

	c.Set("applicationId", detail.ID)
	c.Set("statusTransition", detail.Status)
	respond.JSON(c, http.StatusOK, toResponse(detail))
}

func (h *Handler) payFee(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	detail, err := h.Svc.PayFee(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.writeError(c, err, "failed to pay fee")
		return
	}

	c.Set("applicationId", detail.ID)
	c.Set("statusTransition", StatusSubmitted)
	respond.JSON(c, http.StatusOK, toResponse(detail))
}

func (h *Handler) withdraw(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	applicationID := c.Param("id")

	if err := h.Svc.Withdraw(c.Request.Context(), applicationID, userID); err != nil {
		h.writeError(c, err, "failed to withdraw application")
		return
	}

	c.Set("applicationId", applicationID)
	respond.JSON(c, http.StatusOK, gin.H{"id": applicationID, "withdrawn": true})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	case errors.Is(err, ErrNotOwner):
		respond.Error(c, http.StatusForbidden, "forbidden", "application belongs to another user", nil)
	case errors.Is(err, ErrDuplicate):
		respond.Error(c, http.StatusConflict, "conflict", "an application for this program already exists", nil)
	case errors.Is(err, ErrFeeAlreadyPaid):
		respond.Error(c, http.StatusConflict, "conflict", "fee already paid", nil)
	case errors.Is(err, ErrNotWithdrawable):
		respond.Error(c, http.StatusConflict, "conflict", "paid or rejected applications cannot be withdrawn", nil)
	case errors.Is(err, ErrDraftFeePaid):
		respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, ErrProgramNotFound), errors.Is(err, ErrProgramMismatch):
		respond.Error(c, http.StatusUnprocessableEntity, "referential_error", err.Error(), nil)
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidDocStatus):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrPaymentFailed):
		respond.Error(c, http.StatusBadGateway, "internal_error", "payment could not be completed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
