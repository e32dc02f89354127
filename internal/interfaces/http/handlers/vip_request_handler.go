package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/interfaces/http/middleware"
	"ykri.backend/internal/interfaces/http/response"
	"ykri.backend/internal/usecases"
)

// VIPRequestHandler handles the legacy role-upgrade endpoints
type VIPRequestHandler struct {
	vipUsecase *usecases.VIPRequestUsecase
}

// NewVIPRequestHandler creates a new VIP request handler
func NewVIPRequestHandler(vipUsecase *usecases.VIPRequestUsecase) *VIPRequestHandler {
	return &VIPRequestHandler{vipUsecase: vipUsecase}
}

// Create opens an upgrade request for the authenticated user
// POST /api/v1/vip-requests
func (h *VIPRequestHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	request, err := h.vipUsecase.Create(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, request)
}

// List returns upgrade requests (admin)
// GET /api/v1/vip-requests?userId=&status=
func (h *VIPRequestHandler) List(c *gin.Context) {
	var filter entities.VIPRequestFilter
	if v := c.Query("userId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid userId"))
			return
		}
		filter.UserID = &id
	}
	if v := c.Query("status"); v != "" {
		status := entities.VIPRequestStatus(v)
		filter.Status = &status
	}

	requests, err := h.vipUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, requests)
}

// Resolve approves or denies a pending request (admin)
// PATCH /api/v1/vip-requests/:id
func (h *VIPRequestHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request id"))
		return
	}

	var input entities.ResolveVIPRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("status is required"))
		return
	}

	request, err := h.vipUsecase.Resolve(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, request)
}
