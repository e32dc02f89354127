package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/interfaces/http/middleware"
	"ykri.backend/internal/interfaces/http/response"
	"ykri.backend/internal/usecases"
	"ykri.backend/pkg/utils"
)

// UserHandler handles user directory and profile endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// List returns users, optionally filtered by role and approval status
// GET /api/v1/users?role=&approvalStatus=&page=&limit=
func (h *UserHandler) List(c *gin.Context) {
	var role *entities.UserRole
	if v := c.Query("role"); v != "" {
		r := entities.UserRole(v)
		role = &r
	}
	var approval *entities.ApprovalStatus
	if v := c.Query("approvalStatus"); v != "" {
		a := entities.ApprovalStatus(v)
		approval = &a
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	pagination := utils.GetPaginationParams(page, limit)

	users, err := h.userUsecase.List(c.Request.Context(), role, approval)
	if err != nil {
		response.Error(c, err)
		return
	}

	total := int64(len(users))
	if pagination.Limit > 0 {
		offset := pagination.CalculateOffset()
		if offset > len(users) {
			offset = len(users)
		}
		end := offset + pagination.Limit
		if end > len(users) {
			end = len(users)
		}
		users = users[offset:end]
	}
	response.Success(c, http.StatusOK, gin.H{
		"items": users,
		"meta":  utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// Get returns one user
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	user, err := h.userUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Search finds approved users by partial name
// GET /api/v1/users/search?q=&limit=
func (h *UserHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	users, err := h.userUsecase.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// Nearby returns approved users around a point
// GET /api/v1/users/nearby?lat=&lon=&radius=&role=
func (h *UserHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		response.Error(c, domainerrors.BadRequest("lat and lon are required"))
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "50"), 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid radius"))
		return
	}
	var role *entities.UserRole
	if v := c.Query("role"); v != "" {
		r := entities.UserRole(v)
		role = &r
	}

	users, err := h.userUsecase.FindNearby(c.Request.Context(), lat, lon, radius, role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// Update applies a profile update
// PATCH /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.userUsecase.Update(c.Request.Context(), actorID, targetID, actorRole, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Delete soft deletes a user account
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	if err := h.userUsecase.Delete(c.Request.Context(), actorID, targetID, actorRole); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "user deleted"})
}
