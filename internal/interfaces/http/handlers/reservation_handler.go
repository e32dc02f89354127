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

// ReservationHandler handles reservation endpoints
type ReservationHandler struct {
	reservationUsecase *usecases.ReservationUsecase
	contractUsecase    *usecases.ContractUsecase
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationUsecase *usecases.ReservationUsecase, contractUsecase *usecases.ContractUsecase) *ReservationHandler {
	return &ReservationHandler{
		reservationUsecase: reservationUsecase,
		contractUsecase:    contractUsecase,
	}
}

// Create books an offer for the authenticated farmer
// POST /api/v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	farmerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	reservation, err := h.reservationUsecase.Create(c.Request.Context(), farmerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, reservation)
}

// List returns reservations
// GET /api/v1/reservations?farmerId=&providerId=&offerId=&status=
func (h *ReservationHandler) List(c *gin.Context) {
	var filter entities.ReservationFilter
	if v := c.Query("farmerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid farmerId"))
			return
		}
		filter.FarmerID = &id
	}
	if v := c.Query("providerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid providerId"))
			return
		}
		filter.ProviderID = &id
	}
	if v := c.Query("offerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid offerId"))
			return
		}
		filter.OfferID = &id
	}
	if v := c.Query("status"); v != "" {
		status := entities.ReservationStatus(v)
		filter.Status = &status
	}

	reservations, err := h.reservationUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reservations)
}

// Get returns one reservation
// GET /api/v1/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid reservation id"))
		return
	}

	reservation, err := h.reservationUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reservation)
}

// Transition advances the reservation state machine
// PATCH /api/v1/reservations/:id
func (h *ReservationHandler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid reservation id"))
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	reservation, err := h.reservationUsecase.Transition(c.Request.Context(), actorID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reservation)
}

// Contract downloads the PDF contract of an approved reservation
// GET /api/v1/reservations/:id/contract
func (h *ReservationHandler) Contract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid reservation id"))
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	pdf, err := h.contractUsecase.ReservationContractPDF(c.Request.Context(), actorID, actorRole, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="contrat-location-`+id.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
