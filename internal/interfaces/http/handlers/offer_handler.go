package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/interfaces/http/middleware"
	"ykri.backend/internal/interfaces/http/response"
	"ykri.backend/internal/usecases"
)

// OfferHandler handles offer endpoints
type OfferHandler struct {
	offerUsecase    *usecases.OfferUsecase
	contractUsecase *usecases.ContractUsecase
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerUsecase *usecases.OfferUsecase, contractUsecase *usecases.ContractUsecase) *OfferHandler {
	return &OfferHandler{
		offerUsecase:    offerUsecase,
		contractUsecase: contractUsecase,
	}
}

// Create creates an offer for the authenticated provider
// POST /api/v1/offers
func (h *OfferHandler) Create(c *gin.Context) {
	providerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	offer, err := h.offerUsecase.Create(c.Request.Context(), providerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, offer)
}

// List returns offers
// GET /api/v1/offers?providerId=&bookingStatus=
func (h *OfferHandler) List(c *gin.Context) {
	var filter entities.OfferFilter
	if v := c.Query("providerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid providerId"))
			return
		}
		filter.ProviderID = &id
	}
	if v := c.Query("bookingStatus"); v != "" {
		status := entities.BookingStatus(v)
		filter.BookingStatus = &status
	}

	offers, err := h.offerUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offers)
}

// Get returns one offer
// GET /api/v1/offers/:id
func (h *OfferHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid offer id"))
		return
	}

	offer, err := h.offerUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

// Update mutates an offer
// PATCH /api/v1/offers/:id
func (h *OfferHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid offer id"))
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	var input entities.UpdateOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	offer, err := h.offerUsecase.Update(c.Request.Context(), actorID, actorRole, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

// Delete removes an offer
// DELETE /api/v1/offers/:id
func (h *OfferHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid offer id"))
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	if err := h.offerUsecase.Delete(c.Request.Context(), actorID, actorRole, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "offer deleted"})
}

// Availability runs the advisory overlap check against approved
// reservations
// GET /api/v1/offers/:id/availability?start=&end=
func (h *OfferHandler) Availability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid offer id"))
		return
	}

	start, errStart := time.Parse(time.RFC3339, c.Query("start"))
	end, errEnd := time.Parse(time.RFC3339, c.Query("end"))
	if errStart != nil || errEnd != nil {
		response.Error(c, domainerrors.BadRequest("start and end must be RFC3339 timestamps"))
		return
	}

	result, err := h.offerUsecase.CheckAvailability(c.Request.Context(), id, entities.TimeSlot{Start: start, End: end})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Contract returns the plain-text rental terms of an offer
// GET /api/v1/offers/:id/contract
func (h *OfferHandler) Contract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid offer id"))
		return
	}

	contract, err := h.contractUsecase.OfferContract(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="conditions-offre-`+id.String()+`.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(contract))
}
