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

// DemandHandler handles demand endpoints
type DemandHandler struct {
	demandUsecase   *usecases.DemandUsecase
	contractUsecase *usecases.ContractUsecase
}

// NewDemandHandler creates a new demand handler
func NewDemandHandler(demandUsecase *usecases.DemandUsecase, contractUsecase *usecases.ContractUsecase) *DemandHandler {
	return &DemandHandler{
		demandUsecase:   demandUsecase,
		contractUsecase: contractUsecase,
	}
}

// Create creates a demand for the authenticated farmer
// POST /api/v1/demands
func (h *DemandHandler) Create(c *gin.Context) {
	farmerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateDemandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	demand, err := h.demandUsecase.Create(c.Request.Context(), farmerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, demand)
}

// List returns demands
// GET /api/v1/demands?farmerId=&status=
func (h *DemandHandler) List(c *gin.Context) {
	var filter entities.DemandFilter
	if v := c.Query("farmerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid farmerId"))
			return
		}
		filter.FarmerID = &id
	}
	if v := c.Query("status"); v != "" {
		status := entities.NormalizeDemandStatus(v)
		filter.Status = &status
	}

	demands, err := h.demandUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, demands)
}

// Get returns one demand
// GET /api/v1/demands/:id
func (h *DemandHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid demand id"))
		return
	}

	demand, err := h.demandUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, demand)
}

// Update mutates a demand
// PATCH /api/v1/demands/:id
func (h *DemandHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid demand id"))
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	var input entities.UpdateDemandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	demand, err := h.demandUsecase.Update(c.Request.Context(), actorID, actorRole, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, demand)
}

// Delete removes a demand
// DELETE /api/v1/demands/:id
func (h *DemandHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid demand id"))
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	if err := h.demandUsecase.Delete(c.Request.Context(), actorID, actorRole, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "demand deleted"})
}

// Contract returns the plain-text service agreement for a matched demand
// GET /api/v1/demands/:id/contract
func (h *DemandHandler) Contract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid demand id"))
		return
	}

	contract, err := h.contractUsecase.DemandContract(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="contrat-demande-`+id.String()+`.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(contract))
}
