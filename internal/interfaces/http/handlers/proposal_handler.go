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

// ProposalHandler handles proposal endpoints
type ProposalHandler struct {
	proposalUsecase *usecases.ProposalUsecase
}

// NewProposalHandler creates a new proposal handler
func NewProposalHandler(proposalUsecase *usecases.ProposalUsecase) *ProposalHandler {
	return &ProposalHandler{proposalUsecase: proposalUsecase}
}

// Create creates a bid by the authenticated provider
// POST /api/v1/proposals
func (h *ProposalHandler) Create(c *gin.Context) {
	providerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	proposal, err := h.proposalUsecase.Create(c.Request.Context(), providerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, proposal)
}

// List returns proposals
// GET /api/v1/proposals?demandId=&providerId=&status=
func (h *ProposalHandler) List(c *gin.Context) {
	var filter entities.ProposalFilter
	if v := c.Query("demandId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid demandId"))
			return
		}
		filter.DemandID = &id
	}
	if v := c.Query("providerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid providerId"))
			return
		}
		filter.ProviderID = &id
	}
	if v := c.Query("status"); v != "" {
		status := entities.ProposalStatus(v)
		filter.Status = &status
	}

	proposals, err := h.proposalUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, proposals)
}

// Get returns one proposal
// GET /api/v1/proposals/:id
func (h *ProposalHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid proposal id"))
		return
	}

	proposal, err := h.proposalUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, proposal)
}

// Decide accepts or rejects a pending proposal
// PATCH /api/v1/proposals/:id
func (h *ProposalHandler) Decide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid proposal id"))
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.DecideProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("action is required"))
		return
	}

	proposal, err := h.proposalUsecase.Decide(c.Request.Context(), actorID, id, input.Action)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, proposal)
}
