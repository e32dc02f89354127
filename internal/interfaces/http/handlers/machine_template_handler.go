package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/interfaces/http/response"
	"ykri.backend/internal/usecases"
)

// MachineTemplateHandler handles admin machine template endpoints
type MachineTemplateHandler struct {
	templateUsecase *usecases.MachineTemplateUsecase
}

// NewMachineTemplateHandler creates a new machine template handler
func NewMachineTemplateHandler(templateUsecase *usecases.MachineTemplateUsecase) *MachineTemplateHandler {
	return &MachineTemplateHandler{templateUsecase: templateUsecase}
}

// Create creates a template
// POST /api/v1/machine-templates
func (h *MachineTemplateHandler) Create(c *gin.Context) {
	var input entities.CreateMachineTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	template, err := h.templateUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, template)
}

// List returns templates
// GET /api/v1/machine-templates?active=true
func (h *MachineTemplateHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	templates, err := h.templateUsecase.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, templates)
}

// Get returns one template
// GET /api/v1/machine-templates/:id
func (h *MachineTemplateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid template id"))
		return
	}

	template, err := h.templateUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, template)
}

// Update mutates a template
// PATCH /api/v1/machine-templates/:id
func (h *MachineTemplateHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid template id"))
		return
	}

	var input entities.UpdateMachineTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	template, err := h.templateUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, template)
}

// Delete removes a template
// DELETE /api/v1/machine-templates/:id
func (h *MachineTemplateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid template id"))
		return
	}

	if err := h.templateUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "template deleted"})
}
