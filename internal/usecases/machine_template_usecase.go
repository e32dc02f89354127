package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/domain/repositories"
)

// MachineTemplateUsecase handles admin machine template management
type MachineTemplateUsecase struct {
	templateRepo repositories.MachineTemplateRepository
}

// NewMachineTemplateUsecase creates a new machine template usecase
func NewMachineTemplateUsecase(templateRepo repositories.MachineTemplateRepository) *MachineTemplateUsecase {
	return &MachineTemplateUsecase{templateRepo: templateRepo}
}

// Create creates a template. Names are unique; a duplicate returns a
// conflict.
func (u *MachineTemplateUsecase) Create(ctx context.Context, input *entities.CreateMachineTemplateInput) (*entities.MachineTemplate, error) {
	if len(input.FieldDefinitions) == 0 {
		return nil, domainerrors.BadRequest("at least one field definition is required")
	}

	_, err := u.templateRepo.GetByName(ctx, input.Name)
	if err == nil {
		return nil, domainerrors.Conflict("a template with this name already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	template := &entities.MachineTemplate{
		Name:             input.Name,
		Description:      null.NewString(input.Description, input.Description != ""),
		FieldDefinitions: input.FieldDefinitions,
		IsActive:         true,
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := u.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// GetByID returns a template by id
func (u *MachineTemplateUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.MachineTemplate, error) {
	return u.templateRepo.GetByID(ctx, id)
}

// List returns templates, optionally restricted to active ones
func (u *MachineTemplateUsecase) List(ctx context.Context, activeOnly bool) ([]*entities.MachineTemplate, error) {
	return u.templateRepo.List(ctx, activeOnly)
}

// Update applies a template update
func (u *MachineTemplateUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateMachineTemplateInput) (*entities.MachineTemplate, error) {
	template, err := u.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != template.Name {
		existing, err := u.templateRepo.GetByName(ctx, *input.Name)
		if err == nil && existing.ID != id {
			return nil, domainerrors.Conflict("a template with this name already exists")
		}
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		template.Name = *input.Name
	}
	if input.Description != nil {
		template.Description = null.NewString(*input.Description, *input.Description != "")
	}
	if input.FieldDefinitions != nil {
		template.FieldDefinitions = input.FieldDefinitions
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := u.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// Delete hard deletes a template. Deactivation via IsActive is the normal
// path; delete exists for admin cleanup.
func (u *MachineTemplateUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.templateRepo.Delete(ctx, id)
}
