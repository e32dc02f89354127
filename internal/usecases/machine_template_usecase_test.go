package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/usecases"
)

func TestMachineTemplateUsecase_Create_Success(t *testing.T) {
	templateRepo := new(MockMachineTemplateRepository)
	uc := usecases.NewMachineTemplateUsecase(templateRepo)

	templateRepo.On("GetByName", context.Background(), "Tracteur").Return(nil, domainerrors.ErrNotFound).Once()
	templateRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.MachineTemplate")).Return(nil).Once()

	template, err := uc.Create(context.Background(), &entities.CreateMachineTemplateInput{
		Name: "Tracteur",
		FieldDefinitions: []entities.FieldDefinition{
			{Name: "horsepower", Label: "Puissance", Type: "number", Required: true},
		},
	})
	assert.NoError(t, err)
	assert.True(t, template.IsActive)
}

func TestMachineTemplateUsecase_Create_DuplicateName(t *testing.T) {
	templateRepo := new(MockMachineTemplateRepository)
	uc := usecases.NewMachineTemplateUsecase(templateRepo)

	templateRepo.On("GetByName", context.Background(), "Tracteur").Return(&entities.MachineTemplate{ID: uuid.New()}, nil).Once()

	_, err := uc.Create(context.Background(), &entities.CreateMachineTemplateInput{
		Name: "Tracteur",
		FieldDefinitions: []entities.FieldDefinition{
			{Name: "horsepower", Type: "number"},
		},
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestMachineTemplateUsecase_Create_FieldDefinitionsRequired(t *testing.T) {
	uc := usecases.NewMachineTemplateUsecase(new(MockMachineTemplateRepository))

	_, err := uc.Create(context.Background(), &entities.CreateMachineTemplateInput{Name: "Tracteur"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestMachineTemplateUsecase_Update_RenameConflict(t *testing.T) {
	templateRepo := new(MockMachineTemplateRepository)
	uc := usecases.NewMachineTemplateUsecase(templateRepo)

	templateID := uuid.New()
	templateRepo.On("GetByID", context.Background(), templateID).Return(&entities.MachineTemplate{
		ID:   templateID,
		Name: "Tracteur",
	}, nil).Once()
	templateRepo.On("GetByName", context.Background(), "Moissonneuse").Return(&entities.MachineTemplate{ID: uuid.New()}, nil).Once()

	name := "Moissonneuse"
	_, err := uc.Update(context.Background(), templateID, &entities.UpdateMachineTemplateInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestMachineTemplateUsecase_Update_Deactivate(t *testing.T) {
	templateRepo := new(MockMachineTemplateRepository)
	uc := usecases.NewMachineTemplateUsecase(templateRepo)

	templateID := uuid.New()
	templateRepo.On("GetByID", context.Background(), templateID).Return(&entities.MachineTemplate{
		ID:       templateID,
		Name:     "Tracteur",
		IsActive: true,
	}, nil).Once()
	templateRepo.On("Update", context.Background(), mock.AnythingOfType("*entities.MachineTemplate")).Return(nil).Once()

	active := false
	updated, err := uc.Update(context.Background(), templateID, &entities.UpdateMachineTemplateInput{IsActive: &active})
	assert.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestMachineTemplate_MissingRequiredFields(t *testing.T) {
	template := &entities.MachineTemplate{
		FieldDefinitions: []entities.FieldDefinition{
			{Name: "horsepower", Required: true},
			{Name: "width", Required: true},
			{Name: "color", Required: false},
		},
	}

	missing := template.MissingRequiredFields(map[string]interface{}{
		"horsepower": 120,
		"width":      "",
	})
	assert.Equal(t, []string{"width"}, missing)

	missing = template.MissingRequiredFields(nil)
	assert.Equal(t, []string{"horsepower", "width"}, missing)
}
