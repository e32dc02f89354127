package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/infrastructure/models"
	"ykri.backend/pkg/utils"
)

// MachineTemplateRepository implements machine template data operations
type MachineTemplateRepository struct {
	db *gorm.DB
}

// NewMachineTemplateRepository creates a new machine template repository
func NewMachineTemplateRepository(db *gorm.DB) *MachineTemplateRepository {
	return &MachineTemplateRepository{db: db}
}

func (r *MachineTemplateRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new template
func (r *MachineTemplateRepository) Create(ctx context.Context, template *entities.MachineTemplate) error {
	if template.ID == uuid.Nil {
		template.ID = utils.GenerateUUIDv7()
	}
	m, err := machineTemplateToModel(template)
	if err != nil {
		return err
	}
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	template.ID = m.ID
	template.CreatedAt = m.CreatedAt
	template.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a template by ID
func (r *MachineTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MachineTemplate, error) {
	var m models.MachineTemplate
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return machineTemplateToEntity(&m)
}

// GetByName gets a template by its unique name
func (r *MachineTemplateRepository) GetByName(ctx context.Context, name string) (*entities.MachineTemplate, error) {
	var m models.MachineTemplate
	if err := r.conn(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return machineTemplateToEntity(&m)
}

// List lists templates by name
func (r *MachineTemplateRepository) List(ctx context.Context, activeOnly bool) ([]*entities.MachineTemplate, error) {
	var templateModels []models.MachineTemplate
	query := r.conn(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]*entities.MachineTemplate, 0, len(templateModels))
	for i := range templateModels {
		template, err := machineTemplateToEntity(&templateModels[i])
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, nil
}

// Update updates a template
func (r *MachineTemplateRepository) Update(ctx context.Context, template *entities.MachineTemplate) error {
	raw, err := json.Marshal(template.FieldDefinitions)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"name":              template.Name,
		"field_definitions": string(raw),
		"is_active":         template.IsActive,
		"updated_at":        time.Now(),
	}
	if template.Description.Valid {
		updates["description"] = template.Description.String
	}

	result := r.conn(ctx).Model(&models.MachineTemplate{}).Where("id = ?", template.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete hard deletes a template
func (r *MachineTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.MachineTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func machineTemplateToModel(t *entities.MachineTemplate) (*models.MachineTemplate, error) {
	raw, err := json.Marshal(t.FieldDefinitions)
	if err != nil {
		return nil, err
	}
	m := &models.MachineTemplate{
		ID:               t.ID,
		Name:             t.Name,
		FieldDefinitions: string(raw),
		IsActive:         t.IsActive,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.Description.Valid {
		m.Description = &t.Description.String
	}
	return m, nil
}

func machineTemplateToEntity(m *models.MachineTemplate) (*entities.MachineTemplate, error) {
	t := &entities.MachineTemplate{
		ID:          m.ID,
		Name:        m.Name,
		Description: null.StringFromPtr(m.Description),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.FieldDefinitions != "" {
		if err := json.Unmarshal([]byte(m.FieldDefinitions), &t.FieldDefinitions); err != nil {
			return nil, err
		}
	}
	return t, nil
}
