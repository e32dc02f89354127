package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// FieldDefinition describes one custom field of a machine template schema
type FieldDefinition struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// MachineTemplate is an admin-defined schema for a machine type's custom
// field set, used to render and validate Offer.CustomFields.
type MachineTemplate struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	Description      null.String       `json:"description,omitempty"`
	FieldDefinitions []FieldDefinition `json:"fieldDefinitions"`
	IsActive         bool              `json:"isActive"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// MissingRequiredFields returns the names of required fields absent from
// the given custom field values.
func (t *MachineTemplate) MissingRequiredFields(values map[string]interface{}) []string {
	var missing []string
	for _, def := range t.FieldDefinitions {
		if !def.Required {
			continue
		}
		v, ok := values[def.Name]
		if !ok || v == nil || v == "" {
			missing = append(missing, def.Name)
		}
	}
	return missing
}

// CreateMachineTemplateInput represents input for creating a template
type CreateMachineTemplateInput struct {
	Name             string            `json:"name" binding:"required"`
	Description      string            `json:"description"`
	FieldDefinitions []FieldDefinition `json:"fieldDefinitions" binding:"required"`
	IsActive         *bool             `json:"isActive"`
}

// UpdateMachineTemplateInput represents input for template mutation
type UpdateMachineTemplateInput struct {
	Name             *string           `json:"name"`
	Description      *string           `json:"description"`
	FieldDefinitions []FieldDefinition `json:"fieldDefinitions"`
	IsActive         *bool             `json:"isActive"`
}
