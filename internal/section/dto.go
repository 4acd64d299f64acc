package section

import (
	errors "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/core/common/validation"
)

// SectionInput is the request payload for creating or updating a section.
type SectionInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d SectionInput) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	return v.Validate()
}
