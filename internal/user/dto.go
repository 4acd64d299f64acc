package user

import (
	errors "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	"github.com/frahmantamala/warehouse-productivity/internal/core/common/validation"
)

// CreateUserDTO is the admin-facing payload for provisioning users.
type CreateUserDTO struct {
	Username   string  `json:"username"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	SectionIDs []int64 `json:"section_ids"`
}

func (d CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(150)
	v.Field("password", d.Password).Required()
	v.Field("role", d.Role).Required()
	if err := v.Validate(); err != nil {
		return err
	}

	switch d.Role {
	case auth.RoleAdmin, auth.RoleManager, auth.RoleLead, auth.RoleEmployee:
		return nil
	default:
		return errors.NewValidationFieldError("role", "role must be one of admin, manager, lead, employee", errors.ErrCodeValidationFailed)
	}
}
