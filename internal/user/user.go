package user

import (
	"time"

	sectionDatamodel "github.com/frahmantamala/warehouse-productivity/internal/core/datamodel/section"
	userDatamodel "github.com/frahmantamala/warehouse-productivity/internal/core/datamodel/user"
)

// User is the profile shape exposed over the API.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	IsSuperuser  bool         `json:"is_superuser"`
	IsActive     bool         `json:"is_active"`
	Sections     []SectionRef `json:"sections"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// SectionRef is the compact section shape embedded in user payloads.
type SectionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsSuperuser:  u.IsSuperuser,
		IsActive:     u.IsActive,
		Sections:     sectionRefs(u.Sections),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}

func sectionRefs(sections []sectionDatamodel.Section) []SectionRef {
	refs := make([]SectionRef, len(sections))
	for i, s := range sections {
		refs[i] = SectionRef{ID: s.ID, Name: s.Name}
	}
	return refs
}
