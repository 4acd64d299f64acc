package user

import (
	"time"

	sectionDatamodel "github.com/frahmantamala/warehouse-productivity/internal/core/datamodel/section"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleLead     = "lead"
	RoleEmployee = "employee"
)

type User struct {
	ID           int64                       `gorm:"primaryKey"`
	Username     string                      `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash string                      `gorm:"column:password_hash;not null"`
	Role         string                      `gorm:"column:role;not null;default:employee"`
	IsSuperuser  bool                        `gorm:"column:is_superuser;not null;default:false"`
	IsActive     bool                        `gorm:"column:is_active;not null;default:true"`
	Sections     []sectionDatamodel.Section  `gorm:"many2many:user_sections"`
	CreatedAt    time.Time                   `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time                   `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// UserSection is the membership join row between users and sections.
type UserSection struct {
	UserID    int64 `gorm:"column:user_id;primaryKey"`
	SectionID int64 `gorm:"column:section_id;primaryKey"`
}

func (UserSection) TableName() string {
	return "user_sections"
}
