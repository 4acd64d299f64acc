package postgres

import (
	"errors"
	"strings"

	internal "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	userDatamodel "github.com/frahmantamala/warehouse-productivity/internal/core/datamodel/user"
	"github.com/frahmantamala/warehouse-productivity/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u userDatamodel.User
	err := r.db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sections.name ASC")
	}).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&u), nil
}

// GetLeads returns the users an entry may be filed about. Despite the
// name, the lead choice set is the employee population: "lead" on an
// entry means the employee the record is about.
func (r *UserRepository) GetLeads() ([]*user.User, error) {
	var leads []*userDatamodel.User
	err := r.db.Where("role = ? AND is_active = ?", auth.RoleEmployee, true).
		Order("username ASC").
		Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(leads), nil
}

// Create inserts the user and its section memberships in one transaction.
func (r *UserRepository) Create(u *user.User, sectionIDs []int64) error {
	dm := &userDatamodel.User{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsSuperuser:  u.IsSuperuser,
		IsActive:     u.IsActive,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dm).Error; err != nil {
			return err
		}
		for _, sid := range sectionIDs {
			m := userDatamodel.UserSection{UserID: dm.ID, SectionID: sid}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateUser
		}
		if isForeignKeyViolation(err) {
			return internal.ErrSectionNotFound
		}
		return err
	}

	u.ID = dm.ID
	u.CreatedAt = dm.CreatedAt
	u.UpdatedAt = dm.UpdatedAt
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}
