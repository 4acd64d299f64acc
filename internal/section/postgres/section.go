package postgres

import (
	"errors"
	"strings"

	internal "github.com/frahmantamala/warehouse-productivity/internal"
	entryDatamodel "github.com/frahmantamala/warehouse-productivity/internal/core/datamodel/entry"
	sectionDatamodel "github.com/frahmantamala/warehouse-productivity/internal/core/datamodel/section"
	"github.com/frahmantamala/warehouse-productivity/internal/section"
	"gorm.io/gorm"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) section.RepositoryAPI {
	return &SectionRepository{db: db}
}

func (r *SectionRepository) GetAll() ([]*section.Section, error) {
	var sections []*sectionDatamodel.Section
	err := r.db.Order("name ASC").Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return section.FromDataModelSlice(sections), nil
}

func (r *SectionRepository) GetByID(id int64) (*section.Section, error) {
	var sec sectionDatamodel.Section
	err := r.db.Where("id = ?", id).First(&sec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSectionNotFound
		}
		return nil, err
	}
	return section.FromDataModel(&sec), nil
}

func (r *SectionRepository) GetByIDs(ids []int64) ([]*section.Section, error) {
	if len(ids) == 0 {
		return []*section.Section{}, nil
	}
	var sections []*sectionDatamodel.Section
	err := r.db.Where("id IN ?", ids).Order("name ASC").Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return section.FromDataModelSlice(sections), nil
}

func (r *SectionRepository) Create(s *section.Section) error {
	dm := section.ToDataModel(s)
	if err := r.db.Create(dm).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateSection
		}
		return err
	}
	s.ID = dm.ID
	s.CreatedAt = dm.CreatedAt
	return nil
}

func (r *SectionRepository) Update(s *section.Section) error {
	if err := r.db.Save(section.ToDataModel(s)).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateSection
		}
		return err
	}
	return nil
}

// Delete removes the section row. The FK from productivity_entries is
// RESTRICT, so a racing entry insert still cannot orphan references.
func (r *SectionRepository) Delete(id int64) error {
	err := r.db.Where("id = ?", id).Delete(&sectionDatamodel.Section{}).Error
	if err != nil && isForeignKeyViolation(err) {
		return internal.ErrSectionInUse
	}
	return err
}

func (r *SectionRepository) CountEntries(sectionID int64) (int64, error) {
	var count int64
	err := r.db.Model(&entryDatamodel.ProductivityEntry{}).
		Where("section_id = ?", sectionID).
		Count(&count).Error
	return count, err
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
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key")
}
