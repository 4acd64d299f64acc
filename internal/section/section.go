package section

import (
	"time"

	sectionDatamodel "github.com/frahmantamala/warehouse-productivity/internal/core/datamodel/section"
)

// Section is an organizational warehouse unit.
type Section struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type RepositoryAPI interface {
	GetAll() ([]*Section, error)
	GetByID(id int64) (*Section, error)
	GetByIDs(ids []int64) ([]*Section, error)
	Create(s *Section) error
	Update(s *Section) error
	Delete(id int64) error
	CountEntries(sectionID int64) (int64, error)
}

func ToDataModel(s *Section) *sectionDatamodel.Section {
	return &sectionDatamodel.Section{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

func FromDataModel(s *sectionDatamodel.Section) *Section {
	return &Section{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

func FromDataModelSlice(sections []*sectionDatamodel.Section) []*Section {
	result := make([]*Section, len(sections))
	for i, s := range sections {
		result[i] = FromDataModel(s)
	}
	return result
}
