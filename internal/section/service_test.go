package section_test

import (
	"log/slog"
	"os"
	"sort"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	"github.com/frahmantamala/warehouse-productivity/internal/section"
)

func TestSection(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Section Suite")
}

// Mock repository for testing
type mockSectionRepository struct {
	sections     map[int64]*section.Section
	entryCounts  map[int64]int64
	nextID       int64
	deleteCalled bool
}

func newMockSectionRepository() *mockSectionRepository {
	return &mockSectionRepository{
		sections:    make(map[int64]*section.Section),
		entryCounts: make(map[int64]int64),
		nextID:      1,
	}
}

func (m *mockSectionRepository) GetAll() ([]*section.Section, error) {
	result := make([]*section.Section, 0, len(m.sections))
	for _, s := range m.sections {
		copied := *s
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSectionRepository) GetByID(id int64) (*section.Section, error) {
	s, ok := m.sections[id]
	if !ok {
		return nil, internal.ErrSectionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockSectionRepository) GetByIDs(ids []int64) ([]*section.Section, error) {
	result := make([]*section.Section, 0, len(ids))
	for _, id := range ids {
		if s, ok := m.sections[id]; ok {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockSectionRepository) Create(s *section.Section) error {
	for _, existing := range m.sections {
		if existing.Name == s.Name {
			return internal.ErrDuplicateSection
		}
	}
	s.ID = m.nextID
	m.nextID++
	stored := *s
	m.sections[s.ID] = &stored
	return nil
}

func (m *mockSectionRepository) Update(s *section.Section) error {
	stored := *s
	m.sections[s.ID] = &stored
	return nil
}

func (m *mockSectionRepository) Delete(id int64) error {
	m.deleteCalled = true
	delete(m.sections, id)
	return nil
}

func (m *mockSectionRepository) CountEntries(sectionID int64) (int64, error) {
	return m.entryCounts[sectionID], nil
}

var _ = Describe("SectionService", func() {
	var (
		service  *section.Service
		mockRepo *mockSectionRepository
		logger   *slog.Logger
	)

	admin := &auth.User{ID: 1, Role: auth.RoleAdmin}
	superuser := &auth.User{ID: 2, Role: auth.RoleEmployee, IsSuperuser: true}
	manager := &auth.User{ID: 3, Role: auth.RoleManager}
	lead := &auth.User{ID: 4, Role: auth.RoleLead}

	BeforeEach(func() {
		mockRepo = newMockSectionRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = section.NewService(mockRepo, logger)
	})

	Describe("ListSections", func() {
		It("is open to any authenticated actor", func() {
			_, err := service.CreateSection(admin, section.SectionInput{Name: "Inbound"})
			Expect(err).ToNot(HaveOccurred())

			sections, err := service.ListSections(lead)
			Expect(err).ToNot(HaveOccurred())
			Expect(sections).To(HaveLen(1))
		})

		It("rejects an unauthenticated caller", func() {
			_, err := service.ListSections(nil)
			Expect(err).To(Equal(internal.ErrPermissionDenied))
		})
	})

	Describe("CreateSection", func() {
		It("allows admins", func() {
			created, err := service.CreateSection(admin, section.SectionInput{Name: "Outbound", Description: "Loading dock"})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Name).To(Equal("Outbound"))
		})

		It("treats superusers as admins", func() {
			_, err := service.CreateSection(superuser, section.SectionInput{Name: "Sorting"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("denies managers and leads", func() {
			_, err := service.CreateSection(manager, section.SectionInput{Name: "X"})
			Expect(err).To(Equal(internal.ErrPermissionDenied))

			_, err = service.CreateSection(lead, section.SectionInput{Name: "X"})
			Expect(err).To(Equal(internal.ErrPermissionDenied))
		})

		It("rejects an empty name", func() {
			_, err := service.CreateSection(admin, section.SectionInput{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("rejects a duplicate name", func() {
			_, err := service.CreateSection(admin, section.SectionInput{Name: "Inbound"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreateSection(admin, section.SectionInput{Name: "Inbound"})
			Expect(err).To(Equal(internal.ErrDuplicateSection))
		})
	})

	Describe("UpdateSection", func() {
		It("updates name and description", func() {
			created, err := service.CreateSection(admin, section.SectionInput{Name: "Inbound"})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.UpdateSection(admin, created.ID, section.SectionInput{Name: "Inbound Dock", Description: "Receiving"})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Name).To(Equal("Inbound Dock"))
			Expect(updated.Description).To(Equal("Receiving"))
		})

		It("surfaces a missing section", func() {
			_, err := service.UpdateSection(admin, 999, section.SectionInput{Name: "X"})
			Expect(err).To(Equal(internal.ErrSectionNotFound))
		})
	})

	Describe("DeleteSection", func() {
		It("deletes an unreferenced section", func() {
			created, err := service.CreateSection(admin, section.SectionInput{Name: "Inbound"})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteSection(admin, created.ID)).To(Succeed())
			Expect(mockRepo.deleteCalled).To(BeTrue())
		})

		It("refuses to delete a section referenced by entries", func() {
			created, err := service.CreateSection(admin, section.SectionInput{Name: "Inbound"})
			Expect(err).ToNot(HaveOccurred())
			mockRepo.entryCounts[created.ID] = 3

			err = service.DeleteSection(admin, created.ID)
			Expect(err).To(Equal(internal.ErrSectionInUse))
			Expect(mockRepo.deleteCalled).To(BeFalse())
		})

		It("denies non-admins", func() {
			created, err := service.CreateSection(admin, section.SectionInput{Name: "Inbound"})
			Expect(err).ToNot(HaveOccurred())

			err = service.DeleteSection(manager, created.ID)
			Expect(err).To(Equal(internal.ErrPermissionDenied))
		})
	})
})
