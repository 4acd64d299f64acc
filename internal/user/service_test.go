package user_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	"github.com/frahmantamala/warehouse-productivity/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	users          map[int64]*user.User
	leads          []*user.User
	nextID         int64
	lastSectionIDs []int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*user.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetLeads() ([]*user.User, error) {
	return m.leads, nil
}

func (m *mockUserRepository) Create(u *user.User, sectionIDs []int64) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return internal.ErrDuplicateUser
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	m.lastSectionIDs = sectionIDs
	return nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
	)

	admin := &auth.User{ID: 1, Role: auth.RoleAdmin}
	manager := &auth.User{ID: 2, Role: auth.RoleManager}
	employee := &auth.User{ID: 4, Role: auth.RoleEmployee}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, bcrypt.MinCost, logger)
	})

	Describe("GetProfile", func() {
		It("returns the actor's own profile", func() {
			mockRepo.users[4] = &user.User{ID: 4, Username: "employee_citra", Role: auth.RoleEmployee}

			profile, err := service.GetProfile(employee)
			Expect(err).ToNot(HaveOccurred())
			Expect(profile.Username).To(Equal("employee_citra"))
		})
	})

	Describe("ListLeads", func() {
		It("is open to any authenticated actor", func() {
			mockRepo.leads = []*user.User{{ID: 3, Username: "citra", Role: auth.RoleEmployee}}

			leads, err := service.ListLeads(employee)
			Expect(err).ToNot(HaveOccurred())
			Expect(leads).To(HaveLen(1))
		})

		It("rejects an unauthenticated caller", func() {
			_, err := service.ListLeads(nil)
			Expect(err).To(Equal(internal.ErrPermissionDenied))
		})
	})

	Describe("CreateUser", func() {
		dto := user.CreateUserDTO{
			Username:   "lead_budi",
			Password:   "s3cret",
			Role:       auth.RoleLead,
			SectionIDs: []int64{10, 20},
		}

		It("provisions an active user with a hashed password", func() {
			created, err := service.CreateUser(admin, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.IsActive).To(BeTrue())
			Expect(created.PasswordHash).ToNot(Equal(dto.Password))
			Expect(bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(dto.Password))).To(Succeed())
			Expect(mockRepo.lastSectionIDs).To(Equal([]int64{10, 20}))
		})

		It("denies non-admins", func() {
			_, err := service.CreateUser(manager, dto)
			Expect(err).To(Equal(internal.ErrPermissionDenied))

			_, err = service.CreateUser(employee, dto)
			Expect(err).To(Equal(internal.ErrPermissionDenied))
		})

		It("rejects an unknown role", func() {
			bad := dto
			bad.Role = "supervisor"

			_, err := service.CreateUser(admin, bad)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("surfaces duplicate usernames", func() {
			_, err := service.CreateUser(admin, dto)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreateUser(admin, dto)
			Expect(err).To(Equal(internal.ErrDuplicateUser))
		})
	})
})
