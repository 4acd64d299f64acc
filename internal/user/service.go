package user

import (
	"log/slog"

	errors "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
)

type RepositoryAPI interface {
	GetByID(id int64) (*User, error)
	GetLeads() ([]*User, error)
	Create(u *User, sectionIDs []int64) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// GetProfile returns the authenticated user's own profile with section
// memberships.
func (s *Service) GetProfile(actor *auth.User) (*User, error) {
	if actor == nil {
		return nil, errors.ErrPermissionDenied
	}
	return s.repo.GetByID(actor.ID)
}

// ListLeads returns the lead choice set for the entry form and filter
// dropdowns, ordered by username. Any authenticated user may call it:
// the listing filters need the dropdown even for non-managerial actors.
func (s *Service) ListLeads(actor *auth.User) ([]*User, error) {
	if actor == nil {
		return nil, errors.ErrPermissionDenied
	}
	return s.repo.GetLeads()
}

// CreateUser provisions a new account. Admin only.
func (s *Service) CreateUser(actor *auth.User, dto CreateUserDTO) (*User, error) {
	if actor == nil || actor.EffectiveRole() != auth.RoleAdmin {
		return nil, errors.ErrPermissionDenied
	}
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := &User{
		Username:     dto.Username,
		PasswordHash: hash,
		Role:         dto.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(u, dto.SectionIDs); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "role", u.Role, "actor_id", actor.ID)
	return u, nil
}
