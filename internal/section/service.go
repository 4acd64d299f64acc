package section

import (
	"log/slog"

	errors "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
)

// Service handles the section registry. Listing is open to any
// authenticated user (filter and form dropdowns need it); mutations are
// admin only.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListSections(actor *auth.User) ([]*Section, error) {
	if actor == nil {
		return nil, errors.ErrPermissionDenied
	}
	return s.repo.GetAll()
}

func (s *Service) CreateSection(actor *auth.User, input SectionInput) (*Section, error) {
	if err := s.requireAdmin(actor, "create section"); err != nil {
		return nil, err
	}
	if appErr := input.Validate(); appErr != nil {
		return nil, appErr
	}

	sec := &Section{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.repo.Create(sec); err != nil {
		s.logger.Error("failed to create section", "error", err, "name", input.Name)
		return nil, err
	}

	s.logger.Info("section created", "section_id", sec.ID, "name", sec.Name, "actor_id", actor.ID)
	return sec, nil
}

func (s *Service) UpdateSection(actor *auth.User, id int64, input SectionInput) (*Section, error) {
	if err := s.requireAdmin(actor, "update section"); err != nil {
		return nil, err
	}
	if appErr := input.Validate(); appErr != nil {
		return nil, appErr
	}

	sec, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	sec.Name = input.Name
	sec.Description = input.Description
	if err := s.repo.Update(sec); err != nil {
		s.logger.Error("failed to update section", "error", err, "section_id", id)
		return nil, err
	}

	s.logger.Info("section updated", "section_id", id, "actor_id", actor.ID)
	return sec, nil
}

// DeleteSection removes an unused section. Sections referenced by any
// productivity entry are protected and never deleted.
func (s *Service) DeleteSection(actor *auth.User, id int64) error {
	if err := s.requireAdmin(actor, "delete section"); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	count, err := s.repo.CountEntries(id)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Warn("section delete blocked: entries reference it", "section_id", id, "entry_count", count)
		return errors.ErrSectionInUse
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete section", "error", err, "section_id", id)
		return err
	}

	s.logger.Info("section deleted", "section_id", id, "actor_id", actor.ID)
	return nil
}

func (s *Service) requireAdmin(actor *auth.User, action string) error {
	if actor == nil || actor.EffectiveRole() != auth.RoleAdmin {
		s.logger.Warn("section mutation denied", "action", action, "actor_id", actorID(actor))
		return errors.ErrPermissionDenied
	}
	return nil
}

func actorID(actor *auth.User) int64 {
	if actor == nil {
		return 0
	}
	return actor.ID
}
