package dashboard

import (
	"log/slog"

	errors "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	"github.com/frahmantamala/warehouse-productivity/internal/entry"
	"github.com/frahmantamala/warehouse-productivity/internal/section"
)

const recentLimit = 10

// Summary is the landing-page payload: totals and recent activity within
// the actor's scope, plus the sections relevant to them.
type Summary struct {
	TotalEntries  int64              `json:"total_entries"`
	RecentEntries []*entry.Entry     `json:"recent_entries"`
	Sections      []*section.Section `json:"sections"`
}

type Service struct {
	entries  entry.Repository
	sections section.RepositoryAPI
	policy   *auth.Policy
	logger   *slog.Logger
}

func NewService(entries entry.Repository, sections section.RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		entries:  entries,
		sections: sections,
		policy:   auth.NewPolicy(),
		logger:   logger,
	}
}

// Summarize builds the dashboard for an actor. The same role scope that
// governs listing governs the totals here, so the dashboard never counts
// entries the actor could not list.
func (s *Service) Summarize(actor *auth.User) (*Summary, error) {
	if actor == nil {
		return nil, errors.ErrPermissionDenied
	}

	summary := &Summary{
		RecentEntries: []*entry.Entry{},
		Sections:      []*section.Section{},
	}

	scope := s.policy.ScopeFor(actor)
	if !scope.Empty() {
		// A zero-date query skips the date filter: recent activity spans
		// all dates, newest first.
		recent, total, err := s.entries.List(scope, entry.ListQuery{Page: 1}, recentLimit, 0)
		if err != nil {
			s.logger.Error("failed to load recent entries", "error", err, "actor_id", actor.ID)
			return nil, err
		}
		summary.RecentEntries = recent
		summary.TotalEntries = total
	}

	sections, err := s.sectionsFor(actor)
	if err != nil {
		s.logger.Error("failed to load dashboard sections", "error", err, "actor_id", actor.ID)
		return nil, err
	}
	summary.Sections = sections

	return summary, nil
}

func (s *Service) sectionsFor(actor *auth.User) ([]*section.Section, error) {
	if actor.IsManagerial() {
		return s.sections.GetAll()
	}
	return s.sections.GetByIDs(actor.SectionIDs)
}
