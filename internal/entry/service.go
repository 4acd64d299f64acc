package entry

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	errors "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
)

// PatchableFields is the allow-list for the inline field-patch path.
// Anything else on an entry is immutable via that path.
var PatchableFields = []string{
	"bundle_opening", "sorting", "loading",
	"sticker", "scanning", "put_away",
	"picking", "remarks",
}

// Repository defines the data access methods for entries. EnsureMembership
// and the existence checks live here because create/update validation has
// to resolve leads, sections and memberships in the same transaction scope.
type Repository interface {
	GetByID(id int64) (*Entry, error)
	Create(e *Entry) error
	Update(e *Entry) error
	UpdateFields(id int64, fields map[string]interface{}) error
	List(scope auth.Scope, q ListQuery, limit, offset int) ([]*Entry, int64, error)
	ExistsForKey(leadID, sectionID int64, date time.Time, excludeID int64) (bool, error)
	LeadExists(id int64) (bool, error)
	SectionExists(id int64) (bool, error)
	EnsureMembership(leadID, sectionID int64) error
}

// Service handles entry business logic: scoped listing, validated
// create/update and the inline field patch.
type Service struct {
	repo   Repository
	policy *auth.Policy
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: auth.NewPolicy(),
		logger: logger,
		now:    time.Now,
	}
}

// List returns one page of entries visible to the actor. The role scope is
// always intersected with the filters, never overridden by them.
func (s *Service) List(actor *auth.User, filters Filters) (*Page, error) {
	q, appErr := ParseFilters(filters, s.now())
	if appErr != nil {
		return nil, appErr
	}

	scope := s.policy.ScopeFor(actor)
	page := &Page{
		Entries:  []*Entry{},
		Page:     q.Page,
		PageSize: PageSize,
	}
	if scope.Empty() {
		return page, nil
	}

	offset := (q.Page - 1) * PageSize
	entries, total, err := s.repo.List(scope, q, PageSize, offset)
	if err != nil {
		s.logger.Error("failed to list entries", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	page.Entries = entries
	page.TotalCount = total
	page.TotalPages = int((total + PageSize - 1) / PageSize)
	return page, nil
}

// Get returns a single entry if the actor's view scope covers it.
func (s *Service) Get(actor *auth.User, id int64) (*Entry, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	target := &auth.EntryTarget{LeadID: existing.LeadID, SectionID: existing.SectionID}
	if !s.policy.Can(actor, auth.ActionView, target) {
		s.logger.Warn("entry view denied", "entry_id", id, "actor_id", actor.ID, "role", actor.EffectiveRole())
		return nil, errors.ErrPermissionDenied
	}
	return existing, nil
}

// Create validates and persists a new entry. A lead creating an entry is
// always its own lead; admins and managers may file for anyone.
func (s *Service) Create(actor *auth.User, input EntryInput) (*Entry, error) {
	if !s.policy.Can(actor, auth.ActionCreate, nil) {
		s.logger.Warn("entry create denied", "actor_id", actor.ID, "role", actor.EffectiveRole())
		return nil, errors.ErrPermissionDenied
	}

	leadID, leadErr := s.resolveLead(actor, input.LeadID)
	if leadErr != nil {
		return nil, leadErr
	}
	if appErr := input.Validate(); appErr != nil {
		return nil, appErr
	}
	date, _ := input.Date()

	if err := s.checkReferences(leadID, input.SectionID); err != nil {
		return nil, err
	}

	// Auto-enroll the lead into the section instead of rejecting; the
	// listing scope for employees depends on this membership existing.
	if err := s.repo.EnsureMembership(leadID, input.SectionID); err != nil {
		s.logger.Error("failed to ensure section membership", "error", err, "lead_id", leadID, "section_id", input.SectionID)
		return nil, err
	}

	exists, err := s.repo.ExistsForKey(leadID, input.SectionID, date, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.ErrDuplicateEntry
	}

	e := &Entry{
		LeadID:        leadID,
		SectionID:     input.SectionID,
		EntryDate:     date,
		BundleOpening: input.BundleOpening,
		Sorting:       input.Sorting,
		Loading:       input.Loading,
		Sticker:       input.Sticker,
		Scanning:      input.Scanning,
		PutAway:       input.PutAway,
		Picking:       input.Picking,
		Remarks:       input.Remarks,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create entry", "error", err, "lead_id", leadID, "section_id", input.SectionID)
		return nil, err
	}

	s.logger.Info("entry created",
		"entry_id", e.ID,
		"lead_id", leadID,
		"section_id", input.SectionID,
		"entry_date", date.Format(DateLayout),
		"actor_id", actor.ID)

	return s.repo.GetByID(e.ID)
}

// Update replaces an entry through the full form path, re-running the
// same reference, membership and uniqueness validation as Create. The
// creation timestamp is never touched on update.
func (s *Service) Update(actor *auth.User, id int64, input EntryInput) (*Entry, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	target := &auth.EntryTarget{LeadID: existing.LeadID, SectionID: existing.SectionID}
	if !s.policy.Can(actor, auth.ActionEdit, target) {
		s.logger.Warn("entry edit denied", "entry_id", id, "actor_id", actor.ID, "role", actor.EffectiveRole())
		return nil, errors.ErrPermissionDenied
	}

	leadID, leadErr := s.resolveLead(actor, input.LeadID)
	if leadErr != nil {
		return nil, leadErr
	}
	if appErr := input.Validate(); appErr != nil {
		return nil, appErr
	}
	date, _ := input.Date()

	if err := s.checkReferences(leadID, input.SectionID); err != nil {
		return nil, err
	}

	if err := s.repo.EnsureMembership(leadID, input.SectionID); err != nil {
		s.logger.Error("failed to ensure section membership", "error", err, "lead_id", leadID, "section_id", input.SectionID)
		return nil, err
	}

	exists, err := s.repo.ExistsForKey(leadID, input.SectionID, date, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.ErrDuplicateEntry
	}

	updated := &Entry{
		ID:            existing.ID,
		LeadID:        leadID,
		SectionID:     input.SectionID,
		EntryDate:     date,
		BundleOpening: input.BundleOpening,
		Sorting:       input.Sorting,
		Loading:       input.Loading,
		Sticker:       input.Sticker,
		Scanning:      input.Scanning,
		PutAway:       input.PutAway,
		Picking:       input.Picking,
		Remarks:       input.Remarks,
		CreatedAt:     existing.CreatedAt,
	}

	if err := s.repo.Update(updated); err != nil {
		s.logger.Error("failed to update entry", "error", err, "entry_id", id)
		return nil, err
	}

	s.logger.Info("entry updated", "entry_id", id, "actor_id", actor.ID)
	return s.repo.GetByID(id)
}

// PatchFields applies an inline partial update restricted to the metric
// counters and remarks. Parsing is all-or-nothing: if any field fails, no
// field is applied. Lead, section and date are immutable via this path, so
// the uniqueness check is intentionally skipped.
func (s *Service) PatchFields(actor *auth.User, id int64, fields map[string]string) (*Entry, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Ownership check rather than role policy: the entry's own lead may
	// patch regardless of role, plus admins and managers.
	if !actor.IsManagerial() && existing.LeadID != actor.ID {
		s.logger.Warn("entry patch denied", "entry_id", id, "actor_id", actor.ID)
		return nil, errors.ErrPermissionDenied
	}

	updates, appErr := parsePatch(fields)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.repo.UpdateFields(id, updates); err != nil {
		s.logger.Error("failed to patch entry fields", "error", err, "entry_id", id)
		return nil, err
	}

	s.logger.Info("entry fields patched", "entry_id", id, "actor_id", actor.ID, "field_count", len(updates))
	return s.repo.GetByID(id)
}

// parsePatch validates the raw field map against the allow-list. Empty
// numeric values coerce to zero; negatives and non-numbers are rejected
// with a field-scoped error before anything is applied.
func parsePatch(fields map[string]string) (map[string]interface{}, *errors.AppError) {
	updates := make(map[string]interface{})

	for _, field := range PatchableFields {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)

		if field == "remarks" {
			updates[field] = raw
			continue
		}

		if raw == "" {
			updates[field] = int64(0)
			continue
		}

		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.NewValidationFieldError(field,
				"Invalid value for '"+field+"'. Please enter a number.",
				errors.ErrCodeInvalidMetric)
		}
		if value < 0 {
			return nil, errors.NewValidationFieldError(field,
				"Negative values are not allowed for '"+field+"'.",
				errors.ErrCodeNegativeMetric)
		}
		updates[field] = value
	}

	if len(updates) == 0 {
		return nil, errors.NewValidationError("No valid fields to update.", errors.ErrCodeNoFieldsToUpdate)
	}
	return updates, nil
}

// resolveLead determines which lead the entry is filed for. Roles that
// cannot pick a lead are always pinned to themselves; roles that can
// must name one explicitly, mirroring the form's required lead field.
func (s *Service) resolveLead(actor *auth.User, requested int64) (int64, *errors.AppError) {
	if !s.policy.CanPickLead(actor) {
		if requested != 0 && requested != actor.ID {
			s.logger.Warn("lead selection overridden to actor", "actor_id", actor.ID, "requested_lead_id", requested)
		}
		return actor.ID, nil
	}
	if requested == 0 {
		return 0, errors.NewValidationFieldError("lead_id", "lead_id is required", errors.ErrCodeValidationFailed)
	}
	return requested, nil
}

func (s *Service) checkReferences(leadID, sectionID int64) error {
	ok, err := s.repo.LeadExists(leadID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrLeadNotFound
	}

	ok, err = s.repo.SectionExists(sectionID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrSectionNotFound
	}
	return nil
}
