package auth

// Action is something an actor can do with a productivity entry.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
)

// EntryTarget carries the attributes of the entry a decision is about.
// A nil target means the decision is about the action in general
// (e.g. "may this actor create entries at all").
type EntryTarget struct {
	LeadID    int64
	SectionID int64
}

// rolePermissions is one row of the permission table. Keeping the whole
// role matrix in one place avoids the drift that comes from scattering
// role checks across list/create/update/patch paths.
type rolePermissions struct {
	viewAll      bool
	viewOwn      bool
	viewSections bool
	create       bool
	// anyLead lets the actor file or reassign entries for other leads.
	// Without it, the lead field is always pinned to the actor.
	anyLead bool
	editAll bool
	editOwn bool
}

var permissionTable = map[string]rolePermissions{
	RoleAdmin:    {viewAll: true, create: true, anyLead: true, editAll: true},
	RoleManager:  {viewAll: true, create: true, anyLead: true, editAll: true},
	RoleLead:     {viewOwn: true, create: true, editOwn: true},
	RoleEmployee: {viewSections: true},
}

// Scope is the base restriction a listing query must intersect with.
// Filters narrow a scope, never widen it.
type Scope struct {
	// All grants unrestricted visibility.
	All bool
	// LeadID, when set, restricts to entries whose lead is this user.
	LeadID int64
	// SectionIDs, when non-nil, restricts to entries in these sections.
	// An empty slice means no entry is visible.
	SectionIDs []int64
}

// Empty reports whether the scope can never match an entry.
func (s Scope) Empty() bool {
	return !s.All && s.LeadID == 0 && s.SectionIDs != nil && len(s.SectionIDs) == 0
}

// Policy is the single authorization decision point for productivity
// entries. It is a pure function of (actor, action, target).
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

// Can decides whether the actor may perform action on target.
func (p *Policy) Can(actor *User, action Action, target *EntryTarget) bool {
	if actor == nil {
		return false
	}
	perms, ok := permissionTable[actor.EffectiveRole()]
	if !ok {
		return false
	}

	switch action {
	case ActionView:
		if perms.viewAll {
			return true
		}
		if target == nil {
			return perms.viewOwn || perms.viewSections
		}
		if perms.viewOwn && target.LeadID == actor.ID {
			return true
		}
		if perms.viewSections && actor.MemberOf(target.SectionID) {
			return true
		}
		return false

	case ActionCreate:
		if !perms.create {
			return false
		}
		if target == nil || perms.anyLead {
			return true
		}
		return target.LeadID == actor.ID

	case ActionEdit:
		if perms.editAll {
			return true
		}
		if perms.editOwn && target != nil && target.LeadID == actor.ID {
			return true
		}
		return false
	}

	return false
}

// CanPickLead reports whether the actor may choose an arbitrary lead when
// creating or editing an entry. Everyone else is pinned to themselves.
func (p *Policy) CanPickLead(actor *User) bool {
	if actor == nil {
		return false
	}
	return permissionTable[actor.EffectiveRole()].anyLead
}

// ScopeFor returns the visibility restriction for the actor's listings.
func (p *Policy) ScopeFor(actor *User) Scope {
	if actor == nil {
		return Scope{SectionIDs: []int64{}}
	}
	perms := permissionTable[actor.EffectiveRole()]
	switch {
	case perms.viewAll:
		return Scope{All: true}
	case perms.viewOwn:
		return Scope{LeadID: actor.ID}
	default:
		ids := actor.SectionIDs
		if ids == nil {
			ids = []int64{}
		}
		return Scope{SectionIDs: ids}
	}
}
