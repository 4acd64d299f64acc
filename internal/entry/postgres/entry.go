package postgres

import (
	"errors"
	"strings"
	"time"

	internal "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	entryDatamodel "github.com/frahmantamala/warehouse-productivity/internal/core/datamodel/entry"
	"github.com/frahmantamala/warehouse-productivity/internal/entry"
	"gorm.io/gorm"
)

// EntryRepository implements the entry.Repository interface using GORM
type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) entry.Repository {
	return &EntryRepository{db: db}
}

// entryRow is the scan target for listing queries that join lead and
// section names onto the entry columns.
type entryRow struct {
	ID            int64
	LeadID        int64
	SectionID     int64
	EntryDate     time.Time
	BundleOpening int64
	Sorting       int64
	Loading       int64
	Sticker       int64
	Scanning      int64
	PutAway       int64
	Picking       int64
	Remarks       string
	CreatedAt     time.Time
	LeadUsername  string
	SectionName   string
}

func (row *entryRow) toDomain() *entry.Entry {
	return &entry.Entry{
		ID:            row.ID,
		LeadID:        row.LeadID,
		LeadUsername:  row.LeadUsername,
		SectionID:     row.SectionID,
		SectionName:   row.SectionName,
		EntryDate:     row.EntryDate,
		BundleOpening: row.BundleOpening,
		Sorting:       row.Sorting,
		Loading:       row.Loading,
		Sticker:       row.Sticker,
		Scanning:      row.Scanning,
		PutAway:       row.PutAway,
		Picking:       row.Picking,
		Remarks:       row.Remarks,
		CreatedAt:     row.CreatedAt,
	}
}

func (r *EntryRepository) joined() *gorm.DB {
	return r.db.Table("productivity_entries").
		Select("productivity_entries.*, users.username AS lead_username, sections.name AS section_name").
		Joins("JOIN users ON users.id = productivity_entries.lead_id").
		Joins("JOIN sections ON sections.id = productivity_entries.section_id")
}

func (r *EntryRepository) GetByID(id int64) (*entry.Entry, error) {
	var row entryRow
	err := r.joined().Where("productivity_entries.id = ?", id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, internal.ErrEntryNotFound
	}
	return row.toDomain(), nil
}

// List applies the role scope first, then intersects the filters, orders
// most recent first and paginates.
func (r *EntryRepository) List(scope auth.Scope, q entry.ListQuery, limit, offset int) ([]*entry.Entry, int64, error) {
	if scope.Empty() {
		return []*entry.Entry{}, 0, nil
	}

	countQuery := r.db.Table("productivity_entries").
		Joins("JOIN users ON users.id = productivity_entries.lead_id").
		Joins("JOIN sections ON sections.id = productivity_entries.section_id")
	countQuery = applyConditions(countQuery, scope, q)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := applyConditions(r.joined(), scope, q).
		Order("productivity_entries.entry_date DESC").
		Order("productivity_entries.created_at DESC").
		Limit(limit).
		Offset(offset)

	var rows []entryRow
	if err := listQuery.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*entry.Entry, len(rows))
	for i := range rows {
		entries[i] = rows[i].toDomain()
	}
	return entries, total, nil
}

func applyConditions(q *gorm.DB, scope auth.Scope, lq entry.ListQuery) *gorm.DB {
	if !scope.All {
		if scope.LeadID > 0 {
			q = q.Where("productivity_entries.lead_id = ?", scope.LeadID)
		}
		if scope.SectionIDs != nil {
			q = q.Where("productivity_entries.section_id IN ?", scope.SectionIDs)
		}
	}

	if lq.Section.ID > 0 {
		q = q.Where("productivity_entries.section_id = ?", lq.Section.ID)
	} else if lq.Section.NameContains != "" {
		q = q.Where("LOWER(sections.name) LIKE ?", "%"+strings.ToLower(lq.Section.NameContains)+"%")
	}

	if lq.Lead.ID > 0 {
		q = q.Where("productivity_entries.lead_id = ?", lq.Lead.ID)
	} else if lq.Lead.NameContains != "" {
		q = q.Where("LOWER(users.username) LIKE ?", "%"+strings.ToLower(lq.Lead.NameContains)+"%")
	}

	if !lq.Date.IsZero() {
		dayStart, nextDay := dayBounds(lq.Date)
		q = q.Where("productivity_entries.entry_date >= ? AND productivity_entries.entry_date < ?", dayStart, nextDay)
	}

	return q
}

// dayBounds brackets a calendar day as a half-open range. entry_date is a
// plain DATE on postgres but a full datetime on the sqlite driver, so an
// equality against the formatted date would never match there.
func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

func (r *EntryRepository) Create(e *entry.Entry) error {
	dm := entry.ToDataModel(e)
	if err := r.db.Create(dm).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateEntry
		}
		return err
	}
	e.ID = dm.ID
	return nil
}

func (r *EntryRepository) Update(e *entry.Entry) error {
	if err := r.db.Save(entry.ToDataModel(e)).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateEntry
		}
		return err
	}
	return nil
}

// UpdateFields persists only the given columns, leaving everything else
// (including created_at) untouched.
func (r *EntryRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	result := r.db.Model(&entryDatamodel.ProductivityEntry{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrEntryNotFound
	}
	return nil
}

func (r *EntryRepository) ExistsForKey(leadID, sectionID int64, date time.Time, excludeID int64) (bool, error) {
	dayStart, nextDay := dayBounds(date)
	q := r.db.Model(&entryDatamodel.ProductivityEntry{}).
		Where("lead_id = ? AND section_id = ? AND entry_date >= ? AND entry_date < ?", leadID, sectionID, dayStart, nextDay)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EntryRepository) LeadExists(id int64) (bool, error) {
	var count int64
	err := r.db.Table("users").Where("id = ? AND is_active = true", id).Count(&count).Error
	return count > 0, err
}

func (r *EntryRepository) SectionExists(id int64) (bool, error) {
	var count int64
	err := r.db.Table("sections").Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// EnsureMembership enrolls the lead into the section when no membership
// row exists yet. A concurrent insert racing past the check is absorbed
// by the unique pair constraint.
func (r *EntryRepository) EnsureMembership(leadID, sectionID int64) error {
	var count int64
	err := r.db.Table("user_sections").
		Where("user_id = ? AND section_id = ?", leadID, sectionID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	err = r.db.Exec("INSERT INTO user_sections (user_id, section_id) VALUES (?, ?)", leadID, sectionID).Error
	if err != nil && !isDuplicateKey(err) {
		return err
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
