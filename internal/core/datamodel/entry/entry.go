package entry

import "time"

// ProductivityEntry is one day's productivity record for one lead within
// one section. (lead_id, section_id, entry_date) is unique; the database
// constraint is the final authority against concurrent duplicates.
type ProductivityEntry struct {
	ID        int64     `gorm:"primaryKey"`
	LeadID    int64     `gorm:"column:lead_id;not null;uniqueIndex:uq_entries_lead_section_date"`
	SectionID int64     `gorm:"column:section_id;not null;uniqueIndex:uq_entries_lead_section_date"`
	EntryDate time.Time `gorm:"column:entry_date;type:date;not null;uniqueIndex:uq_entries_lead_section_date"`

	BundleOpening int64 `gorm:"column:bundle_opening;not null;default:0"`
	Sorting       int64 `gorm:"column:sorting;not null;default:0"`
	Loading       int64 `gorm:"column:loading;not null;default:0"`
	Sticker       int64 `gorm:"column:sticker;not null;default:0"`
	Scanning      int64 `gorm:"column:scanning;not null;default:0"`
	PutAway       int64 `gorm:"column:put_away;not null;default:0"`
	Picking       int64 `gorm:"column:picking;not null;default:0"`

	Remarks   string    `gorm:"column:remarks"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (ProductivityEntry) TableName() string {
	return "productivity_entries"
}
