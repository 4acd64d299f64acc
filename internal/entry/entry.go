package entry

import (
	"time"

	entryDatamodel "github.com/frahmantamala/warehouse-productivity/internal/core/datamodel/entry"
)

// Entry is one day's productivity record for one lead within one section.
type Entry struct {
	ID           int64     `json:"id"`
	LeadID       int64     `json:"lead_id"`
	LeadUsername string    `json:"lead_username,omitempty"`
	SectionID    int64     `json:"section_id"`
	SectionName  string    `json:"section_name,omitempty"`
	EntryDate    time.Time `json:"entry_date"`

	BundleOpening int64 `json:"bundle_opening"`
	Sorting       int64 `json:"sorting"`
	Loading       int64 `json:"loading"`
	Sticker       int64 `json:"sticker"`
	Scanning      int64 `json:"scanning"`
	PutAway       int64 `json:"put_away"`
	Picking       int64 `json:"picking"`

	Remarks   string    `json:"remarks"`
	CreatedAt time.Time `json:"created_at"`
}

// PageSize is the fixed page length for entry listings.
const PageSize = 25

// Page is one page of a scoped, filtered entry listing.
type Page struct {
	Entries    []*Entry `json:"entries"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalCount int64    `json:"total_count"`
	TotalPages int      `json:"total_pages"`
}

func ToDataModel(e *Entry) *entryDatamodel.ProductivityEntry {
	return &entryDatamodel.ProductivityEntry{
		ID:            e.ID,
		LeadID:        e.LeadID,
		SectionID:     e.SectionID,
		EntryDate:     e.EntryDate,
		BundleOpening: e.BundleOpening,
		Sorting:       e.Sorting,
		Loading:       e.Loading,
		Sticker:       e.Sticker,
		Scanning:      e.Scanning,
		PutAway:       e.PutAway,
		Picking:       e.Picking,
		Remarks:       e.Remarks,
		CreatedAt:     e.CreatedAt,
	}
}

func FromDataModel(e *entryDatamodel.ProductivityEntry) *Entry {
	return &Entry{
		ID:            e.ID,
		LeadID:        e.LeadID,
		SectionID:     e.SectionID,
		EntryDate:     e.EntryDate,
		BundleOpening: e.BundleOpening,
		Sorting:       e.Sorting,
		Loading:       e.Loading,
		Sticker:       e.Sticker,
		Scanning:      e.Scanning,
		PutAway:       e.PutAway,
		Picking:       e.Picking,
		Remarks:       e.Remarks,
		CreatedAt:     e.CreatedAt,
	}
}

func FromDataModelSlice(entries []*entryDatamodel.ProductivityEntry) []*Entry {
	result := make([]*Entry, len(entries))
	for i, e := range entries {
		result[i] = FromDataModel(e)
	}
	return result
}
