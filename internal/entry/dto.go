package entry

import (
	"time"

	errors "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/core/common/validation"
)

// DateLayout is the wire format for entry dates.
const DateLayout = "2006-01-02"

// EntryInput is the request payload for creating or fully updating an entry.
type EntryInput struct {
	LeadID        int64  `json:"lead_id"`
	SectionID     int64  `json:"section_id"`
	EntryDate     string `json:"entry_date"`
	BundleOpening int64  `json:"bundle_opening"`
	Sorting       int64  `json:"sorting"`
	Loading       int64  `json:"loading"`
	Sticker       int64  `json:"sticker"`
	Scanning      int64  `json:"scanning"`
	PutAway       int64  `json:"put_away"`
	Picking       int64  `json:"picking"`
	Remarks       string `json:"remarks"`
}

// Date parses the entry date, normalized to midnight.
func (d EntryInput) Date() (time.Time, error) {
	return time.ParseInLocation(DateLayout, d.EntryDate, time.Local)
}

// Validate checks the form-level constraints. Only sticker, scanning,
// put_away and picking are restricted to non-negative values here; the
// other three counters are signed by underlying type.
func (d EntryInput) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("section_id", d.SectionID).Required()
	v.Field("entry_date", d.EntryDate).Required()
	v.Field("sticker", d.Sticker).NonNegative()
	v.Field("scanning", d.Scanning).NonNegative()
	v.Field("put_away", d.PutAway).NonNegative()
	v.Field("picking", d.Picking).NonNegative()
	if err := v.Validate(); err != nil {
		return err
	}

	if _, err := d.Date(); err != nil {
		return errors.NewValidationFieldError("entry_date", "entry_date must be formatted as YYYY-MM-DD", errors.ErrCodeInvalidDate)
	}
	return nil
}
