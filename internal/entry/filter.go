package entry

import (
	"math"
	"strconv"
	"strings"
	"time"

	errors "github.com/frahmantamala/warehouse-productivity/internal"
)

// Filters are the raw listing parameters as received from the query string.
type Filters struct {
	Section string
	Lead    string
	Date    string
	Page    int
}

// RefFilter is the parsed form of an id-or-substring filter value: an
// all-digits value selects by identifier, anything else matches a
// case-insensitive substring of the name.
type RefFilter struct {
	ID           int64
	NameContains string
}

func (f RefFilter) IsZero() bool {
	return f.ID == 0 && f.NameContains == ""
}

func parseRefFilter(raw string) RefFilter {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RefFilter{}
	}
	if id, ok := parseDigits(raw); ok {
		return RefFilter{ID: id}
	}
	return RefFilter{NameContains: raw}
}

func parseDigits(s string) (int64, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Saturate out-of-range ids so an absurd numeric filter matches
		// nothing instead of wrapping onto a real id.
		return math.MaxInt64, true
	}
	return n, true
}

// ListQuery is the validated, typed form of Filters a repository consumes.
type ListQuery struct {
	Section RefFilter
	Lead    RefFilter
	Date    time.Time
	Page    int
}

// ParseFilters validates raw filters. An absent date defaults to today in
// local time: the listing is "today's entries" unless a date is asked for.
func ParseFilters(f Filters, today time.Time) (ListQuery, *errors.AppError) {
	q := ListQuery{
		Section: parseRefFilter(f.Section),
		Lead:    parseRefFilter(f.Lead),
		Page:    f.Page,
	}
	if q.Page < 1 {
		q.Page = 1
	}

	if strings.TrimSpace(f.Date) == "" {
		y, m, d := today.Date()
		q.Date = time.Date(y, m, d, 0, 0, 0, 0, today.Location())
		return q, nil
	}

	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(f.Date), time.Local)
	if err != nil {
		return ListQuery{}, errors.NewValidationFieldError("date", "date must be formatted as YYYY-MM-DD", errors.ErrCodeInvalidDate)
	}
	q.Date = date
	return q, nil
}
