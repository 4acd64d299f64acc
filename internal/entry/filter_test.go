package entry_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/entry"
)

var _ = Describe("ParseFilters", func() {
	today := time.Date(2026, time.August, 28, 14, 30, 0, 0, time.Local)

	It("defaults an absent date to today at midnight", func() {
		q, appErr := entry.ParseFilters(entry.Filters{}, today)

		Expect(appErr).To(BeNil())
		Expect(q.Date).To(Equal(time.Date(2026, time.August, 28, 0, 0, 0, 0, time.Local)))
	})

	It("parses an explicit date", func() {
		q, appErr := entry.ParseFilters(entry.Filters{Date: "2026-01-15"}, today)

		Expect(appErr).To(BeNil())
		Expect(q.Date.Format(entry.DateLayout)).To(Equal("2026-01-15"))
	})

	It("rejects a malformed date", func() {
		_, appErr := entry.ParseFilters(entry.Filters{Date: "15/01/2026"}, today)

		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
	})

	It("treats an all-digits filter as an id", func() {
		q, appErr := entry.ParseFilters(entry.Filters{Section: "42", Lead: "7"}, today)

		Expect(appErr).To(BeNil())
		Expect(q.Section.ID).To(Equal(int64(42)))
		Expect(q.Lead.ID).To(Equal(int64(7)))
	})

	It("treats anything else as a name substring", func() {
		q, appErr := entry.ParseFilters(entry.Filters{Section: "North Dock", Lead: "anna"}, today)

		Expect(appErr).To(BeNil())
		Expect(q.Section.ID).To(BeZero())
		Expect(q.Section.NameContains).To(Equal("North Dock"))
		Expect(q.Lead.NameContains).To(Equal("anna"))
	})

	It("saturates an oversized numeric filter instead of wrapping", func() {
		q, appErr := entry.ParseFilters(entry.Filters{Lead: "99999999999999999999"}, today)

		Expect(appErr).To(BeNil())
		Expect(q.Lead.ID).To(Equal(int64(math.MaxInt64)))
		Expect(q.Lead.NameContains).To(BeEmpty())
	})

	It("treats mixed alphanumeric values as substrings, not ids", func() {
		q, appErr := entry.ParseFilters(entry.Filters{Lead: "7a"}, today)

		Expect(appErr).To(BeNil())
		Expect(q.Lead.ID).To(BeZero())
		Expect(q.Lead.NameContains).To(Equal("7a"))
	})

	It("trims surrounding whitespace from filters", func() {
		q, appErr := entry.ParseFilters(entry.Filters{Section: "  12  "}, today)

		Expect(appErr).To(BeNil())
		Expect(q.Section.ID).To(Equal(int64(12)))
	})

	It("clamps the page to a minimum of one", func() {
		q, appErr := entry.ParseFilters(entry.Filters{Page: -3}, today)

		Expect(appErr).To(BeNil())
		Expect(q.Page).To(Equal(1))
	})
})
