package postgres

import (
	"testing"
	"time"

	internal "github.com/frahmantamala/warehouse-productivity/internal"
	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	"github.com/frahmantamala/warehouse-productivity/internal/entry"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEntryRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "EntryRepository Suite")
}

type SQLiteUser struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"column:username;not null"`
	PasswordHash string `gorm:"column:password_hash"`
	Role         string `gorm:"column:role"`
	IsActive     bool   `gorm:"column:is_active;default:true"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

type SQLiteSection struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;not null"`
}

func (SQLiteSection) TableName() string {
	return "sections"
}

type SQLiteUserSection struct {
	UserID    int64 `gorm:"column:user_id;primaryKey"`
	SectionID int64 `gorm:"column:section_id;primaryKey"`
}

func (SQLiteUserSection) TableName() string {
	return "user_sections"
}

type SQLiteProductivityEntry struct {
	ID            int64     `gorm:"primaryKey"`
	LeadID        int64     `gorm:"column:lead_id;not null;uniqueIndex:uq_entries_lead_section_date"`
	SectionID     int64     `gorm:"column:section_id;not null;uniqueIndex:uq_entries_lead_section_date"`
	EntryDate     time.Time `gorm:"column:entry_date;not null;uniqueIndex:uq_entries_lead_section_date"`
	BundleOpening int64     `gorm:"column:bundle_opening;default:0"`
	Sorting       int64     `gorm:"column:sorting;default:0"`
	Loading       int64     `gorm:"column:loading;default:0"`
	Sticker       int64     `gorm:"column:sticker;default:0"`
	Scanning      int64     `gorm:"column:scanning;default:0"`
	PutAway       int64     `gorm:"column:put_away;default:0"`
	Picking       int64     `gorm:"column:picking;default:0"`
	Remarks       string    `gorm:"column:remarks"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (SQLiteProductivityEntry) TableName() string {
	return "productivity_entries"
}

var _ = Describe("EntryRepository", func() {
	var (
		db   *gorm.DB
		repo entry.Repository
	)

	day := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.Local)
	otherDay := day.AddDate(0, 0, 1)

	newEntry := func(date time.Time) *entry.Entry {
		return &entry.Entry{
			LeadID:    1,
			SectionID: 1,
			EntryDate: date,
			Sorting:   30,
			Picking:   5,
			CreatedAt: time.Now(),
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteSection{}, &SQLiteUserSection{}, &SQLiteProductivityEntry{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&SQLiteUser{ID: 1, Username: "lead_anna", Role: "lead", IsActive: true}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&SQLiteSection{ID: 1, Name: "Inbound"}).Error).NotTo(HaveOccurred())

		repo = NewEntryRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("ExistsForKey", func() {
		It("finds an existing key regardless of how the driver stores the date", func() {
			Expect(repo.Create(newEntry(day))).NotTo(HaveOccurred())

			exists, err := repo.ExistsForKey(1, 1, day, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("does not match a different date", func() {
			Expect(repo.Create(newEntry(day))).NotTo(HaveOccurred())

			exists, err := repo.ExistsForKey(1, 1, otherDay, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("excludes the entry being updated", func() {
			e := newEntry(day)
			Expect(repo.Create(e)).NotTo(HaveOccurred())

			exists, err := repo.ExistsForKey(1, 1, day, e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("List", func() {
		It("filters by calendar day", func() {
			Expect(repo.Create(newEntry(day))).NotTo(HaveOccurred())

			entries, total, err := repo.List(auth.Scope{All: true}, entry.ListQuery{Date: day, Page: 1}, 25, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].LeadUsername).To(Equal("lead_anna"))
			Expect(entries[0].SectionName).To(Equal("Inbound"))
		})

		It("returns nothing for a day without entries", func() {
			Expect(repo.Create(newEntry(day))).NotTo(HaveOccurred())

			entries, total, err := repo.List(auth.Scope{All: true}, entry.ListQuery{Date: otherDay, Page: 1}, 25, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(0)))
			Expect(entries).To(BeEmpty())
		})
	})

	Describe("GetByID", func() {
		It("returns ErrEntryNotFound for an unknown id", func() {
			_, err := repo.GetByID(99999)
			Expect(err).To(Equal(internal.ErrEntryNotFound))
		})
	})

	Describe("EnsureMembership", func() {
		It("enrolls once and stays idempotent", func() {
			Expect(repo.EnsureMembership(1, 1)).NotTo(HaveOccurred())
			Expect(repo.EnsureMembership(1, 1)).NotTo(HaveOccurred())

			var count int64
			err := db.Table("user_sections").Where("user_id = ? AND section_id = ?", 1, 1).Count(&count).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})
})
