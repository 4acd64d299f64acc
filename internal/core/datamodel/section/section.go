package section

import "time"

// Section is an organizational warehouse unit users and entries belong to.
type Section struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (Section) TableName() string {
	return "sections"
}
