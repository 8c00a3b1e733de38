package education

import (
	"time"

	"github.com/google/uuid"
)

type Education struct {
	ID     uint      `gorm:"primaryKey"`
	UUID   uuid.UUID `gorm:"type:uuid"`
	UserID uint

	Degree    string `gorm:"size:255"`
	Institute string `gorm:"size:255"`
	StartYear int
	EndYear   int
	Grade     string `gorm:"size:32"`

	// IsCurrent is derived from EndYear on every write, never set by
	// clients.
	IsCurrent bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Education) TableName() string {
	return "educations"
}
