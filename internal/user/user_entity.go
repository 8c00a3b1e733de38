package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	UUID         uuid.UUID `gorm:"type:uuid"`
	EmployeeID   string    `gorm:"size:16"`
	AttendanceID string    `gorm:"size:16"`
	Name         string    `gorm:"size:255"`
	Email        string    `gorm:"size:255"`
	Password     string    `gorm:"size:255"`
	Role         string    `gorm:"size:32;default:EMPLOYEE"`
	CNIC         *string   `gorm:"size:32"`
	Phone        string    `gorm:"size:32"`
	Address      string
	DateOfBirth  *time.Time
	JoiningDate  *time.Time
	Projects     pq.StringArray `gorm:"type:text[]"`
	Positions    pq.StringArray `gorm:"type:text[]"`

	ProfilePicture string `gorm:"size:512"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// SharesProjectWith reports whether both users are members of at least one
// common project.
func (u *User) SharesProjectWith(other *User) bool {
	for _, mine := range u.Projects {
		for _, theirs := range other.Projects {
			if mine == theirs {
				return true
			}
		}
	}
	return false
}
