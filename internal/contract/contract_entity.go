package contract

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusEmployed   = "EMPLOYEED"
	StatusTerminated = "TERMINATED"
	StatusResigned   = "RESIGNED"
	StatusOnLeave    = "ON_LEAVE"
	StatusProbation  = "PROBATION"

	JobFullTime   = "FULL_TIME"
	JobPartTime   = "PART_TIME"
	JobContract   = "CONTRACT"
	JobInternship = "INTERNSHIP"
	JobFreelance  = "FREELANCE"

	ShiftMorning    = "MORNING"
	ShiftEvening    = "EVENING"
	ShiftNight      = "NIGHT"
	ShiftRotational = "ROTATIONAL"

	LocationOnSite = "ON_SITE"
	LocationRemote = "REMOTE"
	LocationHybrid = "HYBRID"
)

type Contract struct {
	ID     uint      `gorm:"primaryKey"`
	UUID   uuid.UUID `gorm:"type:uuid"`
	UserID uint

	// EMPLOYEED is the historical spelling carried in the data.
	EmployeeStatus string `gorm:"size:32;default:EMPLOYEED"`
	JobType        string `gorm:"size:32;default:FULL_TIME"`

	Department  string `gorm:"size:128"`
	Designation string `gorm:"size:128"`
	Position    string `gorm:"size:128"`

	ReportingHr       string `gorm:"column:reporting_hr;size:255"`
	ReportingManager  string `gorm:"size:255"`
	ReportingTeamLead string `gorm:"size:255"`

	JoiningDate   time.Time
	ContractStart time.Time
	ContractEnd   *time.Time

	Shift        string `gorm:"size:32"`
	WorkLocation string `gorm:"size:32;default:ON_SITE"`

	IsActive bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Contract) TableName() string {
	return "employee_contracts"
}
