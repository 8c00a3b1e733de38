package asset

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAssigned    = "ASSIGNED"
	StatusReturned    = "RETURNED"
	StatusUnderRepair = "UNDER_REPAIR"
	StatusLost        = "LOST"
	StatusDamaged     = "DAMAGED"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusAssigned, StatusReturned, StatusUnderRepair, StatusLost, StatusDamaged:
		return true
	}
	return false
}

type Asset struct {
	ID     uint      `gorm:"primaryKey"`
	UUID   uuid.UUID `gorm:"type:uuid"`
	UserID uint

	Type      string `gorm:"size:64"`
	AssetName string `gorm:"size:255"`
	Company   string `gorm:"size:128"`
	Model     string `gorm:"size:128"`

	SerialNumber string `gorm:"size:128"`

	ScreenSize string `gorm:"size:64"`
	CPU        string `gorm:"column:cpu;size:128"`
	GPU        string `gorm:"column:gpu;size:128"`
	RAM        string `gorm:"column:ram;size:64"`
	MACAddress string `gorm:"column:mac_address;size:64"`
	Storage    string `gorm:"size:64"`
	AssetTag   string `gorm:"size:128"`

	Status string `gorm:"size:32;default:ASSIGNED"`

	AssignedDate *time.Time
	ReturnDate   *time.Time

	Notes string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Asset) TableName() string {
	return "assets"
}
