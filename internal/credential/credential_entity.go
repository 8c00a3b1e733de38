package credential

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeOfficialEmail = "OFFICIAL_EMAIL"
	TypeVPN           = "VPN"
	TypeGitHub        = "GITHUB"
	TypeJira          = "JIRA"
	TypeSlack         = "SLACK"
	TypeAdminPanel    = "ADMIN_PANEL"
	TypeOther         = "OTHER"
)

type Credential struct {
	ID     uint      `gorm:"primaryKey"`
	UUID   uuid.UUID `gorm:"type:uuid"`
	UserID uint

	CredentialType string `gorm:"column:credential_type;size:64"`
	OfficialEmail  string `gorm:"column:official_email;size:255"`
	Username       string `gorm:"size:255"`

	// PasswordEnc holds the AES-GCM ciphertext, never the plaintext.
	PasswordEnc string `gorm:"column:password_enc"`

	AccountURL  string `gorm:"column:account_url;size:512"`
	Description string `gorm:"type:text"`
	ExpiryDate  *time.Time
	IsActive    bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Credential) TableName() string {
	return "credentials"
}
