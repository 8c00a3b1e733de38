package credential

import "time"

type CreateCredentialRequest struct {
	UserUUID       string `json:"userUuid" binding:"required,uuid"`
	CredentialType string `json:"credentialType" binding:"required,oneof=OFFICIAL_EMAIL VPN GITHUB JIRA SLACK ADMIN_PANEL OTHER"`
	OfficialEmail  string `json:"officialEmail,omitempty" binding:"omitempty,email"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty" binding:"omitempty,min=8,max=100"`
	AccountURL     string `json:"accountUrl,omitempty" binding:"omitempty,url"`
	Description    string `json:"description,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
}

type UpdateCredentialRequest struct {
	OfficialEmail *string `json:"officialEmail,omitempty" binding:"omitempty,email"`
	Username      *string `json:"username,omitempty"`
	Password      *string `json:"password,omitempty" binding:"omitempty,min=8,max=100"`
	AccountURL    *string `json:"accountUrl,omitempty" binding:"omitempty,url"`
	Description   *string `json:"description,omitempty"`
	ExpiryDate    *string `json:"expiryDate,omitempty"`
}

type RotateCredentialRequest struct {
	Password   string `json:"password" binding:"required,min=8,max=100"`
	ExpiryDate string `json:"expiryDate,omitempty"`
}

type ExpiringQuery struct {
	Days int `form:"days,default=7" binding:"omitempty,min=1,max=365"`
}

// CredentialResponse never carries the secret. Reveal has its own shape.
type CredentialResponse struct {
	UUID           string `json:"uuid"`
	UserID         uint   `json:"userId"`
	CredentialType string `json:"credentialType"`
	OfficialEmail  string `json:"officialEmail,omitempty"`
	Username       string `json:"username,omitempty"`
	AccountURL     string `json:"accountUrl,omitempty"`
	Description    string `json:"description,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
	IsActive       bool   `json:"isActive"`
	CreatedAt      string `json:"createdAt"`
}

type RevealResponse struct {
	UUID     string `json:"uuid"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func mapToResponse(cr *Credential) CredentialResponse {
	return CredentialResponse{
		UUID:           cr.UUID.String(),
		UserID:         cr.UserID,
		CredentialType: cr.CredentialType,
		OfficialEmail:  cr.OfficialEmail,
		Username:       cr.Username,
		AccountURL:     cr.AccountURL,
		Description:    cr.Description,
		ExpiryDate:     formatDate(cr.ExpiryDate),
		IsActive:       cr.IsActive,
		CreatedAt:      cr.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(credentials []Credential) []CredentialResponse {
	out := make([]CredentialResponse, 0, len(credentials))
	for i := range credentials {
		out = append(out, mapToResponse(&credentials[i]))
	}
	return out
}
