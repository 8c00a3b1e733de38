package auth

import (
	"time"

	"github.com/roshaanmaqsood02/btms-api/internal/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	CurrentPassword string  `json:"currentPassword,omitempty"`
	NewPassword     string  `json:"newPassword,omitempty" binding:"omitempty,min=8"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

type ProfileResponse struct {
	UUID           string   `json:"uuid"`
	EmployeeID     string   `json:"employeeId"`
	AttendanceID   string   `json:"attendanceId"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	Phone          string   `json:"phone,omitempty"`
	Address        string   `json:"address,omitempty"`
	Projects       []string `json:"projects"`
	Positions      []string `json:"positions"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
	CreatedAt      string   `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken string          `json:"accessToken"`
	ExpiresIn   int64           `json:"expiresIn"`
	User        ProfileResponse `json:"user"`
}

func mapToProfile(u *user.User) ProfileResponse {
	return ProfileResponse{
		UUID:           u.UUID.String(),
		EmployeeID:     u.EmployeeID,
		AttendanceID:   u.AttendanceID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Phone:          u.Phone,
		Address:        u.Address,
		Projects:       u.Projects,
		Positions:      u.Positions,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}
