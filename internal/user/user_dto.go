package user

import (
	"time"
)

type CreateUserRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8"`
	Role        string   `json:"role" binding:"required"`
	CNIC        *string  `json:"cnic,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Address     string   `json:"address,omitempty"`
	DateOfBirth string   `json:"dateOfBirth,omitempty"`
	JoiningDate string   `json:"joiningDate,omitempty"`
	Projects    []string `json:"projects,omitempty"`
	Positions   []string `json:"positions,omitempty"`
}

type UpdateUserRequest struct {
	Name        *string   `json:"name,omitempty"`
	CNIC        *string   `json:"cnic,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Address     *string   `json:"address,omitempty"`
	DateOfBirth *string   `json:"dateOfBirth,omitempty"`
	JoiningDate *string   `json:"joiningDate,omitempty"`
	Projects    *[]string `json:"projects,omitempty"`
	Positions   *[]string `json:"positions,omitempty"`

	// A role carried in the update body goes through the change-role gate,
	// never through the plain profile update. systemRole is the name older
	// clients send.
	Role       *string `json:"role,omitempty"`
	SystemRole *string `json:"systemRole,omitempty"`
}

// requestedRole returns the role carried in the body, if any.
func (r UpdateUserRequest) requestedRole() string {
	if r.Role != nil {
		return *r.Role
	}
	if r.SystemRole != nil {
		return *r.SystemRole
	}
	return ""
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type ListUsersQuery struct {
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Role   string `form:"role"`
}

type UserResponse struct {
	UUID           string   `json:"uuid"`
	EmployeeID     string   `json:"employeeId"`
	AttendanceID   string   `json:"attendanceId"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	CNIC           *string  `json:"cnic,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Address        string   `json:"address,omitempty"`
	DateOfBirth    string   `json:"dateOfBirth,omitempty"`
	JoiningDate    string   `json:"joiningDate,omitempty"`
	Projects       []string `json:"projects"`
	Positions      []string `json:"positions"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
	CreatedAt      string   `json:"createdAt"`
}

// UserOption is the trimmed shape used by frontend dropdowns.
type UserOption struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	EmployeeID string `json:"employeeId"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func mapToResponse(u *User) UserResponse {
	return UserResponse{
		UUID:           u.UUID.String(),
		EmployeeID:     u.EmployeeID,
		AttendanceID:   u.AttendanceID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		CNIC:           u.CNIC,
		Phone:          u.Phone,
		Address:        u.Address,
		DateOfBirth:    formatDate(u.DateOfBirth),
		JoiningDate:    formatDate(u.JoiningDate),
		Projects:       u.Projects,
		Positions:      u.Positions,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, mapToResponse(&users[i]))
	}
	return out
}

func mapToOptions(users []User) []UserOption {
	out := make([]UserOption, 0, len(users))
	for _, u := range users {
		out = append(out, UserOption{
			UUID:       u.UUID.String(),
			Name:       u.Name,
			EmployeeID: u.EmployeeID,
		})
	}
	return out
}
