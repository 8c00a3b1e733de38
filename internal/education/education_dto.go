package education

import "time"

type CreateEducationRequest struct {
	UserUUID  string `json:"userUuid" binding:"required,uuid"`
	Degree    string `json:"degree" binding:"required"`
	Institute string `json:"institute" binding:"required"`
	StartYear int    `json:"startYear" binding:"required,min=1950,max=2100"`
	EndYear   int    `json:"endYear" binding:"required,min=1950,max=2100"`
	Grade     string `json:"grade,omitempty"`
}

type UpdateEducationRequest struct {
	Degree    *string `json:"degree,omitempty"`
	Institute *string `json:"institute,omitempty"`
	StartYear *int    `json:"startYear,omitempty" binding:"omitempty,min=1950,max=2100"`
	EndYear   *int    `json:"endYear,omitempty" binding:"omitempty,min=1950,max=2100"`
	Grade     *string `json:"grade,omitempty"`
}

type ListEducationQuery struct {
	Degree string `form:"degree"`
}

type EducationResponse struct {
	UUID      string `json:"uuid"`
	UserID    uint   `json:"userId"`
	Degree    string `json:"degree"`
	Institute string `json:"institute"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
	Grade     string `json:"grade,omitempty"`
	IsCurrent bool   `json:"isCurrent"`
	CreatedAt string `json:"createdAt"`
}

func mapToResponse(e *Education) EducationResponse {
	return EducationResponse{
		UUID:      e.UUID.String(),
		UserID:    e.UserID,
		Degree:    e.Degree,
		Institute: e.Institute,
		StartYear: e.StartYear,
		EndYear:   e.EndYear,
		Grade:     e.Grade,
		IsCurrent: e.IsCurrent,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(records []Education) []EducationResponse {
	out := make([]EducationResponse, 0, len(records))
	for i := range records {
		out = append(out, mapToResponse(&records[i]))
	}
	return out
}
