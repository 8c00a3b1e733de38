package contract

import "time"

type CreateContractRequest struct {
	UserUUID          string `json:"userUuid" binding:"required,uuid"`
	EmployeeStatus    string `json:"employeeStatus" binding:"required,oneof=EMPLOYEED TERMINATED RESIGNED ON_LEAVE PROBATION"`
	JobType           string `json:"jobType" binding:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP FREELANCE"`
	Department        string `json:"department,omitempty"`
	Designation       string `json:"designation,omitempty"`
	Position          string `json:"position,omitempty"`
	ReportingHr       string `json:"reportingHr,omitempty"`
	ReportingManager  string `json:"reportingManager,omitempty"`
	ReportingTeamLead string `json:"reportingTeamLead,omitempty"`
	JoiningDate       string `json:"joiningDate" binding:"required"`
	ContractStart     string `json:"contractStart" binding:"required"`
	ContractEnd       string `json:"contractEnd,omitempty"`
	Shift             string `json:"shift,omitempty" binding:"omitempty,oneof=MORNING EVENING NIGHT ROTATIONAL"`
	WorkLocation      string `json:"workLocation,omitempty" binding:"omitempty,oneof=ON_SITE REMOTE HYBRID"`
}

type UpdateContractRequest struct {
	EmployeeStatus    *string `json:"employeeStatus,omitempty" binding:"omitempty,oneof=EMPLOYEED TERMINATED RESIGNED ON_LEAVE PROBATION"`
	JobType           *string `json:"jobType,omitempty" binding:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP FREELANCE"`
	Department        *string `json:"department,omitempty"`
	Designation       *string `json:"designation,omitempty"`
	Position          *string `json:"position,omitempty"`
	ReportingHr       *string `json:"reportingHr,omitempty"`
	ReportingManager  *string `json:"reportingManager,omitempty"`
	ReportingTeamLead *string `json:"reportingTeamLead,omitempty"`
	ContractStart     *string `json:"contractStart,omitempty"`
	ContractEnd       *string `json:"contractEnd,omitempty"`
	Shift             *string `json:"shift,omitempty" binding:"omitempty,oneof=MORNING EVENING NIGHT ROTATIONAL"`
	WorkLocation      *string `json:"workLocation,omitempty" binding:"omitempty,oneof=ON_SITE REMOTE HYBRID"`
}

type TerminateContractRequest struct {
	TerminationDate string `json:"terminationDate,omitempty"`
}

type ExpiringQuery struct {
	Days int `form:"days,default=30" binding:"omitempty,min=1,max=365"`
}

type ContractResponse struct {
	UUID              string `json:"uuid"`
	UserID            uint   `json:"userId"`
	EmployeeStatus    string `json:"employeeStatus"`
	JobType           string `json:"jobType"`
	Department        string `json:"department,omitempty"`
	Designation       string `json:"designation,omitempty"`
	Position          string `json:"position,omitempty"`
	ReportingHr       string `json:"reportingHr,omitempty"`
	ReportingManager  string `json:"reportingManager,omitempty"`
	ReportingTeamLead string `json:"reportingTeamLead,omitempty"`
	JoiningDate       string `json:"joiningDate"`
	ContractStart     string `json:"contractStart"`
	ContractEnd       string `json:"contractEnd,omitempty"`
	Shift             string `json:"shift,omitempty"`
	WorkLocation      string `json:"workLocation"`
	IsActive          bool   `json:"isActive"`
	CreatedAt         string `json:"createdAt"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func mapToResponse(ct *Contract) ContractResponse {
	return ContractResponse{
		UUID:              ct.UUID.String(),
		UserID:            ct.UserID,
		EmployeeStatus:    ct.EmployeeStatus,
		JobType:           ct.JobType,
		Department:        ct.Department,
		Designation:       ct.Designation,
		Position:          ct.Position,
		ReportingHr:       ct.ReportingHr,
		ReportingManager:  ct.ReportingManager,
		ReportingTeamLead: ct.ReportingTeamLead,
		JoiningDate:       ct.JoiningDate.Format("2006-01-02"),
		ContractStart:     ct.ContractStart.Format("2006-01-02"),
		ContractEnd:       formatDate(ct.ContractEnd),
		Shift:             ct.Shift,
		WorkLocation:      ct.WorkLocation,
		IsActive:          ct.IsActive,
		CreatedAt:         ct.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(contracts []Contract) []ContractResponse {
	out := make([]ContractResponse, 0, len(contracts))
	for i := range contracts {
		out = append(out, mapToResponse(&contracts[i]))
	}
	return out
}
