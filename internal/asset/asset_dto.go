package asset

import "time"

type AssignAssetRequest struct {
	UserUUID     string `json:"userUuid" binding:"required,uuid"`
	Type         string `json:"type" binding:"required"`
	AssetName    string `json:"assetName" binding:"required"`
	Company      string `json:"company,omitempty"`
	Model        string `json:"model,omitempty"`
	SerialNumber string `json:"serialNumber" binding:"required"`
	ScreenSize   string `json:"screenSize,omitempty"`
	CPU          string `json:"cpu,omitempty"`
	GPU          string `json:"gpu,omitempty"`
	RAM          string `json:"ram,omitempty"`
	MACAddress   string `json:"macAddress,omitempty"`
	Storage      string `json:"storage,omitempty"`
	AssetTag     string `json:"assetTag,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type UpdateAssetRequest struct {
	Type         *string `json:"type,omitempty"`
	AssetName    *string `json:"assetName,omitempty"`
	Company      *string `json:"company,omitempty"`
	Model        *string `json:"model,omitempty"`
	SerialNumber *string `json:"serialNumber,omitempty"`
	ScreenSize   *string `json:"screenSize,omitempty"`
	CPU          *string `json:"cpu,omitempty"`
	GPU          *string `json:"gpu,omitempty"`
	RAM          *string `json:"ram,omitempty"`
	MACAddress   *string `json:"macAddress,omitempty"`
	Storage      *string `json:"storage,omitempty"`
	AssetTag     *string `json:"assetTag,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=ASSIGNED RETURNED UNDER_REPAIR LOST DAMAGED"`
}

type ReturnAssetRequest struct {
	ReturnNotes string `json:"returnNotes,omitempty"`
}

type SearchAssetsQuery struct {
	Q string `form:"q" binding:"required"`
}

type AssetResponse struct {
	UUID         string `json:"uuid"`
	UserID       uint   `json:"userId"`
	Type         string `json:"type"`
	AssetName    string `json:"assetName"`
	Company      string `json:"company,omitempty"`
	Model        string `json:"model,omitempty"`
	SerialNumber string `json:"serialNumber"`
	ScreenSize   string `json:"screenSize,omitempty"`
	CPU          string `json:"cpu,omitempty"`
	GPU          string `json:"gpu,omitempty"`
	RAM          string `json:"ram,omitempty"`
	MACAddress   string `json:"macAddress,omitempty"`
	Storage      string `json:"storage,omitempty"`
	AssetTag     string `json:"assetTag,omitempty"`
	Status       string `json:"status"`
	AssignedDate string `json:"assignedDate,omitempty"`
	ReturnDate   string `json:"returnDate,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func mapToResponse(a *Asset) AssetResponse {
	return AssetResponse{
		UUID:         a.UUID.String(),
		UserID:       a.UserID,
		Type:         a.Type,
		AssetName:    a.AssetName,
		Company:      a.Company,
		Model:        a.Model,
		SerialNumber: a.SerialNumber,
		ScreenSize:   a.ScreenSize,
		CPU:          a.CPU,
		GPU:          a.GPU,
		RAM:          a.RAM,
		MACAddress:   a.MACAddress,
		Storage:      a.Storage,
		AssetTag:     a.AssetTag,
		Status:       a.Status,
		AssignedDate: formatTime(a.AssignedDate),
		ReturnDate:   formatTime(a.ReturnDate),
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(assets []Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, mapToResponse(&assets[i]))
	}
	return out
}
