package contract

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		writeServiceError(c, apperror.InvalidField(name))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	ct, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(ct)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	ct, err := h.service.GetByUUID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(ct)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "userUuid")
	if !ok {
		return
	}

	contracts, err := h.service.ListByUser(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(contracts), nil)
}

func (h *Handler) GetActive(c *gin.Context) {
	id, ok := parseUUIDParam(c, "userUuid")
	if !ok {
		return
	}

	ct, err := h.service.GetActive(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(ct)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	var req UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	ct, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(ct)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Terminate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	// Body is optional; termination date defaults to today.
	var req TerminateContractRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	var terminationDate *time.Time
	if req.TerminationDate != "" {
		t, err := time.Parse("2006-01-02", req.TerminationDate)
		if err != nil {
			writeServiceError(c, apperror.InvalidField("terminationDate"))
			return
		}
		terminationDate = &t
	}

	ct, err := h.service.Terminate(c.Request.Context(), id, terminationDate)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(ct)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) ExpiringSoon(c *gin.Context) {
	var q ExpiringQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	contracts, err := h.service.ExpiringSoon(c.Request.Context(), q.Days)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(contracts), nil)
}
