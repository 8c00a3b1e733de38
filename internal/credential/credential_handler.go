package credential

import (
	"net/http"

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
	var req CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	cr, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(cr)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	cr, err := h.service.GetByUUID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(cr)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "userUuid")
	if !ok {
		return
	}

	credentials, err := h.service.ListByUser(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(credentials), nil)
}

func (h *Handler) ListByType(c *gin.Context) {
	id, ok := parseUUIDParam(c, "userUuid")
	if !ok {
		return
	}

	credentials, err := h.service.ListByType(c.Request.Context(), id, c.Param("type"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(credentials), nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	var req UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	cr, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(cr)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reveal(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	plaintext, cr, err := h.service.Reveal(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, RevealResponse{
		UUID:     cr.UUID.String(),
		Username: cr.Username,
		Password: plaintext,
	}, nil)
}

func (h *Handler) Rotate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	var req RotateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	cr, err := h.service.Rotate(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(cr)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	cr, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(cr)
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

	credentials, err := h.service.ExpiringSoon(c.Request.Context(), q.Days)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(credentials), nil)
}
