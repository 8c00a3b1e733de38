package asset

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

func (h *Handler) Assign(c *gin.Context) {
	var req AssignAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	a, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(a)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	a, err := h.service.GetByUUID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(a)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "userUuid")
	if !ok {
		return
	}

	assets, err := h.service.ListByUser(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(assets), nil)
}

func (h *Handler) ListActive(c *gin.Context) {
	id, ok := parseUUIDParam(c, "userUuid")
	if !ok {
		return
	}

	assets, err := h.service.ListActive(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(assets), nil)
}

func (h *Handler) Search(c *gin.Context) {
	var q SearchAssetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	assets, err := h.service.Search(c.Request.Context(), q.Q)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(assets), nil)
}

func (h *Handler) ListByStatus(c *gin.Context) {
	assets, err := h.service.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(assets), nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(a)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Return(c *gin.Context) {
	id, ok := parseUUIDParam(c, "uuid")
	if !ok {
		return
	}

	// Body is optional on return.
	var req ReturnAssetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	a, err := h.service.Return(c.Request.Context(), id, req.ReturnNotes)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(a)
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
