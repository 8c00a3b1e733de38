package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/roshaanmaqsood02/btms-api/internal/authz"
	"github.com/roshaanmaqsood02/btms-api/internal/middleware"
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

func parseUUIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		writeServiceError(c, apperror.InvalidField("uuid"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	u, err := h.service.Create(c.Request.Context(), authz.Role(middleware.CallerRole(c)), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(u)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var q ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	users, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, q.Page, q.Limit)
	response.Success(c, http.StatusOK, mapToListResponse(users), &meta)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}

	// Anyone may read their own record; everyone else needs read access.
	if id.String() != c.GetString(middleware.CtxUserUUID) {
		role := authz.Role(middleware.CallerRole(c))
		if decision := authz.Decide(role, authz.ActionResourceRead, ""); !decision.Allowed {
			writeServiceError(c, apperror.Forbidden(decision.Reason))
			return
		}
	}

	u, err := h.service.GetByUUID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(u)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	u, err := h.service.Update(
		c.Request.Context(),
		middleware.CallerID(c),
		authz.Role(middleware.CallerRole(c)),
		id,
		req,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(u)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ChangeRole(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	u, err := h.service.ChangeRole(
		c.Request.Context(),
		middleware.CallerID(c),
		authz.Role(middleware.CallerRole(c)),
		id,
		req.Role,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(u)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}

	err := h.service.Delete(
		c.Request.Context(),
		middleware.CallerID(c),
		authz.Role(middleware.CallerRole(c)),
		id,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Options(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, options, nil)
}

func (h *Handler) UpdatePicture(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}

	file, err := c.FormFile("picture")
	if err != nil {
		writeServiceError(c, apperror.RequiredField("picture"))
		return
	}

	u, err := h.service.UpdatePicture(
		c.Request.Context(),
		middleware.CallerID(c),
		authz.Role(middleware.CallerRole(c)),
		id,
		file,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToResponse(u)
	response.Success(c, http.StatusOK, resp, nil)
}
