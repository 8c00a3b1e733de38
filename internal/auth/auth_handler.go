package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

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

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	token, u, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", token, int(TokenTTL.Seconds()), "/", "", false, true)

	response.Success(c, http.StatusOK, LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(TokenTTL.Seconds()),
		User:        mapToProfile(u),
	}, nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToProfile(u)
	response.Success(c, http.StatusCreated, resp, nil)
}

// Logout clears the cookie. Tokens stay valid until expiry since there is
// no server-side session store.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", "", -1, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{"loggedOut": true}, nil)
}

func (h *Handler) GetProfile(c *gin.Context) {
	u, err := h.service.GetProfile(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToProfile(u)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), middleware.CallerID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToProfile(u)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateProfilePicture(c *gin.Context) {
	file, err := c.FormFile("picture")
	if err != nil {
		writeServiceError(c, apperror.RequiredField("picture"))
		return
	}

	u, err := h.service.UpdateProfilePicture(c.Request.Context(), middleware.CallerID(c), file)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := mapToProfile(u)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), middleware.CallerID(c), req.Password); err != nil {
		writeServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", "", -1, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
