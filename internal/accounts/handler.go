package accounts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"biocard-backend/internal/shared/server/middleware"
	"biocard-backend/internal/shared/server/respond"
)

// Handler exposes account endpoints over HTTP.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Type     string `json:"type"`
}

type tokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Type     string `json:"type"`
}

// RegisterPublicRoutes wires signup and signin.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/signup", h.signup)
	r.POST("/auth/signin", h.signin)
}

// RegisterProtectedRoutes wires the authenticated account endpoints.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/auth/validate", h.validate)
	r.DELETE("/auth/account", h.deleteSelf)

	admin := r.Group("/admin", h.requireAdmin)
	admin.GET("/accounts", h.list)
	admin.POST("/accounts", h.adminCreate)
	admin.DELETE("/accounts/:username", h.adminDelete)
}

func (h *Handler) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "username and password are required", nil)
		return
	}

	acct, err := h.Service.Signup(c.Request.Context(), req.Username, req.Password, req.Type)
	switch {
	case errors.Is(err, ErrUsernameTaken):
		respond.Error(c, http.StatusConflict, "username_taken", "username already taken", nil)
		return
	case errors.Is(err, ErrInvalidAccountType):
		respond.Error(c, http.StatusBadRequest, "invalid_account_type", "account type must be user or admin", nil)
		return
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusBadRequest, "invalid_request", "username and password are required", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create account", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, tokenResponse{
		Token:    acct.Token,
		Username: acct.Username,
		Type:     acct.Type,
	})
}

func (h *Handler) signin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "username and password are required", nil)
		return
	}

	acct, err := h.Service.Signin(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign in", nil)
		return
	}

	respond.OK(c, tokenResponse{
		Token:    acct.Token,
		Username: acct.Username,
		Type:     acct.Type,
	})
}

func (h *Handler) validate(c *gin.Context) {
	respond.OK(c, gin.H{
		"username": middleware.UsernameFromContext(c),
		"type":     middleware.UserTypeFromContext(c),
	})
}

func (h *Handler) deleteSelf(c *gin.Context) {
	id, err := uuid.Parse(middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	err = h.Service.DeleteSelf(c.Request.Context(), id)
	switch {
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "this account cannot be deleted", nil)
		return
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "account not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete account", nil)
		return
	}

	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) requireAdmin(c *gin.Context) {
	switch middleware.UserTypeFromContext(c) {
	case TypeAdmin, TypeRoot:
		c.Next()
	default:
		respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
	}
}

func (h *Handler) list(c *gin.Context) {
	summaries, err := h.Service.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list accounts", nil)
		return
	}
	respond.OK(c, gin.H{"accounts": summaries})
}

func (h *Handler) adminCreate(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "username and password are required", nil)
		return
	}

	acct, err := h.Service.Signup(c.Request.Context(), req.Username, req.Password, req.Type)
	switch {
	case errors.Is(err, ErrUsernameTaken):
		respond.Error(c, http.StatusConflict, "username_taken", "username already taken", nil)
		return
	case errors.Is(err, ErrInvalidAccountType):
		respond.Error(c, http.StatusBadRequest, "invalid_account_type", "account type must be user or admin", nil)
		return
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusBadRequest, "invalid_request", "username and password are required", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create account", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, Summary{Username: acct.Username, Type: acct.Type})
}

func (h *Handler) adminDelete(c *gin.Context) {
	requester := middleware.Identity{
		UserID:   middleware.UserIDFromContext(c),
		Username: middleware.UsernameFromContext(c),
		Type:     middleware.UserTypeFromContext(c),
	}

	err := h.Service.AdminDelete(c.Request.Context(), requester, c.Param("username"))
	switch {
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "this account cannot be deleted", nil)
		return
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "account not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete account", nil)
		return
	}

	respond.OK(c, gin.H{"success": true})
}
