package profiles

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"biocard-backend/internal/assets"
	"biocard-backend/internal/shared/server/middleware"
	"biocard-backend/internal/shared/server/respond"
)

const maxUpdateSize = 32 << 20 // whole document incl. inline images

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches unauthenticated profile routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:username", h.get)
}

// RegisterProtectedRoutes attaches routes requiring the auth middleware.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/users/:username", h.update)
}

func (h *Handler) get(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username is required", nil)
		return
	}

	profile, err := h.Svc.Get(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}

	respond.OK(c, profile)
}

func (h *Handler) update(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if !strings.EqualFold(username, middleware.UsernameFromContext(c)) {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "token does not match username", nil)
		return
	}

	ownerID, err := uuid.Parse(middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid caller identity", nil)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUpdateSize)
	var candidate Profile
	if err := c.ShouldBindJSON(&candidate); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.Update(c.Request.Context(), ownerID, candidate); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		case errors.Is(err, assets.ErrImageRequired):
			respond.Error(c, http.StatusBadRequest, "image_required", err.Error(), nil)
		case errors.Is(err, assets.ErrDisallowedMimeType):
			respond.Error(c, http.StatusBadRequest, "disallowed_mime_type", err.Error(), nil)
		case errors.Is(err, assets.ErrPayloadTooLarge):
			respond.Error(c, http.StatusBadRequest, "payload_too_large", err.Error(), nil)
		case errors.Is(err, assets.ErrMalformedPayload), errors.Is(err, assets.ErrMalformedReference):
			respond.Error(c, http.StatusBadRequest, "malformed_payload", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "profile update failed", nil)
		}
		return
	}

	respond.OK(c, gin.H{"success": true})
}
