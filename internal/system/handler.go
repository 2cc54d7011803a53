package system

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"biocard-backend/internal/profiles"
	"biocard-backend/internal/shared/server/middleware"
	"biocard-backend/internal/shared/server/respond"
)

// Handler serves operational endpoints: liveness and storage usage.
type Handler struct {
	Profiles *profiles.Service
	Env      string
}

// NewHandler constructs a Handler.
func NewHandler(profilesSvc *profiles.Service, env string) *Handler {
	return &Handler{Profiles: profilesSvc, Env: env}
}

// RegisterPublicRoutes wires the health check.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

// RegisterProtectedRoutes wires the authenticated system endpoints.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/system/storage", h.storage)
}

func (h *Handler) health(c *gin.Context) {
	respond.OK(c, gin.H{"status": "ok", "env": h.Env})
}

func (h *Handler) storage(c *gin.Context) {
	ownerID, err := uuid.Parse(middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	stats, err := h.Profiles.StorageStats(c.Request.Context(), ownerID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read storage stats", nil)
		return
	}

	respond.OK(c, gin.H{
		"totalBytes": stats.TotalBytes,
		"blobCount":  stats.BlobCount,
	})
}
