package history

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"video-seo-backend/internal/shared/server/respond"
	"video-seo-backend/internal/shared/telemetry"
)

const maxListLimit = 100

// Handler exposes analysis history over HTTP.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.list)
	rg.DELETE("/history", h.clear)
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}
	if limit == 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	if v := c.Query("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "offset must be a non-negative integer", nil)
			return
		}
		offset = parsed
	}

	entries, err := h.Repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list history", nil)
		return
	}

	respond.OK(c, gin.H{
		"items":  entries,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) clear(c *gin.Context) {
	n, err := h.Repo.Clear(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to clear history", nil)
		return
	}
	telemetry.Info("history.cleared", map[string]any{"removed": n})
	respond.OK(c, gin.H{"message": "History cleared", "cleared": n})
}
