package analyses

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"video-seo-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyze", h.analyze)
	rg.POST("/analyze-custom", h.analyzeCustom)
	rg.GET("/clear-cache", h.clearCache)
	rg.GET("/models", h.listModels)
}

func (h *Handler) analyze(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "keyword is required", []map[string]string{
			{"field": "keyword", "issue": "required"},
		})
		return
	}

	result, err := h.Svc.Analyze(c.Request.Context(), keyword, Options{Model: c.Query("model")})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) analyzeCustom(c *gin.Context) {
	var req CustomContent
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.AnalyzeCustom(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) clearCache(c *gin.Context) {
	n := h.Svc.ClearCache()
	respond.OK(c, gin.H{"message": "Cache cleared", "cleared": n})
}

func (h *Handler) listModels(c *gin.Context) {
	respond.OK(c, gin.H{
		"default": h.Svc.Models.Default,
		"models":  h.Svc.Models.List(),
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidKeyword):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), []map[string]string{
			{"field": "keyword", "issue": "required"},
		})
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed: "+err.Error(), nil)
	}
}
