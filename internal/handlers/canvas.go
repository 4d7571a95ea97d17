package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slidekit/carousel-backend/internal/domain"
	errs "github.com/slidekit/carousel-backend/internal/pkg/errors"
	"github.com/slidekit/carousel-backend/internal/platform/logger"
	"github.com/slidekit/carousel-backend/internal/services"
)

type CanvasHandler struct {
	log           *logger.Logger
	renderService services.RenderService
	exportService services.ExportService
}

func NewCanvasHandler(log *logger.Logger, rsvc services.RenderService, esvc services.ExportService) *CanvasHandler {
	return &CanvasHandler{
		log:           log.With("handler", "CanvasHandler"),
		renderService: rsvc,
		exportService: esvc,
	}
}

type renderRequest struct {
	Slide          domain.Slide `json:"slide"`
	GrainIntensity int          `json:"grainIntensity"`
}

// POST /api/canvas/render
// Renders one slide and returns the raw PNG bytes.
func (h *CanvasHandler) RenderSlide(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	png, err := h.renderService.RenderSlide(c.Request.Context(), req.Slide, domain.ClampGrainIntensity(req.GrainIntensity))
	if err != nil {
		h.log.Error("slide render failed", "slide", req.Slide.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "render_failed", errors.New("render failed"))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

type exportRequest struct {
	Slides         []domain.Slide `json:"slides"`
	Title          string         `json:"title"`
	GrainIntensity int            `json:"grainIntensity"`
}

// POST /api/canvas/export
// Renders all slides and returns one ZIP archive.
func (h *CanvasHandler) ExportCarousel(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	archive, err := h.exportService.ExportCarousel(
		c.Request.Context(),
		req.Slides,
		domain.ClampGrainIntensity(req.GrainIntensity),
		req.Title,
	)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidArgument) {
			RespondError(c, http.StatusBadRequest, "invalid_argument", err)
			return
		}
		h.log.Error("carousel export failed", "slides", len(req.Slides), "error", err)
		RespondError(c, http.StatusInternalServerError, "render_failed", errors.New("render failed"))
		return
	}
	prefix := services.SafeNamingPrefix(req.Title)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", prefix+".zip"))
	c.Header("X-Slide-Count", fmt.Sprintf("%d", len(req.Slides)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/zip", archive)
}
