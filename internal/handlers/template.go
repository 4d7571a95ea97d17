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

type TemplateHandler struct {
	log           *logger.Logger
	exportService services.ExportService
}

func NewTemplateHandler(log *logger.Logger, esvc services.ExportService) *TemplateHandler {
	return &TemplateHandler{
		log:           log.With("handler", "TemplateHandler"),
		exportService: esvc,
	}
}

type templateSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SlideCount  int    `json:"slideCount"`
}

// GET /api/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates := domain.BuiltinTemplates()
	out := make([]templateSummary, 0, len(templates))
	for _, t := range templates {
		out = append(out, templateSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			SlideCount:  len(t.Slides),
		})
	}
	RespondOK(c, gin.H{"templates": out})
}

type elementDescription struct {
	Kind        domain.ElementKind `json:"type"`
	CurrentText string             `json:"currentText"`
	FontSizePx  int                `json:"fontSize"`
	YPercent    float64            `json:"position_y_percent"`
	Align       domain.TextAlign   `json:"align"`
	Locked      bool               `json:"locked"`
	Note        string             `json:"note"`
}

type slideDescription struct {
	SlideIndex  int                  `json:"slideIndex"`
	AspectRatio domain.AspectRatio   `json:"aspectRatio"`
	Background  domain.BackgroundKind `json:"background"`
	Elements    []elementDescription `json:"elements"`
}

// GET /api/templates/:id
// Describes the template's structure so a caller knows which elements
// exist on each slide before filling them in with overrides.
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tpl, ok := domain.BuiltinTemplate(c.Param("id"))
	if !ok {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("template %q: %w", c.Param("id"), errs.ErrNotFound))
		return
	}
	slides := make([]slideDescription, 0, len(tpl.Slides))
	for i, slide := range tpl.Slides {
		desc := slideDescription{
			SlideIndex:  i,
			AspectRatio: slide.AspectRatio,
			Background:  slide.Background.Kind,
		}
		for _, el := range slide.Elements {
			desc.Elements = append(desc.Elements, elementDescription{
				Kind:        el.Kind,
				CurrentText: el.Text,
				FontSizePx:  el.FontSizePx,
				YPercent:    el.YPercent,
				Align:       el.Align,
				Locked:      el.Locked,
				Note:        fmt.Sprintf(`Override with textOverrides: {"slideIndex": %d, "elementType": %q, "text": "..."}`, i, el.Kind),
			})
		}
		slides = append(slides, desc)
	}
	RespondOK(c, gin.H{
		"id":          tpl.ID,
		"name":        tpl.Name,
		"description": tpl.Description,
		"slideCount":  len(tpl.Slides),
		"slides":      slides,
	})
}

type templateExportRequest struct {
	Title          string                `json:"title"`
	TextOverrides  []domain.TextOverride `json:"textOverrides"`
	GrainIntensity int                   `json:"grainIntensity"`
}

// POST /api/templates/:id/export
// Instantiates a template, applies text overrides, renders everything
// and returns a ZIP.
func (h *TemplateHandler) ExportFromTemplate(c *gin.Context) {
	tpl, ok := domain.BuiltinTemplate(c.Param("id"))
	if !ok {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("template %q: %w", c.Param("id"), errs.ErrNotFound))
		return
	}
	var req templateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	slides := domain.ApplyTextOverrides(tpl.Slides, req.TextOverrides)
	slides = domain.CloneSlides(slides)

	archive, err := h.exportService.ExportCarousel(
		c.Request.Context(),
		slides,
		domain.ClampGrainIntensity(req.GrainIntensity),
		req.Title,
	)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidArgument) {
			RespondError(c, http.StatusBadRequest, "invalid_argument", err)
			return
		}
		h.log.Error("template export failed", "template", tpl.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "render_failed", errors.New("render failed"))
		return
	}
	prefix := services.SafeNamingPrefix(req.Title)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", prefix+".zip"))
	c.Header("X-Slide-Count", fmt.Sprintf("%d", len(slides)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/zip", archive)
}
