package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/slidekit/carousel-backend/internal/platform/logger"
	"github.com/slidekit/carousel-backend/internal/services"
)

type FontHandler struct {
	log     *logger.Logger
	catalog []services.FontOption
}

func NewFontHandler(log *logger.Logger, catalog []services.FontOption) *FontHandler {
	return &FontHandler{
		log:     log.With("handler", "FontHandler"),
		catalog: catalog,
	}
}

// GET /api/fonts
func (h *FontHandler) ListFonts(c *gin.Context) {
	RespondOK(c, gin.H{"fonts": h.catalog})
}
