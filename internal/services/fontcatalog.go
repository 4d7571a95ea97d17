package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/slidekit/carousel-backend/internal/domain"
	"github.com/slidekit/carousel-backend/internal/platform/logger"
)

type FontClass string

const (
	FontClassDisplay FontClass = "display"
	FontClassBody    FontClass = "body"
)

// FontOption is one entry of the fixed family catalog the editor
// offers. The catalog only drives pickers and defaults; unknown
// families elsewhere fail soft through the resolution fallback.
type FontOption struct {
	Family string    `json:"family" yaml:"family"`
	Label  string    `json:"label" yaml:"label"`
	Class  FontClass `json:"class" yaml:"class"`
}

// DefaultFamilyByKind mirrors the editor's per-kind font defaults.
var DefaultFamilyByKind = map[domain.ElementKind]string{
	domain.KindHeader:   "Playfair Display",
	domain.KindSubtitle: "Inter",
	domain.KindBody:     "Inter",
	domain.KindTag:      "Montserrat",
}

var defaultFontCatalog = []FontOption{
	{Family: "Playfair Display", Label: "Playfair Display", Class: FontClassDisplay},
	{Family: "Cormorant Garamond", Label: "Cormorant Garamond", Class: FontClassDisplay},
	{Family: "Bebas Neue", Label: "Bebas Neue", Class: FontClassDisplay},
	{Family: "Cinzel", Label: "Cinzel", Class: FontClassDisplay},
	{Family: "Abril Fatface", Label: "Abril Fatface", Class: FontClassDisplay},
	{Family: "DM Serif Display", Label: "DM Serif Display", Class: FontClassDisplay},
	{Family: "Josefin Sans", Label: "Josefin Sans", Class: FontClassDisplay},
	{Family: "Raleway", Label: "Raleway", Class: FontClassDisplay},
	{Family: "Great Vibes", Label: "Great Vibes", Class: FontClassDisplay},
	{Family: "Inter", Label: "Inter", Class: FontClassBody},
	{Family: "Poppins", Label: "Poppins", Class: FontClassBody},
	{Family: "Montserrat", Label: "Montserrat", Class: FontClassBody},
	{Family: "DM Sans", Label: "DM Sans", Class: FontClassBody},
	{Family: "Lato", Label: "Lato", Class: FontClassBody},
	{Family: "Nunito", Label: "Nunito", Class: FontClassBody},
	{Family: "Lora", Label: "Lora", Class: FontClassBody},
	{Family: "Source Sans 3", Label: "Source Sans 3", Class: FontClassBody},
}

// LoadFontCatalog parses a YAML catalog file.
func LoadFontCatalog(path string) ([]FontOption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font catalog: %w", err)
	}
	var catalog []FontOption
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse font catalog: %w", err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("font catalog %s is empty", path)
	}
	return catalog, nil
}

// FontCatalogFromEnv loads the catalog from FONT_CATALOG_PATH when set,
// falling back to the built-in catalog on any problem.
func FontCatalogFromEnv(log *logger.Logger) []FontOption {
	path := strings.TrimSpace(os.Getenv("FONT_CATALOG_PATH"))
	if path == "" {
		return defaultFontCatalog
	}
	catalog, err := LoadFontCatalog(path)
	if err != nil {
		log.Warn("falling back to builtin font catalog", "path", path, "error", err)
		return defaultFontCatalog
	}
	log.Info("loaded font catalog", "path", path, "families", len(catalog))
	return catalog
}
