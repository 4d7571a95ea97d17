package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/slidekit/carousel-backend/internal/domain"
	errs "github.com/slidekit/carousel-backend/internal/pkg/errors"
	"github.com/slidekit/carousel-backend/internal/platform/logger"
)

const (
	// MaxExportSlides caps one export; more is a caller error, checked
	// before any rendering work starts.
	MaxExportSlides = 20

	defaultNamingPrefix = "carousel"
)

type ExportService interface {
	// ExportCarousel renders the slides in order and packs them into
	// one ZIP archive named {prefix}-slide-{i}.png. A failed slide
	// aborts the whole export.
	ExportCarousel(ctx context.Context, slides []domain.Slide, grainIntensity int, title string) ([]byte, error)
}

type exportService struct {
	log    *logger.Logger
	render RenderService
}

func NewExportService(log *logger.Logger, render RenderService) ExportService {
	return &exportService{
		log:    log.With("service", "ExportService"),
		render: render,
	}
}

func (s *exportService) ExportCarousel(ctx context.Context, slides []domain.Slide, grainIntensity int, title string) ([]byte, error) {
	ctx, span := otel.Tracer("carousel-backend").Start(ctx, "ExportCarousel")
	defer span.End()
	span.SetAttributes(attribute.Int("export.slides", len(slides)))

	if len(slides) == 0 {
		return nil, fmt.Errorf("no slides to export: %w", errs.ErrInvalidArgument)
	}
	if len(slides) > MaxExportSlides {
		return nil, fmt.Errorf("too many slides (%d, max %d): %w", len(slides), MaxExportSlides, errs.ErrInvalidArgument)
	}

	prefix := SafeNamingPrefix(title)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, slide := range slides {
		png, err := s.render.RenderSlide(ctx, slide, grainIntensity)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("render slide %d: %w", i+1, err)
		}
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:   fmt.Sprintf("%s-slide-%d.png", prefix, i+1),
			Method: zip.Deflate,
		})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("create archive entry %d: %w", i+1, err)
		}
		if _, err := f.Write(png); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write archive entry %d: %w", i+1, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	s.log.Info("carousel exported", "slides", len(slides), "prefix", prefix, "bytes", buf.Len())
	return buf.Bytes(), nil
}

// SafeNamingPrefix reduces a user-supplied title to [a-z0-9_-],
// replacing everything else with '-'. Empty or whitespace titles get a
// fixed default.
func SafeNamingPrefix(title string) string {
	t := strings.TrimSpace(title)
	if t == "" {
		return defaultNamingPrefix
	}
	var b strings.Builder
	for _, r := range strings.ToLower(t) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return defaultNamingPrefix
	}
	return out
}
