package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/slidekit/carousel-backend/internal/domain"
	errs "github.com/slidekit/carousel-backend/internal/pkg/errors"
	"github.com/slidekit/carousel-backend/internal/platform/logger"
)

type stubRenderService struct {
	calls  int
	failOn int // 1-based slide index to fail at, 0 = never
}

func (s *stubRenderService) RenderSlide(ctx context.Context, slide domain.Slide, grainIntensity int) ([]byte, error) {
	s.calls++
	if s.failOn != 0 && s.calls == s.failOn {
		return nil, fmt.Errorf("no usable fonts: %w", errs.ErrRenderFailed)
	}
	return []byte(fmt.Sprintf("png-payload-%d", s.calls)), nil
}

func makeSlides(n int) []domain.Slide {
	slides := make([]domain.Slide, n)
	for i := range slides {
		slides[i] = domain.Slide{
			ID:          fmt.Sprintf("s%d", i+1),
			Background:  domain.SlideBackground{Kind: domain.BackgroundSolid, Color: "#000000"},
			AspectRatio: domain.AspectSquare,
		}
	}
	return slides
}

func TestExportCarouselBounds(t *testing.T) {
	cases := []struct {
		name   string
		slides int
	}{
		{"zero_slides", 0},
		{"too_many_slides", 21},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubRenderService{}
			svc := NewExportService(logger.NewNop(), stub)
			_, err := svc.ExportCarousel(context.Background(), makeSlides(tc.slides), 0, "t")
			if !errors.Is(err, errs.ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			if stub.calls != 0 {
				t.Errorf("rejected before work, but %d renders ran", stub.calls)
			}
		})
	}
}

func TestExportCarouselMaxSlides(t *testing.T) {
	stub := &stubRenderService{}
	svc := NewExportService(logger.NewNop(), stub)
	archive, err := svc.ExportCarousel(context.Background(), makeSlides(20), 30, "Launch")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 20 {
		t.Fatalf("entries = %d, want 20", len(zr.File))
	}
	for i, f := range zr.File {
		want := fmt.Sprintf("launch-slide-%d.png", i+1)
		if f.Name != want {
			t.Errorf("entry %d = %q, want %q", i, f.Name, want)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry: %v", err)
		}
		payload, _ := io.ReadAll(rc)
		rc.Close()
		if string(payload) != fmt.Sprintf("png-payload-%d", i+1) {
			t.Errorf("entry %d payload = %q (render order broken?)", i, payload)
		}
	}
}

func TestExportCarouselAbortsOnSlideFailure(t *testing.T) {
	stub := &stubRenderService{failOn: 2}
	svc := NewExportService(logger.NewNop(), stub)
	_, err := svc.ExportCarousel(context.Background(), makeSlides(5), 0, "t")
	if err == nil {
		t.Fatal("expected failure to propagate")
	}
	if !errors.Is(err, errs.ErrRenderFailed) {
		t.Errorf("err = %v, want wrapped ErrRenderFailed", err)
	}
	if stub.calls != 2 {
		t.Errorf("renders after failure = %d, want stop at 2", stub.calls)
	}
}

func TestSafeNamingPrefix(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"umlauts_and_dash", "Update KW 9 – Launch Day!", "update-kw-9---launch-day"},
		{"empty", "", "carousel"},
		{"whitespace", "   ", "carousel"},
		{"already_safe", "my_post-1", "my_post-1"},
		{"uppercased", "HELLO", "hello"},
		{"only_symbols", "!!!", "carousel"},
		{"inner_spaces", "a b", "a-b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeNamingPrefix(tc.title); got != tc.want {
				t.Errorf("SafeNamingPrefix(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}
