package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/slidekit/carousel-backend/internal/domain"
	errs "github.com/slidekit/carousel-backend/internal/pkg/errors"
	"github.com/slidekit/carousel-backend/internal/platform/logger"
)

// stubFontService avoids the network entirely.
type stubFontService struct {
	entries []FontEntry
}

func (s stubFontService) ResolveFont(ctx context.Context, family string, weight int) []byte {
	return nil
}

func (s stubFontService) ResolveFontSet(ctx context.Context, elements []domain.TextElement) []FontEntry {
	return s.entries
}

func newTestRenderService(t *testing.T, entries []FontEntry) RenderService {
	t.Helper()
	log := logger.NewNop()
	return NewRenderService(log, stubFontService{entries: entries}, NewGrainService(log))
}

func offlineFontSet() []FontEntry {
	return []FontEntry{{Family: FallbackFontFamily, Weight: 400, Data: goregular.TTF}}
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode rendered png: %v", err)
	}
	return img
}

func TestRenderSlideEndToEnd(t *testing.T) {
	svc := newTestRenderService(t, offlineFontSet())
	slide := domain.Slide{
		ID:          "s1",
		Background:  domain.SlideBackground{Kind: domain.BackgroundSolid, Color: "#000000"},
		AspectRatio: domain.AspectSquare,
		Elements: []domain.TextElement{
			{
				ID: "e1", Kind: domain.KindHeader, Text: "Hello\nWorld",
				FontSizePx: 32, FontWeight: domain.WeightBold, FontFamily: "Inter",
				Color: "#ffffff", Align: domain.AlignCenter,
				YPercent: 40, VerticalAnchor: domain.AnchorCenter,
			},
		},
	}

	data, err := svc.RenderSlide(context.Background(), slide, 0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img := decodePNG(t, data)
	if img.Bounds().Dx() != 1080 || img.Bounds().Dy() != 1080 {
		t.Fatalf("bounds = %v, want 1080x1080", img.Bounds())
	}

	// Corners stay pure background.
	for _, p := range []image.Point{{2, 2}, {1077, 2}, {2, 1077}, {1077, 1077}} {
		r, g, b, _ := img.At(p.X, p.Y).RGBA()
		if r != 0 || g != 0 || b != 0 {
			t.Errorf("corner %v = %v, want black", p, img.At(p.X, p.Y))
		}
	}

	// Two lines vertically centered around the 40% mark (432px): text
	// pixels must appear inside the block and nowhere near the top.
	if !regionHasLight(img, 300, 780, 320, 545) {
		t.Error("expected glyph pixels around the 40% height mark")
	}
	if regionHasLight(img, 0, 1080, 0, 120) {
		t.Error("unexpected pixels in the top band")
	}
}

// regionHasLight reports whether any pixel in the rect is notably
// brighter than black.
func regionHasLight(img image.Image, x0, x1, y0, y1 int) bool {
	for y := y0; y < y1; y += 2 {
		for x := x0; x < x1; x += 2 {
			r, _, _, _ := img.At(x, y).RGBA()
			if r > 0xc000 {
				return true
			}
		}
	}
	return false
}

func TestRenderSlideAspectHeights(t *testing.T) {
	svc := newTestRenderService(t, offlineFontSet())
	cases := []struct {
		ratio domain.AspectRatio
		want  int
	}{
		{domain.AspectSquare, 1080},
		{domain.AspectPortrait, 1350},
		{domain.AspectStory, 1920},
		{domain.AspectRatio("21:9"), 1350},
	}
	for _, tc := range cases {
		slide := domain.Slide{
			Background:  domain.SlideBackground{Kind: domain.BackgroundSolid, Color: "#112233"},
			AspectRatio: tc.ratio,
		}
		data, err := svc.RenderSlide(context.Background(), slide, 0)
		if err != nil {
			t.Fatalf("render %q: %v", tc.ratio, err)
		}
		img := decodePNG(t, data)
		if img.Bounds().Dy() != tc.want {
			t.Errorf("ratio %q: height = %d, want %d", tc.ratio, img.Bounds().Dy(), tc.want)
		}
	}
}

func TestRenderSlideMalformedBackgroundDefaults(t *testing.T) {
	svc := newTestRenderService(t, offlineFontSet())
	cases := []domain.SlideBackground{
		{},
		{Kind: domain.BackgroundSolid, Color: "not-a-color"},
		{Kind: domain.BackgroundGradient, Gradient: "linear-gradient(bogus"},
		{Kind: domain.BackgroundKind("video")},
	}
	for _, bg := range cases {
		slide := domain.Slide{Background: bg, AspectRatio: domain.AspectSquare}
		data, err := svc.RenderSlide(context.Background(), slide, 0)
		if err != nil {
			t.Fatalf("background %+v: %v", bg, err)
		}
		img := decodePNG(t, data)
		r, g, b, a := img.At(10, 10).RGBA()
		// Default dark solid #0a0a0f, fully opaque.
		if r>>8 != 0x0a || g>>8 != 0x0a || b>>8 != 0x0f || a != 0xffff {
			t.Errorf("background %+v: pixel = %d,%d,%d,%d, want default dark", bg, r>>8, g>>8, b>>8, a>>8)
		}
	}
}

func TestRenderSlideGradientBackground(t *testing.T) {
	svc := newTestRenderService(t, offlineFontSet())
	slide := domain.Slide{
		Background: domain.SlideBackground{
			Kind:     domain.BackgroundGradient,
			Gradient: "linear-gradient(180deg, #000000 0%, #ffffff 100%)",
		},
		AspectRatio: domain.AspectSquare,
	}
	data, err := svc.RenderSlide(context.Background(), slide, 0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img := decodePNG(t, data)
	topR, _, _, _ := img.At(540, 5).RGBA()
	botR, _, _, _ := img.At(540, 1074).RGBA()
	if topR >= botR {
		t.Errorf("top-to-bottom gradient not increasing: top=%d bottom=%d", topR, botR)
	}
}

func TestRenderSlideGrainZeroIsNoOp(t *testing.T) {
	svc := newTestRenderService(t, offlineFontSet())
	slide := domain.Slide{
		Background:  domain.SlideBackground{Kind: domain.BackgroundSolid, Color: "#333333"},
		AspectRatio: domain.AspectSquare,
		Elements: []domain.TextElement{
			{Kind: domain.KindBody, Text: "grain test", FontSizePx: 14, Color: "#ffffff", Align: domain.AlignCenter, YPercent: 50},
		},
	}

	a, err := svc.RenderSlide(context.Background(), slide, 0)
	if err != nil {
		t.Fatalf("render a: %v", err)
	}
	b, err := svc.RenderSlide(context.Background(), slide, 0)
	if err != nil {
		t.Fatalf("render b: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("zero-intensity renders must be byte-identical (no overlay, no randomness)")
	}

	grained, err := svc.RenderSlide(context.Background(), slide, 60)
	if err != nil {
		t.Fatalf("render grained: %v", err)
	}
	if bytes.Equal(a, grained) {
		t.Error("non-zero intensity must actually composite the overlay")
	}
}

func TestRenderSlideNoFontsIsFatal(t *testing.T) {
	svc := newTestRenderService(t, nil)
	slide := domain.Slide{
		Background:  domain.SlideBackground{Kind: domain.BackgroundSolid, Color: "#000000"},
		AspectRatio: domain.AspectSquare,
	}
	_, err := svc.RenderSlide(context.Background(), slide, 0)
	if !errors.Is(err, errs.ErrRenderFailed) {
		t.Fatalf("err = %v, want ErrRenderFailed", err)
	}
}

func TestRenderSlideUnparseableFontsAreFatal(t *testing.T) {
	svc := newTestRenderService(t, []FontEntry{{Family: "Junk", Weight: 400, Data: []byte("not a font")}})
	slide := domain.Slide{AspectRatio: domain.AspectSquare}
	_, err := svc.RenderSlide(context.Background(), slide, 0)
	if !errors.Is(err, errs.ErrRenderFailed) {
		t.Fatalf("err = %v, want ErrRenderFailed", err)
	}
}

func TestFontStackSubstitution(t *testing.T) {
	stack := newFontStack([]FontEntry{
		{Family: "Inter", Weight: 400, Data: goregular.TTF},
		{Family: "Playfair Display", Weight: 700, Data: goregular.TTF},
	})
	if stack == nil {
		t.Fatal("stack should parse")
	}
	// Exact, family-level and fallback lookups must all yield a face.
	for _, probe := range []struct {
		family string
		weight int
	}{
		{"Playfair Display", 700}, // exact
		{"Playfair Display", 400}, // same family, other weight
		{"Unknown Family", 600},   // fallback
	} {
		if face := stack.face(probe.family, probe.weight, 16); face == nil {
			t.Errorf("face(%q, %d) = nil", probe.family, probe.weight)
		}
	}
}

func TestOverlayGrainMath(t *testing.T) {
	// One mid-gray pixel blended with a known tile value.
	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	dst.Pix[0], dst.Pix[1], dst.Pix[2], dst.Pix[3] = 128, 128, 128, 255
	tile := &image.Gray{Pix: []byte{255}, Stride: 1, Rect: image.Rect(0, 0, 1, 1)}

	overlayGrain(dst, tile, 0.45)
	// base≈0.502 (>=0.5): overlay(base, 1) = 1, so v = base + 0.45*(1-base) ≈ 0.726 → 185.
	if got := dst.Pix[0]; got < 183 || got > 187 {
		t.Errorf("blended value = %d, want ≈185", got)
	}
	if dst.Pix[3] != 255 {
		t.Error("alpha must stay opaque")
	}

	// Opacity 0 leaves pixels untouched.
	dst.Pix[0], dst.Pix[1], dst.Pix[2] = 10, 20, 30
	overlayGrain(dst, tile, 0)
	if dst.Pix[0] != 10 || dst.Pix[1] != 20 || dst.Pix[2] != 30 {
		t.Error("zero opacity must be a no-op")
	}
}
