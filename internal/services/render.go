package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"net/http"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/slidekit/carousel-backend/internal/domain"
	errs "github.com/slidekit/carousel-backend/internal/pkg/errors"
	"github.com/slidekit/carousel-backend/internal/platform/envutil"
	"github.com/slidekit/carousel-backend/internal/platform/logger"
)

// defaultBackground is painted whenever a background spec is missing
// or malformed. Never transparent, never an error.
var defaultBackground = color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0f, A: 0xff}

type RenderService interface {
	// RenderSlide composes one slide into a PNG at the fixed output
	// width; height follows the slide's aspect ratio. The only fatal
	// condition is ending up with zero usable fonts.
	RenderSlide(ctx context.Context, slide domain.Slide, grainIntensity int) ([]byte, error)
}

type renderService struct {
	log    *logger.Logger
	fonts  FontService
	grain  GrainService
	client *http.Client
	width  int
}

func NewRenderService(log *logger.Logger, fonts FontService, grain GrainService) RenderService {
	return &renderService{
		log:    log.With("service", "RenderService"),
		fonts:  fonts,
		grain:  grain,
		client: &http.Client{Timeout: 15 * time.Second},
		width:  envutil.Int("RENDER_BASE_WIDTH", DefaultSlideWidth),
	}
}

func (r *renderService) RenderSlide(ctx context.Context, slide domain.Slide, grainIntensity int) ([]byte, error) {
	ctx, span := otel.Tracer("carousel-backend").Start(ctx, "RenderSlide")
	defer span.End()

	w := r.width
	h := SlideHeight(slide.AspectRatio, w)
	span.SetAttributes(
		attribute.String("slide.aspect_ratio", string(slide.AspectRatio)),
		attribute.Int("slide.elements", len(slide.Elements)),
	)

	entries := r.fonts.ResolveFontSet(ctx, slide.Elements)
	stack := newFontStack(entries)
	if stack == nil {
		return nil, fmt.Errorf("no usable fonts for slide %s: %w", slide.ID, errs.ErrRenderFailed)
	}

	dc := gg.NewContext(w, h)
	r.paintBackground(ctx, dc, slide.Background, w, h)

	if intensity := domain.ClampGrainIntensity(grainIntensity); intensity > 0 {
		r.paintGrain(dc, intensity)
	}

	for _, el := range slide.Elements {
		paintElement(dc, el, stack, w, h)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode slide png: %w", err)
	}
	return buf.Bytes(), nil
}

// ---------- background ----------

func (r *renderService) paintBackground(ctx context.Context, dc *gg.Context, bg domain.SlideBackground, w, h int) {
	switch bg.Kind {
	case domain.BackgroundSolid:
		if c, ok := ParseCSSColor(bg.Color); ok {
			dc.SetColor(c)
			dc.Clear()
			return
		}
	case domain.BackgroundGradient:
		if grad, ok := parseLinearGradient(bg.Gradient, w, h); ok {
			dc.SetFillStyle(grad)
			dc.DrawRectangle(0, 0, float64(w), float64(h))
			dc.Fill()
			return
		}
	case domain.BackgroundImage:
		if img := r.fetchBackgroundImage(ctx, bg.ImageURL); img != nil {
			dc.DrawImage(coverFit(img, w, h), 0, 0)
			return
		}
	}
	dc.SetColor(defaultBackground)
	dc.Clear()
}

func (r *renderService) fetchBackgroundImage(ctx context.Context, url string) image.Image {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn("background image fetch failed", "url", url, "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		r.log.Warn("background image fetch failed", "url", url, "status", resp.StatusCode)
		return nil
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		r.log.Warn("background image decode failed", "url", url, "error", err)
		return nil
	}
	return img
}

// coverFit scales src to cover a w×h canvas and center-crops the
// overflow, like CSS background-size: cover.
func coverFit(src image.Image, w, h int) image.Image {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	scale := math.Max(float64(w)/float64(sw), float64(h)/float64(sh))
	dw := int(math.Ceil(float64(sw) * scale))
	dh := int(math.Ceil(float64(sh) * scale))

	scaled := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, sb, draw.Over, nil)

	x0 := (dw - w) / 2
	y0 := (dh - h) / 2
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), scaled, image.Point{X: x0, Y: y0}, draw.Src)
	return out
}

// ---------- grain ----------

func (r *renderService) paintGrain(dc *gg.Context, intensity int) {
	tile, err := r.grain.Tile()
	if err != nil {
		// Grain is cosmetic; a broken texture must not break the slide.
		r.log.Warn("grain texture unavailable, skipping overlay", "error", err)
		return
	}
	canvas, ok := dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	overlayGrain(canvas, tile, GrainOpacity(intensity))
}

// overlayGrain tiles the noise texture across the canvas and blends it
// with "overlay" mode at the given opacity. Backgrounds are opaque at
// this point, so premultiplied and straight alpha coincide.
func overlayGrain(dst *image.RGBA, tile *image.Gray, opacity float64) {
	if opacity <= 0 {
		return
	}
	b := dst.Bounds()
	tw, th := tile.Rect.Dx(), tile.Rect.Dy()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := dst.Pix[(y-b.Min.Y)*dst.Stride : (y-b.Min.Y)*dst.Stride+b.Dx()*4]
		trow := tile.Pix[(y%th)*tile.Stride : (y%th)*tile.Stride+tw]
		for x := 0; x < b.Dx(); x++ {
			g := float64(trow[x%tw]) / 255
			for c := 0; c < 3; c++ {
				base := float64(row[x*4+c]) / 255
				var ov float64
				if base < 0.5 {
					ov = 2 * base * g
				} else {
					ov = 1 - 2*(1-base)*(1-g)
				}
				v := base + opacity*(ov-base)
				row[x*4+c] = uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
			}
		}
	}
}

// ---------- text ----------

// fontStack holds the parsed fonts of one render and picks the best
// available face per element: exact (family, weight), then any weight
// of the family, then the fallback.
type fontStack struct {
	exact    map[string]*truetype.Font
	byFamily map[string]*truetype.Font
	fallback *truetype.Font
}

// newFontStack parses the resolved entries, skipping any the parser
// rejects. Returns nil when nothing parses.
func newFontStack(entries []FontEntry) *fontStack {
	s := &fontStack{
		exact:    map[string]*truetype.Font{},
		byFamily: map[string]*truetype.Font{},
	}
	for _, e := range entries {
		f, err := truetype.Parse(e.Data)
		if err != nil {
			continue
		}
		s.exact[fontKey(e.Family, e.Weight)] = f
		if _, ok := s.byFamily[e.Family]; !ok {
			s.byFamily[e.Family] = f
		}
		if s.fallback == nil || (e.Family == FallbackFontFamily && e.Weight == fallbackFontWeight) {
			s.fallback = f
		}
	}
	if len(s.exact) == 0 {
		return nil
	}
	return s
}

func (s *fontStack) face(family string, weight int, sizePx float64) font.Face {
	f, ok := s.exact[fontKey(family, weight)]
	if !ok {
		f, ok = s.byFamily[family]
	}
	if !ok {
		f = s.fallback
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func anchorShift(anchor domain.VerticalAnchor, blockHeight float64) float64 {
	switch anchor {
	case domain.AnchorTop:
		return 0
	case domain.AnchorBottom:
		return blockHeight
	default:
		return blockHeight / 2
	}
}

func paintElement(dc *gg.Context, el domain.TextElement, fonts *fontStack, w, h int) {
	size := ScaledFontSize(el.FontSizePx, w)
	dc.SetFontFace(fonts.face(el.FontFamily, el.FontWeight.Num(), size))

	c, ok := ParseCSSColor(el.Color)
	if !ok {
		c = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	dc.SetColor(c)

	padding := float64(ScaledPadding(w))
	contentWidth := float64(w) - 2*padding

	// Every literal newline is its own line; empty lines become a
	// single space so vertical rhythm survives. Overlong lines wrap to
	// the padded content width.
	var lines []string
	for _, seg := range strings.Split(el.Text, "\n") {
		if seg == "" {
			lines = append(lines, " ")
			continue
		}
		wrapped := dc.WordWrap(seg, contentWidth)
		if len(wrapped) == 0 {
			wrapped = []string{" "}
		}
		lines = append(lines, wrapped...)
	}
	if len(lines) == 0 {
		return
	}

	lineHeight := size * lineHeightFactor
	blockHeight := lineHeight * float64(len(lines))
	top := el.YPercent/100*float64(h) - anchorShift(el.VerticalAnchor, blockHeight)

	for i, line := range lines {
		cy := top + (float64(i)+0.5)*lineHeight
		switch el.Align {
		case domain.AlignLeft:
			dc.DrawStringAnchored(line, padding, cy, 0, 0.5)
		case domain.AlignRight:
			dc.DrawStringAnchored(line, float64(w)-padding, cy, 1, 0.5)
		default:
			dc.DrawStringAnchored(line, float64(w)/2, cy, 0.5, 0.5)
		}
	}
}
