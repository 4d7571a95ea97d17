package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"

	"github.com/slidekit/carousel-backend/internal/domain"
	"github.com/slidekit/carousel-backend/internal/pkg/httpx"
	"github.com/slidekit/carousel-backend/internal/platform/envutil"
	"github.com/slidekit/carousel-backend/internal/platform/logger"
)

const (
	// FallbackFontFamily is the baseline family always requested in
	// addition to whatever a slide's elements use.
	FallbackFontFamily = "Inter"
	fallbackFontWeight = 400

	// Modern client identities receive woff2, which the rasterizer
	// cannot parse. The legacy identity makes the font API hand back
	// plain TTF/OTF file URLs instead.
	fontFetchUserAgent = "Mozilla/5.0 (compatible; Googlebot/2.1)"

	defaultFontAPIBase = "https://fonts.googleapis.com"
)

var (
	truetypeURLRe = regexp.MustCompile(`src:\s*url\(([^)]+)\)\s*format\(['"]?truetype['"]?\)`)
	anyFormatRe   = regexp.MustCompile(`src:\s*url\(([^)]+)\)`)
)

// FontEntry is one resolved font binary for a (family, weight) pair.
type FontEntry struct {
	Family string
	Weight int
	Data   []byte
}

type FontService interface {
	// ResolveFont returns the font file bytes for family+weight, or
	// nil when any tier of the cascade fails. Never returns an error;
	// callers substitute a fallback.
	ResolveFont(ctx context.Context, family string, weight int) []byte
	// ResolveFontSet resolves every unique (family, weight) pair used
	// by the elements plus the baseline pair, in parallel. The result
	// is never empty: a bundled fallback font is appended when the
	// network path yields nothing.
	ResolveFontSet(ctx context.Context, elements []domain.TextElement) []FontEntry
}

type fontService struct {
	log     *logger.Logger
	client  *http.Client
	apiBase string

	// (family:weight) -> []byte. Entries are immutable once written
	// and never evicted; the family+weight space is bounded by the
	// catalog, so unbounded memoization is fine for a process lifetime.
	cache sync.Map
}

func NewFontService(log *logger.Logger) FontService {
	timeout := time.Duration(envutil.Int("FONT_FETCH_TIMEOUT_SECONDS", 10)) * time.Second
	return &fontService{
		log:     log.With("service", "FontService"),
		client:  &http.Client{Timeout: timeout},
		apiBase: envutil.Str("FONT_API_BASE_URL", defaultFontAPIBase),
	}
}

func fontKey(family string, weight int) string {
	return fmt.Sprintf("%s:%d", family, weight)
}

func (s *fontService) ResolveFont(ctx context.Context, family string, weight int) []byte {
	key := fontKey(family, weight)
	if v, ok := s.cache.Load(key); ok {
		return v.([]byte)
	}

	css := s.fetchStylesheet(ctx, family, weight)
	if css == "" {
		return nil
	}
	fontURL := extractFontURL(css)
	if fontURL == "" {
		s.log.Warn("no font url in stylesheet", "family", family, "weight", weight)
		return nil
	}
	data := s.download(ctx, fontURL)
	if data == nil {
		return nil
	}

	s.cache.Store(key, data)
	return data
}

func (s *fontService) fetchStylesheet(ctx context.Context, family string, weight int) string {
	url := fmt.Sprintf("%s/css?family=%s:%d&display=swap", s.apiBase, strings.ReplaceAll(family, " ", "+"), weight)
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ""
			case <-time.After(httpx.JitterSleep(300 * time.Millisecond)):
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return ""
		}
		req.Header.Set("User-Agent", fontFetchUserAgent)
		resp, err := s.client.Do(req)
		if err != nil {
			if httpx.IsRetryableError(err) {
				continue
			}
			return ""
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			if httpx.IsRetryableHTTPStatus(resp.StatusCode) {
				continue
			}
			return ""
		}
		if readErr != nil {
			return ""
		}
		return string(body)
	}
	return ""
}

func (s *fontService) download(ctx context.Context, url string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	return data
}

// extractFontURL pulls the first embedded font file URL out of a
// stylesheet, preferring truetype sources and falling back to any
// format found.
func extractFontURL(css string) string {
	if m := truetypeURLRe.FindStringSubmatch(css); m != nil {
		return strings.Trim(m[1], `'" `)
	}
	if m := anyFormatRe.FindStringSubmatch(css); m != nil {
		return strings.Trim(m[1], `'" `)
	}
	return ""
}

func (s *fontService) ResolveFontSet(ctx context.Context, elements []domain.TextElement) []FontEntry {
	type pair struct {
		family string
		weight int
	}
	seen := map[string]pair{}
	for _, el := range elements {
		family := el.FontFamily
		if family == "" {
			family = FallbackFontFamily
		}
		p := pair{family: family, weight: el.FontWeight.Num()}
		seen[fontKey(p.family, p.weight)] = p
	}
	seen[fontKey(FallbackFontFamily, fallbackFontWeight)] = pair{family: FallbackFontFamily, weight: fallbackFontWeight}

	var (
		mu      sync.Mutex
		entries []FontEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range seen {
		g.Go(func() error {
			if data := s.ResolveFont(gctx, p.family, p.weight); data != nil {
				mu.Lock()
				entries = append(entries, FontEntry{Family: p.family, Weight: p.weight, Data: data})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if !hasFamily(entries, FallbackFontFamily) {
		s.log.Warn("baseline font not resolved, using bundled fallback", "family", FallbackFontFamily)
		entries = append(entries, FontEntry{
			Family: FallbackFontFamily,
			Weight: fallbackFontWeight,
			Data:   localFallbackFont(),
		})
	}
	return entries
}

func hasFamily(entries []FontEntry, family string) bool {
	for _, e := range entries {
		if e.Family == family {
			return true
		}
	}
	return false
}

// localFallbackFont returns the bundled font guaranteed to be present:
// an operator-provided TTF when FALLBACK_FONT_PATH is set, otherwise
// the compiled-in Go Regular face.
func localFallbackFont() []byte {
	if p := strings.TrimSpace(os.Getenv("FALLBACK_FONT_PATH")); p != "" {
		if data, err := os.ReadFile(p); err == nil && len(data) > 0 {
			return data
		}
	}
	return goregular.TTF
}
