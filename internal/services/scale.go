package services

import (
	"math"

	"github.com/slidekit/carousel-backend/internal/domain"
)

// The interactive editor authors all pixel-valued attributes against a
// fixed preview width. The renderer always draws at a fixed output
// width, so every pixel attribute is multiplied by output/reference
// before use. Percentage attributes need no scaling.
const (
	// DefaultSlideWidth is the output raster width external consumers
	// depend on; aspect ratio only changes the height.
	DefaultSlideWidth = 1080

	referenceWidthPx   = 380
	referencePaddingPx = 24
	lineHeightFactor   = 1.3
)

func ScaleFactor(outputWidthPx int) float64 {
	return float64(outputWidthPx) / referenceWidthPx
}

// ScaledPadding is the horizontal padding applied to every text block,
// the editor's reference padding scaled to the output width.
func ScaledPadding(outputWidthPx int) int {
	return int(math.Round(referencePaddingPx * ScaleFactor(outputWidthPx)))
}

func ScaledFontSize(fontSizePx, outputWidthPx int) float64 {
	return math.Round(float64(fontSizePx) * ScaleFactor(outputWidthPx))
}

// SlideHeight derives the output height from the aspect ratio.
// Unrecognized ratios behave exactly like 4:5.
func SlideHeight(ar domain.AspectRatio, outputWidthPx int) int {
	w := float64(outputWidthPx)
	switch ar {
	case domain.AspectSquare:
		return outputWidthPx
	case domain.AspectStory:
		return int(math.Round(w * 16 / 9))
	default:
		return int(math.Round(w * 5 / 4))
	}
}
