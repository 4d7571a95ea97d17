// Package domain holds the slide data model: value objects describing
// a carousel slide (background + ordered text elements). Records are
// created by the editor or a template, read immutably by the renderer,
// and discarded after rendering.
package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

type ElementKind string

const (
	KindHeader   ElementKind = "header"
	KindSubtitle ElementKind = "subtitle"
	KindBody     ElementKind = "body"
	KindTag      ElementKind = "tag"
)

type FontWeight string

const (
	WeightNormal    FontWeight = "normal"
	WeightMedium    FontWeight = "medium"
	WeightSemibold  FontWeight = "semibold"
	WeightBold      FontWeight = "bold"
	WeightExtrabold FontWeight = "extrabold"
)

// Num maps the named weight to its numeric CSS value. Unknown names
// read as 400.
func (w FontWeight) Num() int {
	switch w {
	case WeightMedium:
		return 500
	case WeightSemibold:
		return 600
	case WeightBold:
		return 700
	case WeightExtrabold:
		return 800
	default:
		return 400
	}
}

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

type VerticalAnchor string

const (
	AnchorTop    VerticalAnchor = "top"
	AnchorCenter VerticalAnchor = "center"
	AnchorBottom VerticalAnchor = "bottom"
)

type AspectRatio string

const (
	AspectSquare   AspectRatio = "1:1"
	AspectPortrait AspectRatio = "4:5"
	AspectStory    AspectRatio = "9:16"
)

// TextElement is one styled text block on a slide. FontSizePx and the
// horizontal padding applied at render time are authored against the
// editor's reference width; YPercent is scale-invariant.
type TextElement struct {
	ID             string         `json:"id"`
	Kind           ElementKind    `json:"type"`
	Text           string         `json:"text"`
	FontSizePx     int            `json:"fontSize"`
	FontWeight     FontWeight     `json:"fontWeight"`
	FontFamily     string         `json:"fontFamily"`
	Color          string         `json:"color"`
	Align          TextAlign      `json:"align"`
	XPercent       float64        `json:"x"`
	YPercent       float64        `json:"y"`
	VerticalAnchor VerticalAnchor `json:"verticalAnchor,omitempty"`
	// Locked elements are fixed: template text overrides must not
	// touch them.
	Locked bool `json:"locked,omitempty"`
}

// UnmarshalJSON fills schema defaults for absent optional fields so
// external payloads with missing attributes never fail to decode.
func (e *TextElement) UnmarshalJSON(data []byte) error {
	type raw struct {
		ID             string   `json:"id"`
		Kind           string   `json:"type"`
		Text           string   `json:"text"`
		FontSizePx     *int     `json:"fontSize"`
		FontWeight     string   `json:"fontWeight"`
		FontFamily     string   `json:"fontFamily"`
		Color          string   `json:"color"`
		Align          string   `json:"align"`
		XPercent       *float64 `json:"x"`
		YPercent       *float64 `json:"y"`
		VerticalAnchor string   `json:"verticalAnchor"`
		Locked         bool     `json:"locked"`
	}
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	e.ID = r.ID
	e.Kind = parseElementKind(r.Kind)
	e.Text = r.Text
	e.FontSizePx = DefaultFontSizePx
	if r.FontSizePx != nil {
		e.FontSizePx = ClampFontSize(*r.FontSizePx)
	}
	e.FontWeight = parseFontWeight(r.FontWeight)
	e.FontFamily = r.FontFamily
	if e.FontFamily == "" {
		e.FontFamily = DefaultFontFamily
	}
	e.Color = r.Color
	if e.Color == "" {
		e.Color = DefaultTextColor
	}
	e.Align = parseTextAlign(r.Align)
	e.XPercent = 50
	if r.XPercent != nil {
		e.XPercent = *r.XPercent
	}
	e.YPercent = 50
	if r.YPercent != nil {
		e.YPercent = ClampYPercent(*r.YPercent)
	}
	e.VerticalAnchor = parseVerticalAnchor(r.VerticalAnchor)
	e.Locked = r.Locked
	return nil
}

type BackgroundKind string

const (
	BackgroundSolid    BackgroundKind = "solid"
	BackgroundGradient BackgroundKind = "gradient"
	BackgroundImage    BackgroundKind = "image"
)

// SlideBackground is a tagged union over solid color, CSS linear
// gradient descriptor, and image URL. The gradient string is opaque
// here; the renderer interprets it and falls back to the default dark
// solid when it cannot.
type SlideBackground struct {
	Kind     BackgroundKind `json:"type"`
	Color    string         `json:"color,omitempty"`
	Gradient string         `json:"gradient,omitempty"`
	ImageURL string         `json:"imageUrl,omitempty"`
}

type Slide struct {
	ID          string          `json:"id"`
	Background  SlideBackground `json:"background"`
	AspectRatio AspectRatio     `json:"aspectRatio"`
	// Elements are painted in list order; later entries stack on top.
	Elements []TextElement `json:"elements"`
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

func parseElementKind(s string) ElementKind {
	switch ElementKind(s) {
	case KindHeader, KindSubtitle, KindBody, KindTag:
		return ElementKind(s)
	default:
		return KindBody
	}
}

func parseFontWeight(s string) FontWeight {
	switch FontWeight(s) {
	case WeightNormal, WeightMedium, WeightSemibold, WeightBold, WeightExtrabold:
		return FontWeight(s)
	default:
		return WeightNormal
	}
}

func parseTextAlign(s string) TextAlign {
	switch TextAlign(s) {
	case AlignLeft, AlignCenter, AlignRight:
		return TextAlign(s)
	default:
		return AlignCenter
	}
}

func parseVerticalAnchor(s string) VerticalAnchor {
	switch VerticalAnchor(s) {
	case AnchorTop, AnchorCenter, AnchorBottom:
		return VerticalAnchor(s)
	default:
		return AnchorCenter
	}
}
