package domain

const (
	MinFontSizePx     = 8
	MaxFontSizePx     = 72
	MinYPercent       = 5
	MaxYPercent       = 95
	DefaultFontSizePx = 16
	DefaultFontFamily = "Inter"
	DefaultTextColor  = "#ffffff"
)

func ClampFontSize(v int) int {
	if v < MinFontSizePx {
		return MinFontSizePx
	}
	if v > MaxFontSizePx {
		return MaxFontSizePx
	}
	return v
}

func ClampYPercent(v float64) float64 {
	if v < MinYPercent {
		return MinYPercent
	}
	if v > MaxYPercent {
		return MaxYPercent
	}
	return v
}

func ClampGrainIntensity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

type elementDefaults struct {
	text       string
	fontSizePx int
	fontWeight FontWeight
	fontFamily string
	color      string
	yPercent   float64
}

// Conventional editor defaults applied once at creation. They are not
// enforced afterwards; elements may drift freely.
var defaultsByKind = map[ElementKind]elementDefaults{
	KindHeader:   {text: "Titel", fontSizePx: 30, fontWeight: WeightExtrabold, fontFamily: "Playfair Display", color: "#ffffff", yPercent: 35},
	KindSubtitle: {text: "Subtitel", fontSizePx: 16, fontWeight: WeightNormal, fontFamily: "Inter", color: "rgba(255,255,255,0.6)", yPercent: 55},
	KindBody:     {text: "Text", fontSizePx: 13, fontWeight: WeightNormal, fontFamily: "Inter", color: "rgba(255,255,255,0.45)", yPercent: 70},
	KindTag:      {text: "LABEL", fontSizePx: 11, fontWeight: WeightSemibold, fontFamily: "Montserrat", color: "#60a5fa", yPercent: 15},
}

// NewTextElement builds an element of the given kind with the editor's
// creation defaults and a fresh ID.
func NewTextElement(kind ElementKind) TextElement {
	d, ok := defaultsByKind[kind]
	if !ok {
		kind = KindBody
		d = defaultsByKind[KindBody]
	}
	return TextElement{
		ID:             NewID(),
		Kind:           kind,
		Text:           d.text,
		FontSizePx:     d.fontSizePx,
		FontWeight:     d.fontWeight,
		FontFamily:     d.fontFamily,
		Color:          d.color,
		Align:          AlignCenter,
		XPercent:       50,
		YPercent:       d.yPercent,
		VerticalAnchor: AnchorCenter,
	}
}
