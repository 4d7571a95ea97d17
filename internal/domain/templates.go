package domain

// Template is a seed carousel a caller can instantiate and fill via
// text overrides.
type Template struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Slides      []Slide `json:"slides"`
}

// Instantiate clones the template's slides with fresh IDs so the
// canonical template objects are never handed out or mutated.
func (t Template) Instantiate() []Slide {
	return CloneSlides(t.Slides)
}

// BuiltinTemplates returns the fixed seed templates. The returned
// slice shares the canonical slide values; call Instantiate before
// editing or rendering overrides into them.
func BuiltinTemplates() []Template {
	return builtinTemplates
}

// BuiltinTemplate looks one up by ID.
func BuiltinTemplate(id string) (Template, bool) {
	for _, t := range builtinTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

var builtinTemplates = []Template{
	{
		ID:          "progress",
		Name:        "Progress Update",
		Description: "Build-in-public style post for weekly updates, milestones, metrics.",
		Slides: []Slide{
			{
				ID:          "tpl-progress-1",
				Background:  SlideBackground{Kind: BackgroundGradient, Gradient: "linear-gradient(135deg, #0a0a0f 0%, #1a1224 100%)"},
				AspectRatio: AspectPortrait,
				Elements: []TextElement{
					{ID: "tpl-progress-tag", Kind: KindTag, Text: "BUILD IN PUBLIC", FontSizePx: 11, FontWeight: WeightSemibold, FontFamily: "Montserrat", Color: "#60a5fa", Align: AlignCenter, XPercent: 50, YPercent: 15, VerticalAnchor: AnchorCenter},
					{ID: "tpl-progress-header", Kind: KindHeader, Text: "Was ich diese Woche gebaut habe", FontSizePx: 32, FontWeight: WeightExtrabold, FontFamily: "Playfair Display", Color: "#ffffff", Align: AlignCenter, XPercent: 50, YPercent: 40, VerticalAnchor: AnchorCenter},
					{ID: "tpl-progress-subtitle", Kind: KindSubtitle, Text: "Von 0 auf 1.000 Nutzer in 30 Tagen", FontSizePx: 16, FontWeight: WeightNormal, FontFamily: "Inter", Color: "rgba(255,255,255,0.6)", Align: AlignCenter, XPercent: 50, YPercent: 62, VerticalAnchor: AnchorCenter},
					{ID: "tpl-progress-body", Kind: KindBody, Text: "@slidekit", FontSizePx: 12, FontWeight: WeightMedium, FontFamily: "Inter", Color: "rgba(255,255,255,0.3)", Align: AlignCenter, XPercent: 50, YPercent: 88, VerticalAnchor: AnchorCenter, Locked: true},
				},
			},
		},
	},
	{
		ID:          "tip",
		Name:        "Helpful Tip",
		Description: "Single actionable tip or insight. Green accent colour.",
		Slides: []Slide{
			{
				ID:          "tpl-tip-1",
				Background:  SlideBackground{Kind: BackgroundGradient, Gradient: "linear-gradient(135deg, #0a0a0f 0%, #0f1a24 100%)"},
				AspectRatio: AspectPortrait,
				Elements: []TextElement{
					{ID: "tpl-tip-tag", Kind: KindTag, Text: "PRO TIPP", FontSizePx: 11, FontWeight: WeightSemibold, FontFamily: "Montserrat", Color: "#34d399", Align: AlignCenter, XPercent: 50, YPercent: 15, VerticalAnchor: AnchorCenter},
					{ID: "tpl-tip-header", Kind: KindHeader, Text: "Dein Titel hier", FontSizePx: 34, FontWeight: WeightExtrabold, FontFamily: "Bebas Neue", Color: "#ffffff", Align: AlignCenter, XPercent: 50, YPercent: 40, VerticalAnchor: AnchorCenter},
					{ID: "tpl-tip-subtitle", Kind: KindSubtitle, Text: "Kurze prägnante Beschreibung in 1-2 Sätzen.", FontSizePx: 15, FontWeight: WeightNormal, FontFamily: "Poppins", Color: "rgba(255,255,255,0.55)", Align: AlignCenter, XPercent: 50, YPercent: 64, VerticalAnchor: AnchorCenter},
					{ID: "tpl-tip-body", Kind: KindBody, Text: "@slidekit", FontSizePx: 12, FontWeight: WeightMedium, FontFamily: "Inter", Color: "rgba(255,255,255,0.3)", Align: AlignCenter, XPercent: 50, YPercent: 88, VerticalAnchor: AnchorCenter, Locked: true},
				},
			},
		},
	},
	{
		ID:          "luxury",
		Name:        "Luxury Lifestyle",
		Description: "Premium gold-accented post for cars, watches, travel.",
		Slides: []Slide{
			{
				ID:          "tpl-luxury-1",
				Background:  SlideBackground{Kind: BackgroundGradient, Gradient: "linear-gradient(160deg, #0a0a0f 0%, #1a1500 60%, #0a0a0f 100%)"},
				AspectRatio: AspectPortrait,
				Elements: []TextElement{
					{ID: "tpl-luxury-tag", Kind: KindTag, Text: "LUXURY · CARS · LIFESTYLE", FontSizePx: 10, FontWeight: WeightSemibold, FontFamily: "Cinzel", Color: "#fbbf24", Align: AlignCenter, XPercent: 50, YPercent: 15, VerticalAnchor: AnchorCenter},
					{ID: "tpl-luxury-header", Kind: KindHeader, Text: "Dein Headline", FontSizePx: 36, FontWeight: WeightBold, FontFamily: "Cormorant Garamond", Color: "#ffffff", Align: AlignCenter, XPercent: 50, YPercent: 42, VerticalAnchor: AnchorCenter},
					{ID: "tpl-luxury-subtitle", Kind: KindSubtitle, Text: "Subtitel oder Zitat kommt hier hin.", FontSizePx: 15, FontWeight: WeightNormal, FontFamily: "Lora", Color: "rgba(255,255,255,0.5)", Align: AlignCenter, XPercent: 50, YPercent: 63, VerticalAnchor: AnchorCenter},
					{ID: "tpl-luxury-body", Kind: KindBody, Text: "@slidekit", FontSizePx: 12, FontWeight: WeightMedium, FontFamily: "Inter", Color: "rgba(255,255,255,0.25)", Align: AlignCenter, XPercent: 50, YPercent: 88, VerticalAnchor: AnchorCenter, Locked: true},
				},
			},
		},
	},
}
