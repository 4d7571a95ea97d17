package domain

import "strings"

// Override text longer than this is truncated rather than rejected.
const maxOverrideTextRunes = 500

// TextOverride targets one element kind on one slide of a template
// instantiation.
type TextOverride struct {
	SlideIndex  int         `json:"slideIndex"`
	ElementKind ElementKind `json:"elementType"`
	Text        string      `json:"text"`
}

// ApplyTextOverrides returns a new slide list with override text set on
// matching, non-locked elements. The input slides are never mutated;
// slides without a matching override are reused as-is. Literal "\n"
// sequences in override text become real newlines.
func ApplyTextOverrides(slides []Slide, overrides []TextOverride) []Slide {
	if len(overrides) == 0 {
		return slides
	}
	out := make([]Slide, len(slides))
	for idx, slide := range slides {
		var slideOverrides []TextOverride
		for _, o := range overrides {
			if o.SlideIndex == idx && o.ElementKind != "" {
				slideOverrides = append(slideOverrides, o)
			}
		}
		if len(slideOverrides) == 0 {
			out[idx] = slide
			continue
		}
		elements := make([]TextElement, len(slide.Elements))
		copy(elements, slide.Elements)
		for i, el := range elements {
			if el.Locked {
				continue
			}
			for _, o := range slideOverrides {
				if o.ElementKind == el.Kind {
					elements[i].Text = normalizeOverrideText(o.Text)
					break
				}
			}
		}
		slide.Elements = elements
		out[idx] = slide
	}
	return out
}

func normalizeOverrideText(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	runes := []rune(s)
	if len(runes) > maxOverrideTextRunes {
		runes = runes[:maxOverrideTextRunes]
	}
	return string(runes)
}

// CloneSlides deep-copies a slide list, assigning fresh IDs to every
// slide and element. Copies never share identity with their source.
func CloneSlides(slides []Slide) []Slide {
	out := make([]Slide, len(slides))
	for i, slide := range slides {
		elements := make([]TextElement, len(slide.Elements))
		for j, el := range slide.Elements {
			el.ID = NewID()
			elements[j] = el
		}
		slide.ID = NewID()
		slide.Elements = elements
		out[i] = slide
	}
	return out
}
