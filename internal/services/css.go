package services

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
)

// Color and gradient strings arrive in CSS microsyntax ("#rrggbb",
// "rgba(...)", "linear-gradient(135deg, ...)"). Anything unparseable
// degrades to the caller's fallback; parsing never errors hard.

// ParseCSSColor parses #rgb/#rrggbb/#rrggbbaa hex and rgb()/rgba()
// function notation.
func ParseCSSColor(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(strings.ToLower(s), "rgba("), strings.HasPrefix(strings.ToLower(s), "rgb("):
		return parseRGBFunc(s)
	default:
		return color.NRGBA{}, false
	}
}

func parseHexColor(hexDigits string) (color.NRGBA, bool) {
	switch len(hexDigits) {
	case 3:
		var b strings.Builder
		for _, r := range hexDigits {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hexDigits = b.String()
	case 6, 8:
	default:
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(hexDigits, 16, 64)
	if err != nil {
		return color.NRGBA{}, false
	}
	if len(hexDigits) == 8 {
		return color.NRGBA{
			R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v),
		}, true
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

func parseRGBFunc(s string) (color.NRGBA, bool) {
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open < 0 || close < open {
		return color.NRGBA{}, false
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, false
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return color.NRGBA{}, false
		}
		rgb[i] = uint8(n)
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, false
		}
		alpha = a
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(math.Round(alpha * 255))}, true
}

// parseLinearGradient turns a CSS linear-gradient descriptor into a gg
// gradient spanning a w×h canvas. The gradient line runs through the
// canvas center at the given angle (CSS convention: 0deg points up,
// angles grow clockwise; the default is 180deg, "to bottom").
func parseLinearGradient(spec string, w, h int) (gg.Pattern, bool) {
	spec = strings.TrimSpace(spec)
	lower := strings.ToLower(spec)
	if !strings.HasPrefix(lower, "linear-gradient(") || !strings.HasSuffix(spec, ")") {
		return nil, false
	}
	args := splitTopLevel(spec[len("linear-gradient(") : len(spec)-1])
	if len(args) == 0 {
		return nil, false
	}

	angleDeg := 180.0
	if deg, ok := parseAngle(args[0]); ok {
		angleDeg = deg
		args = args[1:]
	}

	type stop struct {
		c   color.NRGBA
		pos float64
		has bool
	}
	var stops []stop
	for _, arg := range args {
		fields := strings.Fields(strings.TrimSpace(arg))
		if len(fields) == 0 {
			continue
		}
		c, ok := ParseCSSColor(fields[0])
		if !ok {
			continue
		}
		st := stop{c: c}
		if len(fields) > 1 && strings.HasSuffix(fields[1], "%") {
			if p, err := strconv.ParseFloat(strings.TrimSuffix(fields[1], "%"), 64); err == nil {
				st.pos = p / 100
				st.has = true
			}
		}
		stops = append(stops, st)
	}
	if len(stops) < 2 {
		return nil, false
	}
	for i := range stops {
		if !stops[i].has {
			stops[i].pos = float64(i) / float64(len(stops)-1)
		}
	}

	rad := angleDeg * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	// Gradient line length per CSS: projection of the box onto the line.
	length := math.Abs(float64(w)*dx) + math.Abs(float64(h)*dy)
	cx, cy := float64(w)/2, float64(h)/2
	grad := gg.NewLinearGradient(
		cx-dx*length/2, cy-dy*length/2,
		cx+dx*length/2, cy+dy*length/2,
	)
	for _, st := range stops {
		grad.AddColorStop(st.pos, st.c)
	}
	return grad, true
}

func parseAngle(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if !strings.HasSuffix(s, "deg") {
		return 0, false
	}
	deg, err := strconv.ParseFloat(strings.TrimSuffix(s, "deg"), 64)
	if err != nil {
		return 0, false
	}
	return deg, true
}

// splitTopLevel splits on commas that are not nested inside
// parentheses, so rgba(...) stops survive intact.
func splitTopLevel(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
