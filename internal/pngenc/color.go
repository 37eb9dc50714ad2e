package pngenc

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a color channel is outside [0,255] or
// a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// NewColor builds an RGBA color from integer channels, rejecting values
// outside [0,255].
func NewColor(r, g, b, a int) (color.RGBA, error) {
	for i, v := range [4]int{r, g, b, a} {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("pngenc: channel %c = %d: %w", "RGBA"[i], v, ErrInvalidColor)
		}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// ParseColor accepts "#rrggbb", "#rrggbbaa" (the '#' is optional) or a
// decimal list "r,g,b" / "r,g,b,a". Alpha defaults to 255.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("pngenc: empty color: %w", ErrInvalidColor)
	}
	if strings.Contains(s, ",") {
		return parseDecimal(s)
	}

	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("pngenc: color %q: want 6 or 8 hex digits: %w", s, ErrInvalidColor)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("pngenc: color %q: %w", s, ErrInvalidColor)
	}
	c := color.RGBA{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

func parseDecimal(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, fmt.Errorf("pngenc: color %q: want 3 or 4 channels: %w", s, ErrInvalidColor)
	}
	ch := [4]int{0, 0, 0, 255}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("pngenc: color %q: %w", s, ErrInvalidColor)
		}
		ch[i] = v
	}
	return NewColor(ch[0], ch[1], ch[2], ch[3])
}

// FormatColor renders c as "#rrggbbaa".
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
