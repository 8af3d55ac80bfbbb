package components

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque 8-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// Key packs the colour into a single integer, used to group particles by colour.
func (c Color) Key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex returns the "#rrggbb" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// ParseHexColor parses "#rrggbb" or the short "#rgb" form. The leading '#' is optional.
func ParseHexColor(s string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return Color{}, fmt.Errorf("color %q: expected 3 or 6 hex digits", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
	}, nil
}
