package reflectance

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var _ = fmt.Print

// RGB is an opaque 8 bit per channel sRGB color. It implements color.Color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) AsSharp() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("RGB{%02X %02X %02X}", c.R, c.G, c.B)
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 65535 // (255 << 8 | 255)
	return
}

func parse_hex(s string) (RGB, bool) {
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

func parse_triplet(s string) (ans RGB, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return
	}
	var vals [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return
		}
		vals[i] = uint8(v)
	}
	return RGB{vals[0], vals[1], vals[2]}, true
}

// ParseColor parses a color specification: #RRGGBB, #RGB, RRGGBB, a
// comma separated decimal triplet such as 252,211,0 or an SVG/CSS color
// name such as navy.
func ParseColor(spec string) (RGB, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if h, found := strings.CutPrefix(s, "#"); found {
		if c, ok := parse_hex(h); ok {
			return c, nil
		}
		return RGB{}, fmt.Errorf("invalid hex color: %q", spec)
	}
	if strings.Contains(s, ",") {
		if c, ok := parse_triplet(s); ok {
			return c, nil
		}
		return RGB{}, fmt.Errorf("invalid RGB triplet: %q", spec)
	}
	if c, ok := colornames.Map[s]; ok {
		return RGB{c.R, c.G, c.B}, nil
	}
	if c, ok := parse_hex(s); ok {
		return c, nil
	}
	return RGB{}, fmt.Errorf("unknown color: %q", spec)
}
