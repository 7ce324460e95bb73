package svgread

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/plotsvg/doc"
	"golang.org/x/image/colornames"
)

// parseColor parses a CSS color value. A nil color (no error) means "none".
func parseColor(v string) (*doc.Color, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	switch v {
	case "", "none", "transparent":
		return nil, nil
	}

	if strings.HasPrefix(v, "#") {
		return parseHexColor(v)
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		return parseRGBColor(v[len("rgb(") : len(v)-1])
	}
	if named, ok := colornames.Map[v]; ok {
		return &doc.Color{R: named.R, G: named.G, B: named.B, A: named.A}, nil
	}
	return nil, fmt.Errorf("%w: %q", errBadColor, v)
}

func parseHexColor(v string) (*doc.Color, error) {
	hex := v[1:]
	switch len(hex) {
	case 3: // #rgb
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return nil, fmt.Errorf("%w: %q", errBadColor, v)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errBadColor, v)
	}
	return &doc.Color{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 255,
	}, nil
}

func parseRGBColor(args string) (*doc.Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: rgb(%s)", errBadColor, args)
	}
	var channels [3]uint8
	for i, p := range parts {
		p = strings.TrimSpace(p)
		percent := strings.HasSuffix(p, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: rgb(%s)", errBadColor, args)
		}
		if percent {
			f = f * 255 / 100
		}
		if f < 0 {
			f = 0
		} else if f > 255 {
			f = 255
		}
		channels[i] = uint8(f + 0.5)
	}
	return &doc.Color{R: channels[0], G: channels[1], B: channels[2], A: 255}, nil
}
