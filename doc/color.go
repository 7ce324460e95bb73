package doc

import "fmt"

// Color is a stroke color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// Common pen colors.
var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
	Red   = Color{255, 0, 0, 255}
	Green = Color{0, 255, 0, 255}
	Blue  = Color{0, 0, 255, 255}
)

// Opacity returns the alpha channel as a fraction in [0, 1].
func (c Color) Opacity() float64 { return float64(c.A) / 255 }

// HexString formats the color as #rrggbb, ignoring alpha.
func (c Color) HexString() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
