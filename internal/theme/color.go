package theme

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBandCount is returned by Bands when fewer than two bands are requested.
var ErrBandCount = errors.New("theme: gradient needs at least 2 bands")

// RGB is a color with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Ints returns the channels as ints, the form PDF drawing calls expect.
func (c RGB) Ints() (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}

// Hex returns the color as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// FallbackColor is what HexToRGB yields for malformed input.
var FallbackColor = RGB{41, 128, 185}

// ParseHex decodes a 6-digit hex color, with or without a leading '#',
// case-insensitively.
func ParseHex(s string) (RGB, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// HexToRGB is ParseHex with FallbackColor for malformed input.
func HexToRGB(s string) RGB {
	if c, ok := ParseHex(s); ok {
		return c
	}
	return FallbackColor
}

// Mix blends c toward other; weight 0 keeps c, 1 yields other.
func (c RGB) Mix(other RGB, weight float64) RGB {
	weight = math.Max(0, math.Min(1, weight))
	return RGB{
		R: lerp(c.R, other.R, weight),
		G: lerp(c.G, other.G, weight),
		B: lerp(c.B, other.B, weight),
	}
}

// Bands returns count colors evenly interpolated from a to b, channel by
// channel. The first band is a and the last is b.
func Bands(a, b RGB, count int) ([]RGB, error) {
	if count < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBandCount, count)
	}
	out := make([]RGB, count)
	last := float64(count - 1)
	for i := range out {
		out[i] = a.Mix(b, float64(i)/last)
	}
	out[0], out[count-1] = a, b
	return out, nil
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
