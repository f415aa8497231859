package structure

import (
	"fmt"
	"strconv"
	"strings"
)

// HexToRGB converts "#RRGGBB" to an RGB triple in [0, 1].
func HexToRGB(hex string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid colour %q", hex)
	}
	var out RGB
	for i := range 3 {
		n, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid colour %q: %w", hex, err)
		}
		out[i] = float64(n) / 255.0
	}
	return out, nil
}
