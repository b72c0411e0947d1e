package citymap

import (
	"math"

	"github.com/ha1tch/citymap/pkg/geom"
)

// HitGap is the extra slack around a node marker, in pixels.
const HitGap = 3.0

// FindNearest returns the first node, in snapshot order, whose marker box
// contains q. q is in normalized coordinates; canvasWidth converts pixel
// sizes into normalized units for both axes. The test is an axis-aligned
// box of half the marker size plus HitGap, not a radial one.
func FindNearest(q geom.Point, nodes NodeSnapshot, canvasWidth float64) (Node, bool) {
	if canvasWidth <= 0 {
		return Node{}, false
	}
	gap := HitGap / canvasWidth

	for i := 0; i < nodes.Len(); i++ {
		n := nodes.At(i)
		half := float64(n.Type.Size()) / 2 / canvasWidth
		if math.Abs(q.X-n.X) <= half+gap && math.Abs(q.Y-n.Y) <= half+gap {
			return n, true
		}
	}
	return Node{}, false
}
