// Package display generates search-display geometry: shuffled item locations
// on a cartesian grid or polar rings around the display center.
package display

import (
	"math"
	"math/rand"
)

// Point is a screen location in integer pixel coordinates.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Dist returns the euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// Layout describes the display a set of locations is generated for.
type Layout struct {
	Center       Point
	Radius       int // radius of the display area
	ItemRadius   int // half the extent of one item
	ItemDistance int // spacing between adjacent items' upper-left corners
}

// Cartesian returns a shuffled set of grid locations covering the display.
// Each location is an item's upper-left corner.
func (l Layout) Cartesian(rng *rand.Rand) []Point {
	var locations []Point
	minX := l.Center.X - l.Radius
	maxX := minX + 2*l.Radius - 2*l.ItemRadius
	minY := l.Center.Y - l.Radius
	maxY := minY + 2*l.Radius - 2*l.ItemRadius

	for x := minX; x+l.ItemRadius <= maxX; x += l.ItemDistance {
		for y := minY; y+l.ItemRadius <= maxY; y += l.ItemDistance {
			locations = append(locations, Point{X: x, Y: y})
		}
	}
	shuffle(locations, rng)
	return locations
}

// Polar returns a shuffled set of locations on rings around the display
// center. With dense set, each ring is packed as tightly as item spacing
// allows and ring radii grow linearly; otherwise angles advance by pi/4 and
// radii by half again.
func (l Layout) Polar(rng *rand.Rand, dense bool) []Point {
	var locations []Point
	radius := float64(l.ItemDistance * 2)
	for radius+float64(l.ItemRadius) < float64(l.Radius) {
		var angleIncrement float64
		if dense {
			circumference := 2 * math.Pi * radius
			angleIncrement = float64(l.ItemDistance) / circumference * 2 * math.Pi
		} else {
			angleIncrement = math.Pi / 4.0
		}
		for angle := 0.0; angle < 2*math.Pi; angle += angleIncrement {
			x := float64(l.Center.X) + radius*math.Cos(angle)
			y := float64(l.Center.Y) + radius*math.Sin(angle)
			locations = append(locations, Point{
				X: int(math.Round(x)) - l.ItemRadius,
				Y: int(math.Round(y)) - l.ItemRadius,
			})
		}
		if dense {
			radius += float64(l.ItemDistance)
		} else {
			radius *= 1.5
		}
	}
	shuffle(locations, rng)
	return locations
}

// Locations dispatches on the configured grid kind.
func (l Layout) Locations(rng *rand.Rand, cartesian bool) []Point {
	if cartesian {
		return l.Cartesian(rng)
	}
	return l.Polar(rng, false)
}

func shuffle(points []Point, rng *rand.Rand) {
	rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
}
