package steg

import (
	"fmt"
	"iter"
)

// Orientation selects the pixel visiting order. The same orientation
// must be used to embed and to extract; nothing in the image records
// which one was used.
type Orientation int

const (
	// Horizontal scans rows top to bottom, each row left to right.
	Horizontal Orientation = iota
	// Vertical scans columns left to right, each column top to bottom.
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation converts an orientation name to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal", "row", "rows":
		return Horizontal, nil
	case "vertical", "column", "columns":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("unknown orientation: %q", s)
	}
}

// Valid reports whether o is one of the defined orientations.
func (o Orientation) Valid() bool {
	return o == Horizontal || o == Vertical
}

// Point is a pixel coordinate.
type Point struct {
	X int
	Y int
}

// Plan returns the visiting order of every coordinate of a width×height
// grid. The sequence is lazy and can be ranged over any number of times,
// yielding the same order each time.
func Plan(width, height int, o Orientation) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if o == Vertical {
			for col := 0; col < width; col++ {
				for row := 0; row < height; row++ {
					if !yield(Point{X: col, Y: row}) {
						return
					}
				}
			}
			return
		}
		for row := 0; row < height; row++ {
			for col := 0; col < width; col++ {
				if !yield(Point{X: col, Y: row}) {
					return
				}
			}
		}
	}
}
