package solid

import "math"

// Cube is a regular hexahedron.
type Cube struct {
	base
	side float64
}

// DefaultCube returns a unit cube named "Cube".
func DefaultCube() *Cube {
	return &Cube{base: newBase(KindCube), side: 1}
}

// NewCube returns a cube with the default name and color.
func NewCube(side float64) (*Cube, error) {
	return NewNamedCube(KindCube.DisplayName(), DefaultColor, side)
}

// NewNamedCube returns a cube with the given identity.
func NewNamedCube(name, color string, side float64) (*Cube, error) {
	if err := checkPositive("side length", side); err != nil {
		return nil, err
	}
	return &Cube{base: base{name: name, color: color}, side: side}, nil
}

func (c *Cube) Kind() Kind { return KindCube }

// SideLength returns the edge length.
func (c *Cube) SideLength() float64 { return c.side }

// SetSideLength changes the edge length. The cube is left untouched on error.
func (c *Cube) SetSideLength(side float64) error {
	if err := checkPositive("side length", side); err != nil {
		return err
	}
	c.side = side
	return nil
}

// FaceDiagonal returns s√2.
func (c *Cube) FaceDiagonal() float64 { return c.side * math.Sqrt2 }

// SpaceDiagonal returns s√3.
func (c *Cube) SpaceDiagonal() float64 { return c.side * math.Sqrt(3) }

// Volume returns s³.
func (c *Cube) Volume() float64 { return c.side * c.side * c.side }

// SurfaceArea returns 6s².
func (c *Cube) SurfaceArea() float64 { return 6 * c.side * c.side }

func (c *Cube) String() string {
	return describe(c, field{"Side Length", c.side})
}
