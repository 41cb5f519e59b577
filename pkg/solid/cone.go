package solid

import "math"

// Cone is a right circular cone.
type Cone struct {
	base
	radius float64
	height float64
}

// DefaultCone returns a cone with unit radius and height.
func DefaultCone() *Cone {
	return &Cone{base: newBase(KindCone), radius: 1, height: 1}
}

// NewCone returns a cone with the default name and color.
func NewCone(radius, height float64) (*Cone, error) {
	return NewNamedCone(KindCone.DisplayName(), DefaultColor, radius, height)
}

// NewNamedCone returns a cone with the given identity.
func NewNamedCone(name, color string, radius, height float64) (*Cone, error) {
	if err := checkPositive("radius", radius); err != nil {
		return nil, err
	}
	if err := checkPositive("height", height); err != nil {
		return nil, err
	}
	return &Cone{base: base{name: name, color: color}, radius: radius, height: height}, nil
}

func (c *Cone) Kind() Kind { return KindCone }

// Radius returns the base radius.
func (c *Cone) Radius() float64 { return c.radius }

// SetRadius changes the base radius. The cone is left untouched on error.
func (c *Cone) SetRadius(radius float64) error {
	if err := checkPositive("radius", radius); err != nil {
		return err
	}
	c.radius = radius
	return nil
}

// Height returns the height.
func (c *Cone) Height() float64 { return c.height }

// SetHeight changes the height. The cone is left untouched on error.
func (c *Cone) SetHeight(height float64) error {
	if err := checkPositive("height", height); err != nil {
		return err
	}
	c.height = height
	return nil
}

// SlantHeight returns √(r²+h²).
func (c *Cone) SlantHeight() float64 {
	return math.Sqrt(c.radius*c.radius + c.height*c.height)
}

// Diameter returns 2r.
func (c *Cone) Diameter() float64 { return 2 * c.radius }

// BaseArea returns πr².
func (c *Cone) BaseArea() float64 { return math.Pi * c.radius * c.radius }

// LateralSurfaceArea returns πr times the slant height.
func (c *Cone) LateralSurfaceArea() float64 { return math.Pi * c.radius * c.SlantHeight() }

// Volume returns (1/3)πr²h.
func (c *Cone) Volume() float64 {
	return (1.0 / 3.0) * math.Pi * c.radius * c.radius * c.height
}

// SurfaceArea returns the base plus the lateral area.
func (c *Cone) SurfaceArea() float64 {
	return c.BaseArea() + c.LateralSurfaceArea()
}

func (c *Cone) String() string {
	return describe(c, field{"Radius", c.radius}, field{"Height", c.height})
}
