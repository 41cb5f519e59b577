package solid

import "math"

// Cylinder is a right circular cylinder.
type Cylinder struct {
	base
	radius float64
	height float64
}

// DefaultCylinder returns a cylinder with unit radius and height.
func DefaultCylinder() *Cylinder {
	return &Cylinder{base: newBase(KindCylinder), radius: 1, height: 1}
}

// NewCylinder returns a cylinder with the default name and color.
func NewCylinder(radius, height float64) (*Cylinder, error) {
	return NewNamedCylinder(KindCylinder.DisplayName(), DefaultColor, radius, height)
}

// NewNamedCylinder returns a cylinder with the given identity.
func NewNamedCylinder(name, color string, radius, height float64) (*Cylinder, error) {
	if err := checkPositive("radius", radius); err != nil {
		return nil, err
	}
	if err := checkPositive("height", height); err != nil {
		return nil, err
	}
	return &Cylinder{base: base{name: name, color: color}, radius: radius, height: height}, nil
}

func (c *Cylinder) Kind() Kind { return KindCylinder }

// Radius returns the base radius.
func (c *Cylinder) Radius() float64 { return c.radius }

// SetRadius changes the base radius. The cylinder is left untouched on error.
func (c *Cylinder) SetRadius(radius float64) error {
	if err := checkPositive("radius", radius); err != nil {
		return err
	}
	c.radius = radius
	return nil
}

// Height returns the height.
func (c *Cylinder) Height() float64 { return c.height }

// SetHeight changes the height. The cylinder is left untouched on error.
func (c *Cylinder) SetHeight(height float64) error {
	if err := checkPositive("height", height); err != nil {
		return err
	}
	c.height = height
	return nil
}

// Diameter returns 2r.
func (c *Cylinder) Diameter() float64 { return 2 * c.radius }

// BaseArea returns πr².
func (c *Cylinder) BaseArea() float64 { return math.Pi * c.radius * c.radius }

// LateralSurfaceArea returns 2πrh.
func (c *Cylinder) LateralSurfaceArea() float64 { return 2 * math.Pi * c.radius * c.height }

// Volume returns πr²h.
func (c *Cylinder) Volume() float64 {
	return math.Pi * c.radius * c.radius * c.height
}

// SurfaceArea returns 2πr² + 2πrh.
func (c *Cylinder) SurfaceArea() float64 {
	return 2*math.Pi*c.radius*c.radius + 2*math.Pi*c.radius*c.height
}

func (c *Cylinder) String() string {
	return describe(c, field{"Radius", c.radius}, field{"Height", c.height})
}
