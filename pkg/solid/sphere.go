package solid

import "math"

// Sphere is a ball of the given radius.
type Sphere struct {
	base
	radius float64
}

// DefaultSphere returns a unit sphere named "Sphere".
func DefaultSphere() *Sphere {
	return &Sphere{base: newBase(KindSphere), radius: 1}
}

// NewSphere returns a sphere with the default name and color.
func NewSphere(radius float64) (*Sphere, error) {
	return NewNamedSphere(KindSphere.DisplayName(), DefaultColor, radius)
}

// NewNamedSphere returns a sphere with the given identity.
func NewNamedSphere(name, color string, radius float64) (*Sphere, error) {
	if err := checkPositive("radius", radius); err != nil {
		return nil, err
	}
	return &Sphere{base: base{name: name, color: color}, radius: radius}, nil
}

func (s *Sphere) Kind() Kind { return KindSphere }

// Radius returns the radius.
func (s *Sphere) Radius() float64 { return s.radius }

// SetRadius changes the radius. The sphere is left untouched on error.
func (s *Sphere) SetRadius(radius float64) error {
	if err := checkPositive("radius", radius); err != nil {
		return err
	}
	s.radius = radius
	return nil
}

// Diameter returns 2r.
func (s *Sphere) Diameter() float64 { return 2 * s.radius }

// Volume returns (4/3)πr³.
func (s *Sphere) Volume() float64 {
	return (4.0 / 3.0) * math.Pi * s.radius * s.radius * s.radius
}

// SurfaceArea returns 4πr².
func (s *Sphere) SurfaceArea() float64 {
	return 4 * math.Pi * s.radius * s.radius
}

func (s *Sphere) String() string {
	return describe(s, field{"Radius", s.radius})
}
