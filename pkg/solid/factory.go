package solid

import "fmt"

// DimensionNames returns the dimension names of a variant in constructor
// argument order.
func DimensionNames(k Kind) []string {
	switch k {
	case KindSphere:
		return []string{"radius"}
	case KindCube:
		return []string{"side length"}
	case KindCylinder, KindCone:
		return []string{"radius", "height"}
	case KindRectangularPrism:
		return []string{"length", "width", "height"}
	default:
		return nil
	}
}

// Dimensions returns the current dimensions of s in DimensionNames order.
func Dimensions(s Solid) []float64 {
	switch v := s.(type) {
	case *Sphere:
		return []float64{v.radius}
	case *Cube:
		return []float64{v.side}
	case *Cylinder:
		return []float64{v.radius, v.height}
	case *Cone:
		return []float64{v.radius, v.height}
	case *RectangularPrism:
		return []float64{v.length, v.width, v.height}
	default:
		return nil
	}
}

// New constructs a solid of kind k from dimensions given in DimensionNames
// order. Passing the wrong number of dimensions is a caller bug and is
// reported as a plain error; every other failure is an
// *InvalidDimensionError.
func New(k Kind, name, color string, dims ...float64) (Solid, error) {
	want := len(DimensionNames(k))
	if want == 0 {
		return nil, fmt.Errorf("solid: unknown kind %d", int(k))
	}
	if len(dims) != want {
		return nil, fmt.Errorf("solid: %s takes %d dimensions, got %d", k, want, len(dims))
	}

	// Each branch returns through an explicit nil check so that a failed
	// constructor never yields a non-nil interface holding a nil pointer.
	switch k {
	case KindSphere:
		s, err := NewNamedSphere(name, color, dims[0])
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindCube:
		c, err := NewNamedCube(name, color, dims[0])
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindCylinder:
		c, err := NewNamedCylinder(name, color, dims[0], dims[1])
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindCone:
		c, err := NewNamedCone(name, color, dims[0], dims[1])
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		p, err := NewNamedRectangularPrism(name, color, dims[0], dims[1], dims[2])
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Default returns the default-constructed solid of kind k, or nil for an
// unknown kind.
func Default(k Kind) Solid {
	switch k {
	case KindSphere:
		return DefaultSphere()
	case KindCube:
		return DefaultCube()
	case KindCylinder:
		return DefaultCylinder()
	case KindCone:
		return DefaultCone()
	case KindRectangularPrism:
		return DefaultRectangularPrism()
	default:
		return nil
	}
}

// Resize replaces every dimension of s, given in DimensionNames order.
// All values are validated before any is applied, so s is either fully
// resized or left untouched.
func Resize(s Solid, dims ...float64) error {
	if s == nil {
		return fmt.Errorf("solid: resize of nil solid")
	}
	names := DimensionNames(s.Kind())
	if len(dims) != len(names) {
		return fmt.Errorf("solid: %s takes %d dimensions, got %d", s.Kind(), len(names), len(dims))
	}
	for i, v := range dims {
		if err := checkPositive(names[i], v); err != nil {
			return err
		}
	}

	switch v := s.(type) {
	case *Sphere:
		v.radius = dims[0]
	case *Cube:
		v.side = dims[0]
	case *Cylinder:
		v.radius, v.height = dims[0], dims[1]
	case *Cone:
		v.radius, v.height = dims[0], dims[1]
	case *RectangularPrism:
		v.length, v.width, v.height = dims[0], dims[1], dims[2]
	}
	return nil
}
