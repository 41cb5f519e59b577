package solid

import (
	"fmt"
	"strings"
)

// DefaultColor is the color assigned when none is given.
const DefaultColor = "Unknown Color"

// Kind enumerates the concrete solid variants.
type Kind int

const (
	KindSphere Kind = iota
	KindCube
	KindCylinder
	KindCone
	KindRectangularPrism
)

// String returns the variant tag used for grouping and reports.
func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "Sphere"
	case KindCube:
		return "Cube"
	case KindCylinder:
		return "Cylinder"
	case KindCone:
		return "Cone"
	case KindRectangularPrism:
		return "RectangularPrism"
	default:
		return "Unknown"
	}
}

// DisplayName returns the human-readable variant name. It is also the
// default name of a solid constructed without one.
func (k Kind) DisplayName() string {
	if k == KindRectangularPrism {
		return "Rectangular Prism"
	}
	return k.String()
}

// Kinds returns every variant in the order the driver menus list them.
func Kinds() []Kind {
	return []Kind{KindSphere, KindCube, KindCylinder, KindRectangularPrism, KindCone}
}

// Solid is the contract shared by all variants. The interface is closed:
// only types in this package implement it.
type Solid interface {
	Name() string
	SetName(name string)
	Color() string
	SetColor(color string)

	Kind() Kind
	Volume() float64
	SurfaceArea() float64

	// String embeds name, color, dimensions, volume and surface area.
	String() string

	isSolid()
}

// base carries the identity fields common to every variant.
type base struct {
	name  string
	color string
}

func newBase(k Kind) base {
	return base{name: k.DisplayName(), color: DefaultColor}
}

// Name returns the solid's name.
func (b *base) Name() string { return b.name }

// SetName replaces the solid's name. Any string is accepted.
func (b *base) SetName(name string) { b.name = name }

// Color returns the solid's color.
func (b *base) Color() string { return b.color }

// SetColor replaces the solid's color. Any string is accepted.
func (b *base) SetColor(color string) { b.color = color }

func (b *base) isSolid() {}

// field is a labelled dimension shown by describe.
type field struct {
	label string
	value float64
}

// describe renders the common summary format:
//
//	Red Ball [Color: Crimson, Radius: 5.00, Volume: 523.60, Surface Area: 314.16]
func describe(s Solid, fields ...field) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [Color: %s", s.Name(), s.Color())
	for _, f := range fields {
		fmt.Fprintf(&sb, ", %s: %.2f", f.label, f.value)
	}
	fmt.Fprintf(&sb, ", Volume: %.2f, Surface Area: %.2f]", s.Volume(), s.SurfaceArea())
	return sb.String()
}
