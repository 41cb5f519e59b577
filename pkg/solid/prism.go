package solid

import "math"

// RectangularPrism is a box with independent length, width and height.
type RectangularPrism struct {
	base
	length float64
	width  float64
	height float64
}

// DefaultRectangularPrism returns a unit box named "Rectangular Prism".
func DefaultRectangularPrism() *RectangularPrism {
	return &RectangularPrism{base: newBase(KindRectangularPrism), length: 1, width: 1, height: 1}
}

// NewRectangularPrism returns a prism with the default name and color.
func NewRectangularPrism(length, width, height float64) (*RectangularPrism, error) {
	return NewNamedRectangularPrism(KindRectangularPrism.DisplayName(), DefaultColor, length, width, height)
}

// NewNamedRectangularPrism returns a prism with the given identity.
func NewNamedRectangularPrism(name, color string, length, width, height float64) (*RectangularPrism, error) {
	if err := checkPositive("length", length); err != nil {
		return nil, err
	}
	if err := checkPositive("width", width); err != nil {
		return nil, err
	}
	if err := checkPositive("height", height); err != nil {
		return nil, err
	}
	return &RectangularPrism{
		base:   base{name: name, color: color},
		length: length,
		width:  width,
		height: height,
	}, nil
}

func (p *RectangularPrism) Kind() Kind { return KindRectangularPrism }

// Length returns the length.
func (p *RectangularPrism) Length() float64 { return p.length }

// SetLength changes the length. The prism is left untouched on error.
func (p *RectangularPrism) SetLength(length float64) error {
	if err := checkPositive("length", length); err != nil {
		return err
	}
	p.length = length
	return nil
}

// Width returns the width.
func (p *RectangularPrism) Width() float64 { return p.width }

// SetWidth changes the width. The prism is left untouched on error.
func (p *RectangularPrism) SetWidth(width float64) error {
	if err := checkPositive("width", width); err != nil {
		return err
	}
	p.width = width
	return nil
}

// Height returns the height.
func (p *RectangularPrism) Height() float64 { return p.height }

// SetHeight changes the height. The prism is left untouched on error.
func (p *RectangularPrism) SetHeight(height float64) error {
	if err := checkPositive("height", height); err != nil {
		return err
	}
	p.height = height
	return nil
}

// SpaceDiagonal returns √(l²+w²+h²).
func (p *RectangularPrism) SpaceDiagonal() float64 {
	return math.Sqrt(p.length*p.length + p.width*p.width + p.height*p.height)
}

// BaseArea returns l·w.
func (p *RectangularPrism) BaseArea() float64 { return p.length * p.width }

// IsCube reports whether all three dimensions are exactly equal. No
// tolerance is applied, so values that differ only by rounding error
// are not a cube.
func (p *RectangularPrism) IsCube() bool {
	return p.length == p.width && p.width == p.height
}

// Volume returns l·w·h.
func (p *RectangularPrism) Volume() float64 { return p.length * p.width * p.height }

// SurfaceArea returns 2(lw + lh + wh).
func (p *RectangularPrism) SurfaceArea() float64 {
	return 2 * (p.length*p.width + p.length*p.height + p.width*p.height)
}

func (p *RectangularPrism) String() string {
	return describe(p,
		field{"Length", p.length},
		field{"Width", p.width},
		field{"Height", p.height},
	)
}
