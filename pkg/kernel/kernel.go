// Package kernel defines the abstract geometry kernel interface used to
// turn analytic solids into triangle meshes. The sdfx subpackage is the
// default backend; the manifold subpackage is available with -tags=manifold.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
//
// Every primitive is centered on the origin with its axis along Z, so that
// a tessellated primitive encloses the same region as the analytic solid it
// was built from.
type Kernel interface {
	// Primitives. Non-positive dimensions are rejected with an error.
	Sphere(radius float64) (Solid, error)
	Box(x, y, z float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)
	Cone(height, radius float64) (Solid, error)

	// Scene layout
	Translate(s Solid, x, y, z float64) Solid
	Union(a, b Solid) Solid

	// Output
	ToMesh(s Solid) (*Mesh, error)
	SaveSTL(s Solid, path string) error
}
