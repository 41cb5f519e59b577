package kernel

import "math"

// Mesh is a triangle mesh.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // name of the solid this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// vertex returns vertex i as float64 components.
func (m *Mesh) vertex(i uint32) [3]float64 {
	o := int(i) * 3
	return [3]float64{float64(m.Vertices[o]), float64(m.Vertices[o+1]), float64(m.Vertices[o+2])}
}

// triangle returns the three corners of triangle t.
func (m *Mesh) triangle(t int) (a, b, c [3]float64) {
	o := t * 3
	return m.vertex(m.Indices[o]), m.vertex(m.Indices[o+1]), m.vertex(m.Indices[o+2])
}

// Volume returns the enclosed volume of a closed, consistently wound mesh,
// summing the signed tetrahedra formed with the origin.
func (m *Mesh) Volume() float64 {
	var v float64
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.triangle(t)
		v += dot(a, cross(b, c))
	}
	return math.Abs(v) / 6
}

// SurfaceArea returns the summed area of all triangles.
func (m *Mesh) SurfaceArea() float64 {
	var area float64
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.triangle(t)
		area += norm(cross(sub(b, a), sub(c, a))) / 2
	}
	return area
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm(a [3]float64) float64 {
	return math.Sqrt(dot(a, a))
}
