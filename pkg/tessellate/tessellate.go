// Package tessellate turns the solids of a registry into triangle meshes
// using a geometry kernel. One mesh is produced per solid, in registry order.
package tessellate

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/chazu/solidkit/pkg/kernel"
	"github.com/chazu/solidkit/pkg/solid"
	"github.com/sirupsen/logrus"
)

// DefaultGap is the spacing left between neighbouring solids in a scene.
const DefaultGap = 1.0

// Build creates the kernel primitive matching s. The primitive is centered
// on the origin with its axis along Z.
func Build(k kernel.Kernel, s solid.Solid) (kernel.Solid, error) {
	switch v := s.(type) {
	case *solid.Sphere:
		return k.Sphere(v.Radius())
	case *solid.Cube:
		return k.Box(v.SideLength(), v.SideLength(), v.SideLength())
	case *solid.Cylinder:
		return k.Cylinder(v.Height(), v.Radius())
	case *solid.Cone:
		return k.Cone(v.Height(), v.Radius())
	case *solid.RectangularPrism:
		return k.Box(v.Length(), v.Width(), v.Height())
	case nil:
		return nil, fmt.Errorf("tessellate: nil solid")
	default:
		return nil, fmt.Errorf("tessellate: unsupported solid type %T", s)
	}
}

// Tessellate produces one triangle mesh per solid in the registry using the
// provided geometry kernel. Each mesh is named after its solid, falling
// back to "<kind>-<index>" for unnamed solids. The registry is never mutated.
func Tessellate(reg *solid.Registry, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if reg == nil {
		return nil, nil
	}

	meshes := make([]*kernel.Mesh, 0, reg.Len())
	for i, s := range reg.All() {
		ks, err := Build(k, s)
		if err != nil {
			return nil, fmt.Errorf("tessellate: solid %d: %w", i, err)
		}
		mesh, err := k.ToMesh(ks)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for solid %d: %w", i, err)
		}
		mesh.Name = partName(i, s)
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// Scene places every solid of the registry side by side along the X axis,
// in registry order and separated by gap, and returns their union.
func Scene(reg *solid.Registry, k kernel.Kernel, gap float64) (kernel.Solid, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, fmt.Errorf("tessellate: empty registry")
	}

	var scene kernel.Solid
	cursor := 0.0
	for i, s := range reg.All() {
		ks, err := Build(k, s)
		if err != nil {
			return nil, fmt.Errorf("tessellate: solid %d: %w", i, err)
		}
		min, max := ks.BoundingBox()
		// Shift so the solid's left face sits on the cursor.
		placed := k.Translate(ks, cursor-min[0], 0, 0)
		cursor += max[0] - min[0] + gap

		if scene == nil {
			scene = placed
		} else {
			scene = k.Union(scene, placed)
		}
	}
	return scene, nil
}

// ExportSTL writes one STL file per solid into dir, creating it if needed,
// and returns the written paths in registry order.
func ExportSTL(reg *solid.Registry, k kernel.Kernel, dir string, log logrus.FieldLogger) ([]string, error) {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	if reg == nil || reg.Len() == 0 {
		return nil, fmt.Errorf("tessellate: empty registry")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}

	var paths []string
	for i, s := range reg.All() {
		ks, err := Build(k, s)
		if err != nil {
			return paths, fmt.Errorf("tessellate: solid %d: %w", i, err)
		}
		path := filepath.Join(dir, fileName(i, s))
		if err := k.SaveSTL(ks, path); err != nil {
			return paths, fmt.Errorf("tessellate: solid %d: %w", i, err)
		}
		log.WithFields(logrus.Fields{
			"index": i,
			"kind":  s.Kind().String(),
			"path":  path,
		}).Debug("wrote STL")
		paths = append(paths, path)
	}
	return paths, nil
}

// Deviation compares a solid's analytic measurements with its mesh.
type Deviation struct {
	Name            string
	Kind            solid.Kind
	AnalyticVolume  float64
	MeshVolume      float64
	AnalyticSurface float64
	MeshSurface     float64
}

// VolumeError returns the relative volume error of the mesh.
func (d Deviation) VolumeError() float64 {
	return relErr(d.MeshVolume, d.AnalyticVolume)
}

// SurfaceError returns the relative surface area error of the mesh.
func (d Deviation) SurfaceError() float64 {
	return relErr(d.MeshSurface, d.AnalyticSurface)
}

// Compare tessellates every solid and reports how far each mesh deviates
// from the analytic formulas.
func Compare(reg *solid.Registry, k kernel.Kernel) ([]Deviation, error) {
	meshes, err := Tessellate(reg, k)
	if err != nil {
		return nil, err
	}
	devs := make([]Deviation, len(meshes))
	for i, m := range meshes {
		s := reg.At(i)
		devs[i] = Deviation{
			Name:            m.Name,
			Kind:            s.Kind(),
			AnalyticVolume:  s.Volume(),
			MeshVolume:      m.Volume(),
			AnalyticSurface: s.SurfaceArea(),
			MeshSurface:     m.SurfaceArea(),
		}
	}
	return devs, nil
}

func relErr(got, want float64) float64 {
	if want == 0 {
		return 0
	}
	return math.Abs(got-want) / want
}

func partName(i int, s solid.Solid) string {
	if s.Name() != "" {
		return s.Name()
	}
	return fmt.Sprintf("%s-%d", strings.ToLower(s.Kind().String()), i)
}

// fileName builds "<index>-<slug>.stl" so that files sort in registry order
// and two solids with the same name never collide.
func fileName(i int, s solid.Solid) string {
	return fmt.Sprintf("%02d-%s.stl", i, slug(partName(i, s)))
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "solid"
	}
	return out
}
