// Package solid defines the three-dimensional solids handled by solidkit.
// Every solid satisfies the Solid interface: it has a name and a color and
// computes its own volume and surface area from strictly positive dimensions.
// Dimensions are validated at construction and on every setter, so a solid
// can never be observed in an invalid state.
package solid
