package manifold

// DefaultSegments is the number of polygon sides used for circles.
const DefaultSegments = 128
