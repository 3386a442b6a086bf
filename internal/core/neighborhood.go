package core

import "fmt"

// Neighborhood is the adjacency rule used when a cell consults its neighbors.
// Edge neighbors include face neighbors; vertex neighbors include both.
type Neighborhood int

const (
	VertexNeighbors Neighborhood = iota
	EdgeNeighbors
	FaceNeighbors
)

var neighborhoodNames = [...]string{
	VertexNeighbors: "vertex",
	EdgeNeighbors:   "edge",
	FaceNeighbors:   "face",
}

var recognizedNeighborhoods = func() map[string]Neighborhood {
	m := make(map[string]Neighborhood, len(neighborhoodNames))
	for n, name := range neighborhoodNames {
		m[name] = Neighborhood(n)
	}
	return m
}()

// Neighborhoods lists every variant in canonical order.
func Neighborhoods() []Neighborhood {
	return []Neighborhood{VertexNeighbors, EdgeNeighbors, FaceNeighbors}
}

// String returns the canonical identifier used in saved documents.
func (n Neighborhood) String() string {
	if n >= 0 && int(n) < len(neighborhoodNames) {
		return neighborhoodNames[n]
	}
	return fmt.Sprintf("Neighborhood(%d)", int(n))
}

// ParseNeighborhood maps a canonical identifier back to its variant.
func ParseNeighborhood(s string) (Neighborhood, error) {
	n, ok := recognizedNeighborhoods[s]
	if !ok {
		return VertexNeighbors, fmt.Errorf("%w: neighborhood_type %q", ErrUnrecognizedValue, s)
	}
	return n, nil
}
