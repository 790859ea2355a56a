package domain

// Embedding is the stored vector projection of one entity. At most one
// record exists per (TargetID, Kind) pair; re-embedding replaces the vector
// in place. ID is the store's own identifier, the handle nearest-neighbor
// search results are resolved through.
type Embedding struct {
	ID       string
	TargetID string
	Kind     Kind
	Vector   []float32
}

// Neighbor is a single nearest-neighbor hit: the internal embedding id plus
// a backend-defined similarity score (higher = more similar).
type Neighbor struct {
	EmbeddingID string
	Score       float64
}
