package domain

import "fmt"

// KeyPrefix namespaces every key the service writes to the database.
const KeyPrefix = "mm:"

// Kind partitions the embedding vector space by entity type.
type Kind string

const (
	// KindDeal marks embeddings of sell-side deals.
	KindDeal Kind = "deal"
	// KindBuyer marks embeddings of prospective buyers (contacts with criteria).
	KindBuyer Kind = "buyer"
)

// Opposite returns the other side of the matching pair.
func (k Kind) Opposite() Kind {
	if k == KindDeal {
		return KindBuyer
	}
	return KindDeal
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindDeal || k == KindBuyer
}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown entity kind %q", s)
	}
	return k, nil
}
