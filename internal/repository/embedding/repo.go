package embedding

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/dealbridge/matchmaker/internal/db"
	"github.com/dealbridge/matchmaker/internal/domain"
)

const (
	hashPrefix = domain.KeyPrefix + "emb:"
	indexName  = domain.KeyPrefix + "emb:idx"

	fieldTargetID = "target_id"
	fieldKind     = "kind"
	fieldVector   = "vector"
)

// store is the consumer interface for the embedding store (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig tunes the vector index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo is the embedding store: one vector per (target id, kind) pair,
// replaced in place on re-embedding, searchable by kind-filtered KNN.
type Repo struct {
	store store
	dim   int
	hnsw  HNSWConfig
}

// New creates an embedding repository enforcing the given vector dimension.
func New(s store, dim int) *Repo {
	return &Repo{store: s, dim: dim}
}

// WithHNSW configures index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// IndexName returns the FT index the repository searches.
func (r *Repo) IndexName() string {
	return indexName
}

// EnsureIndex creates the FT vector index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:        indexName,
		StorageType: db.StorageHash,
		Prefixes:    []string{hashPrefix},
		Fields: []db.IndexField{
			{Name: fieldKind, Type: db.IndexFieldTag},
			{
				Name:              fieldVector,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.dim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Upsert stores the vector for (targetID, kind), replacing any existing one.
// The write is a single HSET, so a concurrent reader sees either the old or
// the new vector, never a partial one.
func (r *Repo) Upsert(ctx context.Context, targetID string, kind domain.Kind, vector []float32) error {
	if len(vector) != r.dim {
		return fmt.Errorf("got %d dimensions, index expects %d: %w",
			len(vector), r.dim, domain.ErrVectorDimMismatch)
	}

	id, err := r.resolveTarget(ctx, targetID, kind)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			return fmt.Errorf("resolve target pointer: %w", err)
		}
		id = uuid.NewString()
		if err := r.store.Set(ctx, targetKey(targetID, kind), []byte(id)); err != nil {
			return fmt.Errorf("set target pointer: %w", err)
		}
	}

	fields := map[string]string{
		fieldTargetID: targetID,
		fieldKind:     string(kind),
		fieldVector:   vectorToBytes(vector),
	}
	if err := r.store.HSet(ctx, hashKey(id), fields); err != nil {
		return fmt.Errorf("hset %s: %w", hashKey(id), err)
	}
	return nil
}

// GetByTarget returns the embedding for (targetID, kind).
// domain.ErrEmbeddingNotFound signals an entity that has not been embedded.
func (r *Repo) GetByTarget(ctx context.Context, targetID string, kind domain.Kind) (domain.Embedding, error) {
	id, err := r.resolveTarget(ctx, targetID, kind)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Embedding{}, domain.ErrEmbeddingNotFound
		}
		return domain.Embedding{}, fmt.Errorf("resolve target pointer: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns the embedding record by its internal identifier.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Embedding, error) {
	fields, err := r.store.HGetAll(ctx, hashKey(id))
	if err != nil {
		return domain.Embedding{}, fmt.Errorf("hgetall %s: %w", hashKey(id), err)
	}
	if len(fields) == 0 {
		return domain.Embedding{}, domain.ErrEmbeddingNotFound
	}

	kind, err := domain.ParseKind(fields[fieldKind])
	if err != nil {
		return domain.Embedding{}, fmt.Errorf("embedding %s: %w", id, err)
	}

	vector, err := bytesToVector([]byte(fields[fieldVector]))
	if err != nil {
		return domain.Embedding{}, fmt.Errorf("embedding %s: %w", id, err)
	}

	return domain.Embedding{
		ID:       id,
		TargetID: fields[fieldTargetID],
		Kind:     kind,
		Vector:   vector,
	}, nil
}

// SearchNearest returns up to k embeddings of the given kind nearest to
// vector, in descending similarity order.
func (r *Repo) SearchNearest(ctx context.Context, vector []float32, kind domain.Kind, k int) ([]domain.Neighbor, error) {
	q := &db.KNNQuery{
		IndexName:    indexName,
		Vector:       vector,
		K:            k,
		Filters:      map[string]string{fieldKind: string(kind)},
		ReturnFields: []string{"__vector_score"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", kind, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	neighbors := make([]domain.Neighbor, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		neighbors = append(neighbors, domain.Neighbor{
			EmbeddingID: strings.TrimPrefix(entry.Key, hashPrefix),
			Score:       entry.Score,
		})
	}
	return neighbors, nil
}

// DeleteByTarget removes the embedding for (targetID, kind). Deleting an
// entity that was never embedded is a no-op.
func (r *Repo) DeleteByTarget(ctx context.Context, targetID string, kind domain.Kind) error {
	id, err := r.resolveTarget(ctx, targetID, kind)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("resolve target pointer: %w", err)
	}

	if err := r.store.Del(ctx, hashKey(id)); err != nil {
		return fmt.Errorf("del %s: %w", hashKey(id), err)
	}
	if err := r.store.Del(ctx, targetKey(targetID, kind)); err != nil {
		return fmt.Errorf("del target pointer: %w", err)
	}
	return nil
}

func (r *Repo) resolveTarget(ctx context.Context, targetID string, kind domain.Kind) (string, error) {
	data, err := r.store.Get(ctx, targetKey(targetID, kind))
	if err != nil {
		return "", err //nolint:wrapcheck // callers branch on db.ErrKeyNotFound
	}
	return string(data), nil
}

func hashKey(id string) string {
	return hashPrefix + id
}

func targetKey(targetID string, kind domain.Kind) string {
	return fmt.Sprintf("%semb:target:%s:%s", domain.KeyPrefix, kind, targetID)
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid vector data: len=%d (not multiple of 4)", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
