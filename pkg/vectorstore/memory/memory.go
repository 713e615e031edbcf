package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"medassist-be/pkg/rag"
)

var ErrDimensionMismatch = errors.New("vector dimension mismatch")

type entry struct {
	id       string
	vector   []float32
	metadata rag.Metadata
}

// Index is an in-memory vector index using brute-force cosine similarity.
// It backs tests and database-less deployments.
type Index struct {
	mu        sync.RWMutex
	dimension int
	entries   map[string]*entry
	order     []string
}

var _ rag.VectorIndex = (*Index)(nil)

func NewIndex(dimension int) *Index {
	return &Index{
		dimension: dimension,
		entries:   make(map[string]*entry),
	}
}

func (s *Index) Upsert(ctx context.Context, id string, vector []float32, metadata rag.Metadata) error {
	if s.dimension > 0 && len(vector) != s.dimension {
		return ErrDimensionMismatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[id]; !exists {
		s.order = append(s.order, id)
	}
	s.entries[id] = &entry{
		id:       id,
		vector:   append([]float32(nil), vector...),
		metadata: metadata,
	}
	return nil
}

func (s *Index) Query(ctx context.Context, vector []float32, topK int) ([]rag.Match, error) {
	if s.dimension > 0 && len(vector) != s.dimension {
		return nil, ErrDimensionMismatch
	}
	if topK <= 0 {
		topK = rag.DefaultTopK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]rag.Match, 0, len(s.order))
	for _, id := range s.order {
		e := s.entries[id]
		matches = append(matches, rag.Match{
			ID:          e.id,
			PassageText: e.metadata[rag.MetadataText],
			Score:       cosine(vector, e.vector),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

// CountSource reports how many stored vectors carry the given source in their metadata.
func (s *Index) CountSource(ctx context.Context, source string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, e := range s.entries {
		if e.metadata[rag.MetadataSource] == source {
			n++
		}
	}
	return n, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
