package store

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/coder/hnsw"
)

// HNSW parameters for 512-dim face embeddings.
const (
	// hnswMaxNeighbors (M) is the maximum number of neighbors per node.
	// Higher values improve recall but increase memory and build time.
	hnswMaxNeighbors = 16
)

// Candidate is one result of a 1:N identify search.
type Candidate struct {
	SubjectID  string  `json:"subject_id"`
	Similarity float64 `json:"similarity"` // cosine similarity in [-1, 1]
}

// IdentifyIndex is an in-memory HNSW graph over all enrolled embeddings,
// keyed by subject ID. It backs the 1:N identify operation; the Postgres
// store stays the source of truth.
type IdentifyIndex struct {
	mu      sync.RWMutex
	graph   *hnsw.Graph[string]
	idToEmb map[string][]float32
}

// NewIdentifyIndex creates an empty index.
func NewIdentifyIndex() *IdentifyIndex {
	return &IdentifyIndex{idToEmb: make(map[string][]float32)}
}

// Build replaces the index contents with the given enrollments.
func (ix *IdentifyIndex) Build(embeddings []StoredEmbedding) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	g := hnsw.NewGraph[string]()
	g.M = hnswMaxNeighbors
	g.Ml = 1.0 / float64(hnswMaxNeighbors)
	g.Distance = hnsw.CosineDistance

	ix.idToEmb = make(map[string][]float32, len(embeddings))
	for i := range embeddings {
		emb := &embeddings[i]
		if len(emb.Embedding) == 0 {
			continue
		}
		g.Add(hnsw.MakeNode(emb.SubjectID, emb.Embedding))
		ix.idToEmb[emb.SubjectID] = emb.Embedding
	}

	ix.graph = g
	return nil
}

// Add inserts or replaces one subject's embedding.
func (ix *IdentifyIndex) Add(subjectID string, embedding []float32) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.graph == nil {
		g := hnsw.NewGraph[string]()
		g.M = hnswMaxNeighbors
		g.Ml = 1.0 / float64(hnswMaxNeighbors)
		g.Distance = hnsw.CosineDistance
		ix.graph = g
	}

	ix.graph.Add(hnsw.MakeNode(subjectID, embedding))
	ix.idToEmb[subjectID] = embedding
}

// Delete removes a subject from the index. The graph node stays behind
// (HNSW has no true deletion) but search results are filtered through
// idToEmb, so the subject stops appearing.
func (ix *IdentifyIndex) Delete(subjectID string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.idToEmb, subjectID)
}

// Count returns the number of indexed subjects.
func (ix *IdentifyIndex) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.idToEmb)
}

// Search returns the k nearest enrolled subjects with exact cosine
// similarity recomputed for each result.
func (ix *IdentifyIndex) Search(query []float32, k int) ([]Candidate, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.graph == nil {
		return nil, errors.New("identify index not initialized")
	}
	if k <= 0 {
		return nil, fmt.Errorf("invalid search size %d", k)
	}

	neighbors := ix.graph.Search(query, k)

	candidates := make([]Candidate, 0, len(neighbors))
	for _, n := range neighbors {
		emb, ok := ix.idToEmb[n.Key]
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{
			SubjectID:  n.Key,
			Similarity: cosine(query, emb),
		})
	}
	// The graph orders by approximate distance; after exact re-scoring the
	// order can disagree, so re-sort on the reported similarity.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})
	return candidates, nil
}

// cosine is a local clamped cosine similarity; the graph distance is
// approximate, so results report the exact value.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1 {
		sim = 1
	}
	if sim < -1 {
		sim = -1
	}
	return sim
}
