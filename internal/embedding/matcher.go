// Package embedding turns model output vectors into match decisions and
// validates embeddings read back from storage.
package embedding

import (
	"fmt"

	"github.com/facegate/facegate/internal/vectormath"
)

// DefaultThreshold is the cosine similarity above which two embeddings are
// considered the same subject.
const DefaultThreshold = 0.6

// MatchResult is the outcome of comparing two embeddings.
type MatchResult struct {
	Similarity float64 `json:"similarity"` // cosine similarity in [-1, 1]
	IsMatch    bool    `json:"is_match"`
	Threshold  float64 `json:"threshold"`
}

// Compare computes the cosine similarity of two embeddings and decides a
// match against the threshold. The threshold must lie in [0, 1]; vector
// shape problems surface as vectormath errors.
func Compare(a, b []float32, threshold float64) (MatchResult, error) {
	if threshold < 0 || threshold > 1 {
		return MatchResult{}, fmt.Errorf("match threshold %v outside [0, 1]", threshold)
	}

	similarity, err := vectormath.Cosine(a, b)
	if err != nil {
		return MatchResult{}, err
	}

	return MatchResult{
		Similarity: similarity,
		IsMatch:    similarity >= threshold,
		Threshold:  threshold,
	}, nil
}
