package embedding

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Stored embedding length bounds, enforced before an embedding is used for
// comparison. Wider than the current model's 512 so a model change does not
// invalidate old enrollments outright, but tight enough to catch corrupted
// or truncated rows.
const (
	MinStoredLen = 64
	MaxStoredLen = 2048
)

// ErrEmbeddingFormat is returned when a stored embedding cannot be decoded
// or fails validation.
var ErrEmbeddingFormat = errors.New("invalid stored embedding")

// ParseStored decodes an embedding read back from storage into a float32
// slice. It accepts an already-decoded numeric slice ([]float32, []float64
// or []any of JSON numbers) or a textual JSON array encoding (string or
// []byte). Every element must be a finite number. Length bounds are checked
// separately by ValidateStored, at the point of use.
func ParseStored(raw any) ([]float32, error) {
	switch v := raw.(type) {
	case []float32:
		values := make([]float32, len(v))
		copy(values, v)
		return checkFinite(values)
	case []float64:
		values := make([]float32, len(v))
		for i, f := range v {
			values[i] = float32(f)
		}
		return checkFinite(values)
	case []any:
		values, err := fromAnySlice(v)
		if err != nil {
			return nil, err
		}
		return checkFinite(values)
	case string:
		return parseJSONArray([]byte(v))
	case []byte:
		return parseJSONArray(v)
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrEmbeddingFormat, raw)
	}
}

// ValidateStored enforces the length bounds on a parsed stored embedding.
func ValidateStored(values []float32) error {
	if len(values) < MinStoredLen || len(values) > MaxStoredLen {
		return fmt.Errorf("%w: length %d outside [%d, %d]", ErrEmbeddingFormat, len(values), MinStoredLen, MaxStoredLen)
	}
	return nil
}

// parseJSONArray decodes a textual embedding like "[0.1, -0.2, ...]".
func parseJSONArray(data []byte) ([]float32, error) {
	var decoded []any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: not a JSON array: %v", ErrEmbeddingFormat, err)
	}
	values, err := fromAnySlice(decoded)
	if err != nil {
		return nil, err
	}
	return checkFinite(values)
}

func fromAnySlice(items []any) ([]float32, error) {
	values := make([]float32, len(items))
	for i, item := range items {
		switch n := item.(type) {
		case float64:
			values[i] = float32(n)
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: element %d is not numeric: %v", ErrEmbeddingFormat, i, err)
			}
			values[i] = float32(f)
		default:
			return nil, fmt.Errorf("%w: element %d has type %T, expected number", ErrEmbeddingFormat, i, item)
		}
	}
	return values, nil
}

func checkFinite(values []float32) ([]float32, error) {
	for i, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: element %d is not finite", ErrEmbeddingFormat, i)
		}
	}
	return values, nil
}
