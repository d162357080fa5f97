// Package recognize defines the boundary to the external face-embedding
// model: frame capture, embedding extraction, and embedding comparison.
// The model itself is opaque; this package only ever sees its output, a
// fixed-length numeric vector per detected face.
package recognize

import (
	"encoding/json"
	"fmt"
	"math"
)

// Embedding is a fixed-length numeric vector produced by the face model for
// one detected face. The dimensionality is fixed by the model (typically 128)
// and is not enforced here beyond requiring compared embeddings to agree.
type Embedding []float64

// Distance returns the Euclidean distance between two embeddings.
// The embeddings must have the same dimensionality.
func Distance(a, b Embedding) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensionality mismatch: %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Encode serializes the embedding as a JSON number array, the on-disk
// representation used for stored face templates.
func (e Embedding) Encode() (string, error) {
	data, err := json.Marshal([]float64(e))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeEmbedding parses a JSON number array into an Embedding.
func DecodeEmbedding(s string) (Embedding, error) {
	var v []float64
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("decoding embedding: %w", err)
	}
	return Embedding(v), nil
}
