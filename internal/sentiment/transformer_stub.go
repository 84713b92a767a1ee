//go:build !ORT && !ALL

package sentiment

import (
	"context"
	"errors"
)

// Transformer is unavailable in builds without ONNX Runtime.
type Transformer struct{}

// NewTransformer always fails; rebuild with -tags ORT to enable the backend.
func NewTransformer(_ context.Context, _ TransformerConfig) (*Transformer, error) {
	return nil, errors.New("transformer backend not compiled in: rebuild with -tags ORT")
}

func (t *Transformer) Name() string { return "transformer" }

func (t *Transformer) Score(_ context.Context, _ []string) ([]Score, error) {
	return nil, errors.New("transformer backend not compiled in")
}
