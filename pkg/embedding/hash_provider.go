package embedding

import (
	"context"
	"hash/fnv"
)

const DefaultDimension = 384

// HashProvider is a deterministic pseudo-embedding: a stream of floats in
// [0, 1) seeded by a hash of the input text. It carries no semantics and
// exists so the pipeline runs (and tests deterministically) without a model
// backend.
type HashProvider struct {
	dimension int
}

func NewHashProvider(dimension int) *HashProvider {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &HashProvider{dimension: dimension}
}

func (p *HashProvider) Dimension() int {
	return p.dimension
}

func (p *HashProvider) Embed(_ context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	state := h.Sum64()

	vector := make([]float32, p.dimension)
	for i := range vector {
		state = splitmix64(state)
		// top 24 bits give a uniform float in [0, 1)
		vector[i] = float32(state>>40) / float32(1<<24)
	}
	return vector, nil
}

func (p *HashProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := p.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
