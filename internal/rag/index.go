// Package rag retrieves ECCN definitions similar to a product description
// and builds the LLM prompt that picks the final classification.
package rag

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/ressKim-io/eccn-classifier/internal/domain/entity"
	"github.com/ressKim-io/eccn-classifier/internal/domain/repository"
	"github.com/ressKim-io/eccn-classifier/internal/domain/service"
)

// ErrEmbeddingsDisabled is returned when no embedder is configured
var ErrEmbeddingsDisabled = errors.New("embeddings are not configured")

type indexEntry struct {
	def  *entity.EccnDefinition
	norm float64
}

// Index is an in-memory cosine similarity index over the embedded catalog.
// It is safe for concurrent use.
type Index struct {
	repo     repository.DefinitionRepository
	embedder service.Embedder
	logger   *zap.Logger

	mu      sync.RWMutex
	entries []indexEntry
	loaded  bool
}

// NewIndex creates an index; the catalog is loaded on first search
func NewIndex(repo repository.DefinitionRepository, embedder service.Embedder, logger *zap.Logger) *Index {
	return &Index{
		repo:     repo,
		embedder: embedder,
		logger:   logger,
	}
}

// Load (re)reads the embedded catalog from the repository
func (i *Index) Load(ctx context.Context) error {
	defs, err := i.repo.ListEmbedded(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	entries := make([]indexEntry, 0, len(defs))
	for _, d := range defs {
		n := norm(d.Embedding)
		if n == 0 {
			continue
		}
		entries = append(entries, indexEntry{def: d, norm: n})
	}

	i.mu.Lock()
	i.entries = entries
	i.loaded = true
	i.mu.Unlock()

	i.logger.Info("Catalog index loaded", zap.Int("definitions", len(entries)))
	return nil
}

// Size returns the number of indexed definitions
func (i *Index) Size() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Search returns the k definitions nearest to query, closest first
func (i *Index) Search(ctx context.Context, query string, k int) ([]service.Candidate, error) {
	if i.embedder == nil {
		return nil, ErrEmbeddingsDisabled
	}

	i.mu.RLock()
	loaded := i.loaded
	i.mu.RUnlock()
	if !loaded {
		if err := i.Load(ctx); err != nil {
			return nil, err
		}
	}

	if i.Size() == 0 {
		return nil, nil
	}

	vec, err := i.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	return nearest(i.entries, vec, k), nil
}

func nearest(entries []indexEntry, query []float32, k int) []service.Candidate {
	qn := norm(query)
	if qn == 0 || k <= 0 {
		return nil
	}

	candidates := make([]service.Candidate, 0, len(entries))
	for _, e := range entries {
		if len(e.def.Embedding) != len(query) {
			continue
		}
		sim := dot(e.def.Embedding, query) / (e.norm * qn)
		candidates = append(candidates, service.Candidate{
			ID:       e.def.ID,
			Ecn:      e.def.EcnNumber,
			Text:     e.def.Text,
			Distance: 1 - sim,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Distance < candidates[b].Distance
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func norm(v []float32) float64 {
	return math.Sqrt(dot(v, v))
}
