package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ressKim-io/eccn-classifier/internal/domain/entity"
	"github.com/ressKim-io/eccn-classifier/internal/domain/repository"
	"github.com/ressKim-io/eccn-classifier/internal/domain/service"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/metrics"
	"github.com/ressKim-io/eccn-classifier/internal/rag"
)

// Error definitions for catalog usecase
var (
	ErrCatalogFileNotFound = errors.New("catalog file not found")
	ErrEmbeddingsDisabled  = rag.ErrEmbeddingsDisabled
)

// IndexLoader is the part of the vector index that ingestion refreshes
type IndexLoader interface {
	Load(ctx context.Context) error
	Size() int
}

// IngestOutput summarises one ingestion run
type IngestOutput struct {
	Rows          int   `json:"rows"`
	Indexed       int   `json:"indexed"`
	FailedBatches int   `json:"failed_batches"`
	DurationMs    int64 `json:"duration_ms"`
}

// CatalogStats describes the stored and indexed catalog
type CatalogStats struct {
	Definitions int64  `json:"definitions"`
	Indexed     int    `json:"indexed"`
	Model       string `json:"embedding_model"`
}

// CatalogUsecase defines the interface for ECCN catalog management
type CatalogUsecase interface {
	Ingest(ctx context.Context, path string) (*IngestOutput, error)
	IngestIfEmpty(ctx context.Context, path string) (*IngestOutput, error)
	Stats(ctx context.Context) (*CatalogStats, error)
}

// CatalogDeps groups the collaborators of the catalog usecase
type CatalogDeps struct {
	Repo        repository.DefinitionRepository
	Embedder    service.Embedder
	Index       IndexLoader
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	BatchSize   int
	Concurrency int
}

type catalogUsecase struct {
	repo        repository.DefinitionRepository
	embedder    service.Embedder
	index       IndexLoader
	metrics     *metrics.Metrics
	logger      *zap.Logger
	batchSize   int
	concurrency int
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(deps CatalogDeps) CatalogUsecase {
	u := &catalogUsecase{
		repo:        deps.Repo,
		embedder:    deps.Embedder,
		index:       deps.Index,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		batchSize:   deps.BatchSize,
		concurrency: deps.Concurrency,
	}
	if u.logger == nil {
		u.logger = zap.NewNop()
	}
	if u.batchSize <= 0 {
		u.batchSize = 50
	}
	if u.concurrency <= 0 {
		u.concurrency = 1
	}
	return u
}

func (u *catalogUsecase) Ingest(ctx context.Context, path string) (*IngestOutput, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	defs, err := rag.ReadCatalog(f)
	if err != nil {
		return nil, err
	}

	if u.embedder == nil {
		return nil, ErrEmbeddingsDisabled
	}

	u.logger.Info("Generating embeddings", zap.Int("rows", len(defs)), zap.Int("batch_size", u.batchSize))

	indexed, failed := u.embedAll(ctx, defs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(indexed) > 0 {
		if err := u.repo.Upsert(ctx, indexed); err != nil {
			return nil, fmt.Errorf("failed to store definitions: %w", err)
		}
		u.logger.Info("Indexing complete", zap.Int("indexed", len(indexed)))
	} else {
		u.logger.Warn("No data was indexed")
	}

	if u.index != nil {
		if err := u.index.Load(ctx); err != nil {
			return nil, err
		}
		if u.metrics != nil {
			u.metrics.CatalogSize.Set(float64(u.index.Size()))
		}
	}

	if u.metrics != nil {
		u.metrics.IngestedDefinitions.Add(float64(len(indexed)))
		u.metrics.IngestFailedBatches.Add(float64(failed))
	}

	return &IngestOutput{
		Rows:          len(defs),
		Indexed:       len(indexed),
		FailedBatches: failed,
		DurationMs:    time.Since(start).Milliseconds(),
	}, nil
}

// embedAll embeds definitions batch by batch. A failed batch is logged and skipped.
func (u *catalogUsecase) embedAll(ctx context.Context, defs []*entity.EccnDefinition) ([]*entity.EccnDefinition, int) {
	var (
		mu      sync.Mutex
		indexed []*entity.EccnDefinition
		failed  int
		done    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)

	for offset := 0; offset < len(defs); offset += u.batchSize {
		end := offset + u.batchSize
		if end > len(defs) {
			end = len(defs)
		}
		batch := defs[offset:end]
		batchStart := offset

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, d := range batch {
				texts[i] = d.Text
			}

			vectors, err := u.embedder.EmbedBatch(gctx, texts)
			if err == nil && len(vectors) != len(batch) {
				err = fmt.Errorf("expected %d embeddings, got %d", len(batch), len(vectors))
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				u.logger.Error("Error processing batch", zap.Int("batch_start", batchStart), zap.Error(err))
				return nil
			}
			for i, d := range batch {
				d.Embedding = vectors[i]
				d.EmbeddingModel = u.embedder.Model()
				indexed = append(indexed, d)
			}
			done += len(batch)
			u.logger.Info("Processed batch", zap.Int("processed", done), zap.Int("total", len(defs)))
			return nil
		})
	}
	_ = g.Wait()

	return indexed, failed
}

func (u *catalogUsecase) IngestIfEmpty(ctx context.Context, path string) (*IngestOutput, error) {
	count, err := u.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count catalog: %w", err)
	}
	if count > 0 {
		u.logger.Info("Catalog found, skipping ingestion", zap.Int64("definitions", count))
		return nil, nil
	}

	u.logger.Info("Catalog is empty, starting ingestion", zap.String("path", path))
	return u.Ingest(ctx, path)
}

func (u *catalogUsecase) Stats(ctx context.Context) (*CatalogStats, error) {
	count, err := u.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CatalogStats{Definitions: count}
	if u.index != nil {
		stats.Indexed = u.index.Size()
	}
	if u.embedder != nil {
		stats.Model = u.embedder.Model()
	}
	return stats, nil
}
