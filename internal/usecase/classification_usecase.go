package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ressKim-io/eccn-classifier/internal/domain/entity"
	"github.com/ressKim-io/eccn-classifier/internal/domain/repository"
	"github.com/ressKim-io/eccn-classifier/internal/domain/service"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/metrics"
	"github.com/ressKim-io/eccn-classifier/internal/rag"
)

// Error definitions for classification usecase
var (
	ErrEmptyProductText       = errors.New("product text cannot be empty")
	ErrClassificationNotFound = errors.New("classification not found")
	ErrInvalidRequest         = errors.New("invalid request")
)

// Fallback answers used when the LLM cannot decide
const (
	ReasoningNoLLM   = "API Key missing. Returned top vector match."
	UnknownEcn       = "Unknown"
	ErrorEcn         = "Error"
	noLLMConfidence  = 0.5
	llmErrConfidence = 0.0
	previewLength    = 100
)

// History listing limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ClassifyInput represents the input for classifying a product
type ClassifyInput struct {
	ProductText string `json:"product_text"`
}

// ClassificationOutput represents a stored classification
type ClassificationOutput struct {
	ID              uuid.UUID `json:"id"`
	ProductText     string    `json:"product_text"`
	EcnNumber       string    `json:"ecn_number"`
	ConfidenceScore *float64  `json:"confidence_score"`
	Reasoning       string    `json:"reasoning"`
	Source          string    `json:"source"`
	Candidates      []string  `json:"candidates"`
	LatencyMs       int64     `json:"latency_ms"`
	CreatedAt       string    `json:"created_at"`
}

// ClassificationListOutput represents paginated classification history
type ClassificationListOutput struct {
	Classifications []*ClassificationOutput `json:"classifications"`
	Total           int64                   `json:"total"`
	Limit           int                     `json:"limit"`
	Offset          int                     `json:"offset"`
	HasMore         bool                    `json:"has_more"`
}

// ClassificationUsecase defines the interface for classification business logic
type ClassificationUsecase interface {
	Classify(ctx context.Context, input *ClassifyInput) (*service.ClassificationResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ClassificationOutput, error)
	List(ctx context.Context, limit, offset int) (*ClassificationListOutput, error)
}

// ResultCache stores answers by product text
type ResultCache interface {
	Get(ctx context.Context, productText string) (*service.ClassificationResult, bool, error)
	Set(ctx context.Context, productText string, result *service.ClassificationResult) error
}

type classificationUsecase struct {
	retriever service.Retriever
	llm       service.LLM
	repo      repository.ClassificationRepository
	cache     ResultCache
	metrics   *metrics.Metrics
	logger    *zap.Logger
	topK      int
}

// ClassificationDeps groups the collaborators of the classification usecase.
// LLM, Cache and Metrics are optional.
type ClassificationDeps struct {
	Retriever service.Retriever
	LLM       service.LLM
	Repo      repository.ClassificationRepository
	Cache     ResultCache
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	TopK      int
}

// NewClassificationUsecase creates a new classification usecase
func NewClassificationUsecase(deps ClassificationDeps) ClassificationUsecase {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	topK := deps.TopK
	if topK <= 0 {
		topK = 5
	}
	return &classificationUsecase{
		retriever: deps.Retriever,
		llm:       deps.LLM,
		repo:      deps.Repo,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		logger:    logger,
		topK:      topK,
	}
}

func (u *classificationUsecase) Classify(ctx context.Context, input *ClassifyInput) (*service.ClassificationResult, error) {
	if input == nil {
		return nil, ErrInvalidRequest
	}
	text := strings.TrimSpace(input.ProductText)
	if text == "" {
		return nil, ErrEmptyProductText
	}

	start := time.Now()
	record := entity.NewClassification(text)

	if cached, ok := u.cached(ctx, text); ok {
		u.finish(ctx, record, cached, entity.SourceCache, nil, start)
		return cached, nil
	}

	candidates, err := u.retriever.Search(ctx, text, u.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	u.logCandidates(candidates)

	result, source, err := u.decide(ctx, text, candidates)
	if err != nil {
		return nil, err
	}

	// Fallbacks are not cached so the LLM is asked again next time
	if source == entity.SourceLLM && u.cache != nil {
		if err := u.cache.Set(ctx, text, result); err != nil {
			u.logger.Warn("Cache store failed", zap.Error(err))
		}
	}
	u.finish(ctx, record, result, source, candidates, start)

	return result, nil
}

func (u *classificationUsecase) cached(ctx context.Context, text string) (*service.ClassificationResult, bool) {
	if u.cache == nil {
		return nil, false
	}
	result, ok, err := u.cache.Get(ctx, text)
	if err != nil {
		u.logger.Warn("Cache lookup failed", zap.Error(err))
		return nil, false
	}
	return result, ok && result != nil
}

// decide asks the LLM to pick among candidates, falling back to the top match.
// An answer without an ECCN is an error rather than a fallback.
func (u *classificationUsecase) decide(ctx context.Context, text string, candidates []service.Candidate) (*service.ClassificationResult, entity.ClassificationSource, error) {
	if u.llm == nil {
		u.logger.Warn("No LLM configured, returning top candidate")
		ecn := UnknownEcn
		if len(candidates) > 0 {
			ecn = candidates[0].Ecn
		}
		return fallback(ecn, noLLMConfidence, ReasoningNoLLM), entity.SourceFallbackNoLLM, nil
	}

	raw, err := u.llm.CompleteJSON(ctx, rag.SystemPrompt, rag.BuildPrompt(text, candidates))
	var result *service.ClassificationResult
	if err == nil {
		result, err = rag.ParseAnswer(raw)
	}
	if errors.Is(err, rag.ErrIncompleteAnswer) {
		return nil, "", fmt.Errorf("classification failed: %w", err)
	}
	if err != nil {
		u.logger.Error("LLM classification failed", zap.Error(err))
		ecn := ErrorEcn
		if len(candidates) > 0 {
			ecn = candidates[0].Ecn
		}
		return fallback(ecn, llmErrConfidence, "LLM failed: "+err.Error()), entity.SourceFallbackLLMError, nil
	}

	return result, entity.SourceLLM, nil
}

func fallback(ecn string, confidence float64, reasoning string) *service.ClassificationResult {
	return &service.ClassificationResult{
		EcnNumber:       ecn,
		ConfidenceScore: &confidence,
		Reasoning:       reasoning,
	}
}

func (u *classificationUsecase) logCandidates(candidates []service.Candidate) {
	for i, c := range candidates {
		u.logger.Debug("Retrieved candidate",
			zap.Int("rank", i+1),
			zap.String("ecn", c.Ecn),
			zap.Float64("distance", c.Distance),
			zap.String("preview", preview(c.Text)),
		)
	}
}

// finish stores the classification; storage failures never fail the request
func (u *classificationUsecase) finish(ctx context.Context, record *entity.Classification, result *service.ClassificationResult,
	source entity.ClassificationSource, candidates []service.Candidate, start time.Time) {
	elapsed := time.Since(start)
	record.SetResult(result.EcnNumber, result.ConfidenceScore, result.Reasoning, source, elapsed.Milliseconds())
	for _, c := range candidates {
		record.Candidates = append(record.Candidates, c.Ecn)
	}

	u.metrics.ObserveClassification(string(source), elapsed)
	u.logger.Info("Product classified",
		zap.String("classification_id", record.ID.String()),
		zap.String("ecn_number", result.EcnNumber),
		zap.String("source", string(source)),
		zap.Duration("latency", elapsed),
	)

	if u.repo == nil {
		return
	}
	if err := u.repo.Create(ctx, record); err != nil {
		u.logger.Error("Failed to store classification", zap.Error(err))
	}
}

func (u *classificationUsecase) GetByID(ctx context.Context, id uuid.UUID) (*ClassificationOutput, error) {
	if u.repo == nil {
		return nil, ErrClassificationNotFound
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClassificationNotFound
	}
	return toClassificationOutput(c), nil
}

func (u *classificationUsecase) List(ctx context.Context, limit, offset int) (*ClassificationListOutput, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	if u.repo == nil {
		return &ClassificationListOutput{Classifications: []*ClassificationOutput{}, Limit: limit, Offset: offset}, nil
	}

	items, total, err := u.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	outputs := make([]*ClassificationOutput, len(items))
	for i, c := range items {
		outputs[i] = toClassificationOutput(c)
	}

	return &ClassificationListOutput{
		Classifications: outputs,
		Total:           total,
		Limit:           limit,
		Offset:          offset,
		HasMore:         int64(offset+limit) < total,
	}, nil
}

func toClassificationOutput(c *entity.Classification) *ClassificationOutput {
	return &ClassificationOutput{
		ID:              c.ID,
		ProductText:     c.ProductText,
		EcnNumber:       c.EcnNumber,
		ConfidenceScore: c.ConfidenceScore,
		Reasoning:       c.Reasoning,
		Source:          string(c.Source),
		Candidates:      c.Candidates,
		LatencyMs:       c.LatencyMs,
		CreatedAt:       c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= previewLength {
		return text
	}
	return string(r[:previewLength]) + "..."
}
