package service

import "context"

// Candidate is an ECCN definition retrieved for a product description
type Candidate struct {
	ID       string  `json:"id"`
	Ecn      string  `json:"ecn"`
	Text     string  `json:"text"`
	Distance float64 `json:"distance"`
}

// ClassificationResult is the answer to a classification request
type ClassificationResult struct {
	EcnNumber       string   `json:"ecn_number"`
	ConfidenceScore *float64 `json:"confidence_score"`
	Reasoning       string   `json:"reasoning"`
}

// Embedder turns text into vectors
type Embedder interface {
	// Embed embeds a single text
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds texts, preserving order
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the embedding model name
	Model() string
}

// LLM completes a classification prompt and returns its raw JSON answer
type LLM interface {
	CompleteJSON(ctx context.Context, system, prompt string) (string, error)
}

// Retriever finds the catalog entries closest to a product description
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]Candidate, error)
}
