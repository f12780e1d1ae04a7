package rag

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ressKim-io/eccn-classifier/internal/domain/service"
)

// ErrIncompleteAnswer is returned when the model's JSON has no ECCN
var ErrIncompleteAnswer = errors.New("model answer has no ecn_number")

// SystemPrompt frames the model for every classification
const SystemPrompt = "You are a helpful assistant for Export Control Classification."

const instructions = `
Instructions:
1. Analyze the product description against each candidate's definition and notes.
2. Select the BEST matching ECCN.
3. If none match perfectly, choose the closest or "EAR99" if it strictly doesn't fit any list.
4. Provide a confidence score (0.0 to 1.0).
5. Provide a concise reasoning.
   - Do NOT refer to "Candidate 1" or "Candidate 2" in your reasoning.
   - Refer directly to the ECCN code (e.g., "3A001") and the product description.
   - Example: "The product has X feature which aligns with the requirements of ECCN 3A001."

Return the output in JSON format:
{
  "ecn_number": "3A001",
  "confidence_score": 0.95,
  "reasoning": "The product matches the specific frequency range and power requirements listed in 3A001..."
}
`

// BuildPrompt renders the classification prompt for a product and its candidates
func BuildPrompt(productText string, candidates []service.Candidate) string {
	var b strings.Builder

	b.WriteString("You are an expert in Export Control Classification Numbers (ECCN).\n")
	b.WriteString("Your task is to classify the following product into the correct ECCN code based on the provided candidates.\n\n")
	b.WriteString("Product Description:\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", productText)
	b.WriteString("Candidates (retrieved from database):\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "\nCandidate %d (ECCN: %s):\n%s\n", i+1, c.Ecn, c.Text)
	}
	b.WriteString(instructions)

	return b.String()
}

type llmAnswer struct {
	EcnNumber       string   `json:"ecn_number"`
	ConfidenceScore *float64 `json:"confidence_score"`
	Reasoning       string   `json:"reasoning"`
}

// ParseAnswer decodes the model's JSON answer. Markdown code fences are tolerated.
func ParseAnswer(raw string) (*service.ClassificationResult, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var answer llmAnswer
	if err := json.Unmarshal([]byte(s), &answer); err != nil {
		return nil, fmt.Errorf("invalid model answer: %w", err)
	}
	if strings.TrimSpace(answer.EcnNumber) == "" {
		return nil, ErrIncompleteAnswer
	}

	return &service.ClassificationResult{
		EcnNumber:       strings.TrimSpace(answer.EcnNumber),
		ConfidenceScore: answer.ConfidenceScore,
		Reasoning:       answer.Reasoning,
	}, nil
}
