package rag

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/eccn-classifier/internal/domain/service"
)

func TestBuildPrompt(t *testing.T) {
	candidates := []service.Candidate{
		{Ecn: "3A001", Text: "ECCN: 3A001\nDescription: Electronic components"},
		{Ecn: "EAR99", Text: "ECCN: EAR99\nDescription: Not elsewhere specified"},
	}

	prompt := BuildPrompt("radiation hardened FPGA", candidates)

	assert.Contains(t, prompt, "Product Description:\n\"radiation hardened FPGA\"")
	assert.Contains(t, prompt, "Candidate 1 (ECCN: 3A001):\nECCN: 3A001\nDescription: Electronic components")
	assert.Contains(t, prompt, "Candidate 2 (ECCN: EAR99):")
	assert.Contains(t, prompt, `"EAR99" if it strictly doesn't fit any list`)
	assert.Contains(t, prompt, "confidence score (0.0 to 1.0)")
	assert.Less(t, strings.Index(prompt, "Candidate 1"), strings.Index(prompt, "Candidate 2"))
}

func TestBuildPrompt_NoCandidates(t *testing.T) {
	prompt := BuildPrompt("wooden chair", nil)

	header := "Candidates (retrieved from database):\n"
	at := strings.Index(prompt, header)
	require.GreaterOrEqual(t, at, 0)
	assert.True(t, strings.HasPrefix(prompt[at+len(header):], "\nInstructions:"))
	assert.NotContains(t, prompt, "(ECCN: ")
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		ecn        string
		confidence *float64
		reasoning  string
		wantErr    bool
		incomplete bool
	}{
		{
			name:       "plain json",
			raw:        `{"ecn_number":"3A001","confidence_score":0.95,"reasoning":"Matches 3A001."}`,
			ecn:        "3A001",
			confidence: floatPtr(0.95),
			reasoning:  "Matches 3A001.",
		},
		{
			name:      "fenced json without confidence",
			raw:       "```json\n{\"ecn_number\":\" EAR99 \",\"reasoning\":\"Not controlled\"}\n```",
			ecn:       "EAR99",
			reasoning: "Not controlled",
		},
		{
			name:       "missing ecn number",
			raw:        `{"confidence_score":0.4}`,
			wantErr:    true,
			incomplete: true,
		},
		{
			name:    "not json",
			raw:     "I think it is 3A001",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseAnswer(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.incomplete, errors.Is(err, ErrIncompleteAnswer))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.ecn, result.EcnNumber)
			assert.Equal(t, tt.confidence, result.ConfidenceScore)
			assert.Equal(t, tt.reasoning, result.Reasoning)
		})
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
