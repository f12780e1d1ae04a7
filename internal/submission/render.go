package submission

import (
	"math"
	"strconv"
	"time"

	"github.com/ressKim-io/eccn-classifier/internal/adapter/client"
)

// NoReasoning is shown when the response carries no reasoning
const NoReasoning = "No reasoning provided."

// BarDelay is how long the confidence bar stays at 0 before animating
const BarDelay = 100 * time.Millisecond

// Tier is the colour band of the confidence bar
type Tier string

// Tiers by displayed percentage
const (
	TierSuccess Tier = "success"
	TierWarning Tier = "warning"
	TierDanger  Tier = "danger"
)

// Color returns the bar fill colour of the tier
func (t Tier) Color() string {
	switch t {
	case TierSuccess:
		return "#10b981"
	case TierWarning:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// Display is everything a view needs to show one classification
type Display struct {
	Code      string
	Percent   int
	Label     string
	Tier      Tier
	Reasoning string
}

// Render maps a classification response to its display. A nil response renders as empty.
func Render(resp *client.ClassifyResponse) Display {
	var d Display
	var score *float64
	var reasoning string
	if resp != nil {
		d.Code = resp.EcnNumber
		score = resp.ConfidenceScore
		if resp.Reasoning != nil {
			reasoning = *resp.Reasoning
		}
	}

	d.Percent = Percent(score)
	d.Label = strconv.Itoa(d.Percent) + "%"
	d.Tier = TierFor(d.Percent)
	d.Reasoning = reasoning
	if d.Reasoning == "" {
		d.Reasoning = NoReasoning
	}
	return d
}

// Percent converts a confidence score to a whole percentage; missing or zero scores are 0
func Percent(score *float64) int {
	if score == nil || *score == 0 || math.IsNaN(*score) {
		return 0
	}
	return int(math.Round(*score * 100))
}

// TierFor picks the tier: above 80 success, above 50 warning, otherwise danger
func TierFor(percent int) Tier {
	switch {
	case percent > 80:
		return TierSuccess
	case percent > 50:
		return TierWarning
	default:
		return TierDanger
	}
}
