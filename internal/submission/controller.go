// Package submission drives one classification round trip against a view:
// busy state, the POST /classify call, rendering and failure notification.
package submission

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ressKim-io/eccn-classifier/internal/adapter/client"
)

// FailureMessage is the only message users see when a classification fails
const FailureMessage = "Failed to classify product. Please try again."

// Classifier sends product text to the classification API
type Classifier interface {
	Classify(ctx context.Context, productText string) (*client.ClassifyResponse, error)
}

// View is the UI surface the controller manipulates.
// Methods may be called from any goroutine.
type View interface {
	// SetBusy disables the trigger and swaps its label for a busy indicator, or restores both
	SetBusy(busy bool)
	HideResult()
	// ShowResult reveals the result area with the bar at 0
	ShowResult(d Display)
	// AnimateBar grows the bar to percent, filled with the tier colour
	AnimateBar(percent int, tier Tier)
	// Notify raises a blocking user-visible notification
	Notify(message string)
}

// Controller handles submissions from one input
type Controller struct {
	classifier Classifier
	view       View
	logger     *zap.Logger
	barDelay   time.Duration

	mu     sync.Mutex
	latest uint64
}

// Option configures a Controller
type Option func(*Controller)

// WithBarDelay overrides BarDelay
func WithBarDelay(d time.Duration) Option {
	return func(c *Controller) { c.barDelay = d }
}

// NewController creates a controller
func NewController(classifier Classifier, view View, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		classifier: classifier,
		view:       view,
		logger:     logger,
		barDelay:   BarDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit classifies raw input and blocks until the response is handled.
// Blank input is ignored. The returned error is the failure that was notified;
// responses overtaken by a newer submission are dropped and return nil.
func (c *Controller) Submit(ctx context.Context, raw string) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	seq := c.begin()
	c.view.SetBusy(true)
	c.view.HideResult()

	resp, err := c.classifier.Classify(ctx, text)

	if !c.isLatest(seq) {
		c.logger.Debug("Dropping stale classification response", zap.Uint64("seq", seq), zap.Error(err))
		return nil
	}
	defer c.view.SetBusy(false)

	if err != nil {
		c.logger.Error("Classification request failed", zap.Uint64("seq", seq), zap.Error(err))
		c.view.Notify(FailureMessage)
		return err
	}

	d := Render(resp)
	c.view.ShowResult(d)
	time.AfterFunc(c.barDelay, func() {
		if c.isLatest(seq) {
			c.view.AnimateBar(d.Percent, d.Tier)
		}
	})
	return nil
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest++
	return c.latest
}

func (c *Controller) isLatest(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seq == c.latest
}
