package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/ressKim-io/eccn-classifier/internal/submission"
)

// ConsoleView prints one classification to a terminal without an event loop.
// The bar is drawn at its final width since nothing redraws the output.
type ConsoleView struct {
	out    io.Writer
	errOut io.Writer
	styles Styles
	width  int

	mu       sync.Mutex
	notified int
}

// NewConsoleView writes results to out and progress and notifications to errOut
func NewConsoleView(out, errOut io.Writer) *ConsoleView {
	return &ConsoleView{
		out:    out,
		errOut: errOut,
		styles: DefaultStyles(),
		width:  40,
	}
}

func (v *ConsoleView) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(v.errOut, v.styles.Busy.Render("Classifying..."))
	}
}

func (v *ConsoleView) HideResult() {}

func (v *ConsoleView) ShowResult(d submission.Display) {
	bar := progress.New(progress.WithSolidFill(d.Tier.Color()), progress.WithoutPercentage())
	bar.Width = v.width

	fmt.Fprintf(v.out, "%s %s\n", v.styles.Label.Render("ECCN:      "), v.styles.Code.Render(d.Code))
	fmt.Fprintf(v.out, "%s %s %s\n", v.styles.Label.Render("Confidence:"), bar.ViewAs(float64(d.Percent)/100), d.Label)
	fmt.Fprintf(v.out, "%s %s\n", v.styles.Label.Render("Reasoning: "), d.Reasoning)
}

func (v *ConsoleView) AnimateBar(int, submission.Tier) {}

func (v *ConsoleView) Notify(message string) {
	v.mu.Lock()
	v.notified++
	v.mu.Unlock()
	fmt.Fprintln(v.errOut, v.styles.Error.Render(message))
}

// Notified reports how many notifications were raised
func (v *ConsoleView) Notified() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notified
}
