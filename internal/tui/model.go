// Package tui is the terminal front end of the classifier: an interactive
// bubbletea program and a plain console view for one-shot use.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ressKim-io/eccn-classifier/internal/submission"
)

const defaultWidth = 80

// Messages sent by programView
type (
	busyMsg   bool
	hideMsg   struct{}
	resultMsg submission.Display
	notifyMsg string
	submitted struct{}
)

type barMsg struct {
	percent int
	tier    submission.Tier
}

// SubmitFunc runs one submission; it is called off the update loop
type SubmitFunc func(text string)

// Model is the interactive classification screen
type Model struct {
	textarea textarea.Model
	spinner  spinner.Model
	bar      progress.Model
	styles   Styles
	submit   SubmitFunc
	width    int

	busy    bool
	visible bool
	display submission.Display
	notice  string
}

// NewModel creates the screen; submit is invoked with the raw input on Enter
func NewModel(submit SubmitFunc) Model {
	ta := textarea.New()
	ta.Placeholder = "Describe the product (Enter to classify, Ctrl+J for a new line, Esc to quit)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 8192
	ta.SetWidth(defaultWidth)
	ta.SetHeight(5)
	ta.KeyMap.InsertNewline.SetKeys("ctrl+j")
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	styles := DefaultStyles()
	sp.Style = styles.Busy

	return Model{
		textarea: ta,
		spinner:  sp,
		bar:      newBar(submission.TierDanger, defaultWidth),
		styles:   styles,
		submit:   submit,
		width:    defaultWidth,
	}
}

func newBar(tier submission.Tier, width int) progress.Model {
	p := progress.New(progress.WithSolidFill(tier.Color()), progress.WithoutPercentage())
	p.Width = width - 10
	return p
}

// Init starts the cursor blink
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textarea.SetWidth(msg.Width)
		m.bar.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		// A notification holds the screen until it is acknowledged
		if m.notice != "" {
			m.notice = ""
			return m, nil
		}
		if msg.Type == tea.KeyEnter {
			if m.busy || strings.TrimSpace(m.textarea.Value()) == "" {
				return m, nil
			}
			text := m.textarea.Value()
			submit := m.submit
			return m, func() tea.Msg {
				submit(text)
				return submitted{}
			}
		}

	case busyMsg:
		m.busy = bool(msg)
		if m.busy {
			m.textarea.Blur()
			return m, m.spinner.Tick
		}
		return m, m.textarea.Focus()

	case hideMsg:
		m.visible = false
		return m, nil

	case resultMsg:
		m.display = submission.Display(msg)
		m.visible = true
		m.bar = newBar(m.display.Tier, m.width)
		return m, nil

	case barMsg:
		m.bar.FullColor = msg.tier.Color()
		return m, m.bar.SetPercent(float64(msg.percent) / 100)

	case notifyMsg:
		m.notice = string(msg)
		return m, nil

	case submitted:
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		next, cmd := m.bar.Update(msg)
		m.bar = next.(progress.Model)
		return m, cmd
	}

	var cmd tea.Cmd
	if !m.busy {
		m.textarea, cmd = m.textarea.Update(msg)
	}
	return m, cmd
}

// View renders the screen
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("ECCN Classifier"))
	b.WriteString("\n\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spinner.View() + m.styles.Busy.Render(" Classifying..."))
	} else {
		b.WriteString(m.styles.Button.Render("Classify"))
	}
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.notice) + "\n")
		b.WriteString(m.styles.Hint.Render("press any key to continue") + "\n")
	}

	if m.visible {
		b.WriteString("\n" + m.resultView() + "\n")
	}

	return b.String()
}

func (m Model) resultView() string {
	rows := []string{
		m.styles.Label.Render("ECCN"),
		m.styles.Code.Render(m.display.Code),
		"",
		m.styles.Label.Render("Confidence"),
		m.bar.View() + " " + m.display.Label,
		"",
		m.styles.Label.Render("Reasoning"),
		m.styles.Reasoning.Width(max(m.width-6, 20)).Render(m.display.Reasoning),
	}
	return m.styles.Result.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// programView forwards view calls into the running program
type programView struct {
	send func(tea.Msg)
}

func (v *programView) SetBusy(busy bool)               { v.send(busyMsg(busy)) }
func (v *programView) HideResult()                     { v.send(hideMsg{}) }
func (v *programView) ShowResult(d submission.Display) { v.send(resultMsg(d)) }
func (v *programView) Notify(message string)           { v.send(notifyMsg(message)) }

func (v *programView) AnimateBar(percent int, tier submission.Tier) {
	v.send(barMsg{percent: percent, tier: tier})
}

// Run starts the interactive client and blocks until the user quits
func Run(ctx context.Context, classifier submission.Classifier, logger *zap.Logger, opts ...tea.ProgramOption) error {
	view := &programView{}
	ctrl := submission.NewController(classifier, view, logger)

	m := NewModel(func(text string) {
		_ = ctrl.Submit(ctx, text)
	})

	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)...)
	view.send = p.Send

	_, err := p.Run()
	return err
}
