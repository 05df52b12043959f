package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
)

// ChatPort is the TUI-facing subset of the chat service.
type ChatPort interface {
	Ask(ctx context.Context, question string) (domain.Answer, error)
	History() []domain.Turn
	DocumentName() string
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service  ChatPort
	input    textinput.Model
	viewport viewport.Model
	summary  string
	status   string
	busy     bool
	ready    bool
}

type answerMsg struct {
	question string
	answer   domain.Answer
	err      error
}

// New creates a new TUI model instance.
func New(service ChatPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the document and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		summary:  summary,
		status:   "Loaded " + service.DocumentName() + ". Ask away.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around transcript and input boxes
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + summary
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case answerMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else if msg.answer.Grounded {
			m.status = fmt.Sprintf("Answered with %d citation(s).", len(msg.answer.Citations))
		} else {
			m.status = "Nothing relevant found in the document."
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.busy {
				m.busy = true
				m.status = "Thinking..."
				m.input.SetValue("")
				return m, askCmd(m.service, q)
			}
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil
		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and conversation transcript.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("PDF Chat - " + m.service.DocumentName())
	summary := summaryStyle.Render(m.summary)
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	turns := m.service.History()
	if len(turns) == 0 {
		return "No questions yet."
	}
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: " + t.Question))
		b.WriteString("\n")
		if t.Grounded {
			b.WriteString(t.Answer)
			if len(t.Citations) > 0 {
				b.WriteString("\n")
				b.WriteString(citationStyle.Render("cites: " + joinCitations(t.Citations)))
			}
		} else {
			b.WriteString(refusalStyle.Render(t.Answer))
		}
	}
	return b.String()
}

func askCmd(service ChatPort, question string) tea.Cmd {
	return func() tea.Msg {
		ans, err := service.Ask(context.Background(), question)
		return answerMsg{question: question, answer: ans, err: err}
	}
}

func joinCitations(citations []int) string {
	parts := make([]string, len(citations))
	for i, c := range citations {
		parts[i] = fmt.Sprintf("chunk %d", c)
	}
	return strings.Join(parts, ", ")
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	citationStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	refusalStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	summaryStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
