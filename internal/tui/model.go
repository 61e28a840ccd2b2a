package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"qabot/internal/domain"
)

// QAPort is the TUI-facing subset of the QA service.
type QAPort interface {
	Query(text string) domain.MatchResult
	Learn(question, response string) error
	Greet(text string) (string, bool)
}

// ExitCommand ends the conversation.
const ExitCommand = "exit"

type speaker int

const (
	speakerUser speaker = iota
	speakerBot
	speakerSystem
)

type line struct {
	who  speaker
	text string
}

// Model is the Bubble Tea model for the chat application.
// After an unknown question it switches to teach mode: the next input is stored as the answer.
type Model struct {
	service    QAPort
	input      textinput.Model
	viewport   viewport.Model
	transcript []line
	header     string
	status     string
	pending    string
	teaching   bool
	ready      bool
}

// New creates a new TUI model instance. header is shown above the conversation.
func New(service QAPort, header string) Model {
	ti := textinput.New()
	ti.Prompt = "Vous : "
	ti.Placeholder = "Type a question and press Enter (exit to quit)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, header: header, status: "Ready."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header lines, status, input box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			text := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if text == "" && !m.teaching {
				return m, nil
			}
			if text == ExitCommand {
				m.say(speakerSystem, "Fin de la conversation.")
				return m, tea.Quit
			}
			if m.teaching {
				m.teach(text)
			} else {
				m.ask(text)
			}
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) ask(text string) {
	m.say(speakerUser, text)
	if greeting, ok := m.service.Greet(text); ok {
		m.say(speakerBot, greeting)
		m.status = "Greeted."
		return
	}
	res := m.service.Query(text)
	if res.Found {
		m.say(speakerBot, res.Entry.Response)
		m.status = fmt.Sprintf("Matched %q  score=%.3f", res.Entry.Question, res.Score)
		return
	}
	m.say(speakerBot, "Je ne sais pas quoi répondre... Que dois-je dire ?")
	m.pending = text
	m.teaching = true
	m.status = "Teach mode: type the answer, or press Enter to skip."
}

func (m *Model) teach(answer string) {
	question := m.pending
	m.pending = ""
	m.teaching = false
	if answer == "" {
		m.status = "Skipped."
		return
	}
	m.say(speakerUser, answer)
	if err := m.service.Learn(question, answer); err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("Learned answer for %q.", question)
}

func (m *Model) say(who speaker, text string) {
	m.transcript = append(m.transcript, line{who: who, text: text})
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// View renders the TUI layout and the conversation so far.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("qabot")
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.header)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	st := lo.Ternary(m.teaching, teachStatusStyle, statusStyle)
	return header + "\n" + sub + "\n" + transcript + "\n" + input + "\n" + st.Render(m.status)
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No conversation yet."
	}
	lines := lo.Map(m.transcript, func(l line, _ int) string {
		switch l.who {
		case speakerUser:
			return userStyle.Render("Vous : ") + l.text
		case speakerBot:
			return botStyle.Render("Réponse : ") + l.text
		default:
			return systemStyle.Render(l.text)
		}
	})
	return strings.Join(lines, "\n")
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	systemStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	teachStatusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)
