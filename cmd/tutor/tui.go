package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	session "github.com/maahirlabs/tutor-core/core"
)

const headerHeight = 3

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	listeningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	speakingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	modelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	systemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	liveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Faint(true)

	quizStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1)
	feedbackGoodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	feedbackBadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	session  *session.Session
	snapshot session.Snapshot

	viewport viewport.Model
	ready    bool
	width    int
}

func newModel(s *session.Session) model {
	return model{
		session:  s,
		snapshot: s.Snapshot(),
	}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.snapshot = m.session.Snapshot()
		if m.ready {
			atBottom := m.viewport.AtBottom()
			m.viewport.SetContent(m.renderConversation())
			if atBottom {
				m.viewport.GotoBottom()
			}
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		footer := lipgloss.Height(m.renderFooter())
		height := msg.Height - headerHeight - footer
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.viewport.SetContent(m.renderConversation())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.session.Stop()
			return m, tea.Quit

		case " ":
			if m.snapshot.Active {
				m.session.Stop()
			} else {
				go m.session.Start(context.Background())
			}
			return m, nil

		case "1", "2", "3", "4":
			if m.snapshot.Quiz.Active {
				m.session.SubmitAnswer(int(msg.String()[0] - '1'))
			}
			return m, nil

		case "e":
			if m.snapshot.Quiz.Active {
				m.session.EndQuiz()
			}
			return m, nil

		case "d":
			m.session.DismissError()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "starting..."
	}
	return strings.Join([]string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	}, "\n")
}

func (m model) renderHeader() string {
	status := statusStyle.Render(string(m.snapshot.Status))
	switch {
	case m.snapshot.Speaking:
		status = speakingStyle.Render(string(m.snapshot.Status))
	case m.snapshot.Listening && m.snapshot.Active:
		status = listeningStyle.Render(string(m.snapshot.Status))
	case m.snapshot.Status == session.StatusError:
		status = errorStyle.Render(string(m.snapshot.Status))
	}

	header := fmt.Sprintf("%s  %s  %s",
		titleStyle.Render("માહિર · Maahir"),
		status,
		statusStyle.Render(string(m.snapshot.Emotion)),
	)
	return header + "\n" + strings.Repeat("─", max(m.width, 1)) + "\n"
}

func (m model) renderConversation() string {
	width := max(m.width-2, 20)
	var b strings.Builder

	for _, message := range m.snapshot.Messages {
		switch message.Sender {
		case session.SenderUser:
			b.WriteString(userStyle.Render("તમે: "))
		case session.SenderModel:
			b.WriteString(modelStyle.Render("માહિર: "))
		default:
			b.WriteString(systemStyle.Render("· "))
		}
		b.WriteString(wordwrap.String(message.Text, width))
		b.WriteString("\n")
		for _, source := range message.Sources {
			b.WriteString(sourceStyle.Render(fmt.Sprintf("  ↳ %s (%s)", source.Title, source.URI)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.snapshot.UserTranscript != "" {
		b.WriteString(liveStyle.Render(wordwrap.String("… "+m.snapshot.UserTranscript, width)))
		b.WriteString("\n")
	}
	if m.snapshot.ModelTranscript != "" {
		b.WriteString(liveStyle.Render(wordwrap.String("… "+m.snapshot.ModelTranscript, width)))
		b.WriteString("\n")
	}

	if m.snapshot.Quiz.Active {
		b.WriteString("\n")
		b.WriteString(m.renderQuiz(width))
		b.WriteString("\n")
	}

	if m.snapshot.ErrMessage != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(wordwrap.String(m.snapshot.ErrMessage, width)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) renderQuiz(width int) string {
	quiz := m.snapshot.Quiz
	var b strings.Builder

	b.WriteString(fmt.Sprintf("પ્રશ્ન %d/%d · સ્કોર %d\n\n", quiz.Index+1, quiz.Total, quiz.Score))
	if quiz.Question != nil {
		b.WriteString(wordwrap.String(quiz.Question.QuestionText, width-4))
		b.WriteString("\n\n")
		for i, option := range quiz.Question.Options {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, option))
		}
	}
	if quiz.Feedback != nil {
		style := feedbackBadStyle
		if quiz.Feedback.Correct {
			style = feedbackGoodStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(wordwrap.String(quiz.Feedback.Message, width-4)))
		b.WriteString("\n")
	}

	return quizStyle.Width(width).Render(b.String())
}

func (m model) renderFooter() string {
	keys := "space: mic · q: quit"
	if m.snapshot.Quiz.Active {
		keys = "1-4: answer · e: end quiz · q: quit"
	}
	if m.snapshot.ErrMessage != "" {
		keys += " · d: dismiss error"
	}
	return helpStyle.Render(keys)
}
