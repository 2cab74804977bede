package main

import (
	"fmt"
	"strings"

	"marketplace-server/ws"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const historySize = 20

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	theirsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

type step int

const (
	stepEnteringEmail step = iota
	stepEnteringPassword
	stepLoggingIn
	stepEnteringReceiver
	stepConnecting
	stepChatting
	stepDisconnected
)

type model struct {
	server       string
	step         step
	email        string
	userID       string
	token        string
	receiver     string
	conn         *ws.Conn
	history      []chatMessage
	currentInput string
	message      string
	quitting     bool
}

func initialModel(server string) model {
	return model{server: server, step: stepEnteringEmail}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			if m.conn != nil {
				_ = m.conn.Close()
			}
			return m, tea.Quit

		case tea.KeyBackspace:
			if len(m.currentInput) > 0 {
				runes := []rune(m.currentInput)
				m.currentInput = string(runes[:len(runes)-1])
			}

		case tea.KeyEnter:
			return m.submit()

		case tea.KeySpace:
			m.currentInput += " "

		case tea.KeyRunes:
			m.currentInput += string(msg.Runes)
		}

	case loginSuccessMsg:
		m.userID = msg.userID
		m.token = msg.token
		m.step = stepEnteringReceiver
		m.message = successStyle.Render("✓ Logged in as " + m.email)

	case connectedMsg:
		m.conn = msg.conn
		m.step = stepChatting
		m.message = successStyle.Render("✓ Connected, chatting with " + m.receiver)
		return m, readNext(m.conn)

	case incomingMsg:
		m.history = append(m.history, chatMessage(msg))
		if len(m.history) > historySize {
			m.history = m.history[len(m.history)-historySize:]
		}
		return m, readNext(m.conn)

	case disconnectedMsg:
		m.step = stepDisconnected
		m.message = errorStyle.Render("✗ Connection lost: " + msg.err.Error())

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		switch m.step {
		case stepLoggingIn:
			m.step = stepEnteringEmail
		case stepConnecting:
			m.step = stepEnteringReceiver
		}
	}

	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.currentInput)
	switch m.step {
	case stepEnteringEmail:
		if input != "" {
			m.email = input
			m.currentInput = ""
			m.step = stepEnteringPassword
		}

	case stepEnteringPassword:
		if m.currentInput != "" {
			password := m.currentInput
			m.currentInput = ""
			m.step = stepLoggingIn
			m.message = "Logging in..."
			return m, loginUser(m.server, m.email, password)
		}

	case stepEnteringReceiver:
		if input != "" {
			m.receiver = input
			m.currentInput = ""
			m.step = stepConnecting
			m.message = fmt.Sprintf("Connecting as %s...", m.userID)
			return m, connectChat(m.server, m.userID, m.token)
		}

	case stepChatting:
		if input != "" {
			m.currentInput = ""
			return m, sendMessage(m.conn, m.userID, m.receiver, input)
		}

	case stepDisconnected:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Marketplace Chat\n\n"))

	switch m.step {
	case stepEnteringEmail:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Enter your email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Enter your password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len([]rune(m.currentInput)))))
		s.WriteString("\n\nPress Enter\n")

	case stepLoggingIn, stepConnecting:
		s.WriteString(m.message + "\n")

	case stepEnteringReceiver:
		s.WriteString(m.message + "\n\n")
		s.WriteString(promptStyle.Render("Chat with user id:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepChatting, stepDisconnected:
		s.WriteString(m.message + "\n\n")
		for _, msg := range m.history {
			s.WriteString(m.renderLine(msg) + "\n")
		}
		if m.step == stepChatting {
			s.WriteString("\n" + inputStyle.Render("> "+m.currentInput))
			s.WriteString("\n\nEnter to send, Esc to quit\n")
		} else {
			s.WriteString("\nPress Enter to exit\n")
		}
	}

	return s.String()
}

func (m model) renderLine(msg chatMessage) string {
	stamp := msg.Date.Local().Format("15:04")
	if msg.Sender.ID == m.userID {
		return mineStyle.Render(fmt.Sprintf("[%s] me: %s", stamp, msg.Content))
	}
	name := msg.Sender.FirstName
	if name == "" {
		name = msg.Sender.ID
	}
	return theirsStyle.Render(fmt.Sprintf("[%s] %s: %s", stamp, name, msg.Content))
}
