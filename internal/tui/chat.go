// Package tui is the terminal chat frontend. It talks to the backend over
// the public HTTP API only, so it can run on a different machine than the
// server.
package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/communitydesk/helpdesk/internal/api"
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	botStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	serviceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("247"))
	lowConfStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	healthyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	degradedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	offlineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pollInterval   = 500 * time.Millisecond
	requestTimeout = 10 * time.Second
)

type Options struct {
	BaseURL   string
	AuthToken string
}

type jobAcceptedMsg struct {
	jobID string
}

type answerMsg struct {
	answer     string
	confidence string
	services   []api.RetrievedService
	chatID     string
}

type pollTickMsg struct{}

type healthMsg struct {
	status        string
	totalServices uint64
}

type errMsg struct {
	err error
}

type model struct {
	opts     Options
	client   *http.Client
	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	chatID   string
	locality string
	health   string
	services uint64
	lines    []string
	jobID    string
	waiting  bool
	ready    bool
	err      error
}

func newModel(opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Ask about local services (hospitals, utilities, transport...)"
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		opts:   opts,
		client: &http.Client{Timeout: requestTimeout},
		input:  ti,
		spin:   sp,
		health: "offline",
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.checkHealth())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.input.SetValue("")

			if rest, ok := strings.CutPrefix(text, "/locality"); ok {
				m.locality = strings.TrimSpace(rest)
				if m.locality == "" {
					m.appendLine(footerStyle.Render("Locality filter cleared."))
				} else {
					m.appendLine(footerStyle.Render("Locality set to " + m.locality + "."))
				}
				return m, nil
			}

			m.waiting = true
			m.err = nil
			m.appendLine(userStyle.Render("You: ") + text)
			return m, tea.Batch(m.spin.Tick, m.submitQuestion(text))
		}

	case healthMsg:
		m.health = msg.status
		m.services = msg.totalServices
		return m, nil

	case jobAcceptedMsg:
		m.jobID = msg.jobID
		return m, tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollTickMsg{} })

	case pollTickMsg:
		return m, m.pollStatus()

	case answerMsg:
		m.waiting = false
		m.jobID = ""
		if msg.chatID != "" {
			m.chatID = msg.chatID
		}
		style := botStyle
		if msg.confidence == "low" {
			style = lowConfStyle
		}
		answer := msg.answer
		if msg.confidence != "" {
			answer = fmt.Sprintf("%s\n(confidence: %s)", answer, msg.confidence)
		}
		m.appendLine(style.Render("Helpdesk: ") + answer)
		for _, svc := range msg.services {
			line := fmt.Sprintf("  • %s (%s)", svc.ServiceName, svc.Category)
			if svc.ContactPhone != "" {
				line += " — " + svc.ContactPhone
			}
			m.appendLine(serviceStyle.Render(line))
		}
		return m, nil

	case errMsg:
		m.waiting = false
		m.jobID = ""
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) appendLine(line string) {
	m.lines = append(m.lines, line, "")
	if m.ready {
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
	}
}

func (m model) healthIndicator() string {
	switch m.health {
	case "healthy":
		return healthyStyle.Render(fmt.Sprintf("● %d services", m.services))
	case "degraded":
		return degradedStyle.Render("● degraded")
	default:
		return offlineStyle.Render("● offline")
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Community Helpdesk") + "  " + m.healthIndicator())
	if m.locality != "" {
		b.WriteString("  " + footerStyle.Render("["+m.locality+"]"))
	}
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.spin.View() + " thinking...\n")
	} else if m.err != nil {
		b.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n" + footerStyle.Render("enter: send • /locality <area>: filter • esc: quit"))
	return b.String()
}

func (m model) checkHealth() tea.Cmd {
	return func() tea.Msg {
		req, err := http.NewRequest(http.MethodGet, m.opts.BaseURL+"/health", nil)
		if err != nil {
			return healthMsg{status: "offline"}
		}
		m.decorate(req)

		resp, err := m.client.Do(req)
		if err != nil {
			return healthMsg{status: "offline"}
		}
		defer resp.Body.Close()

		var health api.HealthResponse
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			return healthMsg{status: "offline"}
		}
		return healthMsg{status: health.Status, totalServices: health.TotalServices}
	}
}

func (m model) submitQuestion(question string) tea.Cmd {
	return func() tea.Msg {
		body, err := json.Marshal(api.ChatRequest{
			Question: question,
			Location: m.locality,
			ChatID:   m.chatID,
		})
		if err != nil {
			return errMsg{err}
		}

		req, err := http.NewRequest(http.MethodPost, m.opts.BaseURL+"/chat", bytes.NewReader(body))
		if err != nil {
			return errMsg{err}
		}
		m.decorate(req)

		resp, err := m.client.Do(req)
		if err != nil {
			return errMsg{err}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusAccepted {
			return errMsg{fmt.Errorf("backend returned %s", resp.Status)}
		}

		var accepted api.InitJobResponse
		if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
			return errMsg{err}
		}
		return jobAcceptedMsg{jobID: accepted.Id}
	}
}

func (m model) pollStatus() tea.Cmd {
	return func() tea.Msg {
		req, err := http.NewRequest(http.MethodGet, m.opts.BaseURL+"/status/"+m.jobID, nil)
		if err != nil {
			return errMsg{err}
		}
		m.decorate(req)

		resp, err := m.client.Do(req)
		if err != nil {
			return errMsg{err}
		}
		defer resp.Body.Close()

		var status api.JobResponse
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return errMsg{err}
		}

		if status.Error != nil && status.Error.Code != 0 {
			return errMsg{fmt.Errorf("job failed: %s", status.Error.Message)}
		}

		if status.Result.Status == "COMPLETE" && status.Result.ChatResponse != nil {
			return answerMsg{
				answer:     status.Result.ChatResponse.Answer,
				confidence: status.Result.ChatResponse.Confidence,
				services:   status.Result.ChatResponse.Services,
				chatID:     status.ChatId,
			}
		}

		// Still running, schedule another poll
		return jobAcceptedMsg{jobID: m.jobID}
	}
}

func (m model) decorate(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if m.opts.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+m.opts.AuthToken)
	}
}

// Run blocks until the user quits the chat.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
