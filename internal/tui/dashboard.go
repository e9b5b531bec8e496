package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rachitverma/careerlens/internal/cache"
	"github.com/rachitverma/careerlens/pkg/client"
	"github.com/rachitverma/careerlens/pkg/domain"
)

// predictState tracks one predict run. Validation is synchronous, so the
// observable states are the request and what follows it.
type predictState int

const (
	predictIdle predictState = iota
	predictRequesting
	predictReady   // fresh result persisted and rendered, fan-out in flight
	predictSettled // history and insights fetches both completed
)

// -- messages --

type predictResultMsg struct {
	seq         int
	predictions []domain.RolePrediction
	err         error
}

type historyLoadedMsg struct {
	records []domain.PredictionRecord
	err     error
}

type insightsLoadedMsg struct {
	insight *domain.CareerInsight
	err     error
}

type feedbackSentMsg struct {
	message string
	err     error
}

type copyResultMsg struct{ err error }

// -- model --

const historyPageSize = 8

type dashboardModel struct {
	client *client.Client
	cache  *cache.Cache

	// education inputs come from the loaded profile, not from a separate
	// fetch; the profile is the page's single source for them.
	education *domain.Education

	predictions []domain.RolePrediction
	fromCache   bool
	state       predictState
	seq         int // latest dispatched predict run; stale responses are dropped

	historyPending  bool
	insightsPending bool

	history    []domain.PredictionRecord // most-recent-first
	historyErr error
	histOffset int

	insight       *domain.CareerInsight
	insightErr    error
	insightLoaded bool

	fbOpen    bool
	fbRating  int
	fbComment string
	fbStatus  string

	statusMsg string
	width     int
	height    int
}

// newDashboardModel restores the cached latest prediction before any
// network call is dispatched, so a restart shows it immediately.
func newDashboardModel(c *client.Client, pc *cache.Cache) dashboardModel {
	m := dashboardModel{client: c, cache: pc, fbRating: 5}
	if restored, err := pc.Restore(); err == nil && restored != nil {
		m.predictions = restored
		m.fromCache = true
	}
	return m
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadHistory(), m.loadInsights())
}

func (m dashboardModel) loadHistory() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		records, err := c.PredictionHistory(context.Background())
		return historyLoadedMsg{records: records, err: err}
	}
}

func (m dashboardModel) loadInsights() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		insight, err := c.CareerInsights(context.Background())
		return insightsLoadedMsg{insight: insight, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err == nil && msg.profile != nil {
			m.education = msg.profile.Education
		}
		return m, nil

	case predictResultMsg:
		if msg.seq != m.seq {
			// A newer predict run was dispatched after this one; drop the
			// stale response before it can touch the cache or the view.
			return m, nil
		}
		if msg.err != nil {
			m.state = predictIdle
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.statusMsg = fmt.Sprintf("prediction failed: %v", msg.err)
			return m, nil
		}
		// Persist before the fan-out is dispatched: a restart during the
		// fan-out must still restore this result.
		if err := m.cache.Persist(msg.predictions); err != nil {
			m.statusMsg = fmt.Sprintf("could not save prediction: %v", err)
		} else {
			m.statusMsg = ""
		}
		m.predictions = msg.predictions
		m.fromCache = false
		m.state = predictReady
		m.historyPending = true
		m.insightsPending = true
		m.histOffset = 0
		return m, tea.Batch(m.loadHistory(), m.loadInsights())

	case historyLoadedMsg:
		m.historyPending = false
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.historyErr = msg.err
		} else {
			m.historyErr = nil
			m.history = reverseRecords(msg.records)
			if m.histOffset >= len(m.history) {
				m.histOffset = 0
			}
		}
		return m.settle(), nil

	case insightsLoadedMsg:
		m.insightsPending = false
		m.insightLoaded = true
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.insightErr = msg.err
		} else {
			m.insightErr = nil
			m.insight = msg.insight
		}
		return m.settle(), nil

	case feedbackSentMsg:
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.fbStatus = fmt.Sprintf("feedback failed: %v", msg.err)
		} else {
			m.fbStatus = msg.message
			if m.fbStatus == "" {
				m.fbStatus = "feedback submitted"
			}
			m.fbOpen = false
			m.fbComment = ""
		}
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed"
		} else {
			m.statusMsg = "copied top role"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

// settle marks the run complete once both fan-out fetches have landed.
func (m dashboardModel) settle() dashboardModel {
	if m.state == predictReady && !m.historyPending && !m.insightsPending {
		m.state = predictSettled
	}
	return m
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	if m.fbOpen {
		return m.updateFeedbackKeys(msg)
	}

	switch msg.String() {
	case "p":
		return m.startPredict()
	case "f":
		m.fbOpen = true
		m.fbStatus = ""
		return m, nil
	case "c":
		if len(m.predictions) == 0 {
			m.statusMsg = "nothing to copy"
			return m, nil
		}
		role := domain.TopRole(m.predictions)
		return m, func() tea.Msg {
			return copyResultMsg{err: clipboard.WriteAll(role)}
		}
	case "j", "down":
		if m.histOffset < len(m.history)-1 {
			m.histOffset++
		}
		return m, nil
	case "k", "up":
		if m.histOffset > 0 {
			m.histOffset--
		}
		return m, nil
	}
	return m, nil
}

func (m dashboardModel) updateFeedbackKeys(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.fbOpen = false
		return m, nil
	case "enter":
		return m.submitFeedback()
	case "left":
		if m.fbRating > 1 {
			m.fbRating--
		}
		return m, nil
	case "right":
		if m.fbRating < 5 {
			m.fbRating++
		}
		return m, nil
	case "backspace":
		m.fbComment = editRune(m.fbComment, "backspace")
		return m, nil
	default:
		m.fbComment = editRune(m.fbComment, msg.String())
		return m, nil
	}
}

// startPredict is the Idle → Validating → Requesting edge. Validation is
// local and synchronous: missing education inputs surface immediately
// and nothing goes on the wire.
func (m dashboardModel) startPredict() (dashboardModel, tea.Cmd) {
	if !m.education.HasPredictionInputs() {
		m.statusMsg = "fill education details first"
		return m, nil
	}

	req := client.PredictRequest{
		Degree:         m.education.Degree,
		Specialization: m.education.Specialization,
		CGPA:           m.education.CGPA,
		Certifications: m.education.Certifications,
	}
	if req.Certifications == nil {
		req.Certifications = []string{}
	}

	// A second predict before the first lands is allowed; bumping the
	// sequence makes every earlier in-flight response stale.
	m.seq++
	seq := m.seq
	m.state = predictRequesting
	m.statusMsg = ""
	c := m.client
	return m, func() tea.Msg {
		predictions, err := c.Predict(context.Background(), req)
		return predictResultMsg{seq: seq, predictions: predictions, err: err}
	}
}

func (m dashboardModel) submitFeedback() (dashboardModel, tea.Cmd) {
	// The role is whatever prediction is currently rendered; without one
	// the sentinel goes out instead of blocking the submission.
	role := domain.TopRole(m.predictions)
	rating := m.fbRating
	comment := strings.TrimSpace(m.fbComment)
	c := m.client
	return m, func() tea.Msg {
		message, err := c.SubmitFeedback(context.Background(), role, rating, comment)
		return feedbackSentMsg{message: message, err: err}
	}
}

func reverseRecords(records []domain.PredictionRecord) []domain.PredictionRecord {
	out := make([]domain.PredictionRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

// -- view --

func (m dashboardModel) View() string {
	var b strings.Builder

	b.WriteString(sectionHeaderStyle.Render("LATEST PREDICTION") + "\n")
	switch {
	case m.state == predictRequesting:
		b.WriteString(dimStyle.Render("predicting...") + "\n")
	case len(m.predictions) == 0:
		b.WriteString(inputPlaceholderStyle.Render("no prediction yet — press p to predict") + "\n")
	default:
		if m.fromCache {
			b.WriteString(metaStyle.Render("restored from last session") + "\n")
		}
		barWidth := 24
		for i, p := range m.predictions {
			name := normalStyle.Render(p.JobRole)
			if i == 0 {
				name = topRoleStyle.Render("★ " + p.JobRole)
			}
			b.WriteString(fmt.Sprintf(" %-34s %s\n", name, renderBar(p.Confidence, barWidth)))
		}
	}
	b.WriteString("\n")

	b.WriteString(sectionHeaderStyle.Render("CAREER INSIGHTS") + "\n")
	switch {
	case m.insightErr != nil:
		b.WriteString(errStyle.Render("insights unavailable: "+truncStr(m.insightErr.Error(), 60)) + "\n")
	case m.insight == nil:
		if m.insightLoaded {
			b.WriteString(dimStyle.Render("no insights available") + "\n")
		} else {
			b.WriteString(dimStyle.Render("loading insights...") + "\n")
		}
	default:
		b.WriteString(" " + insightStyle.Render(m.insight.Message) + "\n")
		if len(m.insight.AlternativeRoles) > 0 {
			b.WriteString(" " + metaStyle.Render("also consider: "+strings.Join(m.insight.AlternativeRoles, ", ")) + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(sectionHeaderStyle.Render("PREVIOUS PREDICTIONS") + "\n")
	switch {
	case m.historyErr != nil:
		b.WriteString(errStyle.Render("history unavailable: "+truncStr(m.historyErr.Error(), 60)) + "\n")
	case len(m.history) == 0:
		b.WriteString(dimStyle.Render("no previous predictions") + "\n")
	default:
		end := m.histOffset + historyPageSize
		if end > len(m.history) {
			end = len(m.history)
		}
		for _, rec := range m.history[m.histOffset:end] {
			b.WriteString(fmt.Sprintf(" %s  %s\n",
				normalStyle.Render(fmt.Sprintf("%-30s", truncStr(domain.TopRole(rec.Predictions), 30))),
				metaStyle.Render(formatServerTime(rec.Timestamp))))
		}
		if len(m.history) > historyPageSize {
			b.WriteString(metaStyle.Render(fmt.Sprintf(" %d of %d", m.histOffset+1, len(m.history))) + "\n")
		}
	}

	if m.fbOpen {
		b.WriteString("\n" + sectionHeaderStyle.Render("FEEDBACK") + "\n")
		b.WriteString(fmt.Sprintf(" role: %s\n", normalStyle.Render(domain.TopRole(m.predictions))))
		stars := strings.Repeat("★", m.fbRating) + strings.Repeat("☆", 5-m.fbRating)
		b.WriteString(fmt.Sprintf(" rating: %s %s\n", accentStyle.Render(stars), metaStyle.Render("(←/→)")))
		comment := m.fbComment
		if comment == "" {
			comment = inputPlaceholderStyle.Render("type a comment...")
		} else {
			comment = normalStyle.Render(comment)
		}
		b.WriteString(" comment: " + comment + "\n")
	}
	if m.fbStatus != "" {
		b.WriteString("\n " + okStyle.Render(m.fbStatus) + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + errStyle.Render(m.statusMsg) + "\n")
	}

	return b.String()
}

func (m dashboardModel) helpKeys() string {
	if m.fbOpen {
		return helpEntry("←/→", "rating") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("p", "predict") + "  " + helpEntry("f", "feedback") + "  " +
		helpEntry("c", "copy role") + "  " + helpEntry("j/k", "history")
}
