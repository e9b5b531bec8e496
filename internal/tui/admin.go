package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rachitverma/careerlens/pkg/client"
	"github.com/rachitverma/careerlens/pkg/domain"
)

// -- messages --

type logsLoadedMsg struct {
	logs []domain.PredictionLogEntry
	err  error
}

type adminFeedbackLoadedMsg struct {
	feedback []domain.FeedbackEntry
	err      error
}

type flaggedMsg struct {
	timestamp string
	err       error
}

type datasetUploadedMsg struct {
	message string
	err     error
}

type retrainResultMsg struct {
	message string
	err     error
}

// -- model --

type adminSection int

const (
	sectionLogs adminSection = iota
	sectionFeedback
)

type adminModel struct {
	client *client.Client

	section  adminSection
	logs     []domain.PredictionLogEntry
	logsErr  error
	feedback []domain.FeedbackEntry
	fbErr    error
	cursor   int
	loading  bool

	// set while a flag request for that timestamp is in flight, so a
	// second keypress cannot double-submit
	flagPending string

	uploadOpen bool
	uploadPath string
	retraining bool

	statusMsg string
	statusOK  bool
	width     int
	height    int
}

func newAdminModel(c *client.Client) adminModel {
	return adminModel{client: c, loading: true}
}

func (m adminModel) Init() tea.Cmd {
	return tea.Batch(m.loadLogs(), m.loadFeedback())
}

func (m adminModel) loadLogs() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		logs, err := c.AdminPredictionLogs(context.Background())
		return logsLoadedMsg{logs: logs, err: err}
	}
}

func (m adminModel) loadFeedback() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		feedback, err := c.AdminFeedback(context.Background())
		return adminFeedbackLoadedMsg{feedback: feedback, err: err}
	}
}

func (m adminModel) rows() int {
	if m.section == sectionLogs {
		return len(m.logs)
	}
	return len(m.feedback)
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.logsErr = msg.err
			return m, nil
		}
		m.logsErr = nil
		m.logs = msg.logs
		if m.cursor >= len(m.logs) && m.section == sectionLogs {
			m.cursor = max(0, len(m.logs)-1)
		}
		return m, nil

	case adminFeedbackLoadedMsg:
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.fbErr = msg.err
			return m, nil
		}
		m.fbErr = nil
		m.feedback = msg.feedback
		return m, nil

	case flaggedMsg:
		m.flagPending = ""
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.statusMsg = fmt.Sprintf("flag failed: %v", msg.err)
			m.statusOK = false
			return m, nil
		}
		m.statusMsg = "prediction flagged for review"
		m.statusOK = true
		// The server owns the flag; refetch instead of toggling locally.
		return m, m.loadLogs()

	case datasetUploadedMsg:
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.statusMsg = fmt.Sprintf("upload failed: %v", msg.err)
			m.statusOK = false
			return m, nil
		}
		m.statusMsg = msg.message
		if m.statusMsg == "" {
			m.statusMsg = "dataset uploaded"
		}
		m.statusOK = true
		return m, nil

	case retrainResultMsg:
		m.retraining = false
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.statusMsg = fmt.Sprintf("retrain failed: %v", msg.err)
			m.statusOK = false
			return m, nil
		}
		m.statusMsg = msg.message
		if m.statusMsg == "" {
			m.statusMsg = "model retraining started"
		}
		m.statusOK = true
		// Retraining can change what the logs show.
		return m, m.loadLogs()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m adminModel) updateKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	if m.uploadOpen {
		switch msg.String() {
		case "esc":
			m.uploadOpen = false
			m.uploadPath = ""
			return m, nil
		case "enter":
			return m.startUpload()
		case "backspace":
			m.uploadPath = editRune(m.uploadPath, "backspace")
			return m, nil
		default:
			m.uploadPath = editRune(m.uploadPath, msg.String())
			return m, nil
		}
	}

	switch msg.String() {
	case "tab":
		if m.section == sectionLogs {
			m.section = sectionFeedback
		} else {
			m.section = sectionLogs
		}
		m.cursor = 0
		return m, nil
	case "j", "down":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "r":
		m.loading = true
		return m, tea.Batch(m.loadLogs(), m.loadFeedback())
	case "f":
		return m.startFlag()
	case "u":
		m.uploadOpen = true
		m.uploadPath = ""
		m.statusMsg = ""
		return m, nil
	case "t":
		if m.retraining {
			return m, nil
		}
		m.retraining = true
		m.statusMsg = "retraining model..."
		m.statusOK = true
		c := m.client
		return m, func() tea.Msg {
			message, err := c.RetrainModel(context.Background())
			return retrainResultMsg{message: message, err: err}
		}
	}
	return m, nil
}

// startFlag flags the log entry under the cursor. Already-flagged
// entries and entries with a flag in flight are skipped.
func (m adminModel) startFlag() (adminModel, tea.Cmd) {
	if m.section != sectionLogs || m.cursor >= len(m.logs) {
		return m, nil
	}
	entry := m.logs[m.cursor]
	if entry.Flagged || m.flagPending == entry.Timestamp {
		return m, nil
	}
	m.flagPending = entry.Timestamp
	c := m.client
	timestamp := entry.Timestamp
	return m, func() tea.Msg {
		_, err := c.FlagPrediction(context.Background(), timestamp)
		return flaggedMsg{timestamp: timestamp, err: err}
	}
}

func (m adminModel) startUpload() (adminModel, tea.Cmd) {
	path := strings.TrimSpace(m.uploadPath)
	if path == "" {
		return m, nil
	}
	m.uploadOpen = false
	m.uploadPath = ""
	m.statusMsg = "uploading dataset..."
	m.statusOK = true
	c := m.client
	return m, func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return datasetUploadedMsg{err: err}
		}
		defer f.Close()
		message, err := c.UploadDataset(context.Background(), filepath.Base(path), f)
		return datasetUploadedMsg{message: message, err: err}
	}
}

func (m adminModel) View() string {
	var b strings.Builder

	if m.section == sectionLogs {
		b.WriteString(sectionHeaderStyle.Render("PREDICTION LOGS") + "  " + dimStyle.Render("feedback ⇥") + "\n")
		b.WriteString(m.viewLogs())
	} else {
		b.WriteString(dimStyle.Render("logs ⇥") + "  " + sectionHeaderStyle.Render("USER FEEDBACK") + "\n")
		b.WriteString(m.viewFeedback())
	}

	if m.uploadOpen {
		b.WriteString("\n " + fieldLabelStyle.Render("dataset path") + normalStyle.Render(m.uploadPath))
		if m.uploadPath == "" {
			b.WriteString(inputPlaceholderStyle.Render("/path/to/dataset.csv"))
		}
		b.WriteString("\n " + dimStyle.Render("enter to upload, esc to cancel") + "\n")
	}

	if m.statusMsg != "" {
		style := errStyle
		if m.statusOK {
			style = okStyle
		}
		b.WriteString("\n " + style.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m adminModel) viewLogs() string {
	if m.loading {
		return dimStyle.Render("loading...") + "\n"
	}
	if m.logsErr != nil {
		return errStyle.Render(fmt.Sprintf("could not load logs: %v", m.logsErr)) + "\n"
	}
	if len(m.logs) == 0 {
		return dimStyle.Render("no predictions logged yet") + "\n"
	}

	var b strings.Builder
	for i, entry := range m.logs {
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
		}
		line := fmt.Sprintf("%s  %s  %.1f%%",
			truncStr(entry.User, 24), truncStr(entry.PredictedRole, 28), entry.Confidence)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = normalStyle.Render(line)
		}
		b.WriteString(cursor + line + "  " + metaStyle.Render(formatServerTime(entry.Timestamp)))
		if entry.Flagged {
			b.WriteString("  " + flaggedStyle.Render("⚑ flagged"))
		} else if m.flagPending == entry.Timestamp {
			b.WriteString("  " + dimStyle.Render("flagging..."))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m adminModel) viewFeedback() string {
	if m.fbErr != nil {
		return errStyle.Render(fmt.Sprintf("could not load feedback: %v", m.fbErr)) + "\n"
	}
	if len(m.feedback) == 0 {
		return dimStyle.Render("no feedback submitted yet") + "\n"
	}

	var b strings.Builder
	for i, entry := range m.feedback {
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
		}
		stars := strings.Repeat("★", entry.Rating) + strings.Repeat("☆", max(0, 5-entry.Rating))
		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			cursor, normalStyle.Render(truncStr(entry.User, 24)),
			accentStyle.Render(stars), metaStyle.Render(formatServerTime(entry.Timestamp))))
		if entry.Comment != "" {
			b.WriteString("     " + dimStyle.Render(truncStr(entry.Comment, 70)) + "\n")
		}
	}
	return b.String()
}

func (m adminModel) helpKeys() string {
	if m.uploadOpen {
		return helpEntry("enter", "upload") + "  " + helpEntry("esc", "cancel")
	}
	keys := []string{
		helpEntry("⇥", "section"),
		helpEntry("j/k", "move"),
	}
	if m.section == sectionLogs {
		keys = append(keys, helpEntry("f", "flag"))
	}
	keys = append(keys, helpEntry("u", "upload"), helpEntry("t", "retrain"), helpEntry("r", "refresh"))
	return strings.Join(keys, "  ")
}
