package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rachitverma/careerlens/pkg/domain"
)

func testLogs() []domain.PredictionLogEntry {
	return []domain.PredictionLogEntry{
		{User: "ana@example.com", PredictedRole: "Data Scientist", Confidence: 82.5, Timestamp: "2026-08-01 10:00:00"},
		{User: "bo@example.com", PredictedRole: "QA Engineer", Confidence: 40.0, Timestamp: "2026-08-02 11:00:00", Flagged: true},
	}
}

func TestAdminFlagDispatches(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: testLogs()})

	m, cmd := m.startFlag()
	if cmd == nil {
		t.Fatal("expected a flag command for an unflagged entry")
	}
	if m.flagPending != "2026-08-01 10:00:00" {
		t.Errorf("flagPending = %q, want the entry timestamp", m.flagPending)
	}
}

func TestAdminFlagSkipsFlaggedEntry(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: testLogs()})
	m.cursor = 1 // already flagged

	if _, cmd := m.startFlag(); cmd != nil {
		t.Error("expected no command for an already-flagged entry")
	}
}

func TestAdminFlagNotDoubleDispatched(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: testLogs()})

	m, _ = m.startFlag()
	if _, cmd := m.startFlag(); cmd != nil {
		t.Error("expected no second command while the flag is in flight")
	}
}

func TestAdminFlaggedRefetchesLogs(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: testLogs()})
	m.flagPending = "2026-08-01 10:00:00"

	m, cmd := m.Update(flaggedMsg{timestamp: "2026-08-01 10:00:00"})
	if cmd == nil {
		t.Fatal("expected a logs refetch after a successful flag")
	}
	if m.flagPending != "" {
		t.Error("expected flagPending cleared")
	}
	// The local entry stays unflagged until the refetch lands; the
	// server copy is the one that renders.
	if m.logs[0].Flagged {
		t.Error("flag must not be applied optimistically")
	}
}

func TestAdminFlagOutsideLogsSection(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: testLogs()})
	m.section = sectionFeedback

	if _, cmd := m.startFlag(); cmd != nil {
		t.Error("expected no flag command from the feedback section")
	}
}

func TestAdminSectionToggle(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: testLogs()})
	m.cursor = 1

	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyTab})
	if m.section != sectionFeedback {
		t.Errorf("section = %d, want sectionFeedback", m.section)
	}
	if m.cursor != 0 {
		t.Error("cursor must reset on section change")
	}

	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyTab})
	if m.section != sectionLogs {
		t.Errorf("section = %d, want sectionLogs", m.section)
	}
}

func TestAdminCursorBounds(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: testLogs()})

	m, _ = m.updateKeys(keyMsg("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k at top, want 0", m.cursor)
	}
	m, _ = m.updateKeys(keyMsg("j"))
	m, _ = m.updateKeys(keyMsg("j"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j past bottom, want 1", m.cursor)
	}
}

func TestAdminUploadPromptFlow(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: testLogs()})

	m, _ = m.updateKeys(keyMsg("u"))
	if !m.uploadOpen {
		t.Fatal("expected the upload prompt open")
	}

	// Typed keys go to the path, not to navigation.
	m, _ = m.updateKeys(keyMsg("j"))
	if m.uploadPath != "j" {
		t.Errorf("uploadPath = %q, want the keystroke", m.uploadPath)
	}
	if m.cursor != 0 {
		t.Error("cursor must not move while the prompt is open")
	}

	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyEsc})
	if m.uploadOpen {
		t.Error("expected esc to close the prompt")
	}
}

func TestAdminUploadRequiresPath(t *testing.T) {
	m := newAdminModel(nil)
	m.uploadOpen = true

	m, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for an empty path")
	}
	if !m.uploadOpen {
		t.Error("expected the prompt to stay open")
	}
}

func TestAdminRetrainNotDoubleDispatched(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: testLogs()})

	m, cmd := m.updateKeys(keyMsg("t"))
	if cmd == nil {
		t.Fatal("expected a retrain command")
	}
	if _, cmd := m.updateKeys(keyMsg("t")); cmd != nil {
		t.Error("expected no second command while retraining")
	}
}

func TestAdminViewRendersFlaggedMarker(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: testLogs()})

	view := m.View()
	if !strings.Contains(view, "flagged") {
		t.Error("expected the flagged marker in the logs view")
	}
	if !strings.Contains(view, "Data Scientist") {
		t.Error("expected log roles in the view")
	}
}

func TestAdminFeedbackView(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(logsLoadedMsg{logs: nil})
	m, _ = m.Update(adminFeedbackLoadedMsg{feedback: []domain.FeedbackEntry{
		{User: "ana@example.com", Role: "Data Scientist", Rating: 4, Comment: "accurate", Timestamp: "2026-08-02 11:00:00"},
	}})
	m.section = sectionFeedback

	view := m.View()
	if !strings.Contains(view, "ana@example.com") {
		t.Error("expected the feedback author in the view")
	}
	if !strings.Contains(view, "accurate") {
		t.Error("expected the comment in the view")
	}
}
