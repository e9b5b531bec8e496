package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rachitverma/careerlens/internal/cache"
	"github.com/rachitverma/careerlens/pkg/client"
	"github.com/rachitverma/careerlens/pkg/domain"
)

func testPredictions() []domain.RolePrediction {
	return []domain.RolePrediction{
		{JobRole: "Data Scientist", Confidence: 82.5},
		{JobRole: "ML Engineer", Confidence: 61.0},
	}
}

func testEducation() *domain.Education {
	return &domain.Education{Degree: "B.Tech", Specialization: "Computer Science"}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboardPredictRequiresEducation(t *testing.T) {
	m := newDashboardModel(nil, cache.New(t.TempDir()))

	m, cmd := m.updateKeys(keyMsg("p"))
	if cmd != nil {
		t.Fatal("expected no command when education is missing")
	}
	if m.statusMsg != "fill education details first" {
		t.Errorf("statusMsg = %q, want the fill-education prompt", m.statusMsg)
	}
	if m.state != predictIdle {
		t.Errorf("state = %d, want predictIdle", m.state)
	}
}

func TestDashboardPredictRejectsPlaceholderEducation(t *testing.T) {
	m := newDashboardModel(nil, cache.New(t.TempDir()))
	m.education = &domain.Education{Degree: domain.Placeholder, Specialization: domain.Placeholder}

	m, cmd := m.updateKeys(keyMsg("p"))
	if cmd != nil {
		t.Fatal("expected no command for placeholder education values")
	}
	if m.statusMsg != "fill education details first" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestDashboardPredictDispatches(t *testing.T) {
	m := newDashboardModel(nil, cache.New(t.TempDir()))
	m.education = testEducation()

	m, cmd := m.updateKeys(keyMsg("p"))
	if cmd == nil {
		t.Fatal("expected a predict command")
	}
	if m.state != predictRequesting {
		t.Errorf("state = %d, want predictRequesting", m.state)
	}
	if m.seq != 1 {
		t.Errorf("seq = %d, want 1", m.seq)
	}
}

func TestDashboardStaleResultDropped(t *testing.T) {
	pc := cache.New(t.TempDir())
	m := newDashboardModel(nil, pc)
	m.education = testEducation()
	m.seq = 2 // a second predict run superseded the first

	m, cmd := m.Update(predictResultMsg{seq: 1, predictions: testPredictions()})
	if cmd != nil {
		t.Error("expected no command for a stale result")
	}
	if len(m.predictions) != 0 {
		t.Error("stale result must not render")
	}
	if restored, _ := pc.Restore(); restored != nil {
		t.Error("stale result must not reach the cache")
	}
}

func TestDashboardResultPersistsBeforeFanOut(t *testing.T) {
	pc := cache.New(t.TempDir())
	m := newDashboardModel(nil, pc)
	m.seq = 1
	m.state = predictRequesting

	m, cmd := m.Update(predictResultMsg{seq: 1, predictions: testPredictions()})
	if cmd == nil {
		t.Fatal("expected the history/insights fan-out command")
	}

	// The cache write happened inside Update, before the fan-out was
	// even returned.
	restored, err := pc.Restore()
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if len(restored) != 2 || restored[0].JobRole != "Data Scientist" {
		t.Errorf("cache = %+v, want the fresh result", restored)
	}

	if m.state != predictReady {
		t.Errorf("state = %d, want predictReady", m.state)
	}
	if m.fromCache {
		t.Error("fromCache must reset on a fresh result")
	}
	if !m.historyPending || !m.insightsPending {
		t.Error("fan-out fetches must be marked pending")
	}
}

func TestDashboardSettlesAfterFanOut(t *testing.T) {
	m := newDashboardModel(nil, cache.New(t.TempDir()))
	m.seq = 1
	m.state = predictRequesting

	m, _ = m.Update(predictResultMsg{seq: 1, predictions: testPredictions()})
	m, _ = m.Update(historyLoadedMsg{records: nil})
	if m.state != predictReady {
		t.Errorf("state = %d after one fetch, want predictReady still", m.state)
	}
	m, _ = m.Update(insightsLoadedMsg{insight: nil})
	if m.state != predictSettled {
		t.Errorf("state = %d after both fetches, want predictSettled", m.state)
	}
}

func TestDashboardPredictErrorReturnsToIdle(t *testing.T) {
	m := newDashboardModel(nil, cache.New(t.TempDir()))
	m.seq = 1
	m.state = predictRequesting

	m, cmd := m.Update(predictResultMsg{seq: 1, err: errors.New("server on fire")})
	if cmd != nil {
		t.Error("expected no command for a plain prediction error")
	}
	if m.state != predictIdle {
		t.Errorf("state = %d, want predictIdle", m.state)
	}
	if !strings.Contains(m.statusMsg, "server on fire") {
		t.Errorf("statusMsg = %q, want the error surfaced", m.statusMsg)
	}
}

func TestDashboardUnauthorizedResultSignalsAuthFailure(t *testing.T) {
	m := newDashboardModel(nil, cache.New(t.TempDir()))
	m.seq = 1

	authErr := &client.APIError{StatusCode: 401, Message: "token expired"}
	_, cmd := m.Update(predictResultMsg{seq: 1, err: authErr})
	if cmd == nil {
		t.Fatal("expected an auth-failed command")
	}
	if _, ok := cmd().(authFailedMsg); !ok {
		t.Error("expected the command to produce authFailedMsg")
	}
}

func TestDashboardHistoryRendersNewestFirst(t *testing.T) {
	m := newDashboardModel(nil, cache.New(t.TempDir()))

	m, _ = m.Update(historyLoadedMsg{records: []domain.PredictionRecord{
		{Timestamp: "2026-08-01 10:00:00"},
		{Timestamp: "2026-08-02 11:00:00"},
		{Timestamp: "2026-08-03 12:00:00"},
	}})

	if len(m.history) != 3 {
		t.Fatalf("got %d history entries, want 3", len(m.history))
	}
	if m.history[0].Timestamp != "2026-08-03 12:00:00" {
		t.Errorf("history[0].Timestamp = %q, want the newest entry", m.history[0].Timestamp)
	}
	if m.history[2].Timestamp != "2026-08-01 10:00:00" {
		t.Errorf("history[2].Timestamp = %q, want the oldest entry", m.history[2].Timestamp)
	}
}

func TestDashboardRestoresCachedPrediction(t *testing.T) {
	dir := t.TempDir()
	pc := cache.New(dir)
	if err := pc.Persist(testPredictions()); err != nil {
		t.Fatalf("Persist() error: %v", err)
	}

	m := newDashboardModel(nil, cache.New(dir))
	if len(m.predictions) != 2 {
		t.Fatalf("got %d cached predictions, want 2", len(m.predictions))
	}
	if !m.fromCache {
		t.Error("fromCache = false, want true for restored state")
	}
	if !strings.Contains(m.View(), "restored from last session") {
		t.Error("expected the restored-state marker in the view")
	}
}

func TestDashboardFeedbackDefaultsToSentinelRole(t *testing.T) {
	m := newDashboardModel(nil, cache.New(t.TempDir()))
	if got := domain.TopRole(m.predictions); got != "N/A" {
		t.Errorf("TopRole with no prediction = %q, want the sentinel", got)
	}

	m.fbOpen = true
	m, cmd := m.updateFeedbackKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submit command even without a prediction")
	}
	_ = m
}

func TestDashboardFeedbackRatingBounds(t *testing.T) {
	m := newDashboardModel(nil, cache.New(t.TempDir()))
	m.fbOpen = true
	m.fbRating = 5

	m, _ = m.updateFeedbackKeys(tea.KeyMsg{Type: tea.KeyRight})
	if m.fbRating != 5 {
		t.Errorf("fbRating = %d after right at max, want 5", m.fbRating)
	}
	for i := 0; i < 10; i++ {
		m, _ = m.updateFeedbackKeys(tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.fbRating != 1 {
		t.Errorf("fbRating = %d after repeated left, want 1", m.fbRating)
	}
}

func TestDashboardViewEmptyStates(t *testing.T) {
	m := newDashboardModel(nil, cache.New(t.TempDir()))
	m.insightLoaded = true

	view := m.View()
	if !strings.Contains(view, "no prediction yet") {
		t.Error("expected empty prediction placeholder")
	}
	if !strings.Contains(view, "no insights available") {
		t.Error("expected empty insights placeholder")
	}
	if !strings.Contains(view, "no previous predictions") {
		t.Error("expected empty history placeholder")
	}
}
