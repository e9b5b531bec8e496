package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rachitverma/careerlens/pkg/domain"
)

func testProfile() *domain.Profile {
	return &domain.Profile{
		Username: "ana",
		Email:    "ana@example.com",
		About:    "learning",
	}
}

func TestProfileEditPrefillsFields(t *testing.T) {
	m := newProfileModel(nil, domain.Identity{})
	m, _ = m.Update(profileLoadedMsg{profile: testProfile()})

	m, _ = m.updateKeys(keyMsg("e"))
	if !m.editing {
		t.Fatal("expected editing mode after e")
	}
	if m.fields[profileFieldName] != "ana" {
		t.Errorf("name field = %q, want prefilled", m.fields[profileFieldName])
	}
	if m.fields[profileFieldAbout] != "learning" {
		t.Errorf("about field = %q, want prefilled", m.fields[profileFieldAbout])
	}
}

func TestProfileEditRequiresLoadedProfile(t *testing.T) {
	m := newProfileModel(nil, domain.Identity{})
	m, _ = m.updateKeys(keyMsg("e"))
	if m.editing {
		t.Error("editing must not start before the profile loads")
	}
}

func TestProfileSaveRejectsEmptyName(t *testing.T) {
	m := newProfileModel(nil, domain.Identity{})
	m, _ = m.Update(profileLoadedMsg{profile: testProfile()})
	m, _ = m.updateKeys(keyMsg("e"))
	m.fields[profileFieldName] = "   "

	m, cmd := m.save()
	if cmd != nil {
		t.Fatal("expected no command for an empty name")
	}
	if m.statusMsg != "name cannot be empty" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestProfileSaveSkipsUnchangedFields(t *testing.T) {
	m := newProfileModel(nil, domain.Identity{})
	m, _ = m.Update(profileLoadedMsg{profile: testProfile()})
	m, _ = m.updateKeys(keyMsg("e"))

	// Nothing changed; no request goes out and editing just closes.
	m, cmd := m.save()
	if cmd != nil {
		t.Error("expected no command when nothing changed")
	}
	if m.editing {
		t.Error("expected editing to close")
	}
}

func TestProfileSaveDispatchesChangedFields(t *testing.T) {
	m := newProfileModel(nil, domain.Identity{})
	m, _ = m.Update(profileLoadedMsg{profile: testProfile()})
	m, _ = m.updateKeys(keyMsg("e"))
	m.fields[profileFieldAbout] = "shipping"

	_, cmd := m.save()
	if cmd == nil {
		t.Fatal("expected an edit command for a changed field")
	}
}

func TestProfileSavedRefetches(t *testing.T) {
	m := newProfileModel(nil, domain.Identity{})
	m.editing = true

	m, cmd := m.Update(profileSavedMsg{message: "profile updated"})
	if cmd == nil {
		t.Fatal("expected a refetch command after save")
	}
	if m.editing {
		t.Error("expected editing to close on success")
	}
	if m.statusMsg != "profile updated" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestProfileViewShowsIdentityAndEducation(t *testing.T) {
	m := newProfileModel(nil, domain.Identity{Name: "Ana G", Email: "ana@gmail.example"})
	profile := testProfile()
	profile.Education = testEducation()
	m, _ = m.Update(profileLoadedMsg{profile: profile})

	view := m.View()
	for _, want := range []string{"SIGN-IN IDENTITY", "Ana G", "EDUCATION", "B.Tech"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in profile view", want)
		}
	}
}

func TestProfileViewWithoutEducation(t *testing.T) {
	m := newProfileModel(nil, domain.Identity{})
	m, _ = m.Update(profileLoadedMsg{profile: testProfile()})

	if !strings.Contains(m.View(), "no education details yet") {
		t.Error("expected the missing-education hint")
	}
}

func TestProfileEscCancelsEdit(t *testing.T) {
	m := newProfileModel(nil, domain.Identity{})
	m, _ = m.Update(profileLoadedMsg{profile: testProfile()})
	m, _ = m.updateKeys(keyMsg("e"))
	m.fields[profileFieldName] = "changed"

	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyEsc})
	if m.editing {
		t.Error("expected editing to close on esc")
	}
	if m.fields[profileFieldName] != "" {
		t.Error("expected draft fields discarded on esc")
	}
}
