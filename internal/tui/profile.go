package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rachitverma/careerlens/pkg/client"
	"github.com/rachitverma/careerlens/pkg/domain"
)

// -- messages --

type profileSavedMsg struct {
	message string
	err     error
}

// -- model --

type profileField int

const (
	profileFieldName profileField = iota
	profileFieldAbout
	numProfileFields
)

type profileModel struct {
	client   *client.Client
	profile  *domain.Profile
	identity domain.Identity

	editing   bool
	fields    [numProfileFields]string
	focus     profileField
	statusMsg string
	statusOK  bool

	width  int
	height int
}

func newProfileModel(c *client.Client, id domain.Identity) profileModel {
	return profileModel{client: c, identity: id}
}

func (m profileModel) Init() tea.Cmd {
	return nil // the root model loads the profile once per page entry
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err == nil && msg.profile != nil {
			m.profile = msg.profile
		}
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.statusMsg = fmt.Sprintf("update failed: %v", msg.err)
			m.statusOK = false
			return m, nil
		}
		m.statusMsg = msg.message
		if m.statusMsg == "" {
			m.statusMsg = "profile updated"
		}
		m.statusOK = true
		m.editing = false
		// Refresh from the server copy so its normalization is what
		// renders, not the locally-submitted values.
		c := m.client
		return m, func() tea.Msg {
			profile, err := c.GetProfile(context.Background())
			return profileLoadedMsg{profile: profile, err: err}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m profileModel) updateKeys(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	if !m.editing {
		if msg.String() == "e" && m.profile != nil {
			m.editing = true
			m.focus = profileFieldName
			m.fields[profileFieldName] = m.profile.Username
			m.fields[profileFieldAbout] = m.profile.About
			m.statusMsg = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.editing = false
		m.fields = [numProfileFields]string{}
		return m, nil
	case "tab", "down":
		m.focus = (m.focus + 1) % numProfileFields
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numProfileFields) % numProfileFields
		return m, nil
	case "enter":
		return m.save()
	case "backspace":
		m.fields[m.focus] = editRune(m.fields[m.focus], "backspace")
		return m, nil
	default:
		m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
		return m, nil
	}
}

func (m profileModel) save() (profileModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[profileFieldName])
	about := strings.TrimSpace(m.fields[profileFieldAbout])
	if name == "" {
		m.statusMsg = "name cannot be empty"
		m.statusOK = false
		return m, nil
	}
	if len(about) > 500 {
		m.statusMsg = "about must be under 500 characters"
		m.statusOK = false
		return m, nil
	}

	// Only changed fields go out; the server merges partials.
	var edit domain.ProfileEdit
	if m.profile == nil || name != m.profile.Username {
		edit.Username = &name
	}
	if m.profile == nil || about != m.profile.About {
		edit.About = &about
	}
	if edit.Username == nil && edit.About == nil {
		m.editing = false
		return m, nil
	}

	c := m.client
	return m, func() tea.Msg {
		message, err := c.EditProfile(context.Background(), edit)
		return profileSavedMsg{message: message, err: err}
	}
}

func (m profileModel) View() string {
	var b strings.Builder

	b.WriteString(sectionHeaderStyle.Render("PROFILE") + "\n")
	if m.profile == nil {
		b.WriteString(dimStyle.Render("loading profile...") + "\n")
		return b.String()
	}

	row := func(label, value string) {
		b.WriteString(fieldLabelStyle.Render(label) + normalStyle.Render(orPlaceholder(value)) + "\n")
	}
	row("name", m.profile.Username)
	row("email", m.profile.Email)
	row("about", m.profile.About)
	row("role", string(m.profile.DisplayRole()))

	if m.identity.Name != "" || m.identity.Email != "" {
		b.WriteString("\n" + sectionHeaderStyle.Render("SIGN-IN IDENTITY") + "\n")
		row("name", m.identity.Name)
		row("email", m.identity.Email)
		if m.identity.Picture != "" {
			row("picture", truncStr(m.identity.Picture, 50))
		}
	}

	b.WriteString("\n" + sectionHeaderStyle.Render("EDUCATION") + "\n")
	if edu := m.profile.Education; edu != nil {
		row("degree", edu.Degree)
		row("specialization", edu.Specialization)
		if edu.CGPA != nil {
			row("cgpa", fmt.Sprintf("%.2f", *edu.CGPA))
		} else {
			row("cgpa", "")
		}
		row("certifications", strings.Join(edu.Certifications, ", "))
	} else {
		b.WriteString(dimStyle.Render("no education details yet — fill them in on the Education tab") + "\n")
	}

	if m.editing {
		b.WriteString("\n" + sectionHeaderStyle.Render("EDIT PROFILE") + "\n")
		b.WriteString(m.renderField("name", profileFieldName))
		b.WriteString(m.renderField("about", profileFieldAbout))
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

func (m profileModel) renderField(label string, f profileField) string {
	value := m.fields[f]
	cursor := " "
	if m.focus == f {
		cursor = accentStyle.Render("█")
	}
	return fieldLabelStyle.Render(label) + normalStyle.Render(value) + cursor + "\n"
}

func (m profileModel) helpKeys() string {
	if m.editing {
		return helpEntry("tab", "next field") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("e", "edit")
}
