package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rachitverma/careerlens/pkg/client"
	"github.com/rachitverma/careerlens/pkg/domain"
)

// -- messages --

type educationLoadedMsg struct {
	education *domain.Education
	err       error
}

type educationSavedMsg struct {
	message string
	err     error
}

type skillsLoadedMsg struct {
	skills domain.Skills
	err    error
}

type skillsSavedMsg struct {
	message string
	err     error
}

// -- model --

type eduField int

const (
	eduDegree eduField = iota
	eduSpecialization
	eduCGPA
	eduYear
	eduTier
	eduInternship
	eduProjects
	eduBacklogs
	eduCerts
	numEduFields
)

var eduFieldLabels = [numEduFields]string{
	"degree", "specialization", "cgpa", "year", "college tier",
	"internship", "projects", "backlogs", "certifications",
}

// wire field names, used to key server validation errors to form rows
var eduFieldKeys = [numEduFields]string{
	"degree", "specialization", "cgpa", "year", "collegeTier",
	"internship", "projects", "backlogs", "certifications",
}

var collegeTiers = []string{"", "Tier 1", "Tier 2", "Tier 3"}
var internshipOptions = []string{"", "Yes", "No"}

type educationModel struct {
	client *client.Client
	email  string

	fields    [numEduFields]string
	focus     int // 0..numEduFields-1 = form rows, then len(domain.SkillFields) skill rows
	fieldErrs map[string]string

	skills       domain.Skills
	skillsLoaded bool

	statusMsg string
	statusOK  bool
	loading   bool
	width     int
	height    int
}

func newEducationModel(c *client.Client) educationModel {
	return educationModel{client: c, loading: true, skills: domain.Skills{}}
}

func (m educationModel) Init() tea.Cmd {
	return m.loadEducation()
}

func (m educationModel) loadEducation() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		education, err := c.GetEducation(context.Background())
		return educationLoadedMsg{education: education, err: err}
	}
}

func (m educationModel) loadSkills() tea.Cmd {
	c := m.client
	email := m.email
	return func() tea.Msg {
		skills, err := c.GetSkills(context.Background(), email)
		return skillsLoadedMsg{skills: skills, err: err}
	}
}

func (m educationModel) totalRows() int {
	return int(numEduFields) + len(domain.SkillFields)
}

func (m educationModel) inSkills() bool {
	return m.focus >= int(numEduFields)
}

func (m educationModel) Update(msg tea.Msg) (educationModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err == nil && msg.profile != nil && m.email == "" {
			m.email = msg.profile.Email
			if !m.skillsLoaded {
				return m, m.loadSkills()
			}
		}
		return m, nil

	case educationLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.statusMsg = fmt.Sprintf("could not load education: %v", msg.err)
			m.statusOK = false
			return m, nil
		}
		// Absent education pre-fills nothing; the form starts empty.
		if edu := msg.education; edu != nil {
			m.fields[eduDegree] = edu.Degree
			m.fields[eduSpecialization] = edu.Specialization
			if edu.CGPA != nil {
				m.fields[eduCGPA] = strconv.FormatFloat(*edu.CGPA, 'f', -1, 64)
			}
			if edu.Year != nil {
				m.fields[eduYear] = strconv.Itoa(*edu.Year)
			}
			m.fields[eduTier] = edu.CollegeTier
			m.fields[eduInternship] = edu.Internship
			m.fields[eduProjects] = edu.Projects
			m.fields[eduBacklogs] = edu.Backlogs
			m.fields[eduCerts] = strings.Join(edu.Certifications, ", ")
		}
		return m, nil

	case educationSavedMsg:
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			if fields := client.FieldErrors(msg.err); fields != nil {
				m.fieldErrs = fields
				m.statusMsg = "fix the highlighted fields"
			} else {
				m.statusMsg = fmt.Sprintf("save failed: %v", msg.err)
			}
			m.statusOK = false
			return m, nil
		}
		m.fieldErrs = nil
		m.statusMsg = msg.message
		if m.statusMsg == "" {
			m.statusMsg = "education details saved"
		}
		m.statusOK = true
		// Education hangs off the profile; reload it so every page sees
		// the server's copy.
		c := m.client
		return m, func() tea.Msg {
			profile, err := c.GetProfile(context.Background())
			return profileLoadedMsg{profile: profile, err: err}
		}

	case skillsLoadedMsg:
		m.skillsLoaded = true
		if msg.err != nil {
			// Missing skills read as "none saved yet".
			return m, authCheck(msg.err)
		}
		m.skills = domain.Skills{}
		for name, rating := range msg.skills {
			m.skills[name] = domain.ClampRating(rating)
		}
		return m, nil

	case skillsSavedMsg:
		if msg.err != nil {
			if cmd := authCheck(msg.err); cmd != nil {
				return m, cmd
			}
			m.statusMsg = fmt.Sprintf("skills save failed: %v", msg.err)
			m.statusOK = false
			return m, nil
		}
		m.statusMsg = msg.message
		if m.statusMsg == "" {
			m.statusMsg = "skills saved"
		}
		m.statusOK = true
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

func (m educationModel) updateKeys(msg tea.KeyMsg) (educationModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.save()
	case "tab", "down":
		m.focus = (m.focus + 1) % m.totalRows()
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + m.totalRows()) % m.totalRows()
		return m, nil
	}

	if m.inSkills() {
		return m.updateSkillKeys(msg)
	}

	field := eduField(m.focus)
	switch msg.String() {
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		m.cycleField(field, delta)
		return m, nil
	case "enter":
		m.focus = (m.focus + 1) % m.totalRows()
		return m, nil
	case "backspace":
		if isTypedField(field) {
			m.fields[field] = editRune(m.fields[field], "backspace")
		}
		return m, nil
	default:
		if isTypedField(field) {
			m.fields[field] = editRune(m.fields[field], msg.String())
		}
		return m, nil
	}
}

func (m educationModel) updateSkillKeys(msg tea.KeyMsg) (educationModel, tea.Cmd) {
	name := domain.SkillFields[m.focus-int(numEduFields)]
	switch msg.String() {
	case "left":
		m.skills[name] = domain.ClampRating(m.skills[name] - 1)
		return m, nil
	case "right":
		m.skills[name] = domain.ClampRating(m.skills[name] + 1)
		return m, nil
	case "enter":
		return m.saveSkills()
	}
	return m, nil
}

// cycleField advances a select-style field through its options. Typed
// fields are left alone.
func (m *educationModel) cycleField(field eduField, delta int) {
	switch field {
	case eduDegree:
		m.fields[eduDegree] = cycle(domain.Degrees, m.fields[eduDegree], delta)
		// Specializations belong to a degree; switching degrees resets
		// the dependent field, as the web form's change handler did.
		m.fields[eduSpecialization] = ""
	case eduSpecialization:
		specs := domain.DegreeSpecializations[m.fields[eduDegree]]
		m.fields[eduSpecialization] = cycle(specs, m.fields[eduSpecialization], delta)
	case eduYear:
		m.fields[eduYear] = cycle(gradYears(), m.fields[eduYear], delta)
	case eduTier:
		m.fields[eduTier] = cycle(collegeTiers, m.fields[eduTier], delta)
	case eduInternship:
		m.fields[eduInternship] = cycle(internshipOptions, m.fields[eduInternship], delta)
	}
}

func isTypedField(field eduField) bool {
	switch field {
	case eduCGPA, eduProjects, eduBacklogs, eduCerts:
		return true
	}
	return false
}

// gradYears lists selectable graduation years, current year first.
func gradYears() []string {
	current := time.Now().Year()
	years := make([]string, 0, current-2000+1)
	for y := current; y >= 2000; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

// save validates locally with the same bounds the server enforces.
// A local failure renders field messages and never reaches the network.
func (m educationModel) save() (educationModel, tea.Cmd) {
	edu := domain.Education{
		Degree:         strings.TrimSpace(m.fields[eduDegree]),
		Specialization: strings.TrimSpace(m.fields[eduSpecialization]),
		CollegeTier:    m.fields[eduTier],
		Internship:     m.fields[eduInternship],
		Projects:       strings.TrimSpace(m.fields[eduProjects]),
		Backlogs:       strings.TrimSpace(m.fields[eduBacklogs]),
		Certifications: domain.ParseCertifications(m.fields[eduCerts]),
	}

	errs := make(map[string]string)
	if raw := strings.TrimSpace(m.fields[eduCGPA]); raw != "" {
		cgpa, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs["cgpa"] = "cgpa must be a number"
		} else {
			edu.CGPA = &cgpa
		}
	}
	if raw := strings.TrimSpace(m.fields[eduYear]); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			errs["year"] = "invalid graduation year"
		} else {
			edu.Year = &year
		}
	}
	for k, v := range edu.Validate() {
		if _, taken := errs[k]; !taken {
			errs[k] = v
		}
	}
	if len(errs) > 0 {
		m.fieldErrs = errs
		m.statusMsg = "fix the highlighted fields"
		m.statusOK = false
		return m, nil
	}

	m.fieldErrs = nil
	m.statusMsg = ""
	c := m.client
	return m, func() tea.Msg {
		message, err := c.SaveEducation(context.Background(), edu)
		return educationSavedMsg{message: message, err: err}
	}
}

func (m educationModel) saveSkills() (educationModel, tea.Cmd) {
	if m.email == "" {
		m.statusMsg = "profile not loaded yet"
		m.statusOK = false
		return m, nil
	}
	skills := make(domain.Skills, len(domain.SkillFields))
	for _, name := range domain.SkillFields {
		skills[name] = domain.ClampRating(m.skills[name])
	}
	c := m.client
	email := m.email
	return m, func() tea.Msg {
		message, err := c.SaveSkills(context.Background(), email, skills)
		return skillsSavedMsg{message: message, err: err}
	}
}

func (m educationModel) View() string {
	var b strings.Builder

	b.WriteString(sectionHeaderStyle.Render("EDUCATION DETAILS") + "\n")
	if m.loading {
		b.WriteString(dimStyle.Render("loading...") + "\n")
		return b.String()
	}

	for f := eduField(0); f < numEduFields; f++ {
		cursor := "  "
		if m.focus == int(f) {
			cursor = accentStyle.Render("> ")
		}
		value := m.fields[f]
		var rendered string
		switch {
		case value != "":
			rendered = normalStyle.Render(value)
		case isTypedField(f):
			rendered = inputPlaceholderStyle.Render("type...")
		default:
			rendered = inputPlaceholderStyle.Render("←/→ to select")
		}
		b.WriteString(cursor + fieldLabelStyle.Render(eduFieldLabels[f]) + rendered)
		if msg, ok := m.fieldErrs[eduFieldKeys[f]]; ok {
			b.WriteString("  " + fieldErrStyle.Render(msg))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + sectionHeaderStyle.Render("SKILLS (0-10)") + "\n")
	if !m.skillsLoaded {
		b.WriteString(dimStyle.Render("loading skills...") + "\n")
	} else {
		for i, name := range domain.SkillFields {
			cursor := "  "
			if m.focus == int(numEduFields)+i {
				cursor = accentStyle.Render("> ")
			}
			rating := m.skills[name]
			bar := barFillStyle.Render(strings.Repeat("▰", rating)) +
				barEmptyStyle.Render(strings.Repeat("▱", 10-rating))
			b.WriteString(fmt.Sprintf("%s%s%s %s\n",
				cursor, fieldLabelStyle.Render(strings.ReplaceAll(name, "_", " ")),
				bar, metaStyle.Render(strconv.Itoa(rating))))
		}
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

func (m educationModel) helpKeys() string {
	if m.inSkills() {
		return helpEntry("←/→", "adjust") + "  " + helpEntry("enter", "save skills") + "  " + helpEntry("tab", "next")
	}
	return helpEntry("tab", "next") + "  " + helpEntry("←/→", "select") + "  " + helpEntry("ctrl+s", "save")
}
