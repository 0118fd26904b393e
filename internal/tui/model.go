// Package tui is the terminal front end of the lookup client: a form with
// a case type selector, case number and filing year, and panels for the
// result, the failure message and the offline notice.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/raysh454/caselookup/internal/client"
	"github.com/raysh454/caselookup/internal/model"
	"github.com/raysh454/caselookup/internal/prefs"
)

// PrefStore persists the dark mode toggle.
type PrefStore interface {
	Load(ctx context.Context) (prefs.Preferences, error)
	SetDarkMode(ctx context.Context, on bool) error
}

type focus int

const (
	focusType focus = iota
	focusNumber
	focusYear
	focusCount
)

type lookupDoneMsg struct{ err error }

type prefSavedMsg struct{ err error }

type connectivityTickMsg struct{}

type connectivityMsg struct{ online bool }

// Model is the bubbletea model of the lookup form.
type Model struct {
	ctx   context.Context
	ctrl  *client.Controller
	prefs PrefStore
	keys  KeyMap

	types   []string
	typeIdx int
	number  textinput.Model
	year    textinput.Model
	focus   focus
	spinner spinner.Model

	dark    bool
	styles  Styles
	page    int
	pending bool
	notice  string

	// checkEvery is the connectivity polling interval; zero disables it.
	checkEvery time.Duration
}

// NewModel builds the form around ctrl. store may be nil, in which case
// the theme toggle is not persisted.
func NewModel(ctx context.Context, ctrl *client.Controller, store PrefStore, dark bool) Model {
	number := textinput.New()
	number.Placeholder = "e.g. 1234"
	number.CharLimit = 10
	number.Width = 12

	year := textinput.New()
	year.Placeholder = "e.g. 2023"
	year.CharLimit = 4
	year.Width = 6

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		prefs:   store,
		keys:    DefaultKeyMap(),
		types:   model.CaseTypes,
		typeIdx: -1,
		number:  number,
		year:    year,
		spinner: sp,
		dark:    dark,
		styles:  stylesFor(dark),
	}
}

// WithConnectivityCheck makes the form poll the controller's connectivity
// check every interval so the offline panel appears and clears on its own.
func (m Model) WithConnectivityCheck(every time.Duration) Model {
	m.checkEvery = every
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.checkEvery <= 0 {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.checkConnectivity())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case lookupDoneMsg:
		m.pending = false
		m.page = 0
		return m, nil

	case prefSavedMsg:
		if msg.err != nil {
			m.notice = "could not save preference: " + msg.err.Error()
		}
		return m, nil

	case connectivityTickMsg:
		return m, m.checkConnectivity()

	case connectivityMsg:
		if m.checkEvery <= 0 {
			return m, nil
		}
		return m, tea.Tick(m.checkEvery, func(time.Time) tea.Msg { return connectivityTickMsg{} })

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.Dismiss()
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.dark = !m.dark
		m.styles = stylesFor(m.dark)
		m.notice = ""
		return m, m.saveTheme(m.dark)

	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		m.typeIdx = -1
		m.number.SetValue("")
		m.year.SetValue("")
		m.page = 0
		m.pending = false
		m.notice = ""
		return m, m.setFocus(focusType)

	case key.Matches(msg, m.keys.Submit):
		if m.pending || !m.ctrl.Snapshot().CanSubmit {
			return m, nil
		}
		m.pending = true
		return m, tea.Batch(m.spinner.Tick, m.submit())

	case key.Matches(msg, m.keys.NextField):
		return m, m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, m.keys.NextPage):
		if m.page+1 < m.ctrl.Snapshot().Pages() {
			m.page++
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 0 {
			m.page--
		}
		return m, nil
	}

	if m.focus == focusType {
		switch {
		case key.Matches(msg, m.keys.NextType):
			m.cycleType(1)
		case key.Matches(msg, m.keys.PrevType):
			m.cycleType(-1)
		}
		return m, nil
	}
	return m.updateInput(msg)
}

func (m *Model) cycleType(step int) {
	n := len(m.types)
	if n == 0 {
		return
	}
	if m.typeIdx < 0 {
		if step > 0 {
			m.typeIdx = 0
		} else {
			m.typeIdx = n - 1
		}
	} else {
		m.typeIdx = (m.typeIdx + step + n) % n
	}
	m.ctrl.Edit(client.FieldCaseType, m.types[m.typeIdx])
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.number.Blur()
	m.year.Blur()
	switch f {
	case focusNumber:
		return m.number.Focus()
	case focusYear:
		return m.year.Focus()
	}
	return nil
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusNumber:
		m.number, cmd = m.number.Update(msg)
		m.ctrl.Edit(client.FieldCaseNumber, m.number.Value())
	case focusYear:
		m.year, cmd = m.year.Update(msg)
		m.ctrl.Edit(client.FieldFilingYear, m.year.Value())
	}
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return lookupDoneMsg{err: ctrl.Submit(ctx)}
	}
}

func (m Model) checkConnectivity() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return connectivityMsg{online: ctrl.CheckOnline(ctx)}
	}
}

func (m Model) saveTheme(dark bool) tea.Cmd {
	if m.prefs == nil {
		return nil
	}
	ctx, store := m.ctx, m.prefs
	return func() tea.Msg {
		return prefSavedMsg{err: store.SetDarkMode(ctx, dark)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	snap := m.ctrl.Snapshot()
	s := m.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("Court Case Lookup"))
	b.WriteString("\n\n")

	caseType := s.Muted.Render("choose with ← →")
	if m.typeIdx >= 0 {
		caseType = s.Normal.Render("‹ " + m.types[m.typeIdx] + " ›")
	}
	b.WriteString(m.row(focusType, "Case type", caseType))
	b.WriteString(m.row(focusNumber, "Case number", m.number.View()))
	b.WriteString(m.row(focusYear, "Filing year", m.year.View()))
	b.WriteString("\n")

	if snap.CanSubmit && !m.pending {
		b.WriteString(s.Success.Render("[ Look up ]"))
	} else {
		b.WriteString(s.Disabled.Render("[ Look up ]"))
	}
	b.WriteString("\n")

	switch {
	case snap.Loading || m.pending:
		b.WriteString(s.Panel.Render(m.spinner.View() + " Looking up case..."))
	case snap.State == client.Offline:
		b.WriteString(s.Panel.Render(s.Warning.Render(snap.Error)))
	case snap.State == client.Failed:
		b.WriteString(s.Panel.Render(s.Error.Render(snap.Error)))
	case snap.State == client.Succeeded:
		b.WriteString(s.Panel.Render(m.resultView(snap)))
	}

	if m.notice != "" {
		b.WriteString("\n" + s.Warning.Render(m.notice))
	}
	b.WriteString("\n\n" + m.helpView())
	return b.String()
}

func (m Model) row(f focus, label, value string) string {
	l := m.styles.Label.Render(label)
	if m.focus == f {
		l = m.styles.Focused.Width(14).Render("› " + label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, l, value) + "\n"
}

func (m Model) resultView(snap client.Snapshot) string {
	s := m.styles
	rec := snap.Result
	if rec == nil {
		rec = model.NewCaseRecord()
	}

	var b strings.Builder
	title := "Case details"
	if snap.Demo {
		title += " (demo data)"
	}
	b.WriteString(s.Title.Render(title) + "\n")
	for _, f := range []struct {
		label string
		value *string
	}{
		{"Petitioner", rec.Petitioner},
		{"Respondent", rec.Respondent},
		{"Filing date", rec.FilingDate},
		{"Next hearing", rec.NextHearing},
	} {
		b.WriteString(s.Label.Render(f.label) + s.Normal.Render(client.Display(f.value)) + "\n")
	}

	b.WriteString("\n" + s.Title.Render("Orders") + "\n")
	pages := snap.Pages()
	if pages == 0 {
		b.WriteString(s.Muted.Render(client.NotFound))
		return b.String()
	}
	page := min(m.page, pages-1)
	for i, o := range snap.OrdersPage(page) {
		n := page*client.PageSize + i + 1
		b.WriteString(fmt.Sprintf("%d. %s %s\n", n, s.Normal.Render(o.Name), s.Muted.Render(o.URL)))
	}
	if pages > 1 {
		b.WriteString(s.Muted.Render(fmt.Sprintf("page %d of %d", page+1, pages)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) helpView() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.Help.Render(strings.Join(parts, " • "))
}
