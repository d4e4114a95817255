// Package browse is a terminal front end for the corpus: date and search
// inputs above a table of the filtered view, with a detail pane for the
// selected row.
package browse

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"github.com/lehigh-university-libraries/hbw/internal/detail"
	"github.com/lehigh-university-libraries/hbw/internal/export"
	"github.com/lehigh-university-libraries/hbw/internal/search"
	"github.com/lehigh-university-libraries/hbw/internal/session"
)

const (
	focusBegin = iota
	focusEnd
	focusSearch
	focusTable
	focusCount
)

var columnWidths = map[string]int{
	corpus.ColTitle:    40,
	corpus.ColAuthors:  24,
	corpus.ColDate:     6,
	corpus.ColBBIPID:   12,
	corpus.ColKeywords: 30,
	corpus.ColSummary:  40,
}

// Options configure a browser
type Options struct {
	Columns     []string
	Authorities []string
	Formatter   *export.Formatter
	ExportDir   string
}

// Model is the bubbletea model of the browser
type Model struct {
	records corpus.RecordSet
	session *session.Session
	opts    Options

	inputs [focusSearch + 1]textinput.Model
	focus  int
	table  table.Model

	view       search.View
	detail     detail.View
	showDetail bool
	status     string

	width  int
	height int
	styles styles
}

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	status lipgloss.Style
	detail lipgloss.Style
	key    lipgloss.Style
	link   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		status: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		detail: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		key:    lipgloss.NewStyle().Bold(true).Width(24),
		link:   lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
	}
}

// New creates a browser over records starting from s
func New(records corpus.RecordSet, s *session.Session, opts Options) Model {
	cols := make([]table.Column, 0, len(opts.Columns))
	for _, c := range opts.Columns {
		w, ok := columnWidths[c]
		if !ok {
			w = 20
		}
		cols = append(cols, table.Column{Title: c, Width: w})
	}

	m := Model{
		records: records,
		session: s,
		opts:    opts,
		table: table.New(
			table.WithColumns(cols),
			table.WithHeight(15),
		),
		focus:  focusSearch,
		styles: defaultStyles(),
	}

	placeholders := [...]string{"Start date", "End date", "Search all fields"}
	values := [...]string{strconv.Itoa(s.Criteria.Begin), strconv.Itoa(s.Criteria.End), s.Criteria.Search}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.SetValue(values[i])
		ti.Width = 8
		ti.CharLimit = 8
		if i == focusSearch {
			ti.Width = 40
			ti.CharLimit = 200
		}
		m.inputs[i] = ti
	}
	m.inputs[focusSearch].Focus()

	if err := s.Criteria.Validate(); err != nil {
		m.status = err.Error()
	}

	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 10; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + focusCount - 1) % focusCount)
			return m, nil
		case "ctrl+e":
			m.exportView()
			return m, nil
		case "esc":
			if m.showDetail {
				m.showDetail = false
				m.session.ClearSelection()
				return m, nil
			}
			m.setFocus(focusTable)
			return m, nil
		}

		if m.focus == focusTable {
			return m.updateTable(msg)
		}

		if msg.String() == "enter" {
			m.applyDates()
			m.setFocus(focusTable)
			return m, nil
		}
	}

	if m.focus < focusTable {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if m.focus == focusSearch {
			// Live filtering on each keystroke
			m.session.SetSearchText(m.inputs[focusSearch].Value())
			m.refresh()
		}
		return m, cmd
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if m.showDetail {
			m.showDetail = false
			m.session.ClearSelection()
			return m, nil
		}
		m.session.SelectRow(m.table.Cursor())
		m.detail, m.showDetail = detail.Restricted(m.records, m.view, m.session.Selected, m.opts.Columns, m.opts.Authorities)
		return m, nil
	case "s":
		m.cycleSort()
		return m, nil
	case "S":
		m.session.SetSort(m.session.SortColumn, !m.session.SortDesc)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(focus int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.table.Blur()

	if m.focus != focusTable && focus != m.focus {
		m.applyDates()
	}
	m.focus = focus
	if focus == focusTable {
		m.table.Focus()
		return
	}
	m.inputs[focus].Focus()
}

// applyDates reads the date inputs into the session, keeping the previous
// value for anything that is not a whole number
func (m *Model) applyDates() {
	begin, errBegin := strconv.Atoi(strings.TrimSpace(m.inputs[focusBegin].Value()))
	end, errEnd := strconv.Atoi(strings.TrimSpace(m.inputs[focusEnd].Value()))
	if errBegin != nil {
		begin = m.session.Criteria.Begin
		m.inputs[focusBegin].SetValue(strconv.Itoa(begin))
	}
	if errEnd != nil {
		end = m.session.Criteria.End
		m.inputs[focusEnd].SetValue(strconv.Itoa(end))
	}

	if begin == m.session.Criteria.Begin && end == m.session.Criteria.End {
		return
	}
	if err := m.session.SetDateRange(begin, end); err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
	m.refresh()
}

func (m *Model) cycleSort() {
	cols := m.opts.Columns
	if len(cols) == 0 {
		return
	}
	next := ""
	if m.session.SortColumn == "" {
		next = cols[0]
	} else {
		for i, c := range cols {
			if c == m.session.SortColumn && i+1 < len(cols) {
				next = cols[i+1]
			}
		}
	}
	m.session.SetSort(next, false)
	m.refresh()
}

// refresh recomputes the view and table rows from the session
func (m *Model) refresh() {
	m.view = m.session.View(m.records)
	m.showDetail = false
	m.detail = nil

	rows := make([]table.Row, 0, len(m.view))
	for _, pos := range m.view {
		rec := &m.records[pos]
		row := make(table.Row, len(m.opts.Columns))
		for i, col := range m.opts.Columns {
			v, _ := rec.Value(col)
			row[i] = strings.ReplaceAll(v, "\n", " ")
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m *Model) exportView() {
	dl, err := m.opts.Formatter.Export(m.records, m.view, m.session.Criteria)
	if err != nil {
		m.status = "Export failed: " + err.Error()
		return
	}

	path := filepath.Join(m.opts.ExportDir, dl.Filename)
	if err := os.WriteFile(path, dl.Data, 0644); err != nil {
		slog.Error("Unable to write export", "path", path, "err", err)
		m.status = "Export failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("Saved %d titles to %s", len(m.view), path)
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("History of Black Writing corpus search"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.label.Render("Start "))
	b.WriteString(m.inputs[focusBegin].View())
	b.WriteString(m.styles.label.Render("  End "))
	b.WriteString(m.inputs[focusEnd].View())
	b.WriteString(m.styles.label.Render("  Search "))
	b.WriteString(m.inputs[focusSearch].View())
	b.WriteString("\n\n")

	stats := search.Summarize(m.records, m.view)
	b.WriteString(fmt.Sprintf("%d titles displayed - (%d with keywords, %d with summaries)", stats.Displayed, stats.WithKeywords, stats.WithSummary))
	if m.session.SortColumn != "" {
		dir := "asc"
		if m.session.SortDesc {
			dir = "desc"
		}
		b.WriteString(m.styles.label.Render(fmt.Sprintf("  sorted by %s %s", m.session.SortColumn, dir)))
	}
	b.WriteString("\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.showDetail {
		b.WriteString(m.renderDetail())
		b.WriteString("\n")
	}

	help := "tab: next field • enter: apply/select • s/S: sort • ctrl+e: export • esc: close • ctrl+c: quit"
	if m.status != "" {
		help = m.status
	}
	b.WriteString(m.styles.status.Render(help))
	return b.String()
}

func (m Model) renderDetail() string {
	lines := make([]string, 0, len(m.detail))
	for _, f := range m.detail {
		v := f.Value
		if f.Href != "" {
			v = m.styles.link.Render(v)
		}
		lines = append(lines, m.styles.key.Render(f.Name)+v)
	}
	return m.styles.detail.Render(strings.Join(lines, "\n"))
}
