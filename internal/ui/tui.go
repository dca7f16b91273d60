// Package ui provides the optional terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/tasktracker/internal/task"
	"github.com/nibzard/tasktracker/internal/tracker"
)

// ErrNotTTY is returned by RunTUI when stdout is not a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

const defaultRefreshInterval = 2 * time.Second

// TUIOption configures the TUI behavior.
type TUIOption func(*Model)

// WithRefreshInterval sets how often the task file is re-read. Zero disables
// periodic refresh.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(m *Model) {
		m.tickInterval = d
	}
}

// WithPath sets the task file path shown in the footer.
func WithPath(path string) TUIOption {
	return func(m *Model) {
		m.path = path
	}
}

// RunTUI starts the task browser on the terminal.
func RunTUI(ctx context.Context, svc *tracker.Service, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}

	model := NewModel(svc, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusStyles = map[task.Status]lipgloss.Style{
		task.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		task.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

// Model is the bubbletea model of the task browser.
type Model struct {
	svc          *tracker.Service
	path         string
	tickInterval time.Duration

	all      task.Collection
	visible  task.Collection
	filter   task.Status
	cursor   int
	loadErr  error
	message  string
	msgErr   bool
	showHelp bool
}

type tickMsg time.Time

// NewModel creates a task browser over svc.
func NewModel(svc *tracker.Service, opts ...TUIOption) *Model {
	m := &Model{
		svc:          svc,
		tickInterval: defaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "r", "f5":
			m.message = ""
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.setFilter(task.StatusTodo)
		case "2":
			m.setFilter(task.StatusInProgress)
		case "3":
			m.setFilter(task.StatusDone)
		case "0":
			m.setFilter("")
		case "p":
			m.setStatus(task.StatusInProgress)
		case "d":
			m.setStatus(task.StatusDone)
		case "x":
			m.deleteSelected()
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Tracker") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading tasks:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.path)
		return b.String()
	}

	counts := m.all.Counts()
	b.WriteString(fmt.Sprintf("Todo: %d  In progress: %d  Done: %d\n",
		counts[task.StatusTodo], counts[task.StatusInProgress], counts[task.StatusDone]))
	if m.filter != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Filter: %s (0 to clear)", m.filter)) + "\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("  No tasks.") + "\n")
	}
	for i, t := range m.visible {
		b.WriteString(m.formatRow(i, t) + "\n")
	}
	b.WriteString("\n")

	if m.message != "" {
		style := messageStyle
		if m.msgErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.message) + "\n\n")
	}
	writeFooter(&b, m.path)
	return b.String()
}

// Selected returns the task under the cursor, if any.
func (m *Model) Selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) formatRow(i int, t task.Task) string {
	pointer := "  "
	if i == m.cursor {
		pointer = cursorStyle.Render("> ")
	}
	status := string(t.Status)
	if style, ok := statusStyles[t.Status]; ok {
		status = style.Render(status)
	}
	return fmt.Sprintf("%s[%d] %s - %s %s", pointer, t.ID, t.Description, status,
		dimStyle.Render("("+t.UpdatedAt.String()+")"))
}

func (m *Model) refresh() {
	all, err := m.svc.List("")
	if err != nil {
		m.loadErr = err
		m.all = nil
		m.visible = nil
		return
	}
	m.loadErr = nil
	m.all = all
	m.applyFilter()
}

func (m *Model) setFilter(status task.Status) {
	m.filter = status
	m.cursor = 0
	m.applyFilter()
}

func (m *Model) applyFilter() {
	m.visible = m.all.Filter(string(m.filter))
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(status task.Status) {
	sel, ok := m.Selected()
	if !ok {
		return
	}
	updated, err := m.svc.SetStatus(sel.ID, status)
	if err != nil {
		m.setError(err)
		return
	}
	m.setMessage(fmt.Sprintf("Task %d marked %s", updated.ID, updated.Status))
	m.refresh()
}

func (m *Model) deleteSelected() {
	sel, ok := m.Selected()
	if !ok {
		return
	}
	removed, err := m.svc.Delete(sel.ID)
	if err != nil {
		m.setError(err)
		return
	}
	m.setMessage(fmt.Sprintf("Task %d deleted", removed.ID))
	m.refresh()
}

func (m *Model) setMessage(s string) {
	m.message = s
	m.msgErr = false
}

func (m *Model) setError(err error) {
	m.message = "Error: " + err.Error()
	m.msgErr = true
	if tracker.IsKind(err, tracker.KindNotFound) {
		m.refresh()
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j  Move cursor\n")
	b.WriteString("  p             Mark selected in-progress\n")
	b.WriteString("  d             Mark selected done\n")
	b.WriteString("  x             Delete selected\n")
	b.WriteString("  1, 2, 3       Filter todo, in-progress, done\n")
	b.WriteString("  0             Clear filter\n")
	b.WriteString("  r, F5         Reload\n")
	b.WriteString("  h, ?          Toggle this help screen\n")
	b.WriteString("  q, ctrl+c     Quit\n\n")
}

func writeFooter(b *strings.Builder, path string) {
	line := "h help | q quit"
	if path != "" {
		line += " | " + path
	}
	b.WriteString(dimStyle.Render(line) + "\n")
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
