// Package ui provides the interactive terminal form.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/report2xctsk/internal/config"
	"github.com/nibzard/report2xctsk/internal/convert"
	"github.com/nibzard/report2xctsk/internal/utils"
)

// tabMark stands in for tabs typed or pasted into the report box, which
// would otherwise be expanded to spaces.
const tabMark = '␉'

type field int

const (
	fieldName field = iota
	fieldOffset
	fieldWaypoints
	fieldReport
	fieldCount
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

type noticeLevel int

const (
	levelSuccess noticeLevel = iota
	levelWarning
	levelError
)

type notice struct {
	level noticeLevel
	text  string
}

// collector gathers conversion messages for display in the form.
type collector struct {
	notices []notice
}

func (c *collector) add(level noticeLevel, msg string) {
	c.notices = append(c.notices, notice{level: level, text: msg})
}

func (c *collector) NotifySuccess(msg string) { c.add(levelSuccess, msg) }
func (c *collector) NotifyWarning(msg string) { c.add(levelWarning, msg) }
func (c *collector) NotifyError(msg string)   { c.add(levelError, msg) }

type generatedMsg struct {
	notices []notice
	path    string
	err     error
}

// RunForm starts the form with values prefilled from cfg.
func RunForm(ctx context.Context, cfg *config.Config) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("form requires a TTY")
	}
	program := tea.NewProgram(newFormModel(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type formModel struct {
	ctx    context.Context
	cfg    *config.Config
	inputs [fieldReport]textinput.Model
	report textarea.Model
	focus  field
	busy   bool

	notices  []notice
	lastPath string
}

func newFormModel(ctx context.Context, cfg *config.Config) *formModel {
	m := &formModel{ctx: ctx, cfg: cfg}

	name := textinput.New()
	name.Placeholder = "task1"
	name.Prompt = ""

	offset := textinput.New()
	offset.Prompt = ""
	offset.SetValue(strconv.FormatFloat(cfg.UTCOffset, 'f', -1, 64))

	wpt := textinput.New()
	wpt.Placeholder = "optional .wpt file"
	wpt.Prompt = ""
	wpt.SetValue(cfg.WaypointFile)

	m.inputs = [fieldReport]textinput.Model{name, offset, wpt}

	report := textarea.New()
	report.Placeholder = "Paste the task report here"
	report.ShowLineNumbers = false
	report.CharLimit = 0
	report.MaxHeight = 0
	report.SetWidth(80)
	report.SetHeight(10)
	m.report = report

	m.setFocus(fieldName)
	return m
}

func (m *formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := max(msg.Width-4, 20)
		m.report.SetWidth(width)
		for i := range m.inputs {
			m.inputs[i].Width = width
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			if msg.String() == "tab" || m.focus != fieldReport {
				return m, m.setFocus((m.focus + 1) % fieldCount)
			}
		case "shift+tab", "up":
			if msg.String() == "shift+tab" || m.focus != fieldReport {
				return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			}
		case "enter":
			if m.focus != fieldReport {
				return m, m.setFocus(m.focus + 1)
			}
		case "ctrl+s":
			return m, m.generate()
		}
	case generatedMsg:
		m.busy = false
		m.notices = msg.notices
		m.lastPath = msg.path
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == fieldReport {
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes {
			k.Runes = markTabs(k.Runes)
			msg = k
		}
		m.report, cmd = m.report.Update(msg)
	} else {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m *formModel) setFocus(f field) tea.Cmd {
	m.focus = f
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.report.Blur()
	if f == fieldReport {
		return m.report.Focus()
	}
	return m.inputs[f].Focus()
}

// request builds a conversion request from the current field values.
func (m *formModel) request() (convert.Request, error) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	report := restoreTabs(m.report.Value())
	if name == "" || strings.TrimSpace(report) == "" {
		return convert.Request{}, fmt.Errorf("enter the task report and a file name")
	}
	offset, err := utils.ParseOffset(m.inputs[fieldOffset].Value())
	if err != nil {
		return convert.Request{}, err
	}
	return convert.Request{
		Report:       report,
		Source:       "form",
		UTCOffset:    offset,
		WaypointFile: strings.TrimSpace(m.inputs[fieldWaypoints].Value()),
		Output:       name,
		OutputDir:    m.cfg.OutputDir,
		Validate:     m.cfg.ValidateOutput,
		Strict:       m.cfg.StrictValidation,
		SchemaPath:   m.cfg.SchemaFile,
	}, nil
}

// generate returns the command running the conversion, or nil when the
// form is incomplete or a conversion is already running.
func (m *formModel) generate() tea.Cmd {
	if m.busy {
		return nil
	}
	req, err := m.request()
	if err != nil {
		m.notices = []notice{{levelError, err.Error()}}
		return nil
	}
	m.busy = true
	m.notices = nil

	ctx, cfg := m.ctx, m.cfg
	return func() tea.Msg {
		c := &collector{}
		var opts []convert.Option
		if cfg.History {
			opts = append(opts, convert.WithHistory(cfg.LogDir))
		}
		res, err := convert.New(c, opts...).Convert(ctx, req)
		msg := generatedMsg{notices: c.notices, err: err}
		if res != nil {
			msg.path = res.Path
		}
		return msg
	}
}

func (m *formModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("report2xctsk") + "\n\n")

	labels := [fieldReport]string{"Output file", "UTC offset (hours)", "Waypoint file"}
	for i, label := range labels {
		b.WriteString(m.label(field(i), label) + "\n")
		b.WriteString("  " + m.inputs[i].View() + "\n\n")
	}
	b.WriteString(m.label(fieldReport, "Task report") + "\n")
	b.WriteString(m.report.View() + "\n\n")

	if m.busy {
		b.WriteString(labelStyle.Render("Generating...") + "\n\n")
	}
	for _, n := range m.notices {
		b.WriteString(renderNotice(n) + "\n")
	}
	if len(m.notices) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab/shift+tab move | ctrl+s generate | esc quit") + "\n")
	return b.String()
}

func (m *formModel) label(f field, text string) string {
	if m.focus == f {
		return focusStyle.Render("> " + text)
	}
	return labelStyle.Render("  " + text)
}

func renderNotice(n notice) string {
	switch n.level {
	case levelError:
		return errorStyle.Render("error: " + n.text)
	case levelWarning:
		return warningStyle.Render("warning: " + n.text)
	default:
		return successStyle.Render(n.text)
	}
}

func markTabs(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		if r == '\t' {
			r = tabMark
		}
		out[i] = r
	}
	return out
}

// restoreTabs turns tab marks in the report back into tabs.
func restoreTabs(s string) string {
	return strings.ReplaceAll(s, string(tabMark), "\t")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	return utils.IsTerminal(w)
}
