package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/suderio/d20go/internal/d20"
	"github.com/suderio/d20go/internal/history"
	"github.com/suderio/d20go/internal/preset"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))

	critStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))
)

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

// replModel is the interactive roll shell: type an expression or a preset
// name, see its rendered breakdown appended to a scrolling log.
type replModel struct {
	roller  *d20.Roller
	log     *history.Store
	presets *preset.Loader

	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model

	rollHistory []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	showList    bool
}

func newREPLModel(roller *d20.Roller, log *history.Store, presets *preset.Loader) replModel {
	ti := textinput.New()
	ti.Placeholder = "Enter a dice expression (e.g., 1d20+5) or a preset name..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)
	welcome := "Welcome to the d20go roller.\nType an expression and press enter. Type 'exit' to quit."
	vp.SetContent(welcome)

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false)
	sugList.SetShowHelp(false)

	return replModel{
		roller:     roller,
		log:        log,
		presets:    presets,
		textInput:  ti,
		viewport:   vp,
		suggestions: sugList,
		historyIdx: -1,
		logContent: welcome,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) updateSuggestions() {
	val := strings.TrimSpace(m.textInput.Value())
	var items []list.Item

	defer func() {
		m.suggestions.SetItems(items)
		m.showList = len(items) > 0
		if m.showList {
			h := len(items)
			if h > 7 {
				h = 7
			}
			if h < 4 {
				h = 4
			}
			m.suggestions.SetHeight(h)
			m.suggestions.ResetSelected()
		}
	}()

	if val == "" || m.presets == nil {
		return
	}

	all, err := m.presets.List()
	if err != nil {
		return
	}
	for _, p := range all {
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(val)) && len(val) < len(p.Name) {
			items = append(items, suggestion(p.Name))
		}
	}
}

// resolveRollInput treats val as a preset name if one matches exactly,
// falling back to treating it as a literal expression.
func (m *replModel) resolveRollInput(val string) string {
	if m.presets == nil {
		return val
	}
	if p, err := m.presets.Load(val); err == nil {
		return p.Expr
	}
	return val
}

func (m *replModel) roll(val string) {
	expr := m.resolveRollInput(val)
	result, err := m.roller.Roll(expr)
	if err != nil {
		m.logContent += fmt.Sprintf("Error: %v\n", err)
		return
	}

	line := result.Result
	switch result.Crit {
	case d20.CritHit:
		line += " " + critStyle.Render("(crit!)")
	case d20.CritFail:
		line += " " + failStyle.Render("(fail!)")
	}
	m.logContent += line + "\n"

	if m.log != nil {
		_ = m.log.Append(history.Record{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Expr:      expr,
			Result:    result.Result,
			Total:     result.Total,
			Comment:   result.Comment,
			Crit:      result.Crit.String(),
		})
	}
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.rollHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.rollHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.rollHistory[m.historyIdx])
				m.updateSuggestions()
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.rollHistory) > 0 && m.historyIdx != -1 {
				if m.historyIdx < len(m.rollHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.rollHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.updateSuggestions()
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}
			if val != "" {
				if len(m.rollHistory) == 0 || m.rollHistory[len(m.rollHistory)-1] != val {
					m.rollHistory = append(m.rollHistory, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				m.logContent += fmt.Sprintf("\n> %s\n", val)
				m.roll(val)
				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}
		default:
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	inputH := 1
	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2
	}
	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	overhead := titleH + inputH + listAreaHeight + infoH + 6

	m.viewport.Width = m.width - 4
	m.viewport.Height = m.height - overhead
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

func (m *replModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(" d20go ")
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete preset names, up/down history)"),
	)
}

// RunTUI starts the interactive roll REPL.
func RunTUI(roller *d20.Roller, log *history.Store, presets *preset.Loader) error {
	m := newREPLModel(roller, log, presets)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
