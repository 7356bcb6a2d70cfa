package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// keyMap lists the bindings shown in the footer and the help dialog
type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Close    key.Binding
	Down     key.Binding
	Search   key.Binding
	Help     key.Binding
	About    key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous control")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "activate")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close dialog / clear")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "up", "k"), key.WithHelp("↑/↓", "move through results")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "back to search")),
		Help:     key.NewBinding(key.WithKeys("f1", "?"), key.WithHelp("f1", "help")),
		About:    key.NewBinding(key.WithKeys("f2", "i"), key.WithHelp("f2", "about")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Help, k.About, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Activate, k.Close},
		{k.Down, k.Search, k.Help, k.About, k.Quit},
	}
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys keyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys keyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// DialogLines is the body of the help dialog
func (r *HelpRenderer) DialogLines() []string {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var lines []string
	for _, group := range r.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("%s  %s", keyStyle.Render(fmt.Sprintf("%-12s", h.Key)), descStyle.Render(h.Desc)))
		}
	}
	lines = append(lines, "", descStyle.Render("Inside a dialog, focus stays within it until it closes."))
	return lines
}

// PagerContent renders the help for the external pager
func (r *HelpRenderer) PagerContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	var help strings.Builder
	help.WriteString(titleStyle.Render("lookout Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Keys"))
	help.WriteString("\n")
	for _, line := range r.DialogLines() {
		help.WriteString("  ")
		help.WriteString(line)
		help.WriteString("\n")
	}

	help.WriteString(sectionStyle.Render("Searching"))
	help.WriteString("\n")
	help.WriteString("  Results appear once you stop typing for a moment.\n")
	help.WriteString("  Queries shorter than two characters are not sent.\n")
	help.WriteString("  Only the answer to the latest query is ever shown.\n")

	help.WriteString(sectionStyle.Render("Mouse"))
	help.WriteString("\n")
	help.WriteString("  Click a result to open it, click outside a dialog to close it.\n")

	return help.String()
}

// pagerCommand runs the ov pager over content as a tea.ExecCommand
type pagerCommand struct {
	content string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (p *pagerCommand) SetStdin(r io.Reader)  { p.stdin = r }
func (p *pagerCommand) SetStdout(w io.Writer) { p.stdout = w }
func (p *pagerCommand) SetStderr(w io.Writer) { p.stderr = w }

// Run shows content in ov until the user quits it
func (p *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return fmt.Errorf("failed to start pager: %w", err)
	}

	// ov must not print its buffer back over our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showHelpInPager hands the terminal to ov and reports back with helpPagerMsg
func showHelpInPager(content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}
