package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	marginX = 2
	marginY = 1
)

// ResultRow is one user in the results list
type ResultRow struct {
	ID      string
	Login   string
	URL     string
	Focused bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	InputID      string
	Input        string
	InputFocused bool

	Loading      bool
	Spinner      string
	ErrMessage   string
	NoResultsFor string
	Results      []ResultRow

	Buttons       []ButtonView
	HelpLine      string
	StatusMessage string

	// Dialogs are drawn in order, the last one on top
	Dialogs []DialogView
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view and the layout of clickable elements
func (r *Renderer) Render(state ViewState) (string, Layout) {
	var (
		layout Layout
		lines  []string
	)
	for i := 0; i < marginY; i++ {
		lines = append(lines, "")
	}
	indent := strings.Repeat(" ", marginX)
	push := func(block string) int {
		at := len(lines)
		for _, l := range strings.Split(block, "\n") {
			lines = append(lines, indent+l)
		}
		return at
	}

	width := state.Width
	if width <= 0 {
		width = 80
	}

	push(r.styles.Title.Render("GitHub User Search"))
	push(r.styles.Dim.Render("Type to search GitHub users. Requests are debounced."))
	push("")

	inputStyle := r.styles.Input
	if state.InputFocused {
		inputStyle = r.styles.InputFocused
	}
	inputWidth := width - 2*marginX - 2
	if inputWidth < 20 {
		inputWidth = 20
	}
	inputBox := inputStyle.Width(inputWidth).Render(state.Input)
	at := push(inputBox)
	layout.add(state.InputID, Rect{X: marginX, Y: at, W: lipgloss.Width(inputBox), H: lipgloss.Height(inputBox)})
	push("")

	switch {
	case state.Loading:
		push(r.styles.Loading.Render(fmt.Sprintf("%s Loading…", state.Spinner)))
	case state.ErrMessage != "":
		push(r.styles.Error.Render(state.ErrMessage))
	case state.NoResultsFor != "":
		push(r.styles.Warning.Render(fmt.Sprintf("No results found for %q", state.NoResultsFor)))
	}

	rows := r.visibleResults(state, len(lines))
	for _, row := range rows {
		rendered := r.renderResult(row, width-2*marginX)
		at := push(rendered)
		layout.add(row.ID, Rect{X: marginX, Y: at, W: lipgloss.Width(rendered), H: 1})
	}

	push("")
	buttons, spans := r.popupRender.renderButtons(state.Buttons)
	at = push(buttons)
	for i, btn := range state.Buttons {
		layout.add(btn.ID, Rect{X: marginX + spans[i].start, Y: at, W: spans[i].width, H: 1})
	}

	push("")
	if state.HelpLine != "" {
		push(state.HelpLine)
	}
	if state.StatusMessage != "" {
		push(r.styles.Status.Render(state.StatusMessage))
	}

	page := strings.Join(lines, "\n")
	if len(state.Dialogs) == 0 {
		return page, layout
	}

	height := state.Height
	if height <= 0 {
		height = len(lines)
	}
	for _, d := range state.Dialogs {
		box, x, y := r.popupRender.RenderDialog(d, width, height, &layout)
		page = r.popupRender.Overlay(page, box, x, y, height)
	}
	return page, layout
}

// visibleResults windows the result list so the focused row stays on screen
func (r *Renderer) visibleResults(state ViewState, used int) []ResultRow {
	if state.Height <= 0 {
		return state.Results
	}
	// buttons, help and status lines below the list
	avail := state.Height - used - 5
	if avail < 3 {
		avail = 3
	}
	if len(state.Results) <= avail {
		return state.Results
	}

	focused := 0
	for i, row := range state.Results {
		if row.Focused {
			focused = i
			break
		}
	}
	start := 0
	if focused >= avail {
		start = focused - avail + 1
	}
	return state.Results[start : start+avail]
}

func (r *Renderer) renderResult(row ResultRow, width int) string {
	marker := "  "
	loginStyle := r.styles.Result
	if row.Focused {
		marker = "▸ "
		loginStyle = r.styles.ResultFocused
	}
	login := fmt.Sprintf("%-24s", row.Login)
	line := marker + loginStyle.Render(login) + " " + r.styles.Link.Render("Open Profile ↗ "+row.URL)
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
