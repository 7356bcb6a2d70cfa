package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ButtonView is a button as it should be drawn
type ButtonView struct {
	ID      string
	Label   string
	Focused bool
}

// DialogView describes one open modal. ID names the overlay element (the
// backdrop) and DialogID the dialog box drawn on top of it.
type DialogView struct {
	ID       string
	DialogID string
	Title    string
	Body     []string
	Buttons  []ButtonView
}

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

type span struct {
	start, width int
}

// renderButtons joins buttons on one row and reports where each one starts
func (pr *PopupRenderer) renderButtons(buttons []ButtonView) (string, []span) {
	var (
		b     strings.Builder
		spans []span
		pos   int
	)
	for i, btn := range buttons {
		if i > 0 {
			b.WriteString("  ")
			pos += 2
		}
		style := pr.styles.Button
		if btn.Focused {
			style = pr.styles.ButtonFocused
		}
		rendered := style.Render("[ " + btn.Label + " ]")
		w := lipgloss.Width(rendered)
		spans = append(spans, span{start: pos, width: w})
		b.WriteString(rendered)
		pos += w
	}
	return b.String(), spans
}

// RenderDialog draws d centred in a width x height screen and records the
// backdrop, the dialog box and its buttons in layout.
func (pr *PopupRenderer) RenderDialog(d DialogView, width, height int, layout *Layout) (box string, x, y int) {
	maxBody := width - 10
	if maxBody < 20 {
		maxBody = 20
	}
	clip := lipgloss.NewStyle().MaxWidth(maxBody)

	lines := []string{pr.styles.DialogTitle.Render(d.Title), ""}
	for _, line := range d.Body {
		lines = append(lines, clip.Render(line))
	}
	lines = append(lines, "")
	row, spans := pr.renderButtons(d.Buttons)
	lines = append(lines, row)

	box = pr.styles.Dialog.Render(strings.Join(lines, "\n"))
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x = (width - w) / 2
	if x < 0 {
		x = 0
	}
	y = (height - h) / 2
	if y < 0 {
		y = 0
	}

	layout.add(d.ID, Rect{X: 0, Y: 0, W: max(width, x+w), H: max(height, y+h)})
	layout.add(d.DialogID, Rect{X: x, Y: y, W: w, H: h})

	// border, then padding, then the content row
	left := x + 1 + pr.styles.Dialog.GetPaddingLeft()
	top := y + 1 + pr.styles.Dialog.GetPaddingTop() + len(lines) - 1
	for i, btn := range d.Buttons {
		layout.add(btn.ID, Rect{X: left + spans[i].start, Y: top, W: spans[i].width, H: 1})
	}

	return box, x, y
}

// Overlay greys out base and draws box over it with its top-left corner at
// column x, row y. Columns are display cells, so wide runes behind the box
// do not move it.
func (pr *PopupRenderer) Overlay(base, box string, x, y, height int) string {
	baseLines := strings.Split(ansi.Strip(base), "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	boxLines := strings.Split(box, "\n")

	out := make([]string, len(baseLines))
	for i, line := range baseLines {
		if i < y || i >= y+len(boxLines) {
			out[i] = pr.styles.Backdrop.Render(line)
			continue
		}
		boxLine := boxLines[i-y]
		lineW := ansi.StringWidth(line)
		end := x + ansi.StringWidth(boxLine)

		// a wide rune cut in half leaves a gap that is filled with spaces
		left := ansi.Cut(line, 0, x)
		left += strings.Repeat(" ", x-ansi.StringWidth(left))

		right := ""
		if end < lineW {
			right = ansi.Cut(line, end, lineW)
			right = strings.Repeat(" ", lineW-end-ansi.StringWidth(right)) + right
		}
		out[i] = pr.styles.Backdrop.Render(left) + boxLine + pr.styles.Backdrop.Render(right)
	}
	return strings.Join(out, "\n")
}
