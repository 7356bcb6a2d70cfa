package ui

import (
	"fmt"

	"lookout/internal/dom"
	"lookout/internal/domain"
	"lookout/internal/ui/views"
)

// View renders the UI
func (m *Model) View() string {
	if m.disposed {
		return ""
	}

	active := m.doc.ActiveElement()

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		InputID:       nodeQuery,
		Input:         m.inputHandler.TextInput().View(),
		InputFocused:  active == m.page.query,
		Loading:       m.search.Status() == domain.StatusLoading,
		Spinner:       m.spinner.View(),
		ErrMessage:    m.search.ErrMessage(),
		HelpLine:      m.help.View(m.keys),
		StatusMessage: m.statusMessage,
		Buttons: []views.ButtonView{
			m.button(m.page.openHelp, active),
			m.button(m.page.openAbout, active),
		},
	}
	if m.search.NoResults() {
		state.NoResultsFor = m.search.Debounced()
	}

	results := m.search.Results()
	for i, node := range m.resultNodes {
		if i >= len(results) {
			break
		}
		state.Results = append(state.Results, views.ResultRow{
			ID:      node.ID,
			Login:   results[i].Login,
			URL:     results[i].ProfileURL,
			Focused: node == active,
		})
	}

	// the modal holding focus is drawn last so it ends up on top
	focusedModal := m.modals.Active()
	for _, id := range m.modals.OpenIDs() {
		if id != focusedModal {
			state.Dialogs = append(state.Dialogs, m.dialogView(id, active))
		}
	}
	if focusedModal != "" {
		state.Dialogs = append(state.Dialogs, m.dialogView(focusedModal, active))
	}

	out, layout := m.renderer.Render(state)
	m.layout = layout
	return out
}

func (m *Model) button(node *dom.Node, active *dom.Node) views.ButtonView {
	return views.ButtonView{ID: node.ID, Label: node.Label, Focused: node == active}
}

func (m *Model) dialogView(id string, active *dom.Node) views.DialogView {
	d := views.DialogView{ID: id, DialogID: dialogID(id)}

	if dialog := m.doc.GetElementByID(d.DialogID); dialog != nil {
		d.Title = dialog.Label
		for _, child := range dialog.Children() {
			if child.Role == dom.RoleButton {
				d.Buttons = append(d.Buttons, m.button(child, active))
			}
		}
	}

	switch id {
	case modalHelp:
		d.Body = m.helpText.DialogLines()
	case modalAbout:
		d.Body = m.aboutLines()
	case modalProfile:
		d.Body = m.profileLines()
		if m.profile != nil {
			d.Title = m.profile.Login
		}
	}
	return d
}

func (m *Model) aboutLines() []string {
	version := m.version
	if version == "" {
		version = "dev"
	}
	lines := []string{
		fmt.Sprintf("lookout %s", version),
		"A terminal finder for GitHub users.",
		"",
	}
	if m.stats != nil {
		s := m.stats.Snapshot()
		lines = append(lines,
			fmt.Sprintf("Searches this session: %d (%d failed)", s.Searches(), s.SearchesFailed),
			fmt.Sprintf("Lookups sent: %d", s.QueriesIssued),
			fmt.Sprintf("Dialogs opened: %d", s.DialogsOpened),
			"",
		)
	}
	lines = append(lines, fmt.Sprintf("Endpoint: %s", m.cfg.Search.Endpoint))
	if m.configPath != "" {
		lines = append(lines, fmt.Sprintf("Config:   %s", m.configPath))
	}
	return lines
}

func (m *Model) profileLines() []string {
	if m.profile == nil {
		return []string{"No user selected."}
	}
	return []string{
		fmt.Sprintf("Profile: %s", m.profile.ProfileURL),
		fmt.Sprintf("Avatar:  %s", m.profile.AvatarURL),
		fmt.Sprintf("ID:      %d", m.profile.ID),
	}
}
