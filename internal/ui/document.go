package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"lookout/internal/dom"
)

// Element ids. Modal ids double as the ids of their overlay nodes.
const (
	nodeQuery     = "query"
	nodeResults   = "results"
	nodeOpenHelp  = "open-help"
	nodeOpenAbout = "open-about"

	modalHelp    = "help"
	modalAbout   = "about"
	modalProfile = "profile"

	nodeHelpPager    = "help-pager"
	nodeHelpClose    = "help-close"
	nodeAboutClose   = "about-close"
	nodeProfileCopy  = "profile-copy"
	nodeProfileClose = "profile-close"
)

// Attributes specific to this page
const (
	attrAction    = "action"
	attrUserIndex = "user-index"

	actionPager = "pager"
	actionCopy  = "copy"
)

type pageNodes struct {
	query     *dom.Node
	results   *dom.Node
	openHelp  *dom.Node
	openAbout *dom.Node
}

func dialogID(modalID string) string {
	return modalID + "-dialog"
}

// buildDocument lays out the page and the three hidden modals
func (m *Model) buildDocument() {
	m.doc = dom.NewDocument()
	root := m.doc.Root()

	m.page = pageNodes{
		query:     dom.NewNode(nodeQuery, dom.RoleInput, "Search users"),
		results:   dom.NewNode(nodeResults, dom.RoleGroup, "Results"),
		openHelp:  dom.NewNode(nodeOpenHelp, dom.RoleButton, "Help").SetAttr(dom.AttrOpenModal, modalHelp),
		openAbout: dom.NewNode(nodeOpenAbout, dom.RoleButton, "About").SetAttr(dom.AttrOpenModal, modalAbout),
	}
	m.mustAppend(root, m.page.query)
	m.mustAppend(root, m.page.results)
	m.mustAppend(root, m.page.openHelp)
	m.mustAppend(root, m.page.openAbout)

	m.addModal(modalHelp, "Keyboard shortcuts",
		dom.NewNode(nodeHelpPager, dom.RoleButton, "Open in pager").SetAttr(attrAction, actionPager),
		dom.NewNode(nodeHelpClose, dom.RoleButton, "Close").SetAttr(dom.AttrCloseModal, ""),
	)
	m.addModal(modalAbout, "About lookout",
		dom.NewNode(nodeAboutClose, dom.RoleButton, "Close").SetAttr(dom.AttrCloseModal, ""),
	)
	m.addModal(modalProfile, "Profile",
		dom.NewNode(nodeProfileCopy, dom.RoleButton, "Copy link").SetAttr(attrAction, actionCopy),
		dom.NewNode(nodeProfileClose, dom.RoleButton, "Close").SetAttr(dom.AttrCloseModal, ""),
	)
}

func (m *Model) addModal(id, title string, buttons ...*dom.Node) {
	overlay := dom.NewNode(id, dom.RoleModal, "")
	overlay.SetHidden(true)
	dialog := dom.NewNode(dialogID(id), dom.RoleDialog, title)
	dialog.SetAttr(dom.AttrLabelledBy, id+"-title")

	m.mustAppend(m.doc.Root(), overlay)
	m.mustAppend(overlay, dialog)
	m.mustAppend(dialog, dom.NewNode(id+"-title", dom.RoleText, title))
	for _, b := range buttons {
		m.mustAppend(dialog, b)
	}
}

func (m *Model) mustAppend(parent, child *dom.Node) {
	if err := m.doc.Append(parent, child); err != nil {
		panic(fmt.Sprintf("building document: %s under %s: %v", child, parent, err))
	}
}

// onClick handles the page's own actions. Opening and closing modals is left
// to the modal manager's trigger handler, which runs after this one.
func (m *Model) onClick(e *dom.Event) {
	target := e.Target

	if raw, ok := target.Attr(attrUserIndex); ok {
		idx, err := strconv.Atoi(raw)
		results := m.search.Results()
		if err == nil && idx >= 0 && idx < len(results) {
			user := results[idx]
			m.profile = &user
		}
	}

	action, ok := target.Attr(attrAction)
	if !ok {
		return
	}
	switch action {
	case actionPager:
		m.pending = append(m.pending, showHelpInPager(m.helpText.PagerContent()))
	case actionCopy:
		m.copyProfileLink()
	default:
		log.Warn("ui: unknown action", "action", action, "node", target)
	}
}

// syncResults rebuilds the result links whenever the settled result set changes
func (m *Model) syncResults() {
	results := m.search.Results()
	key := fmt.Sprintf("%d/%s/%d", m.search.Token(), m.search.Status(), len(results))
	if key == m.resultsKey {
		return
	}
	m.resultsKey = key

	for _, node := range m.resultNodes {
		m.doc.Remove(node)
	}
	m.resultNodes = m.resultNodes[:0]

	for i, user := range results {
		node := dom.NewNode(fmt.Sprintf("result-%d", i), dom.RoleLink, user.Login).
			SetAttr(dom.AttrHref, user.ProfileURL).
			SetAttr(dom.AttrOpenModal, modalProfile).
			SetAttr(attrUserIndex, strconv.Itoa(i))
		m.mustAppend(m.page.results, node)
		m.resultNodes = append(m.resultNodes, node)
	}
}
