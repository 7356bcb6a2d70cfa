package types

import "lookout/internal/dom"

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type ClearTextAction struct{}

func (a ClearTextAction) Type() string { return "clear_text" }

// DispatchKeyAction forwards a key to the focused element of the page
type DispatchKeyAction struct {
	Key dom.Key
}

func (a DispatchKeyAction) Type() string { return "dispatch_key" }

// NavigateAction moves focus through the results
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

type FocusSearchAction struct{}

func (a FocusSearchAction) Type() string { return "focus_search" }

type OpenDialogAction struct {
	ID string
}

func (a OpenDialogAction) Type() string { return "open_dialog" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
