package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "left", "right", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Search actions
type LoadMoreAction struct{}

func (a LoadMoreAction) Type() string { return "load_more" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

// Modal actions
type OpenImageAction struct {
	URL string
}

func (a OpenImageAction) Type() string { return "open_image" }

type CloseModalAction struct{}

func (a CloseModalAction) Type() string { return "close_modal" }

// Other actions
type OpenActivityAction struct{}

func (a OpenActivityAction) Type() string { return "open_activity" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
