package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pixgrip/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft:
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case tea.KeyRight:
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		return m.open(ctx)
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "h":
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case "l":
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case " ":
		return m.open(ctx)

	case "/", "s":
		// Search box starts from the last query
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.Query()}}, true

	case "m", "n":
		if ctx.CanLoadMore() {
			return []types.Action{types.LoadMoreAction{}}, true
		}
		return nil, true

	case "r":
		// Resubmit the current query, e.g. after a failure
		if ctx.Query() != "" {
			return []types.Action{types.RefreshAction{}}, true
		}
		return nil, true

	case "L":
		return []types.Action{types.OpenActivityAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		m.lastKeyWasG = false
	}

	return nil, false
}

func (m *NormalMode) open(ctx types.Context) ([]types.Action, bool) {
	url := ctx.CurrentImageURL()
	if url == "" {
		return nil, true
	}
	return []types.Action{
		types.OpenImageAction{URL: url},
		types.ChangeModeAction{Mode: types.ModeModal},
	}, true
}
