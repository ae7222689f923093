package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"pixgrip/internal/ui/input/types"
)

// ModalMode owns the keyboard while an image is open; the grid receives nothing until it exits
type ModalMode struct{}

func NewModalMode() *ModalMode {
	return &ModalMode{}
}

func (m *ModalMode) Name() string {
	return "modal"
}

func (m *ModalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ModalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ModalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q", "enter", "backspace":
		return []types.Action{
			types.CloseModalAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	default:
		return nil, true
	}
}
