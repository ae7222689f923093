package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pixgrip/internal/config"
	"pixgrip/internal/eventbus"
	"pixgrip/internal/preview"
	"pixgrip/internal/session"
	"pixgrip/internal/ui/commands"
	"pixgrip/internal/ui/input"
	inputtypes "pixgrip/internal/ui/input/types"
	"pixgrip/internal/ui/logic"
	"pixgrip/internal/ui/state"
	"pixgrip/internal/ui/views"
)

// Options wires the model to the rest of the program
type Options struct {
	Controller   *session.Controller
	Activity     *eventbus.Activity
	Loader       commands.PreviewLoader // nil disables image previews
	Previews     *preview.Cache
	Config       *config.Config
	Logger       *zap.Logger
	InitialQuery string
}

// Model represents the UI state
type Model struct {
	config *config.Config
	state  *state.AppState // centralized state
	logger *zap.Logger

	controller   *session.Controller
	activity     *eventbus.Activity
	renderer     *views.Renderer
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	pager        *Pager

	initialQuery string
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	activity := opts.Activity
	if activity == nil {
		activity = eventbus.NewActivity(0)
	}

	m := &Model{
		config:       cfg,
		state:        state.NewAppState(),
		logger:       logger.Named("ui"),
		controller:   opts.Controller,
		activity:     activity,
		renderer:     views.NewRenderer(),
		cmdExecutor:  commands.NewExecutor(ctx, opts.Controller, opts.Loader, opts.Previews),
		inputHandler: input.New(),
		pager:        NewPager(),
		initialQuery: strings.TrimSpace(opts.InitialQuery),
	}
	m.sync()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if m.initialQuery != "" {
		cmds = append(cmds, m.submit(m.initialQuery))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.ensureCursorVisible()
		if m.state.Session.ModalOpen() {
			return m, m.requestPreview()
		}
		return m, nil

	case tea.KeyMsg:
		m.state.StatusMessage = ""

		// Popups take keys before the mode handler
		if m.state.ShowLog {
			switch msg.String() {
			case "esc", "q", "L":
				m.state.ShowLog = false
				m.state.LogContent = ""
			}
			return m, nil
		}
		if m.state.ShowHelp {
			switch msg.String() {
			case "esc", "q", "?":
				m.state.ShowHelp = false
				m.state.HelpScrollOffset = 0
			case "j", "down":
				m.state.HelpScrollOffset++
			case "k", "up":
				if m.state.HelpScrollOffset > 0 {
					m.state.HelpScrollOffset--
				}
			}
			return m, nil
		}

		ctx := &input.ModelContext{State: m.state}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.state.Width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	vs := views.ViewState{
		Width:            m.state.Width,
		Height:           m.state.Height,
		Session:          m.state.Session,
		Cursor:           m.state.Cursor,
		RowOffset:        m.state.RowOffset,
		Columns:          m.config.UI.Columns,
		ShowAuthor:       m.config.UI.ShowAuthor,
		InputMode:        m.inputHandler.ModeName(),
		Prompt:           m.inputHandler.Prompt(),
		StatusMessage:    m.state.StatusMessage,
		ShowHelp:         m.state.ShowHelp,
		HelpScrollOffset: m.state.HelpScrollOffset,
		ShowLog:          m.state.ShowLog,
		LogContent:       m.state.LogContent,
		PreviewContent:   m.state.Preview.Content,
		PreviewErr:       m.state.Preview.Err,
		PreviewLoading:   m.state.Preview.Loading,
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.TextInput = ti.View()
	}
	return vs
}

// sync copies the controller's session into the app state
func (m *Model) sync() {
	m.state.Session = m.controller.Session()
	m.state.ClampCursor()
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.logger.Debug("processAction", zap.String("action", action.Type()))
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeSearch {
			return m.submit(a.Text)
		}

	case inputtypes.RefreshAction:
		return m.submit(m.state.Session.Query)

	case inputtypes.LoadMoreAction:
		return m.loadMore()

	case inputtypes.OpenImageAction:
		return m.openImage(a.URL)

	case inputtypes.CloseModalAction:
		m.closeModal()

	case inputtypes.OpenActivityAction:
		return m.showActivity()

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
		m.state.HelpScrollOffset = 0

	case inputtypes.QuitAction:
		m.cmdExecutor.CancelPreview()
		return tea.Quit
	}
	return nil
}

// submit starts a new query; surrounding whitespace is dropped, empty queries are sent as is
func (m *Model) submit(q string) tea.Cmd {
	cmd := m.cmdExecutor.ExecuteSearch(strings.TrimSpace(q))
	m.sync()
	m.state.ResetGrid()
	return cmd
}

func (m *Model) loadMore() tea.Cmd {
	cmd := m.cmdExecutor.ExecuteLoadMore()
	m.sync()
	return cmd
}

func (m *Model) openImage(url string) tea.Cmd {
	m.controller.SelectImage(url)
	m.sync()
	return m.requestPreview()
}

func (m *Model) closeModal() {
	m.cmdExecutor.CancelPreview()
	m.controller.Dismiss()
	m.sync()
	m.state.ClearPreview()
}

// requestPreview renders the open image for the current window size unless that render is already shown or loading
func (m *Model) requestPreview() tea.Cmd {
	url := m.state.Session.Selected
	if url == "" || m.state.Width == 0 {
		return nil
	}
	cols, rows := views.PreviewBox(m.state.Width, m.state.Height)
	if p := m.state.Preview; p.Key == preview.Key(url, cols, rows) && (p.Loading || p.Content != "") {
		return nil
	}

	req, cmd := m.cmdExecutor.ExecutePreview(url, cols, rows)
	m.state.Preview = state.PreviewState{Seq: req.Seq, URL: url, Key: req.Key, Loading: cmd != nil}
	return cmd
}

func (m *Model) showActivity() tea.Cmd {
	content := m.activity.Render()
	if m.pager.program == nil {
		return func() tea.Msg {
			return activityPagerMsg{content: content, err: errNoProgram}
		}
	}
	program := m.pager.program
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		program.Send(resumeRenderingMsg{})
		return activityPagerMsg{content: content, err: err}
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	if m.state.Session.ModalOpen() {
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		// Backdrop click dismisses, clicks on the image do nothing
		if !m.renderer.ModalRect(m.viewState()).Contains(msg.X, msg.Y) {
			m.closeModal()
			m.inputHandler.ChangeMode(inputtypes.ModeNormal, &input.ModelContext{State: m.state})
		}
		return nil
	}

	if m.inputHandler.CurrentMode() != inputtypes.ModeNormal {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.navigate("up")
	case tea.MouseButtonWheelDown:
		m.navigate("down")
	case tea.MouseButtonLeft:
		if m.state.ShowHelp || m.state.ShowLog {
			m.state.ShowHelp = false
			m.state.ShowLog = false
			return nil
		}
		layout := views.NewLayout(m.viewState())
		if index, ok := layout.TileAt(msg.X, msg.Y); ok {
			m.state.Cursor = index
			img, _ := m.state.CurrentImage()
			cmd := m.openImage(img.FullImageURL)
			m.inputHandler.ChangeMode(inputtypes.ModeModal, &input.ModelContext{State: m.state})
			return cmd
		}
		if layout.OnLoadMore(msg.X, msg.Y) {
			return m.loadMore()
		}
	}
	return nil
}

// navigate moves the cursor through the grid
func (m *Model) navigate(direction string) {
	if len(m.state.Results()) == 0 {
		return
	}
	m.state.Cursor = m.navigator().Move(m.state.Cursor, len(m.state.Results()), direction)
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls the grid so the cursor row is on screen
func (m *Model) ensureCursorVisible() {
	if m.state.Width == 0 {
		return
	}
	m.state.RowOffset = m.navigator().EnsureVisible(m.state.Cursor, m.state.RowOffset, len(m.state.Results()))
}

func (m *Model) navigator() logic.Navigator {
	return logic.NewNavigator(views.GridColumns(m.state.Width, m.config.UI.Columns), views.GridRows(m.state.Height))
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commands.PageFetchedMsg:
		if m.controller.Settle(msg.Result) && msg.Result.Err == nil && msg.Result.Request.Page <= 1 {
			m.state.ResetGrid()
		}
		m.sync()
		return m, nil

	case commands.PreviewLoadedMsg:
		p := &m.state.Preview
		// A closed and reopened modal has the same url and key; only the request number tells them apart
		if msg.Seq != p.Seq || msg.URL != m.state.Session.Selected || msg.Key != p.Key {
			m.logger.Debug("stale preview dropped", zap.String("url", msg.URL), zap.Uint64("seq", msg.Seq))
			return m, nil
		}
		p.Loading = false
		p.Content = msg.Content
		p.Err = msg.Err
		if msg.Err != nil {
			m.logger.Warn("preview failed", zap.String("url", msg.URL), zap.Error(msg.Err))
		}
		return m, nil

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.state.InPagerMode {
			return m, nil
		}
		return m, tick()

	case activityPagerMsg:
		if msg.err != nil {
			// Pager unavailable, fall back to the popup
			m.logger.Debug("activity pager failed, using popup", zap.Error(msg.err))
			m.state.LogContent = m.fitLog(msg.content)
			m.state.ShowLog = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.state.InPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPagerMode = false
		return m, tick()

	default:
		return m, m.inputHandler.Update(msg)
	}
}

// fitLog trims popup content to the window height
func (m *Model) fitLog(content string) string {
	limit := m.state.Height - 8
	if limit < 5 {
		limit = 5
	}
	lines := strings.Split(content, "\n")
	if len(lines) > limit {
		lines = append(lines[:limit-1], "...")
	}
	return strings.Join(lines, "\n")
}

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
