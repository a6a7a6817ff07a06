package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"memedir/internal/browser"
	"memedir/internal/config"
	"memedir/internal/tui/theme"
)

// tickInterval is how often the controller's dirty check runs
const tickInterval = 100 * time.Millisecond

// tickMsg drives the per-frame controller tick
type tickMsg time.Time

// workerResponseMsg delivers one background worker response
type workerResponseMsg struct {
	resp browser.Response
}

// Model is the bubbletea model for the folder browser. All state
// mutation happens through the embedded controller; the model only
// holds presentation concerns.
type Model struct {
	ctrl   *browser.Controller
	worker *browser.Worker
	cfg    *config.Config

	keyMap      KeyMap
	help        help.Model
	spinner     spinner.Model
	searchInput textinput.Model
	renameInput textinput.Model

	cursor       int
	editorPath   string // last path the rename input was primed with
	showHelp     bool
	searching    bool
	renaming     bool
	windowWidth  int
	windowHeight int
}

// NewModel creates the browser model
func NewModel(ctrl *browser.Controller, worker *browser.Worker, cfg *config.Config) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorBrightYellow))

	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 128
	search.Width = 40

	rename := textinput.New()
	rename.CharLimit = 512
	rename.Width = 70

	h := help.New()
	h.ShowAll = false

	return &Model{
		ctrl:         ctrl,
		worker:       worker,
		cfg:          cfg,
		keyMap:       DefaultKeyMap(),
		help:         h,
		spinner:      s,
		searchInput:  search,
		renameInput:  rename,
		windowWidth:  80,
		windowHeight: 24,
	}
}

// Init implements the bubbletea.Model interface
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForResponse(), m.spinner.Tick)
}

// tick schedules the next controller tick
func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForResponse blocks on the worker's response channel as a
// command so results arrive the moment they are ready, without the
// render loop ever waiting.
func (m *Model) waitForResponse() tea.Cmd {
	return func() tea.Msg {
		return workerResponseMsg{resp: <-m.worker.Responses()}
	}
}

// Update implements the bubbletea.Model interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.ctrl.Tick()
		m.clampCursor()
		m.primeRenameInput()
		return m, m.tick()

	case workerResponseMsg:
		m.ctrl.Apply(msg.resp)
		m.primeRenameInput()
		return m, m.waitForResponse()

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches a key press to the active text input or to the
// current mode's handler.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.renaming {
		return m.handleRenameKey(msg)
	}

	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.ctrl.State().Mode {
	case browser.ModeBrowser:
		return m.handleBrowserKey(msg)
	case browser.ModeEditor:
		return m.handleEditorKey(msg)
	case browser.ModeRenameConfirm, browser.ModeDeletePrompt, browser.ModeUploadPrompt:
		return m.handlePromptKey(msg)
	case browser.ModeShowError:
		if key.Matches(msg, m.keyMap.Open) || key.Matches(msg, m.keyMap.Back) {
			m.ctrl.Acknowledge()
			m.primeRenameInput()
		}
		return m, nil
	case browser.ModeConfiguration:
		if key.Matches(msg, m.keyMap.Back) {
			m.ctrl.Back()
		}
		return m, nil
	}
	// ModeUploading swallows input; there is no aborting an upload
	return m, nil
}

func (m *Model) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keyMap.Down):
		if m.cursor < len(m.ctrl.CurrentPage())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keyMap.PrevPage):
		m.ctrl.PrevPage()
		m.cursor = 0
	case key.Matches(msg, m.keyMap.NextPage):
		m.ctrl.NextPage()
		m.cursor = 0
	case key.Matches(msg, m.keyMap.Home):
		m.ctrl.FirstPage()
		m.cursor = 0
	case key.Matches(msg, m.keyMap.Open):
		page := m.ctrl.CurrentPage()
		if m.cursor < len(page) {
			m.ctrl.Select(page[m.cursor])
			m.primeRenameInput()
		}
	case key.Matches(msg, m.keyMap.Search):
		m.searching = true
		m.searchInput.SetValue(m.ctrl.Search())
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keyMap.Back):
		m.ctrl.Back() // clears the search filter
		m.searchInput.SetValue("")
	case key.Matches(msg, m.keyMap.Config):
		m.ctrl.OpenConfiguration()
	case key.Matches(msg, m.keyMap.Refresh):
		m.ctrl.Refresh()
	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		m.ctrl.Back()
	case key.Matches(msg, m.keyMap.Rename):
		m.renaming = true
		m.renameInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keyMap.Delete):
		m.ctrl.RequestDelete()
	case key.Matches(msg, m.keyMap.Upload):
		m.ctrl.RequestUpload()
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Confirm):
		switch m.ctrl.State().Mode {
		case browser.ModeRenameConfirm:
			m.ctrl.ConfirmRename()
		case browser.ModeDeletePrompt:
			m.ctrl.ConfirmDelete()
		case browser.ModeUploadPrompt:
			m.ctrl.ConfirmUpload()
		}
		m.primeRenameInput()
	case key.Matches(msg, m.keyMap.Cancel), key.Matches(msg, m.keyMap.Back):
		m.ctrl.Back()
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		m.ctrl.SetSearch(m.searchInput.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.ctrl.SetSearch(m.searchInput.Value())
	return m, cmd
}

func (m *Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.renaming = false
		m.renameInput.Blur()
		m.renameInput.SetValue(m.ctrl.State().Path)
		return m, nil
	case tea.KeyEnter:
		m.renaming = false
		m.renameInput.Blur()
		m.ctrl.RequestRename(m.renameInput.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

// primeRenameInput keeps the rename field in sync with the file the
// editor currently shows.
func (m *Model) primeRenameInput() {
	state := m.ctrl.State()
	if state.Mode != browser.ModeEditor {
		return
	}
	if state.Path != m.editorPath {
		m.editorPath = state.Path
		m.renameInput.SetValue(state.Path)
	}
}

// clampCursor keeps the selection inside the current page after a
// rescan shrinks it.
func (m *Model) clampCursor() {
	n := len(m.ctrl.CurrentPage())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}
