package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// footerHeight is the number of rows reserved below the playfield.
const footerHeight = 1

// volumeStep is the change applied by one volume key press.
const volumeStep = 0.1

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a game session in the terminal.
type Options struct {
	Config  config.FlappyConfig
	Runtime core.RuntimeConfig

	// Env carries the logger, assets, audio and observer handed to the game.
	// When Env.Scores is nil and Store is set, the durable high score comes
	// from Store.
	Env   core.Env
	Store *storage.Store
	Prefs *storage.PrefsStore

	// AllowBack lets B leave a paused or finished round (menu sessions).
	AllowBack bool
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game    registry.Game
	env     core.Env
	store   *storage.Store
	prefs   *storage.PrefsStore
	log     *log.Logger
	clock   *core.Clock
	screen  *core.Screen
	surface *CellSurface
	runtime core.RuntimeConfig
	keys    GameKeyMap
	help    help.Model
	input   core.InputFrame
	state   core.GameState

	muted      bool
	volume     float64
	scoreSaved bool // Whether the run has been recorded for the current game over
	allowBack  bool
	backToMenu bool
	quitting   bool
}

// NewModel creates a model for game and attaches the session collaborators.
func NewModel(game registry.Game, opts Options) Model {
	env := opts.Env
	if env.Log == nil {
		env.Log = log.New(io.Discard)
	}
	if env.Audio == nil {
		env.Audio = core.NopAudio{}
	}
	logger := env.Log.With("game", game.ID())
	if env.Scores == nil && opts.Store != nil {
		env.Scores = opts.Store.HighScores(game.ID(), logger)
	}
	game.Attach(env)

	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = opts.Config.Loop.TargetFPS
	}

	prefs := storage.DefaultPrefs()
	if opts.Prefs != nil {
		prefs = opts.Prefs.Get()
	}

	screen := core.NewScreen(rt.ScreenW, max(rt.ScreenH-footerHeight, 1))
	h := help.New()
	h.Width = rt.ScreenW

	return Model{
		game:      game,
		env:       env,
		store:     opts.Store,
		prefs:     opts.Prefs,
		log:       logger,
		clock:     core.NewClock(),
		screen:    screen,
		surface:   NewCellSurface(screen, opts.Config.Terminal.CellWidth, opts.Config.Terminal.CellHeight),
		runtime:   rt,
		keys:      DefaultGameKeyMap(),
		help:      h,
		input:     core.NewInputFrame(),
		muted:     prefs.Muted,
		volume:    prefs.Volume,
		allowBack: opts.AllowBack,
	}
}

// Init sizes the world to the terminal, resets the game and starts ticking.
func (m Model) Init() tea.Cmd {
	m.env.Audio.SetVolume(m.volume)
	m.env.Audio.SetMuted(m.muted)
	m.game.Resize(m.surface.Size())
	m.game.Reset(m.runtime)
	m.clock.Reset()
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input. Game actions are queued for the next
// tick; audio and session keys are handled here.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.allowBack && (m.state.GameOver || m.state.Paused) {
			m.env.Audio.StopAll()
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.env.Audio.StopAll()
		m.quitting = true
		return m, tea.Quit
	case core.ActionMute:
		m.muted = !m.muted
		m.env.Audio.SetMuted(m.muted)
		m.savePrefs()
	case core.ActionVolumeUp, core.ActionVolumeDown:
		step := volumeStep
		if action == core.ActionVolumeDown {
			step = -step
		}
		m.volume = core.ClampF(m.volume+step, 0, 1)
		m.env.Audio.SetVolume(m.volume)
		m.savePrefs()
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

// handleResize keeps the round going and gives the game the new world size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 1))
	m.help.Width = msg.Width
	m.game.Resize(m.surface.Size())
	return m, nil
}

// handleTick advances the game by the wall-clock time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.clock.Tick(now), m.input)
	m.input.Clear()
	m.state = result.State
	m.logEvents(result.Events)

	if m.state.GameOver && !m.scoreSaved {
		m.recordRun()
		m.scoreSaved = true
	}
	if !m.state.GameOver {
		m.scoreSaved = false
	}

	return m, tickCmd(m.runtime.TickRate)
}

// recordRun adds the finished run to the history.
func (m Model) recordRun() {
	if m.store == nil || m.state.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.state.Score); err != nil {
		m.log.Error("failed to save score", "score", m.state.Score, "error", err)
	}
}

func (m Model) logEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventNewHighScore:
			m.log.Info("new high score", "score", e.Value)
		case core.EventTransitionRejected:
			m.log.Warn("transition rejected", "from", e.From, "to", e.To, "reason", e.Detail)
		case core.EventCollision:
			m.log.Debug("collision", "kind", e.Detail, "pipe", e.Value)
		default:
			m.log.Debug(e.Kind.String(), "from", e.From, "to", e.To, "value", e.Value)
		}
	}
}

func (m Model) savePrefs() {
	if m.prefs == nil {
		return
	}
	m.prefs.SetMuted(m.muted)
	m.prefs.SetVolume(m.volume)
	if err := m.prefs.Save(); err != nil {
		m.log.Warn("failed to save preferences", "error", err)
	}
}

// saveScreenshot saves the current screen as plain text.
func (m Model) saveScreenshot() {
	m.game.Render(m.surface)

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot save screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current frame and the key help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.surface)

	status := fmt.Sprintf("vol %d%%", int(m.volume*100+0.5))
	if m.muted {
		status = "muted"
	}
	footer := footerStyle.Render(status + "  " + m.help.View(m.keys))
	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the last game state reported by a tick.
func (m Model) State() core.GameState {
	return m.state
}

// BackToMenu reports whether the player asked to leave the round.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a single game. goBack reports that
// the player left with B rather than quitting.
func Run(game registry.Game, opts Options) (goBack bool, err error) {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
	)
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
