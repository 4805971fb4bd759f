package gui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const volumeStep = 0.1

// Options configures the window and the collaborators of a game.
type Options struct {
	Config  config.FlappyConfig
	Runtime core.RuntimeConfig
	Env     core.Env
	Store   *storage.Store
	Prefs   *storage.PrefsStore

	// Scale multiplies the window size; the world keeps its logical size.
	Scale float64
}

// App runs one game inside an Ebitengine window. It implements ebiten.Game.
type App struct {
	game    registry.Game
	env     core.Env
	store   *storage.Store
	prefs   *storage.PrefsStore
	log     *log.Logger
	clock   *core.Clock
	surface *Surface
	width   float64
	height  float64

	state    core.GameState
	muted    bool
	volume   float64
	recorded bool
}

// NewApp attaches the collaborators to game and prepares the first round.
func NewApp(game registry.Game, opts Options) (*App, error) {
	env := opts.Env
	if env.Log == nil {
		env.Log = log.New(io.Discard)
	}
	logger := env.Log.With("game", game.ID())
	if env.Scores == nil && opts.Store != nil {
		env.Scores = opts.Store.HighScores(game.ID(), logger)
	}
	env = env.WithDefaults()
	game.Attach(env)

	w, h := opts.Config.World.Width, opts.Config.World.Height
	surface, err := NewSurface(w, h)
	if err != nil {
		return nil, fmt.Errorf("gui: cannot load font: %w", err)
	}

	prefs := storage.DefaultPrefs()
	if opts.Prefs != nil {
		prefs = opts.Prefs.Get()
	}

	a := &App{
		game:    game,
		env:     env,
		store:   opts.Store,
		prefs:   opts.Prefs,
		log:     logger,
		clock:   core.NewClock(),
		surface: surface,
		width:   w,
		height:  h,
		muted:   prefs.Muted,
		volume:  prefs.Volume,
	}

	env.Audio.SetVolume(a.volume)
	env.Audio.SetMuted(a.muted)
	game.Resize(w, h)
	game.Reset(opts.Runtime)
	return a, nil
}

// Update advances the game by the time since the previous call. Returning
// ebiten.Termination closes the window.
func (a *App) Update() error {
	in := collectInput(defaultBindings, inpututil.IsKeyJustPressed, pointerJustPressed())
	if a.handlePlatform(in) {
		a.env.Audio.StopAll()
		return ebiten.Termination
	}

	result := a.game.Step(a.clock.Tick(time.Now()), in)
	a.state = result.State
	for _, e := range result.Events {
		if e.Kind == core.EventNewHighScore {
			a.log.Info("new high score", "score", e.Value)
		}
	}

	if a.state.GameOver && !a.recorded {
		a.recordRun()
		a.recorded = true
	}
	if !a.state.GameOver {
		a.recorded = false
	}
	return nil
}

// handlePlatform applies the actions the game does not see and reports
// whether the player asked to quit.
func (a *App) handlePlatform(in core.InputFrame) bool {
	if in.Has(core.ActionQuit) {
		return true
	}
	changed := false
	if in.Has(core.ActionMute) {
		a.muted = !a.muted
		a.env.Audio.SetMuted(a.muted)
		changed = true
	}
	if in.Has(core.ActionVolumeUp) {
		a.volume = core.ClampF(a.volume+volumeStep, 0, 1)
		changed = true
	}
	if in.Has(core.ActionVolumeDown) {
		a.volume = core.ClampF(a.volume-volumeStep, 0, 1)
		changed = true
	}
	if changed {
		a.env.Audio.SetVolume(a.volume)
		a.savePrefs()
	}
	return false
}

func (a *App) recordRun() {
	if a.store == nil || a.state.Score <= 0 {
		return
	}
	if _, err := a.store.SaveScore(a.game.ID(), a.state.Score); err != nil {
		a.log.Error("failed to save score", "score", a.state.Score, "error", err)
	}
}

func (a *App) savePrefs() {
	if a.prefs == nil {
		return
	}
	a.prefs.SetMuted(a.muted)
	a.prefs.SetVolume(a.volume)
	if err := a.prefs.Save(); err != nil {
		a.log.Warn("failed to save preferences", "error", err)
	}
}

// Draw renders the current frame and the audio status line.
func (a *App) Draw(screen *ebiten.Image) {
	a.surface.Bind(screen)
	a.game.Render(a.surface)
	ebitenutil.DebugPrintAt(screen, a.statusLine(), 4, int(a.height)-18)
}

func (a *App) statusLine() string {
	if a.muted {
		return "muted"
	}
	return fmt.Sprintf("vol %d%%", int(a.volume*100+0.5))
}

// Layout keeps the logical world size; Ebitengine scales it to the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.width), int(a.height)
}

// State returns the last state reported by the game.
func (a *App) State() core.GameState {
	return a.state
}

// Run opens a window and blocks until it is closed or the player quits.
func Run(game registry.Game, opts Options) error {
	app, err := NewApp(game, opts)
	if err != nil {
		return err
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	tps := opts.Config.Loop.TargetFPS
	if opts.Runtime.TickRate > 0 {
		tps = opts.Runtime.TickRate
	}

	ebiten.SetWindowSize(int(app.width*scale), int(app.height*scale))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	return ebiten.RunGame(app)
}
