// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical
// pipes. Everything here is simulated in world units and seconds; the
// platform supplies frame ticks, input actions and a drawing surface.
package flappy

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Sound cue names looked up in the asset provider.
const (
	SoundFlap  = "flap"
	SoundScore = "score"
	SoundHit   = "hit"
	SoundMusic = "bgMusic"
)

var (
	cfgMu   sync.RWMutex
	gameCfg = config.DefaultFlappyConfig()
)

// SetConfig replaces the configuration used by games created afterwards.
func SetConfig(cfg config.FlappyConfig) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	gameCfg = cfg
}

func currentConfig() config.FlappyConfig {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return gameCfg
}

// Game is the orchestrator: it owns the bird, the pipes, the score and the
// state machine and advances them once per tick.
type Game struct {
	id       string
	title    string
	practice bool // Free flight: no pipes are ever spawned

	cfg   config.FlappyConfig
	env   core.Env
	rc    core.RuntimeConfig
	seed  int64
	round int

	worldW float64
	worldH float64

	bird       *Bird
	pipes      *PipeManager
	collisions *CollisionSystem
	effect     *CollisionEffect
	score      *ScoreTracker
	sm         *StateMachine

	debug   bool
	fps     float64
	loadErr error
	lastHit *Collision
	newHigh bool
	events  []core.Event
}

// New creates a new Flappy Bird game instance.
func New() *Game {
	return &Game{
		id:    "flappy",
		title: "Flappy Bird",
		cfg:   currentConfig(),
	}
}

// NewPractice creates a free-flight game with no pipes.
func NewPractice() *Game {
	g := New()
	g.id = "practice"
	g.title = "Free Flight"
	g.practice = true
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Attach injects the collaborators. Missing ones are replaced with silent
// defaults. It must be called before Reset to take effect for the round.
func (g *Game) Attach(env core.Env) {
	g.env = env.WithDefaults()
	g.score = NewScoreTracker(g.env.Scores, g.cfg.Effects)
}

// Reset initializes or restarts the game. The state machine starts over in
// Loading and moves to Start as soon as the assets are ready.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if g.score == nil {
		g.Attach(core.Env{})
	}
	if g.sm != nil && g.sm.Is(StatePlaying) {
		g.env.Audio.StopAll()
	}

	g.rc = rc
	g.seed = rc.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	g.round = 0
	g.debug = rc.Debug
	g.loadErr = nil
	g.events = nil

	if g.worldW <= 0 || g.worldH <= 0 {
		g.worldW, g.worldH = g.cfg.World.Width, g.cfg.World.Height
	}

	g.bird = NewBird(g.cfg, g.spawnX(), g.spawnY())
	if g.practice {
		g.pipes = Unavailable()
	} else {
		g.pipes = NewPipeManager(g.cfg, g.seed, g.worldW, g.worldH)
	}
	g.collisions = NewCollisionSystem(g.cfg.World.GroundHeight)
	g.effect = NewCollisionEffect(g.cfg.Effects.CollisionDuration)
	g.score.Reset()

	g.sm = NewStateMachine(g.env.Log.With("game", g.id), g.env.Observer)
	g.sm.OnEnter(StateStart, g.enterStart)
	g.sm.OnEnter(StatePlaying, g.enterPlaying)
	g.sm.OnExit(StatePlaying, g.exitPlaying)
	g.sm.OnEnter(StateGameOver, g.enterGameOver)

	g.checkAssets()
}

// Resize changes the world size. Live pipes and the score are kept; the gap
// range is recomputed and the bird is kept inside the new bounds.
func (g *Game) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	g.worldW, g.worldH = w, h
	if g.bird == nil {
		return
	}
	g.pipes.Resize(w, h)
	if g.sm.Is(StateStart) {
		g.bird.Reset(g.spawnX(), g.spawnY())
		return
	}
	g.bird.ClampTo(w, g.collisions.GroundY(h))
}

// Step advances the game by one tick. dt is clamped to the configured
// maximum so a stalled frame cannot tunnel the bird through a pipe.
func (g *Game) Step(tick core.Tick, in core.InputFrame) core.StepResult {
	g.events = nil
	dt := core.ClampF(tick.Delta, 0, g.cfg.Loop.MaxDelta)
	g.fps = tick.FPS

	if g.sm.Is(StateLoading) {
		g.checkAssets()
	}

	g.handleInput(in)

	if g.sm.Is(StatePlaying) {
		g.update(dt)
	}
	if !g.sm.Is(StatePaused) {
		g.effect.Update(dt)
		g.score.Update(dt)
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// update runs one simulation step: bird, pipes, collisions, then scoring.
func (g *Game) update(dt float64) {
	g.bird.Update(dt)
	g.pipes.Update(dt)

	if hit := g.collisions.Check(g.bird, g.pipes.Pipes(), g.worldH); hit != nil {
		g.lastHit = hit
		g.effect.Start(hit.Point)
		g.events = append(g.events, core.Event{
			Kind:   core.EventCollision,
			Detail: hit.Kind.String(),
			Value:  hit.Pipe,
		})
		g.request(StateGameOver)
		return
	}

	n := g.pipes.CheckScoring(g.bird.Bounds())
	if g.score.Add(n) {
		g.env.Audio.Play(SoundScore)
		g.events = append(g.events, core.Event{Kind: core.EventScored, Value: n})
	}
}

func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}
	if in.Has(core.ActionPause) {
		g.togglePause()
	}

	if in.Has(core.ActionJump) {
		switch g.sm.Current() {
		case StateStart:
			g.request(StatePlaying)
			g.flap()
		case StatePlaying:
			g.flap()
		case StateGameOver:
			g.restart()
		}
	}
	if in.Has(core.ActionRestart) && g.sm.Is(StateGameOver) {
		g.restart()
	}
}

func (g *Game) flap() {
	if g.bird.Jump() {
		g.env.Audio.Play(SoundFlap)
	}
}

// togglePause pauses a running round or resumes a paused one. Anywhere
// else the request is ignored.
func (g *Game) togglePause() {
	switch g.sm.Current() {
	case StatePlaying:
		g.request(StatePaused)
	case StatePaused:
		if err := g.sm.ReturnToPrevious(); err != nil {
			g.env.Log.Warn("resume failed", "error", err)
		}
		g.events = append(g.events, g.sm.Drain()...)
	default:
		g.env.Log.Debug("pause ignored", "state", g.sm.Current())
	}
}

// restart goes from GameOver back to Start, which resets the round, and
// straight on to Playing.
func (g *Game) restart() {
	g.request(StateStart)
	g.request(StatePlaying)
}

func (g *Game) request(s State) {
	if err := g.sm.Request(s); err != nil {
		g.env.Log.Warn("state request failed", "to", s, "error", err)
	}
	g.events = append(g.events, g.sm.Drain()...)
}

// checkAssets leaves Loading once the provider is ready. A failed load
// keeps the game in Loading with the error shown on screen.
func (g *Game) checkAssets() {
	ready, err := g.env.Assets.Ready()
	if err != nil {
		if g.loadErr == nil {
			g.env.Log.Error("asset loading failed", "error", err)
		}
		g.loadErr = err
		return
	}
	if ready {
		g.request(StateStart)
	}
}

func (g *Game) enterStart() error {
	g.round++
	g.bird.Reset(g.spawnX(), g.spawnY())
	g.pipes.Reset(g.seed + int64(g.round))
	g.score.Reset()
	g.effect.Reset()
	g.lastHit = nil
	g.newHigh = false
	return nil
}

func (g *Game) enterPlaying() error {
	g.env.Audio.PlayLoop(SoundMusic)
	return nil
}

func (g *Game) exitPlaying() error {
	g.env.Audio.StopAll()
	return nil
}

func (g *Game) enterGameOver() error {
	g.newHigh = g.score.Finalize()
	if g.newHigh {
		g.events = append(g.events, core.Event{Kind: core.EventNewHighScore, Value: g.score.High()})
	}
	g.env.Audio.Play(SoundHit)
	g.env.Log.Info("game over", "score", g.score.Current(), "high", g.score.High())
	return nil
}

func (g *Game) spawnX() float64 {
	return g.worldW * g.cfg.Bird.SpawnXRatio
}

func (g *Game) spawnY() float64 {
	return g.worldH * g.cfg.Bird.SpawnYRatio
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sm == nil {
		return core.GameState{Phase: StateLoading.String()}
	}
	return core.GameState{
		Phase:     g.sm.Current().String(),
		Score:     g.score.Current(),
		HighScore: g.score.High(),
		GameOver:  g.sm.Is(StateGameOver),
		Paused:    g.sm.Is(StatePaused),
	}
}

// Register the games with the registry
func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
	registry.Register("practice", func() registry.Game {
		return NewPractice()
	})
}
