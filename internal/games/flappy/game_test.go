package flappy

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// playUntilGameOver steps without input and returns every event seen.
func playUntilGameOver(t *testing.T, g *Game) []core.Event {
	t.Helper()
	var events []core.Event
	for i := 0; i < 600; i++ {
		res := g.Step(tick(), input())
		events = append(events, res.Events...)
		if res.State.GameOver {
			return events
		}
	}
	t.Fatal("bird never hit anything")
	return nil
}

func hasEvent(events []core.Event, kind core.EventKind, detail string) bool {
	for _, e := range events {
		if e.Kind == kind && (detail == "" || e.Detail == detail) {
			return true
		}
	}
	return false
}

func TestGameStartsAtStartScreen(t *testing.T) {
	observed := 0
	g := New()
	g.Attach(core.Env{Log: silentLogger(), Observer: func(from, to string, err error) { observed++ }})
	g.Reset(core.RuntimeConfig{Seed: 1})

	if phase := g.State().Phase; phase != "start" {
		t.Errorf("phase = %q, expected start", phase)
	}
	if observed != 1 {
		t.Errorf("observer called %d times, expected 1", observed)
	}
	if math.Abs(g.bird.X-150) > 1e-9 || g.bird.Y != 320 {
		t.Errorf("bird spawned at (%f, %f), expected (150, 320)", g.bird.X, g.bird.Y)
	}
}

func TestGameJumpStartsRound(t *testing.T) {
	g, audio, _ := newTestGame(1)

	res := g.Step(tick(), input(core.ActionJump))
	if res.State.Phase != "playing" {
		t.Fatalf("phase = %q, expected playing", res.State.Phase)
	}
	if !hasEvent(res.Events, core.EventStateChanged, "") {
		t.Error("starting a round should emit a state change")
	}
	if audio.count("loop:bgMusic") != 1 || audio.count("play:flap") != 1 {
		t.Errorf("audio calls = %v, expected music loop and a flap", audio.calls)
	}
	if g.bird.Velocity >= 0 {
		t.Errorf("bird should be rising, velocity = %f", g.bird.Velocity)
	}
}

func TestGameIgnoresPauseOutsidePlay(t *testing.T) {
	g, _, _ := newTestGame(1)

	g.Step(tick(), input(core.ActionPause))
	if g.State().Phase != "start" {
		t.Errorf("pause on start screen moved to %q", g.State().Phase)
	}

	g.Step(tick(), input(core.ActionRestart))
	if g.State().Phase != "start" {
		t.Errorf("restart on start screen moved to %q", g.State().Phase)
	}
}

func TestGamePause(t *testing.T) {
	g, audio, _ := newTestGame(1)
	g.Step(tick(), input(core.ActionJump))

	res := g.Step(tick(), input(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}
	if audio.count("stop") != 1 {
		t.Errorf("pausing should stop the music, calls = %v", audio.calls)
	}

	y := g.bird.Y
	for i := 0; i < 10; i++ {
		g.Step(tick(), input(core.ActionJump))
	}
	if g.bird.Y != y {
		t.Errorf("bird moved while paused: %f -> %f", y, g.bird.Y)
	}

	res = g.Step(tick(), input(core.ActionPause))
	if res.State.Phase != "playing" {
		t.Fatalf("phase = %q after resume, expected playing", res.State.Phase)
	}
	if g.bird.Y == y {
		t.Error("bird should move again after resume")
	}
	if audio.count("loop:bgMusic") != 2 {
		t.Errorf("resume should restart the music, calls = %v", audio.calls)
	}
}

func TestGameGroundCollisionEndsRound(t *testing.T) {
	g, audio, store := newTestGame(1)
	g.Step(tick(), input(core.ActionJump))
	g.score.Add(7)

	events := playUntilGameOver(t, g)

	if !hasEvent(events, core.EventCollision, "ground") {
		t.Errorf("events = %+v, expected a ground collision", events)
	}
	if !hasEvent(events, core.EventNewHighScore, "") {
		t.Error("7 over an empty store should be a new high score")
	}
	if store.score != 7 || store.writes != 1 {
		t.Errorf("store = %+v, expected one write of 7", *store)
	}
	if audio.count("play:hit") != 1 || audio.count("stop") != 1 {
		t.Errorf("audio calls = %v, expected one hit and one stop", audio.calls)
	}
	if !g.effect.Active() {
		t.Error("collision marker should be showing")
	}

	// Game over is terminal until restarted.
	score := g.State().Score
	for i := 0; i < 30; i++ {
		g.Step(tick(), input())
	}
	if !g.State().GameOver || g.State().Score != score {
		t.Error("game over state should hold without input")
	}
	if store.writes != 1 {
		t.Errorf("high score written %d times, expected once", store.writes)
	}
}

func TestGamePipeCollision(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Step(tick(), input(core.ActionJump))

	// A pipe whose gap is far above the bird, right on top of it.
	g.pipes.pipes = append(g.pipes.pipes, Pipe{Number: 1, X: 130, GapY: 80, GapHeight: 160, Width: 60})

	res := g.Step(tick(), input())
	if !res.State.GameOver {
		t.Fatal("game should be over when the bird hits a pipe")
	}
	if !hasEvent(res.Events, core.EventCollision, "pipe_bottom") {
		t.Errorf("events = %+v, expected a pipe_bottom collision", res.Events)
	}
}

func TestGameCeilingDoesNotEndRound(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Step(tick(), input(core.ActionJump))

	g.bird.Y = 2
	g.bird.Velocity = -400
	res := g.Step(tick(), input())

	if res.State.GameOver {
		t.Fatal("hitting the ceiling must not end the round")
	}
	if g.bird.Bounds().Top != 0 || g.bird.Velocity != 0 {
		t.Errorf("bird top=%f velocity=%f, expected 0 and 0", g.bird.Bounds().Top, g.bird.Velocity)
	}
}

func TestGameScoring(t *testing.T) {
	g, audio, _ := newTestGame(1)
	g.Step(tick(), input(core.ActionJump))

	// Gap around the bird, trailing edge just short of the bird's left edge.
	g.pipes.pipes = append(g.pipes.pipes, Pipe{Number: 1, X: 72, GapY: 200, GapHeight: 200, Width: 60})
	g.bird.Y, g.bird.Velocity = 300, 0

	res := g.Step(tick(), input())
	if res.State.Score != 1 {
		t.Fatalf("score = %d, expected 1", res.State.Score)
	}
	if !hasEvent(res.Events, core.EventScored, "") || audio.count("play:score") != 1 {
		t.Errorf("scoring should emit an event and a sound, events=%+v audio=%v", res.Events, audio.calls)
	}

	g.bird.Y, g.bird.Velocity = 300, 0
	res = g.Step(tick(), input())
	if res.State.Score != 1 {
		t.Errorf("a passed pipe must not score twice, score = %d", res.State.Score)
	}
}

func TestGameRestart(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Step(tick(), input(core.ActionJump))
	g.score.Add(3)
	playUntilGameOver(t, g)

	res := g.Step(tick(), input(core.ActionRestart))
	if res.State.Phase != "playing" {
		t.Fatalf("phase = %q after restart, expected playing", res.State.Phase)
	}
	if res.State.Score != 0 || res.State.HighScore != 3 {
		t.Errorf("score=%d high=%d after restart, expected 0 and 3", res.State.Score, res.State.HighScore)
	}
	if len(g.pipes.Pipes()) != 0 || g.effect.Active() {
		t.Error("restart should clear pipes and the collision marker")
	}
}

func TestGameClampsDelta(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Step(tick(), input(core.ActionJump))

	g.bird.Y, g.bird.Velocity = 300, 0
	g.Step(core.Tick{Delta: 10}, input())
	// 1200 * 0.05
	if math.Abs(g.bird.Velocity-60) > 1e-9 {
		t.Errorf("velocity = %f after a 10s hitch, expected 60", g.bird.Velocity)
	}

	g.bird.Y, g.bird.Velocity = 300, 0
	g.Step(core.Tick{Delta: -1}, input())
	if g.bird.Velocity != 0 || g.bird.Y != 300 {
		t.Errorf("negative delta moved the bird: y=%f v=%f", g.bird.Y, g.bird.Velocity)
	}
}

func TestGameWaitsForAssets(t *testing.T) {
	assets := &stubAssets{}
	g := New()
	g.Attach(core.Env{Log: silentLogger(), Assets: assets})
	g.Reset(core.RuntimeConfig{Seed: 1})

	g.Step(tick(), input(core.ActionJump))
	if g.State().Phase != "loading" {
		t.Fatalf("phase = %q, expected loading", g.State().Phase)
	}

	assets.ready = true
	g.Step(tick(), input())
	if g.State().Phase != "start" {
		t.Errorf("phase = %q once ready, expected start", g.State().Phase)
	}
}

func TestGameShowsAssetFailure(t *testing.T) {
	g := New()
	g.Attach(core.Env{Log: silentLogger(), Assets: &stubAssets{err: core.ErrAssetsFailed}})
	g.Reset(core.RuntimeConfig{Seed: 1})
	g.Step(tick(), input())

	if g.State().Phase != "loading" {
		t.Fatalf("phase = %q, expected loading", g.State().Phase)
	}
	s := &recordingSurface{w: 450, h: 640}
	g.Render(s)
	if s.index("text:Failed to load assets") < 0 {
		t.Errorf("ops = %v, expected the failure message", s.ops)
	}
}

func TestGameRenderOrder(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Step(tick(), input(core.ActionJump))
	g.pipes.pipes = append(g.pipes.pipes, Pipe{Number: 3, X: 300, GapY: 200, GapHeight: 160, Width: 60, Special: true})

	s := &recordingSurface{w: 450, h: 640}
	g.Render(s)

	order := []string{"clear", "fill:sky", "fill:pipe", "fill:banner", "fill:grass", "circle:yellow", "text:0"}
	last := -1
	for _, op := range order {
		i := s.index(op)
		if i < 0 {
			t.Fatalf("missing %q in %v", op, s.ops)
		}
		if i <= last {
			t.Errorf("%q drawn out of order in %v", op, s.ops)
		}
		last = i
	}
}

func TestGameRenderOverlays(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Step(tick(), input(core.ActionJump))
	g.Step(tick(), input(core.ActionPause, core.ActionDebug))

	s := &recordingSurface{w: 450, h: 640}
	g.Render(s)
	if s.index("text:PAUSED") < s.index("circle:yellow") {
		t.Errorf("pause overlay should be drawn over the bird: %v", s.ops)
	}
	if s.index("text:FPS: 60.00") < 0 {
		t.Errorf("debug panel missing from %v", s.ops)
	}

	g.Step(tick(), input(core.ActionPause, core.ActionDebug))
	playUntilGameOver(t, g)
	s = &recordingSurface{w: 450, h: 640}
	g.Render(s)
	if s.index("text:GAME OVER") < 0 || s.index("circle:red") < 0 {
		t.Errorf("game over screen should show the panel and the collision marker: %v", s.ops)
	}
}

func TestGameResizeKeepsRound(t *testing.T) {
	g, _, _ := newTestGame(1)
	g.Step(tick(), input(core.ActionJump))
	g.score.Add(3)
	g.pipes.pipes = append(g.pipes.pipes, Pipe{Number: 1, X: 300, GapY: 200, GapHeight: 160, Width: 60})

	g.Resize(450, 800)

	if len(g.pipes.Pipes()) != 1 || g.State().Score != 3 {
		t.Errorf("resize lost state: pipes=%d score=%d", len(g.pipes.Pipes()), g.State().Score)
	}
	if _, hi := g.pipes.GapRange(); hi != 510 {
		t.Errorf("max gap = %f, expected 510", hi)
	}

	g.bird.X = 440
	g.Resize(200, 800)
	if g.bird.Bounds().Right > 200 {
		t.Errorf("bird right edge %f outside the narrower world", g.bird.Bounds().Right)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() []core.StepResult {
		g, _, _ := newTestGame(12345)
		var results []core.StepResult
		for i := 0; i < 900; i++ {
			in := input()
			if i%20 == 0 {
				in.Set(core.ActionJump)
			}
			results = append(results, g.Step(tick(), in))
		}
		return results
	}

	a, b := run(), run()
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("tick %d differs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestPracticeHasNoPipes(t *testing.T) {
	g := NewPractice()
	g.Attach(core.Env{Log: silentLogger()})
	g.Reset(core.RuntimeConfig{Seed: 1})

	for i := 0; i < 300; i++ {
		in := input()
		if i%15 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(tick(), in)
	}
	if len(g.pipes.Pipes()) != 0 {
		t.Errorf("practice spawned %d pipes", len(g.pipes.Pipes()))
	}
	if g.ID() != "practice" {
		t.Errorf("ID() = %q, expected practice", g.ID())
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"flappy", "practice"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}
