package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// keyBinding maps a physical key to an action.
type keyBinding struct {
	key    ebiten.Key
	action core.Action
}

var defaultBindings = []keyBinding{
	{ebiten.KeySpace, core.ActionJump},
	{ebiten.KeyArrowUp, core.ActionJump},
	{ebiten.KeyW, core.ActionJump},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyEscape, core.ActionPause},
	{ebiten.KeyR, core.ActionRestart},
	{ebiten.KeyD, core.ActionDebug},
	{ebiten.KeyM, core.ActionMute},
	{ebiten.KeyEqual, core.ActionVolumeUp},
	{ebiten.KeyNumpadAdd, core.ActionVolumeUp},
	{ebiten.KeyMinus, core.ActionVolumeDown},
	{ebiten.KeyNumpadSubtract, core.ActionVolumeDown},
	{ebiten.KeyQ, core.ActionQuit},
}

// collectInput builds the frame for this tick. justPressed reports keys
// pressed since the previous tick; pointer is true on a click or touch,
// which counts as a jump.
func collectInput(bindings []keyBinding, justPressed func(ebiten.Key) bool, pointer bool) core.InputFrame {
	in := core.NewInputFrame()
	for _, b := range bindings {
		if justPressed(b.key) {
			in.Set(b.action)
		}
	}
	if pointer {
		in.Set(core.ActionJump)
	}
	return in
}

// pointerJustPressed reports a new left click or touch.
func pointerJustPressed() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}
