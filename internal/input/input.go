package input

import (
	"sync"

	"voxelstream/internal/observer"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer action, not a physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionSprint
	ActionToggleWireframe
	ActionToggleProfiling
	ActionReleaseCursor
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

// InputManager maps GLFW key events to actions and tracks per-frame edges.
type InputManager struct {
	mu sync.RWMutex

	// One key can drive several actions
	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
}

// NewInputManager creates a manager with the default fly-camera bindings.
func NewInputManager() *InputManager {
	im := &InputManager{keyToActions: make(map[glfw.Key][]Action)}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionMoveUp)
	im.BindKey(glfw.KeyLeftShift, ActionMoveDown)
	im.BindKey(glfw.KeyLeftControl, ActionSprint)
	im.BindKey(glfw.KeyF, ActionToggleWireframe)
	im.BindKey(glfw.KeyF3, ActionToggleProfiling)
	im.BindKey(glfw.KeyTab, ActionReleaseCursor)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	return im
}

// BindKey adds a binding from key to action.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// HandleKeyEvent records a key press or release.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	isPressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range im.keyToActions[key] {
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// SetKeyCallback routes the window's key events into the manager.
func (im *InputManager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
}

// PostUpdate clears the per-frame edge flags. Call once at the end of each frame.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	clear(im.justPressed[:])
}

// IsActive reports whether action is held down.
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentState[action]
}

// JustPressed reports whether action went down during this frame.
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// Movement converts the held movement actions into a camera movement intent.
func (im *InputManager) Movement() observer.Movement {
	axis := func(pos, neg Action) float32 {
		var v float32
		if im.IsActive(pos) {
			v++
		}
		if im.IsActive(neg) {
			v--
		}
		return v
	}
	return observer.Movement{
		Forward: axis(ActionMoveForward, ActionMoveBackward),
		Right:   axis(ActionMoveRight, ActionMoveLeft),
		Up:      axis(ActionMoveUp, ActionMoveDown),
		Sprint:  im.IsActive(ActionSprint),
	}
}
