package manager

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/ceramic/internal/wm"
	"github.com/1broseidon/ceramic/internal/workspace"
)

// dragKind distinguishes the two pointer-drag nested loops spec.md §4.3
// describes (move, resize); both share one dragState rather than two
// separate recursive loops, per spec.md §9's "state enum + one loop"
// design note.
type dragKind int

const (
	dragNone dragKind = iota
	dragMove
	dragResize
)

const resizeMinSize = 20

// dragState is the one piece of mutable state the move/resize nested
// loops need, live only between a button press and its matching
// release. It replaces the "recursive loop" shape with a state machine
// checked from the ordinary root-window motion/release handlers.
type dragState struct {
	kind      dragKind
	window    wm.WindowID
	workspace *workspace.Workspace

	originBounds  wm.Bounds
	pointerOrigin struct{ X, Y int }

	// current tracks the last bounds applied during the drag, written back
	// into the workspace record on release so the post-drag relayout keeps
	// the dragged geometry instead of snapping back.
	current wm.Bounds

	borderWidth uint8
	borderColor wm.Color

	// widthEdge/heightEdge record which edge (if any) the resize drags
	// per axis, decided once at press time from the pointer's position
	// within the window (spec.md §4.3's "first/last third" rule: first
	// third drags the low edge, last third the high edge, middle third
	// leaves that axis's size unchanged).
	widthEdge, heightEdge resizeEdge
}

// resizeEdge picks which edge of one axis a resize drag moves.
type resizeEdge int

const (
	resizeEdgeFixed resizeEdge = iota // middle third: size on this axis is unchanged
	resizeEdgeLow                     // first third: low edge (left/top) moves
	resizeEdgeHigh                    // last third: high edge (right/bottom) moves
)

func resizeEdgeFor(pos, size int) resizeEdge {
	if size <= 0 {
		return resizeEdgeFixed
	}
	third := size / 3
	switch {
	case pos < third:
		return resizeEdgeLow
	case pos >= size-third:
		return resizeEdgeHigh
	default:
		return resizeEdgeFixed
	}
}

// attachWindowHandlers connects the button/motion handlers a managed
// window needs for its entire lifetime: press starts move/resize/focus,
// motion and release only act while that window is the active drag.
func (m *WindowManager) attachWindowHandlers(xu *xgbutil.XUtil, win xproto.Window) {
	xevent.ButtonPressFun(m.handleButtonPress).Connect(xu, win)
	xevent.ButtonReleaseFun(m.handleButtonRelease).Connect(xu, win)
	xevent.MotionNotifyFun(m.handleMotionNotify).Connect(xu, win)
}

func (m *WindowManager) handleButtonPress(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
	window := wm.WindowID(ev.Event)
	mod1 := ev.State&xproto.ModMask1 != 0
	shift := ev.State&xproto.ModMaskShift != 0

	ws, ok := m.workspaceOf(window)
	if !ok {
		return
	}
	ws.FocusOnWindow(window)

	switch {
	case mod1 && shift:
		m.beginDrag(dragResize, window, ws, int(ev.EventX), int(ev.EventY), int(ev.RootX), int(ev.RootY))
	case mod1:
		ws.FloatFocused()
		m.beginDrag(dragMove, window, ws, int(ev.EventX), int(ev.EventY), int(ev.RootX), int(ev.RootY))
	default:
		// Click-to-focus: let the event continue to the client after
		// updating focus, per spec.md §4.3.
		xproto.AllowEvents(xu.Conn(), xproto.AllowReplayPointer, ev.Time)
		m.RelayoutCurrent()
		return
	}
	m.RelayoutCurrent()
}

func (m *WindowManager) beginDrag(kind dragKind, window wm.WindowID, ws *workspace.Workspace, pressX, pressY, rootX, rootY int) {
	record := recordIn(ws, window)
	bounds := record.Bounds
	if bounds.IsZero() {
		bounds = m.display.Geometry(window)
	}

	state := &dragState{
		kind:         kind,
		window:       window,
		workspace:    ws,
		originBounds: bounds,
		current:      bounds,
		borderWidth:  record.BorderWidth,
		borderColor:  record.BorderColor,
	}
	state.pointerOrigin.X = rootX
	state.pointerOrigin.Y = rootY

	if kind == dragResize {
		state.widthEdge = resizeEdgeFor(pressX, bounds.Width)
		state.heightEdge = resizeEdgeFor(pressY, bounds.Height)
	}

	m.drag = state
}

func (m *WindowManager) handleMotionNotify(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
	if m.drag == nil || wm.WindowID(ev.Event) != m.drag.window {
		return
	}
	dx := int(ev.RootX) - m.drag.pointerOrigin.X
	dy := int(ev.RootY) - m.drag.pointerOrigin.Y

	var bounds wm.Bounds
	switch m.drag.kind {
	case dragMove:
		bounds = m.drag.originBounds
		bounds.X += dx
		bounds.Y += dy
	case dragResize:
		bounds = m.resizeBounds(dx, dy)
	default:
		return
	}

	m.drag.current = bounds
	m.display.Configure(m.drag.window, bounds, m.drag.borderWidth, m.drag.borderColor)
}

// resizeBounds applies the edge-selection and minimum-size clamp rule
// from spec.md §4.3: dragging the left/top edge moves the origin and
// flips the sign of the size delta; size is clamped to resizeMinSize and
// any delta beyond the clamp is consumed so the origin does not drift.
func (m *WindowManager) resizeBounds(dx, dy int) wm.Bounds {
	b := m.drag.originBounds

	switch m.drag.widthEdge {
	case resizeEdgeLow:
		newWidth := b.Width - dx
		if newWidth < resizeMinSize {
			dx = b.Width - resizeMinSize
			newWidth = resizeMinSize
		}
		b.X += dx
		b.Width = newWidth
	case resizeEdgeHigh:
		newWidth := b.Width + dx
		if newWidth < resizeMinSize {
			newWidth = resizeMinSize
		}
		b.Width = newWidth
	case resizeEdgeFixed:
		// middle third: width stays at the press-time value.
	}

	switch m.drag.heightEdge {
	case resizeEdgeLow:
		newHeight := b.Height - dy
		if newHeight < resizeMinSize {
			dy = b.Height - resizeMinSize
			newHeight = resizeMinSize
		}
		b.Y += dy
		b.Height = newHeight
	case resizeEdgeHigh:
		newHeight := b.Height + dy
		if newHeight < resizeMinSize {
			newHeight = resizeMinSize
		}
		b.Height = newHeight
	case resizeEdgeFixed:
		// middle third: height stays at the press-time value.
	}

	return b
}

func (m *WindowManager) handleButtonRelease(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
	if m.drag == nil || wm.WindowID(ev.Event) != m.drag.window {
		return
	}
	drag := m.drag
	m.drag = nil

	// Persist the final geometry into the workspace record before the
	// relayout, so a floating record keeps where the drag left it.
	// RequestConfigure only honors floating records; a tiled resize target
	// is re-tiled by the relayout anyway.
	b := drag.current
	x, y, width, height := b.X, b.Y, b.Width, b.Height
	drag.workspace.RequestConfigure(drag.window, &x, &y, &width, &height)

	m.RelayoutCurrent()
}
