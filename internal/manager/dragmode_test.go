package manager

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/ceramic/internal/wm"
)

// spec.md §4.3: pointer in the first third of the width drags the left
// edge (flipping the delta's sign onto the origin), the last third drags
// the right edge, and the middle third leaves that axis unchanged.
func TestResizeEdgeForThirds(t *testing.T) {
	cases := []struct {
		pos, size int
		want      resizeEdge
	}{
		{pos: 0, size: 90, want: resizeEdgeLow},
		{pos: 29, size: 90, want: resizeEdgeLow},
		{pos: 30, size: 90, want: resizeEdgeFixed},
		{pos: 59, size: 90, want: resizeEdgeFixed},
		{pos: 60, size: 90, want: resizeEdgeHigh},
		{pos: 89, size: 90, want: resizeEdgeHigh},
	}
	for _, c := range cases {
		if got := resizeEdgeFor(c.pos, c.size); got != c.want {
			t.Fatalf("resizeEdgeFor(%d, %d) = %v, want %v", c.pos, c.size, got, c.want)
		}
	}
}

func TestResizeBoundsMiddleThirdKeepsSizeConstant(t *testing.T) {
	m := &WindowManager{drag: &dragState{
		originBounds: wm.Bounds{X: 10, Y: 10, Width: 90, Height: 90},
		widthEdge:    resizeEdgeFixed,
		heightEdge:   resizeEdgeFixed,
	}}
	got := m.resizeBounds(40, -40)
	if got.Width != 90 || got.Height != 90 {
		t.Fatalf("middle-third drag must not change size, got %+v", got)
	}
}

func TestResizeBoundsLowEdgeMovesOriginAndFlipsDelta(t *testing.T) {
	m := &WindowManager{drag: &dragState{
		originBounds: wm.Bounds{X: 10, Y: 10, Width: 90, Height: 90},
		widthEdge:    resizeEdgeLow,
		heightEdge:   resizeEdgeFixed,
	}}
	got := m.resizeBounds(20, 0)
	if got.X != 30 || got.Width != 70 {
		t.Fatalf("low-edge drag of +20 should move X to 30 and shrink width to 70, got %+v", got)
	}
}

func TestResizeBoundsHighEdgeGrowsWithoutMovingOrigin(t *testing.T) {
	m := &WindowManager{drag: &dragState{
		originBounds: wm.Bounds{X: 10, Y: 10, Width: 90, Height: 90},
		widthEdge:    resizeEdgeHigh,
		heightEdge:   resizeEdgeFixed,
	}}
	got := m.resizeBounds(20, 0)
	if got.X != 10 || got.Width != 110 {
		t.Fatalf("high-edge drag of +20 should keep X at 10 and grow width to 110, got %+v", got)
	}
}

// scenario S4 from spec.md §8: a Mod1 move drag from (100,100) to
// (150,130) shifts the window's origin by (+50, +30), and the geometry
// survives the relayout issued on release.
func TestMoveDragShiftsOriginAndSurvivesRelayout(t *testing.T) {
	m, conn := newSelectorTestManager(t)
	conn.geometry[2] = wm.Bounds{X: 20, Y: 20, Width: 200, Height: 150}
	m.Absorb(2)

	press := xevent.ButtonPressEvent{ButtonPressEvent: &xproto.ButtonPressEvent{
		Event: 2, EventX: 100, EventY: 80, RootX: 100, RootY: 100, State: xproto.ModMask1,
	}}
	m.handleButtonPress(nil, press)
	if m.drag == nil || m.drag.kind != dragMove {
		t.Fatalf("Mod1 press must start a move drag")
	}

	motion := xevent.MotionNotifyEvent{MotionNotifyEvent: &xproto.MotionNotifyEvent{
		Event: 2, RootX: 150, RootY: 130,
	}}
	m.handleMotionNotify(nil, motion)

	release := xevent.ButtonReleaseEvent{ButtonReleaseEvent: &xproto.ButtonReleaseEvent{
		Event: 2, RootX: 150, RootY: 130,
	}}
	m.handleButtonRelease(nil, release)
	if m.drag != nil {
		t.Fatalf("release must end the drag")
	}

	record := recordIn(m.current, 2)
	if !record.IsFloating {
		t.Fatalf("a move drag must float the dragged record")
	}
	if record.Bounds.X != 70 || record.Bounds.Y != 50 {
		t.Fatalf("origin should shift by (+50,+30) to (70,50), got %+v", record.Bounds)
	}
}

func TestResizeBoundsClampsToMinimumAndConsumesExtraDelta(t *testing.T) {
	m := &WindowManager{drag: &dragState{
		originBounds: wm.Bounds{X: 10, Y: 10, Width: 90, Height: 90},
		widthEdge:    resizeEdgeLow,
		heightEdge:   resizeEdgeFixed,
	}}
	got := m.resizeBounds(1000, 0)
	if got.Width != resizeMinSize {
		t.Fatalf("width must clamp to resizeMinSize, got %d", got.Width)
	}
	if got.X != 10+(90-resizeMinSize) {
		t.Fatalf("origin must only move by the consumed delta, got X=%d", got.X)
	}
}
