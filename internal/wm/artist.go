package wm

// Artist is a polymorphic decoration drawable. A layout node that wants to
// paint something beyond a plain bordered window (a stack indicator, a
// window-selector label row, ...) returns one Artist per drawable from
// Layout; the manager creates one override-redirect decoration window per
// Artist, sized to whatever CalculateBounds reports, and calls Draw on
// expose.
type Artist interface {
	// CalculateBounds returns the rectangle the artist wants its
	// decoration window placed at, relative to the root window. A nil
	// result means the artist currently has nothing to draw (the manager
	// destroys the placeholder decoration window).
	CalculateBounds() *Bounds

	// Draw paints the artist's content. surface is the narrow drawing
	// capability the manager's decoration window offers; see
	// internal/manager for the concrete implementation backed by
	// xproto.PutImage.
	Draw(surface Surface)
}

// Surface is the 2-D graphics capability an Artist paints into. It is
// intentionally narrow: an RGBA image the caller blits to its decoration
// window after Draw returns. Kept as an interface so layout-node and
// artist tests never need a real X11 connection.
type Surface interface {
	// Size reports the pixel dimensions the surface was created at.
	Size() (width, height int)
	// FillRect paints a solid color rectangle.
	FillRect(x, y, w, h int, c Color)
	// DrawText paints a left-anchored baseline string at (x, y).
	DrawText(x, y int, c Color, text string)
}
