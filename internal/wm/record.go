package wm

// WindowID is the opaque identifier for a client window, as issued by the
// display server. It is invariant across a WindowRecord's lifetime.
type WindowID uint32

// Color is a border color in 8-bit-per-channel RGB.
type Color struct {
	R, G, B uint8
}

// Record is the per-window state the layout engine reads and rewrites on
// every relayout. The layout tree never retains a Record: it consumes a
// copy of the slice and returns a transformed copy (see LayoutNode).
type Record struct {
	Window WindowID

	IsFloating bool
	Bounds     Bounds

	BorderWidth uint8
	BorderColor Color

	SelectorLabel string

	// LeaderWindow is the transient/group parent, when one exists. It
	// groups rows in a WindowSelectorArtist.
	LeaderWindow *WindowID

	// Order is the normalized stacking rank, recomputed every layout by
	// NormalizeOrder. nil means "not yet assigned" and must be resolved
	// before the manager restacks windows.
	Order *int

	// IsManaged distinguishes windows the manager positions from windows
	// it only tracks for struts (IgnoreUnmanaged partitions on this).
	IsManaged bool

	// Strut holds a decoded _NET_WM_STRUT. The manager fills it in only
	// for its unmanaged records, which its pre-layout bounds scan reads
	// (spec.md §9's adopted answer to "struts from unmanaged windows");
	// Workspace.AddWindow does not read struts, so managed records carry
	// nil here and the AvoidStruts node finds none on them.
	Strut *Strut
}

// Strut is a four-cardinal per-edge reservation, as exported via
// _NET_WM_STRUT by dock/panel clients.
type Strut struct {
	Left, Right, Top, Bottom int
}

// Clone returns a deep copy safe for a layout node to mutate without
// aliasing the caller's slice.
func (r Record) Clone() Record {
	c := r
	if r.LeaderWindow != nil {
		leader := *r.LeaderWindow
		c.LeaderWindow = &leader
	}
	if r.Order != nil {
		order := *r.Order
		c.Order = &order
	}
	return c
}

// CloneRecords deep-copies a slice of records.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// GroupKey returns the key used to group selector rows: the leader window
// when present, else the record's own window.
func (r Record) GroupKey() WindowID {
	if r.LeaderWindow != nil {
		return *r.LeaderWindow
	}
	return r.Window
}

func intPtr(v int) *int { return &v }
