package xconn

// AtomSet is the fixed collection of atom names interned once at startup
// (spec.md §6). Grounded on the teacher's internal/x11/desktop.go, which
// interns a handful of EWMH atoms by hand; generalized here to the full
// set the window manager needs, including the two private ceramic atoms.
var AtomSet = []string{
	// Identity
	"UTF8_STRING",
	"_NET_WM_NAME",
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",

	// Desktops
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_WM_DESKTOP",
	"_NET_ACTIVE_WINDOW",

	// Struts
	"_NET_WM_STRUT",

	// Window types
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DESKTOP",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_WINDOW_TYPE_TOOLBAR",
	"_NET_WM_WINDOW_TYPE_MENU",
	"_NET_WM_WINDOW_TYPE_UTILITY",
	"_NET_WM_WINDOW_TYPE_SPLASH",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
	"_NET_WM_WINDOW_TYPE_POPUP_MENU",
	"_NET_WM_WINDOW_TYPE_TOOLTIP",
	"_NET_WM_WINDOW_TYPE_NOTIFICATION",
	"_NET_WM_WINDOW_TYPE_COMBO",
	"_NET_WM_WINDOW_TYPE_DND",
	"_NET_WM_WINDOW_TYPE_NORMAL",

	// State
	"_NET_WM_STATE",
	"_NET_WM_STATE_MODAL",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_STATE_MAXIMIZED_VERT",
	"_NET_WM_STATE_MAXIMIZED_HORZ",
	"_NET_WM_STATE_SHADED",
	"_NET_WM_STATE_SKIP_TASKBAR",
	"_NET_WM_STATE_SKIP_PAGER",
	"_NET_WM_STATE_HIDDEN",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STATE_ABOVE",
	"_NET_WM_STATE_BELOW",
	"_NET_WM_STATE_DEMANDS_ATTENTION",

	// ICCCM
	"WM_TRANSIENT_FOR",
	"WM_PROTOCOLS",
	"WM_DELETE_WINDOW",

	// Private, ceramic-only
	"CERAMIC_COMMAND",
	"CERAMIC_AVAILABLE_COMMANDS",
}
