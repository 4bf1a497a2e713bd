package xconn

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

const wmName = "ceramic"

// supportedAtoms is the _NET_SUPPORTED subset the manager advertises,
// per spec.md §6.
var supportedAtoms = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_WM_DESKTOP",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_STRUT",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_STATE",
}

// Startup acquires the root window as window manager (by requesting
// substructure redirect, which fails if another WM already holds it),
// creates and publishes the supporting-WM check window, and seeds the
// desktop properties. An error here is startup-fatal (spec.md §7 kind 1):
// the caller exits non-zero.
func Startup(conn *Connection, numDesktops uint32, desktopNames []string) error {
	if err := xproto.ChangeWindowAttributesChecked(
		conn.XUtil.Conn(), conn.root, xproto.CwEventMask,
		[]uint32{uint32(
			xproto.EventMaskSubstructureRedirect |
				xproto.EventMaskSubstructureNotify |
				xproto.EventMaskPropertyChange,
		)},
	).Check(); err != nil {
		return fmt.Errorf("acquire root window as window manager (another WM running?): %w", err)
	}

	for _, name := range AtomSet {
		if _, err := conn.Atom(name); err != nil {
			return fmt.Errorf("intern startup atoms: %w", err)
		}
	}

	check, err := conn.GenerateID()
	if err != nil {
		return fmt.Errorf("create supporting-WM check window: %w", err)
	}
	if err := xproto.CreateWindowChecked(
		conn.XUtil.Conn(), conn.XUtil.Screen().RootDepth, check, conn.root,
		-1, -1, 1, 1, 0,
		xproto.WindowClassInputOutput, conn.XUtil.Screen().RootVisual,
		0, nil,
	).Check(); err != nil {
		return fmt.Errorf("create supporting-WM check window: %w", err)
	}

	if err := conn.ChangeProperty32(check, "_NET_SUPPORTING_WM_CHECK", "WINDOW", uint32(check)); err != nil {
		return err
	}
	if err := conn.ChangeProperty32(conn.root, "_NET_SUPPORTING_WM_CHECK", "WINDOW", uint32(check)); err != nil {
		return err
	}
	if err := writeUTF8Property(conn, check, "_NET_WM_NAME", wmName); err != nil {
		return err
	}

	if err := conn.ChangeProperty32(conn.root, "_NET_NUMBER_OF_DESKTOPS", "CARDINAL", numDesktops); err != nil {
		return err
	}
	if err := writeUTF8ListProperty(conn, conn.root, "_NET_DESKTOP_NAMES", desktopNames); err != nil {
		return err
	}
	if err := conn.ChangeProperty32(conn.root, "_NET_CURRENT_DESKTOP", "CARDINAL", 0); err != nil {
		return err
	}

	supported := make([]uint32, len(supportedAtoms))
	for i, name := range supportedAtoms {
		atom, err := conn.Atom(name)
		if err != nil {
			return err
		}
		supported[i] = uint32(atom)
	}
	if err := conn.ChangeProperty32(conn.root, "_NET_SUPPORTED", "ATOM", supported...); err != nil {
		return err
	}

	conn.Flush()
	return nil
}

func writeUTF8Property(conn *Connection, win xproto.Window, prop, value string) error {
	return conn.ChangeProperty8(win, prop, "UTF8_STRING", []byte(value))
}

func writeUTF8ListProperty(conn *Connection, win xproto.Window, prop string, values []string) error {
	var buf []byte
	for _, v := range values {
		buf = append(buf, v...)
		buf = append(buf, 0)
	}
	return conn.ChangeProperty8(win, prop, "UTF8_STRING", buf)
}
