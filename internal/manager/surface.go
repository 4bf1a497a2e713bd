package manager

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/1broseidon/ceramic/internal/wm"
	"github.com/1broseidon/ceramic/internal/xconn"
)

// xSurface is the concrete wm.Surface an Artist paints into: an in-memory
// RGBA buffer blitted to its decoration window via xproto.PutImage once
// Draw returns. Grounded on the teacher-adjacent
// BurntSushi-xgbutil/xgraphics package's Image/XDraw split (draw to a
// buffer, then one PutImage) but using golang.org/x/image/font/basicfont
// for text instead of the freetype binding that package depends on.
type xSurface struct {
	img *image.RGBA
}

func newXSurface(width, height int) *xSurface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &xSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *xSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *xSurface) FillRect(x, y, w, h int, c wm.Color) {
	draw.Draw(s.img, image.Rect(x, y, x+w, y+h),
		image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}),
		image.Point{}, draw.Src)
}

func (s *xSurface) DrawText(x, y int, c wm.Color, text string) {
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// paintDecoration renders artist into a freshly sized xSurface and blits
// it to win, the expose-handler half of spec.md §4.4's Artist contract.
func (m *WindowManager) paintDecoration(win xproto.Window, artist wm.Artist) {
	real, ok := m.conn.(*xconn.Connection)
	if !ok {
		return
	}
	bounds, err := m.conn.Geometry(win)
	if err != nil {
		return
	}
	surface := newXSurface(bounds.Width, bounds.Height)
	artist.Draw(surface)
	blitSurface(real, win, surface)
}

// blitSurface packs the surface's pixels as BGRX8888 (the common
// truecolor layout on a 24-bit-depth, 32-bpp visual) and sends a single
// PutImage request; decoration windows are small enough that chunking
// against the server's max-request-size never applies.
func blitSurface(conn *xconn.Connection, win xproto.Window, s *xSurface) {
	w, h := s.Size()
	data := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := s.img.RGBAAt(x, y)
			i := (y*w + x) * 4
			data[i+0] = c.B
			data[i+1] = c.G
			data[i+2] = c.R
		}
	}
	xproto.PutImage(conn.XUtil.Conn(), xproto.ImageFormatZPixmap,
		xproto.Drawable(win), conn.XUtil.GC(),
		uint16(w), uint16(h), 0, 0, 0, 24, data)
}
