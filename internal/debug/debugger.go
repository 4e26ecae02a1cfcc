package debug

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"sync"

	"gocv.io/x/gocv"
)

// Debugger is a Sink writing to stdout and, at higher verbosity, to
// on-screen windows. Construct it through New.
type Debugger struct {
	showLog    bool
	showImages bool
	out        io.Writer

	mu      sync.Mutex
	windows map[string]*gocv.Window
}

func (d *Debugger) Log(v ...any) {
	if d.showLog {
		fmt.Fprintln(d.out, v...)
	}
}

// Image shows img in the window of the given name and waits for a key press.
// Windows are created on first use and reused per name.
func (d *Debugger) Image(img image.Image, window string) {
	if !d.showImages {
		return
	}

	mat, err := gocv.ImageToMatRGBA(toRGBA(img))
	if err != nil {
		d.Log("debug window:", err)
		return
	}
	defer mat.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBAToBGR)

	w := d.window(window)
	w.IMShow(bgr)
	w.WaitKey(0)
}

func (d *Debugger) Line(dst *image.RGBA, from, to image.Point, index int) {
	if !d.showImages {
		return
	}
	drawSegment(dst, from, to, index)
}

func (d *Debugger) Visual() bool {
	return d.showImages
}

// Close destroys every window the debugger opened.
func (d *Debugger) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var first error
	for _, w := range d.windows {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	d.windows = nil
	return first
}

func (d *Debugger) window(name string) *gocv.Window {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.windows == nil {
		d.windows = make(map[string]*gocv.Window)
	}
	w, ok := d.windows[name]
	if !ok {
		w = gocv.NewWindow(name)
		d.windows[name] = w
	}
	return w
}

// toRGBA converts any image to RGBA with a zero-origin, as the Mat
// conversion requires.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == image.Pt(0, 0) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
