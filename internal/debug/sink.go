// Package debug provides the optional observability side channel for the
// road-extraction pipeline.
//
// A Sink has two independently toggleable channels: console logging and
// on-screen image display. Components receive a Sink as an explicit
// collaborator and only ever call its methods; there is no process-wide
// debug state. The default Nop sink makes every call free.
package debug

import (
	"image"
	"io"
)

// Sink receives diagnostic output from pipeline components.
//
// Implementations must tolerate calls while either channel is disabled.
// Nothing a Sink does feeds back into the pipeline's output.
type Sink interface {
	// Log writes values to the console channel, one line per call.
	Log(v ...any)

	// Image renders img in the named window, blocking until a key press.
	Image(img image.Image, window string)

	// Line draws a detected segment onto dst when images are enabled.
	// index selects the overlay color and label.
	Line(dst *image.RGBA, from, to image.Point, index int)

	// Visual reports whether the image channel is active, letting callers
	// skip building overlays nobody will see.
	Visual() bool

	// Close releases any window resources. Safe to call more than once and
	// must run on every exit path, including errors.
	Close() error
}

// New returns a sink for the given verbosity level: 0 is silent, 1 enables
// console logging, 2 and above also enables image display.
func New(verbosity int, out io.Writer) Sink {
	if verbosity <= 0 {
		return Nop{}
	}
	return &Debugger{
		showLog:    true,
		showImages: verbosity >= 2,
		out:        out,
	}
}

// Nop is the default sink; every method is a no-op.
type Nop struct{}

func (Nop) Log(...any) {}

func (Nop) Image(image.Image, string) {}

func (Nop) Line(*image.RGBA, image.Point, image.Point, int) {}

func (Nop) Visual() bool { return false }

func (Nop) Close() error { return nil }
