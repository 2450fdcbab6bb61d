// Package driver runs a guest module against a window: it loads and instantiates the
// module with a fresh binding surface, calls its init export once and then calls its frame
// export on every frame the window produces.
package driver

import (
	"context"
	"errors"

	"github.com/woxQAQ/wasmgl-host/internal/gl"
)

// ErrWindowClosed is returned by NextFrame once the window has been closed. The driver
// treats it as a normal end of the frame loop.
var ErrWindowClosed = errors.New("window closed")

// Window is the single drawing surface a module renders into.
//
// Methods are called from the goroutine that created the window, which for GLFW is the
// main thread. Only the channel returned by Resized may be read elsewhere. Implementations
// document any method that is safe from other goroutines.
type Window interface {
	// GL returns the rendering context bound to the window.
	GL() gl.Context

	// BoundingSize returns the displayed size of the surface.
	BoundingSize() (width, height int)

	// BackingSize returns the size of the drawing buffer.
	BackingSize() (width, height int)

	// SetBackingSize resizes the drawing buffer.
	SetBackingSize(width, height int)

	// NextFrame blocks until the next frame is due and returns its timestamp in
	// milliseconds. Timestamps never decrease.
	NextFrame(ctx context.Context) (float64, error)

	// Resized signals that the bounding size changed.
	Resized() <-chan struct{}

	// Close releases the window. NextFrame returns ErrWindowClosed afterwards. It is safe
	// to call more than once.
	Close() error
}

// Sync copies the bounding size into the backing size and resets the viewport to cover
// it. It returns the synced size.
func Sync(w Window) (width, height int) {
	width, height = w.BoundingSize()
	w.SetBackingSize(width, height)
	w.GL().Viewport(0, 0, int32(width), int32(height))
	return width, height
}
