//go:build glfw

package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/woxQAQ/wasmgl-host/internal/gl"
	"github.com/woxQAQ/wasmgl-host/internal/gl/desktop"
)

func init() {
	// GLFW event handling and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

// GLFWConfig configures a GLFWWindow.
type GLFWConfig struct {
	Width  int
	Height int
	Title  string
}

// GLFWWindow is a desktop window with an OpenGL 2.1 context. It must be created, driven
// and closed from the main goroutine. Other goroutines end the loop with RequestClose.
type GLFWWindow struct {
	win *glfw.Window
	ctx *desktop.Context

	mu       sync.Mutex
	backingW int
	backingH int

	resized chan struct{}
	started bool
	last    float64
	closed  bool
}

var _ Window = (*GLFWWindow)(nil)

// NewGLFWWindow initializes GLFW, opens a window and makes its context current.
func NewGLFWWindow(cfg GLFWConfig) (*GLFWWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	ctx, err := desktop.New()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("load OpenGL: %w", err)
	}

	w := &GLFWWindow{
		win:     win,
		ctx:     ctx,
		resized: make(chan struct{}, 1),
	}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		select {
		case w.resized <- struct{}{}:
		default:
		}
	})
	return w, nil
}

func (w *GLFWWindow) GL() gl.Context { return w.ctx }

// Version returns the OpenGL version string of the window's context.
func (w *GLFWWindow) Version() string { return w.ctx.Version() }

// BoundingSize returns the framebuffer size in pixels, which differs from the window
// size on high-density displays.
func (w *GLFWWindow) BoundingSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *GLFWWindow) BackingSize() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.backingW, w.backingH
}

// SetBackingSize records the drawing buffer size. The default framebuffer follows the
// window, so there is nothing to allocate.
func (w *GLFWWindow) SetBackingSize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.backingW, w.backingH = width, height
}

func (w *GLFWWindow) Resized() <-chan struct{} { return w.resized }

// RequestClose asks the window to close. NextFrame reports ErrWindowClosed on its next
// call. Safe to call from any goroutine.
func (w *GLFWWindow) RequestClose() {
	w.win.SetShouldClose(true)
}

// NextFrame presents the previous frame, processes window events and returns the GLFW
// clock in milliseconds. Presentation waits for vertical sync.
func (w *GLFWWindow) NextFrame(ctx context.Context) (float64, error) {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return 0, ErrWindowClosed
	}
	if w.started {
		w.win.SwapBuffers()
	}
	w.started = true

	glfw.PollEvents()
	if w.win.ShouldClose() {
		return 0, ErrWindowClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	ts := glfw.GetTime() * 1000
	if ts < w.last {
		ts = w.last
	}
	w.last = ts
	return ts, nil
}

// Close destroys the window and terminates GLFW. Call it on the main thread only.
func (w *GLFWWindow) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	w.win.Destroy()
	glfw.Terminate()
	return nil
}
