package driver

import (
	"context"
	"sync"
	"time"

	"github.com/woxQAQ/wasmgl-host/internal/gl"
	"github.com/woxQAQ/wasmgl-host/internal/gl/soft"
)

// HeadlessConfig configures a HeadlessWindow.
type HeadlessConfig struct {
	Width  int
	Height int

	// Rate is the frame rate in frames per second. Zero produces frames back to back.
	Rate float64

	// MaxFrames closes the window after that many frames. Zero means no limit.
	MaxFrames uint64

	// Record keeps every GL call made on the soft context for inspection.
	Record bool
}

// HeadlessWindow is an in-process window backed by the soft rendering context.
type HeadlessWindow struct {
	ctx *soft.Context
	cfg HeadlessConfig

	mu            sync.Mutex
	width, height int
	backingW      int
	backingH      int
	closed        bool

	resized chan struct{}
	done    chan struct{}

	start  time.Time
	last   float64
	frames uint64
	ticker *time.Ticker
}

var _ Window = (*HeadlessWindow)(nil)

// NewHeadlessWindow creates a headless window of the configured size.
func NewHeadlessWindow(cfg HeadlessConfig) *HeadlessWindow {
	var opts []soft.Option
	if cfg.Record {
		opts = append(opts, soft.WithRecording())
	}
	w := &HeadlessWindow{
		ctx:     soft.New(opts...),
		cfg:     cfg,
		width:   cfg.Width,
		height:  cfg.Height,
		resized: make(chan struct{}, 1),
		done:    make(chan struct{}),
		start:   time.Now(),
	}
	if cfg.Rate > 0 {
		w.ticker = time.NewTicker(time.Duration(float64(time.Second) / cfg.Rate))
	}
	return w
}

// GL returns the soft context.
func (w *HeadlessWindow) GL() gl.Context { return w.ctx }

// Soft returns the soft context with its inspection methods.
func (w *HeadlessWindow) Soft() *soft.Context { return w.ctx }

func (w *HeadlessWindow) BoundingSize() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *HeadlessWindow) BackingSize() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.backingW, w.backingH
}

func (w *HeadlessWindow) SetBackingSize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.backingW, w.backingH = width, height
}

// Resize changes the bounding size and signals Resized. Safe to call from any goroutine.
func (w *HeadlessWindow) Resize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()

	select {
	case w.resized <- struct{}{}:
	default:
	}
}

func (w *HeadlessWindow) Resized() <-chan struct{} { return w.resized }

// Frames returns the number of frames produced so far.
func (w *HeadlessWindow) Frames() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// NextFrame waits for the next tick and returns the elapsed time since the window was
// created, in milliseconds.
func (w *HeadlessWindow) NextFrame(ctx context.Context) (float64, error) {
	w.mu.Lock()
	if w.closed || (w.cfg.MaxFrames > 0 && w.frames >= w.cfg.MaxFrames) {
		w.mu.Unlock()
		return 0, ErrWindowClosed
	}
	w.mu.Unlock()

	if w.ticker != nil {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-w.done:
			return 0, ErrWindowClosed
		case <-w.ticker.C:
		}
	} else if err := ctx.Err(); err != nil {
		return 0, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, ErrWindowClosed
	}
	ts := float64(time.Since(w.start)) / float64(time.Millisecond)
	if ts < w.last {
		ts = w.last
	}
	w.last = ts
	w.frames++
	return ts, nil
}

// Close stops the window and wakes a NextFrame waiting for its tick. Safe to call more
// than once and from any goroutine.
func (w *HeadlessWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.done)
	if w.ticker != nil {
		w.ticker.Stop()
	}
	return nil
}
