package rebuild

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader is told to reload after every successful rebuild and whenever the build
// output changes on disk.
type Reloader interface {
	Reload()
}

// WatchConfig configures a Watcher.
type WatchConfig struct {
	// Dir is watched recursively.
	Dir string

	// Extension selects the source files that trigger a rebuild, e.g. ".zig".
	Extension string

	// Debounce merges bursts of events into one rebuild. Defaults to 100ms.
	Debounce time.Duration
}

// Watcher rebuilds the module when a source file is written and reloads on success. It
// also watches the directory of the build output, so a module rebuilt by another tool is
// reloaded too.
type Watcher struct {
	builder *Builder
	target  Reloader
	cfg     WatchConfig
	fsw     *fsnotify.Watcher
	logger  *zap.Logger

	output string
	stamp  outputStamp
}

// outputStamp identifies one version of the build output.
type outputStamp struct {
	modTime time.Time
	size    int64
}

func statOutput(path string) (outputStamp, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return outputStamp{}, false
	}
	return outputStamp{modTime: info.ModTime(), size: info.Size()}, true
}

// NewWatcher starts watching cfg.Dir and its subdirectories. Events are handled by Run.
func NewWatcher(builder *Builder, target Reloader, cfg WatchConfig, logger *zap.Logger) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(cfg.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		builder: builder,
		target:  target,
		cfg:     cfg,
		fsw:     fsw,
		logger:  logger.With(zap.String("component", "rebuild-watcher")),
	}
	if out := builder.OutputPath(); out != "" {
		w.output = filepath.Clean(out)
		w.stamp, _ = statOutput(w.output)
		if err := fsw.Add(filepath.Dir(w.output)); err != nil {
			w.logger.Warn("Cannot watch build output directory",
				zap.String("dir", filepath.Dir(w.output)), zap.Error(err))
		}
	}
	return w, nil
}

// Matches reports whether a change to path should trigger a rebuild.
func (w *Watcher) Matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), w.cfg.Extension)
}

// IsOutput reports whether event writes the build output.
func (w *Watcher) IsOutput(event fsnotify.Event) bool {
	if w.output == "" || (!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create)) {
		return false
	}
	return filepath.Clean(event.Name) == w.output
}

// Run handles events until ctx is cancelled. A failed build is logged and the running
// module is left alone.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	w.logger.Info("Watching sources",
		zap.String("dir", w.cfg.Dir),
		zap.String("extension", w.cfg.Extension),
	)

	var (
		timer   *time.Timer
		pending <-chan time.Time

		rebuildDue bool
		reloadDue  bool
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(event.Name)
				}
			}
			switch {
			case w.IsOutput(event):
				reloadDue = true
			case w.Matches(event):
				w.logger.Debug("Source changed", zap.String("file", event.Name))
				rebuildDue = true
			default:
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			if rebuildDue {
				w.rebuild(ctx)
			} else if reloadDue {
				w.reloadIfChanged()
			}
			rebuildDue, reloadDue = false, false

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	if err := w.builder.Build(ctx); err != nil {
		if ctx.Err() == nil {
			w.logger.Error("Build failed, keeping the running module", zap.Error(err))
		}
		return
	}
	w.stamp, _ = statOutput(w.output)
	w.target.Reload()
}

// reloadIfChanged reloads when the output differs from the last version seen, which
// skips the events of the watcher's own builds.
func (w *Watcher) reloadIfChanged() {
	stamp, ok := statOutput(w.output)
	if !ok || stamp == w.stamp {
		return
	}
	w.stamp = stamp
	w.logger.Info("Build output changed, reloading", zap.String("file", w.output))
	w.target.Reload()
}
