package rebuild

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func shell(script string) []string {
	return []string{"sh", "-c", script}
}

func TestBuilder_Build(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBuilder(BuilderConfig{
		Command: shell("mkdir -p bin && printf wasm > bin/main.wasm"),
		Dir:     dir,
		Output:  "bin/main.wasm",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, b.Build(context.Background()))
	data, err := os.ReadFile(filepath.Join(dir, "bin", "main.wasm"))
	require.NoError(t, err)
	assert.Equal(t, "wasm", string(data))
	assert.Equal(t, filepath.Join(dir, "bin", "main.wasm"), b.OutputPath())
}

func TestBuilder_BuildFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	b, err := NewBuilder(BuilderConfig{
		Command: shell("echo 'src/main.zig:3:5: error: expected ;'; exit 3"),
		Dir:     t.TempDir(),
	}, zap.New(core))
	require.NoError(t, err)

	err = b.Build(context.Background())
	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr), "got %v", err)
	assert.Equal(t, "sh", buildErr.Command[0])

	// Compiler output reaches the logger line by line.
	assert.Equal(t, 1, logs.FilterMessage("src/main.zig:3:5: error: expected ;").Len())
}

func TestNewBuilder_EmptyCommand(t *testing.T) {
	_, err := NewBuilder(BuilderConfig{}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestBuilder_EnsureBuilt(t *testing.T) {
	dir := t.TempDir()
	b, err := NewBuilder(BuilderConfig{
		Command: shell("printf x >> out.wasm"),
		Dir:     dir,
		Output:  "out.wasm",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	built, err := b.EnsureBuilt(context.Background())
	require.NoError(t, err)
	assert.True(t, built)

	built, err = b.EnsureBuilt(context.Background())
	require.NoError(t, err)
	assert.False(t, built)

	data, err := os.ReadFile(filepath.Join(dir, "out.wasm"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

// reloads counts Reload calls on a channel.
type reloads chan struct{}

func (r reloads) Reload() { r <- struct{}{} }

func startWatcher(t *testing.T, command []string, output string, logger *zap.Logger) (string, reloads) {
	t.Helper()
	dir := t.TempDir()
	if output != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, output)), 0o755))
	}
	b, err := NewBuilder(BuilderConfig{Command: command, Dir: dir, Output: output}, logger)
	require.NoError(t, err)

	r := make(reloads, 4)
	w, err := NewWatcher(b, r, WatchConfig{Dir: dir, Extension: ".zig", Debounce: 20 * time.Millisecond}, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return dir, r
}

func TestWatcher_ReloadsAfterSuccessfulBuild(t *testing.T) {
	dir, r := startWatcher(t, shell("true"), "", zaptest.NewLogger(t))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case <-r:
		t.Fatal("reload triggered by a non-source file")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.zig"), []byte("pub fn main() void {}"), 0o644))
	select {
	case <-r:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after source change")
	}
}

func TestWatcher_FailedBuildKeepsRunningModule(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dir, r := startWatcher(t, shell("exit 1"), "", zap.New(core))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.zig"), []byte("broken"), 0o644))

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Build failed, keeping the running module").Len() >= 1
	}, 5*time.Second, 10*time.Millisecond)
	select {
	case <-r:
		t.Fatal("reload after a failed build")
	default:
	}
}

func TestWatcher_ReloadsWhenOutputWrittenElsewhere(t *testing.T) {
	dir, r := startWatcher(t, shell("exit 1"), "zig-out/bin/main.wasm", zaptest.NewLogger(t))

	out := filepath.Join(dir, "zig-out", "bin", "main.wasm")
	require.NoError(t, os.WriteFile(out, []byte("\x00asm"), 0o644))
	select {
	case <-r:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the output changed")
	}
}

func TestWatcher_OwnBuildReloadsOnce(t *testing.T) {
	dir, r := startWatcher(t, shell("printf wasm > main.wasm"), "main.wasm", zaptest.NewLogger(t))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.zig"), []byte("pub fn main() void {}"), 0o644))
	select {
	case <-r:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after source change")
	}
	select {
	case <-r:
		t.Fatal("second reload for the watcher's own build output")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IsOutput(t *testing.T) {
	w := &Watcher{output: filepath.Clean("/work/zig-out/bin/main.wasm")}

	assert.True(t, w.IsOutput(fsnotify.Event{Name: "/work/zig-out/bin/main.wasm", Op: fsnotify.Write}))
	assert.True(t, w.IsOutput(fsnotify.Event{Name: "/work/zig-out/bin/main.wasm", Op: fsnotify.Create}))
	assert.False(t, w.IsOutput(fsnotify.Event{Name: "/work/zig-out/bin/main.wasm", Op: fsnotify.Remove}))
	assert.False(t, w.IsOutput(fsnotify.Event{Name: "/work/zig-out/bin/other.wasm", Op: fsnotify.Write}))
	assert.False(t, (&Watcher{}).IsOutput(fsnotify.Event{Name: "main.wasm", Op: fsnotify.Write}))
}

func TestWatcher_Matches(t *testing.T) {
	w := &Watcher{cfg: WatchConfig{Extension: ".zig"}}

	assert.True(t, w.Matches(fsnotify.Event{Name: "src/main.zig", Op: fsnotify.Write}))
	assert.True(t, w.Matches(fsnotify.Event{Name: "src/util.ZIG", Op: fsnotify.Create}))
	assert.False(t, w.Matches(fsnotify.Event{Name: "src/main.zig", Op: fsnotify.Remove}))
	assert.False(t, w.Matches(fsnotify.Event{Name: "src/main.wasm", Op: fsnotify.Write}))
}
