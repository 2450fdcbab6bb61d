// Package rebuild compiles the guest module with an external compiler and reloads the
// running host when its sources change.
package rebuild

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"
)

// BuildError occurs when the build command fails.
type BuildError struct {
	Command []string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed: %s: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// Command is the compiler invocation, program first.
	Command []string

	// Dir is the working directory of the command.
	Dir string

	// Output is the file the command produces. Relative paths are resolved against Dir.
	Output string
}

// Builder runs the build command and streams its output into the logger.
type Builder struct {
	cfg    BuilderConfig
	logger *zap.Logger
}

// NewBuilder creates a builder.
func NewBuilder(cfg BuilderConfig, logger *zap.Logger) (*Builder, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("build command is empty")
	}
	return &Builder{
		cfg:    cfg,
		logger: logger.With(zap.String("component", "rebuild")),
	}, nil
}

// OutputPath returns the path of the build output.
func (b *Builder) OutputPath() string {
	if filepath.IsAbs(b.cfg.Output) || b.cfg.Dir == "" {
		return b.cfg.Output
	}
	return filepath.Join(b.cfg.Dir, b.cfg.Output)
}

// Build runs the command once. A non-zero exit is a *BuildError.
func (b *Builder) Build(ctx context.Context) error {
	out := &zapio.Writer{Log: b.logger.With(zap.String("source", "compiler")), Level: zapcore.InfoLevel}
	defer out.Close()

	cmd := exec.CommandContext(ctx, b.cfg.Command[0], b.cfg.Command[1:]...)
	cmd.Dir = b.cfg.Dir
	cmd.Stdout = out
	cmd.Stderr = out

	b.logger.Info("Building module", zap.Strings("command", b.cfg.Command), zap.String("dir", b.cfg.Dir))
	start := time.Now()
	if err := cmd.Run(); err != nil {
		return &BuildError{Command: b.cfg.Command, Err: err}
	}
	b.logger.Info("Build finished", zap.Duration("duration", time.Since(start)))
	return nil
}

// EnsureBuilt builds only when the output file is missing. It reports whether a build ran.
func (b *Builder) EnsureBuilt(ctx context.Context) (bool, error) {
	if b.cfg.Output != "" {
		if _, err := os.Stat(b.OutputPath()); err == nil {
			return false, nil
		}
	}
	if err := b.Build(ctx); err != nil {
		return true, err
	}
	return true, nil
}
