// Package shell provides the shell-based build executor adapter.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/alloy/internal/core/ports"
	"go.trai.ch/zerr"
)

const dirPerm = 0o750

// Executor implements ports.BuildExecutor by running phase hooks through
// the system shell. Each package builds into its own directory under the
// artifact root; hooks see the source and output locations via
// ALLOY_SRC and ALLOY_OUT.
type Executor struct {
	logger       ports.Logger
	artifactRoot string
}

// NewExecutor creates a new shell executor writing artifacts under root.
func NewExecutor(logger ports.Logger, root string) *Executor {
	return &Executor{
		logger:       logger,
		artifactRoot: filepath.Clean(root),
	}
}

// Build runs the recipe's setup, build, and install hooks in order against
// the source directory and returns the artifact path. Hooks are shell
// command lines; the first failing hook aborts the build with its phase
// and exit code attached.
func (e *Executor) Build(ctx context.Context, recipe *domain.Recipe, sourceDir string) (string, error) {
	// Hooks run with the source directory as working directory, so both
	// locations must be absolute before they go into the environment.
	sourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve source directory")
	}
	outPath, err := filepath.Abs(e.outputPath(recipe))
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve artifact directory")
	}
	if err := os.MkdirAll(outPath, dirPerm); err != nil {
		return "", zerr.Wrap(err, "failed to create artifact directory")
	}

	env := append(os.Environ(),
		"ALLOY_SRC="+sourceDir,
		"ALLOY_OUT="+outPath,
	)

	stdout, stderr := e.outputWriters(ctx)

	phases := []struct {
		name  string
		hooks []string
	}{
		{"setup", recipe.Phases.Setup},
		{"build", recipe.Phases.Build},
		{"install", recipe.Phases.Install},
	}

	for _, phase := range phases {
		for _, hook := range phase.hooks {
			if err := runHook(ctx, hook, sourceDir, env, stdout, stderr); err != nil {
				hookErr := zerr.With(err, "package", recipe.Name.String())
				hookErr = zerr.With(hookErr, "phase", phase.name)
				return "", zerr.With(hookErr, "hook", hook)
			}
		}
	}

	return outPath, nil
}

// outputPath returns the artifact location for a recipe: the declared
// absolute path if any, otherwise name-version under the artifact root.
func (e *Executor) outputPath(recipe *domain.Recipe) string {
	if filepath.IsAbs(recipe.Artifact.Path) {
		return recipe.Artifact.Path
	}
	return filepath.Join(e.artifactRoot, fmt.Sprintf("%s-%s", recipe.Name.String(), recipe.Version.String()))
}

// outputWriters returns the build output destinations: the telemetry
// vertex attached to the context when present, the logger otherwise.
func (e *Executor) outputWriters(ctx context.Context) (io.Writer, io.Writer) {
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		return vertex.Stdout(), vertex.Stderr()
	}
	return &logWriter{logger: e.logger, level: domain.LogLevelInfo},
		&logWriter{logger: e.logger, level: domain.LogLevelError}
}

func runHook(ctx context.Context, hook, dir string, env []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", hook) //nolint:gosec // Hooks come from the recipe catalog
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "hook failed"), "exit_code", exitCode)
	}
	return nil
}

type logWriter struct {
	logger ports.Logger
	level  domain.LogLevel
}

func (w *logWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if w.level >= domain.LogLevelError {
		w.logger.Warn(msg)
	} else {
		w.logger.Info(msg)
	}
	return len(p), nil
}
