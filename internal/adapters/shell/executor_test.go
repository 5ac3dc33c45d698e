package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/alloy/internal/adapters/shell"
	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/alloy/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T, root string) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return shell.NewExecutor(logger, root)
}

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecutor_Build_RunsPhasesInOrder(t *testing.T) {
	skipWithoutShell(t)

	root := t.TempDir()
	sourceDir := t.TempDir()
	e := newExecutor(t, root)

	recipe := &domain.Recipe{
		Name:    domain.NewInternedString("zlib"),
		Version: domain.NewInternedString("1.3"),
		Phases: domain.PhaseHooks{
			Setup:   []string{`printf setup >> "$ALLOY_OUT/trace"`},
			Build:   []string{`printf ,build >> "$ALLOY_OUT/trace"`},
			Install: []string{`printf ,install >> "$ALLOY_OUT/trace"`},
		},
	}

	outPath, err := e.Build(context.Background(), recipe, sourceDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "zlib-1.3"), outPath)

	trace, err := os.ReadFile(filepath.Join(outPath, "trace"))
	require.NoError(t, err)
	assert.Equal(t, "setup,build,install", string(trace))
}

func TestExecutor_Build_ExposesSourceDir(t *testing.T) {
	skipWithoutShell(t)

	sourceDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "main.c"), []byte("int main(){}"), 0o644))

	e := newExecutor(t, t.TempDir())
	recipe := &domain.Recipe{
		Name:    domain.NewInternedString("mylib"),
		Version: domain.NewInternedString("1.0"),
		Phases: domain.PhaseHooks{
			Build: []string{`cp "$ALLOY_SRC/main.c" "$ALLOY_OUT/main.c"`},
		},
	}

	outPath, err := e.Build(context.Background(), recipe, sourceDir)
	require.NoError(t, err)

	copied, err := os.ReadFile(filepath.Join(outPath, "main.c"))
	require.NoError(t, err)
	assert.Equal(t, "int main(){}", string(copied))
}

func TestExecutor_Build_RelativePaths(t *testing.T) {
	skipWithoutShell(t)

	// Relative source and artifact root resolve against the invocation
	// directory, not the hook's working directory.
	workDir := t.TempDir()
	t.Chdir(workDir)

	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "dist", "zlib"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "dist", "zlib", "zlib.c"), []byte("content"), 0o644))

	e := newExecutor(t, filepath.Join(".alloy", "artifacts"))
	recipe := &domain.Recipe{
		Name:    domain.NewInternedString("zlib"),
		Version: domain.NewInternedString("1.3"),
		Phases: domain.PhaseHooks{
			Build: []string{`cp "$ALLOY_SRC/zlib.c" "$ALLOY_OUT/zlib.c"`},
		},
	}

	outPath, err := e.Build(context.Background(), recipe, filepath.Join("dist", "zlib"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(outPath), "expected absolute artifact path, got %s", outPath)

	copied, err := os.ReadFile(filepath.Join(outPath, "zlib.c"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(copied))
}

func TestExecutor_Build_AbsoluteArtifactPath(t *testing.T) {
	skipWithoutShell(t)

	target := filepath.Join(t.TempDir(), "custom-out")
	e := newExecutor(t, t.TempDir())
	recipe := &domain.Recipe{
		Name:     domain.NewInternedString("zlib"),
		Version:  domain.NewInternedString("1.3"),
		Artifact: domain.ArtifactSpec{Kind: domain.ArtifactKindTree, Path: target},
	}

	outPath, err := e.Build(context.Background(), recipe, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, target, outPath)
}

func TestExecutor_Build_FailingHook(t *testing.T) {
	skipWithoutShell(t)

	e := newExecutor(t, t.TempDir())
	recipe := &domain.Recipe{
		Name:    domain.NewInternedString("broken"),
		Version: domain.NewInternedString("1.0"),
		Phases: domain.PhaseHooks{
			Build: []string{"exit 3"},
		},
	}

	_, err := e.Build(context.Background(), recipe, t.TempDir())
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	meta := zErr.Metadata()
	assert.Equal(t, "broken", meta["package"])
	assert.Equal(t, "build", meta["phase"])
	assert.Equal(t, "exit 3", meta["hook"])
	assert.Equal(t, 3, meta["exit_code"])
}

func TestExecutor_Build_CancelledContext(t *testing.T) {
	skipWithoutShell(t)

	e := newExecutor(t, t.TempDir())
	recipe := &domain.Recipe{
		Name:    domain.NewInternedString("slow"),
		Version: domain.NewInternedString("1.0"),
		Phases: domain.PhaseHooks{
			Build: []string{"sleep 30"},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Build(ctx, recipe, t.TempDir())
	require.Error(t, err)
}
