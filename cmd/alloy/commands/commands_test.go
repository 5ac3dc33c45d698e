package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.trai.ch/alloy/cmd/alloy/commands"
	"go.trai.ch/alloy/internal/adapters/telemetry"
	"go.trai.ch/alloy/internal/app"
	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/alloy/internal/core/ports/mocks"
	"go.trai.ch/alloy/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

type cliFixture struct {
	cli       *commands.CLI
	manifests *mocks.MockManifestLoader
	locks     *mocks.MockLockLoader
	catalogs  *mocks.MockCatalogLoader
	fetcher   *mocks.MockSourceFetcher
	executor  *mocks.MockBuildExecutor
	store     *mocks.MockBuildRecordStore
}

func newCLIFixture(ctrl *gomock.Controller) *cliFixture {
	manifests := mocks.NewMockManifestLoader(ctrl)
	locks := mocks.NewMockLockLoader(ctrl)
	catalogs := mocks.NewMockCatalogLoader(ctrl)
	fetcher := mocks.NewMockSourceFetcher(ctrl)
	executor := mocks.NewMockBuildExecutor(ctrl)
	store := mocks.NewMockBuildRecordStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	res := resolver.NewResolver(fetcher, executor, store, telemetry.NewNoOp(), logger)
	a := app.New(manifests, locks, catalogs, fetcher, res, logger)

	return &cliFixture{
		cli:       commands.New(a),
		manifests: manifests,
		locks:     locks,
		catalogs:  catalogs,
		fetcher:   fetcher,
		executor:  executor,
		store:     store,
	}
}

func TestCompose_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCLIFixture(ctrl)

	lock := &domain.Lock{
		Version: 1,
		Entries: map[string]domain.LockEntry{
			"zlib": {
				Name:    domain.NewInternedString("zlib"),
				Version: domain.NewInternedString("1.3"),
				Source:  "/dist/zlib",
			},
		},
	}
	catalog, err := domain.NewCatalog([]domain.Recipe{{
		Name:    domain.NewInternedString("zlib"),
		Version: domain.NewInternedString("1.3"),
		Phases:  domain.PhaseHooks{Build: []string{"make"}},
	}})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	f.manifests.EXPECT().Load("alloy.yaml").Return(&domain.Manifest{}, nil).Times(1)
	f.locks.EXPECT().Load("alloy.lock.yaml").Return(lock, nil).Times(1)
	f.catalogs.EXPECT().Load("catalog.yaml").Return(catalog, nil).Times(1)
	f.fetcher.EXPECT().Prefetch(gomock.Any(), lock, gomock.Any()).Return(nil).Times(1)
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return("/src/zlib", nil).Times(1)
	f.store.EXPECT().Get(gomock.Any()).Return(nil, nil).Times(1)
	f.executor.EXPECT().Build(gomock.Any(), gomock.Any(), "/src/zlib").Return("/store/zlib-1.3", nil).Times(1)
	f.store.EXPECT().Put(gomock.Any()).Return(nil).Times(1)

	output := filepath.Join(t.TempDir(), "alloy.env")
	f.cli.SetArgs([]string{"compose", "-o", output})

	if err := f.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("expected closure file to exist: %v", err)
	}
	if !strings.Contains(string(data), "zlib, 1.3, /store/zlib-1.3") {
		t.Errorf("unexpected closure content: %s", data)
	}
}

func TestCompose_ManifestLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCLIFixture(ctrl)
	f.manifests.EXPECT().Load(gomock.Any()).Return(nil, errors.New("corrupt manifest")).Times(1)

	f.cli.SetArgs([]string{"compose"})
	err := f.cli.Execute(context.Background())
	if err == nil {
		t.Error("expected error from failed manifest load, got nil")
	}
}

func TestCompose_RejectsPositionalArgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCLIFixture(ctrl)
	f.cli.SetArgs([]string{"compose", "unexpected"})

	if err := f.cli.Execute(context.Background()); err == nil {
		t.Error("expected error for positional arguments, got nil")
	}
}

func TestRoot_Help(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCLIFixture(ctrl)
	f.cli.SetArgs([]string{"--help"})

	if err := f.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error for help, got: %v", err)
	}
}

func TestVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCLIFixture(ctrl)
	f.cli.SetArgs([]string{"version"})

	if err := f.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error for version, got: %v", err)
	}
}
