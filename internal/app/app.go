// Package app implements the application layer for alloy.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/alloy/internal/core/ports"
	"go.trai.ch/alloy/internal/engine/editable"
	"go.trai.ch/alloy/internal/engine/overrides"
	"go.trai.ch/alloy/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App orchestrates one synthesis invocation: load the manifest, lock, and
// catalog, compose the override registry and editable injector, resolve,
// and persist the closure.
type App struct {
	manifests ports.ManifestLoader
	locks     ports.LockLoader
	catalogs  ports.CatalogLoader
	fetcher   ports.SourceFetcher
	resolver  *resolver.Resolver
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	locks ports.LockLoader,
	catalogs ports.CatalogLoader,
	fetcher ports.SourceFetcher,
	res *resolver.Resolver,
	logger ports.Logger,
) *App {
	return &App{
		manifests: manifests,
		locks:     locks,
		catalogs:  catalogs,
		fetcher:   fetcher,
		resolver:  res,
		logger:    logger,
	}
}

// ComposeOptions configures one synthesis invocation.
type ComposeOptions struct {
	ManifestPath string
	LockPath     string
	CatalogPath  string
	OutputPath   string
	Parallelism  int

	// Layers are caller-supplied extension layers, applied after the
	// manifest's declarative layers in the given order.
	Layers []overrides.Layer
}

// Compose synthesizes the environment closure and writes its on-disk
// representation to the output path.
func (a *App) Compose(ctx context.Context, opts ComposeOptions) error {
	manifest, err := a.manifests.Load(opts.ManifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	lock, err := a.locks.Load(opts.LockPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load lock description")
	}

	catalog, err := a.catalogs.Load(opts.CatalogPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load recipe catalog")
	}

	registry := overrides.NewRegistry()
	for _, patchLayer := range manifest.Overrides {
		registry = registry.Extend(overrides.CompileLayer(patchLayer))
	}
	for _, layer := range opts.Layers {
		registry = registry.Extend(layer)
	}

	injector := editable.NewInjector(manifest.Editables)

	// Editable packages have no fetch; everything else is verified up
	// front so hash mismatches surface before any build starts.
	if err := a.fetcher.Prefetch(ctx, lock, manifest.Editables); err != nil {
		return zerr.Wrap(err, "source prefetch failed")
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	env, err := a.resolver.Resolve(ctx, lock, catalog, registry, injector, parallelism)
	if err != nil {
		return err
	}

	if err := a.writeClosure(env, opts.OutputPath); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("composed %d packages, closure %s", env.Len(), env.ID()[:12]))
	return nil
}

func (a *App) writeClosure(env *domain.Environment, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return zerr.Wrap(err, "failed to create output directory")
		}
	}

	file, err := os.Create(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.Wrap(err, "failed to create closure file")
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	if err := env.Render(file); err != nil {
		return err
	}
	return file.Sync()
}
