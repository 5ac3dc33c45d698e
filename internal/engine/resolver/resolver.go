// Package resolver assembles the build graph from the lock description,
// the recipe catalog, the override registry, and the editable injector,
// and materializes it into a composed environment.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/alloy/internal/core/ports"
	"go.trai.ch/alloy/internal/engine/composer"
	"go.trai.ch/alloy/internal/engine/editable"
	"go.trai.ch/alloy/internal/engine/overrides"
	"go.trai.ch/zerr"
)

// Resolver drives one resolution pass: node construction, graph
// validation, concurrent building with memoization, and composition.
type Resolver struct {
	fetcher   ports.SourceFetcher
	executor  ports.BuildExecutor
	store     ports.BuildRecordStore
	telemetry ports.Telemetry
	logger    ports.Logger

	mu     sync.RWMutex
	status map[domain.InternedString]domain.NodeStatus
}

// NewResolver creates a new Resolver wired to its collaborators.
func NewResolver(
	fetcher ports.SourceFetcher,
	executor ports.BuildExecutor,
	store ports.BuildRecordStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Resolver {
	return &Resolver{
		fetcher:   fetcher,
		executor:  executor,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
		status:    make(map[domain.InternedString]domain.NodeStatus),
	}
}

// Status returns the last observed status for a package.
func (r *Resolver) Status(name domain.InternedString) domain.NodeStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status[name]
}

func (r *Resolver) updateStatus(name domain.InternedString, status domain.NodeStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[name] = status
}

// Resolve materializes the lock description into a composed environment.
//
// Per lock entry, the default recipe flows through the override registry
// and the editable injector into one build node. The node graph is
// validated (unresolved inputs, cycles), then executed with at most
// parallelism concurrent builds. Editable nodes resolve synchronously and
// contribute no concurrency cost. On any failure the composed environment
// is withheld and the returned error distinguishes root causes from
// cascaded, never-scheduled nodes.
func (r *Resolver) Resolve(
	ctx context.Context,
	lock *domain.Lock,
	catalog *domain.Catalog,
	registry *overrides.Registry,
	injector *editable.Injector,
	parallelism int,
) (*domain.Environment, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	nodes, err := r.buildNodes(lock, catalog, registry, injector)
	if err != nil {
		return nil, err
	}

	graph, err := buildGraph(nodes)
	if err != nil {
		return nil, err
	}

	state := r.newRunState(ctx, lock, graph, nodes, parallelism)
	if err := state.run(); err != nil {
		return nil, err
	}

	artifacts := make([]domain.Artifact, 0, len(nodes))
	for recipe := range graph.Walk() {
		artifacts = append(artifacts, *nodes[recipe.Name].Artifact)
	}
	return composer.Compose(artifacts)
}

// buildNodes constructs one build node per lock entry: catalog default,
// override layering, editable injection. Catalog misses and override
// conflicts abort the pass; a missing editable path fails only its own
// node and cascades during scheduling.
func (r *Resolver) buildNodes(
	lock *domain.Lock,
	catalog *domain.Catalog,
	registry *overrides.Registry,
	injector *editable.Injector,
) (map[domain.InternedString]*domain.BuildNode, error) {
	nodes := make(map[domain.InternedString]*domain.BuildNode, len(lock.Entries))

	for _, name := range lock.Names() {
		entry := lock.Entries[name]

		base, err := catalog.Lookup(entry.Name.String(), entry.Version.String())
		if err != nil {
			return nil, err
		}

		resolved, err := registry.Resolve(entry.Name.String(), entry.Version.String(), base)
		if err != nil {
			return nil, err
		}

		node := &domain.BuildNode{
			Recipe: resolved,
			Status: domain.StatusPending,
		}
		if err := injector.Apply(node); err != nil {
			node.Status = domain.StatusFailed
			node.Err = err
		}

		nodes[entry.Name] = node
		r.updateStatus(entry.Name, node.Status)
	}

	return nodes, nil
}

// buildGraph assembles and validates the dependency graph over the
// resolved recipes.
func buildGraph(nodes map[domain.InternedString]*domain.BuildNode) (*domain.Graph, error) {
	graph := domain.NewGraph()
	for _, node := range nodes {
		if err := graph.AddRecipe(node.Recipe); err != nil {
			return nil, err
		}
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

// executeNode builds one node, consulting the build record store first.
// At most one build happens per distinct resolved recipe; a prior record
// with the same (name, version, recipe hash) key is reused verbatim.
func (r *Resolver) executeNode(ctx context.Context, node *domain.BuildNode, entry domain.LockEntry) result {
	name := node.Name()
	label := fmt.Sprintf("%s@%s", name.String(), node.Recipe.Version.String())

	vctx, vertex := r.telemetry.Record(ctx, label)

	key := domain.CacheKey(node.Recipe)
	if record, err := r.store.Get(key); err == nil && record != nil {
		vertex.Cached()
		vertex.Complete(nil)
		return result{
			name:   name,
			status: domain.StatusCached,
			artifact: &domain.Artifact{
				Name:    node.Recipe.Name,
				Version: node.Recipe.Version,
				Path:    record.ArtifactPath,
			},
		}
	}

	sourceDir, err := r.fetcher.Fetch(vctx, entry)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to fetch source"), "package", name.String())
		vertex.Complete(err)
		return result{name: name, status: domain.StatusFailed, err: err}
	}

	artifactPath, err := r.executor.Build(vctx, &node.Recipe, sourceDir)
	if err != nil {
		err = zerr.With(zerr.Wrap(errors.Join(domain.ErrBuildFailed, err), ""), "package", name.String())
		vertex.Complete(err)
		return result{name: name, status: domain.StatusFailed, err: err}
	}

	record := domain.BuildRecord{
		Key:          key,
		Name:         name.String(),
		Version:      node.Recipe.Version.String(),
		RecipeHash:   domain.RecipeHash(node.Recipe),
		ArtifactPath: artifactPath,
		Timestamp:    time.Now(),
	}
	if err := r.store.Put(record); err != nil {
		// Cache write is not critical for this pass.
		r.logger.Warn("failed to persist build record for " + label)
	}

	vertex.Complete(nil)
	return result{
		name:   name,
		status: domain.StatusBuilt,
		artifact: &domain.Artifact{
			Name:    node.Recipe.Name,
			Version: node.Recipe.Version,
			Path:    artifactPath,
		},
	}
}

// joinFailures assembles the pass error: root causes joined in lexical
// order, cascaded nodes reported separately so callers can tell which
// packages failed on their own and which were never built.
func joinFailures(nodes map[domain.InternedString]*domain.BuildNode, order []domain.InternedString) error {
	var errs error
	var cascaded []string

	for _, name := range order {
		node := nodes[name]
		if node.Status != domain.StatusFailed {
			continue
		}
		if node.Cascaded {
			cascaded = append(cascaded, name.String())
			continue
		}
		errs = errors.Join(errs, node.Err)
	}

	if errs != nil && len(cascaded) > 0 {
		cascadeErr := zerr.New("packages not built due to failed dependencies")
		errs = errors.Join(errs, zerr.With(cascadeErr, "cascaded", cascaded))
	}
	return errs
}
