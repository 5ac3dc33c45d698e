package resolver

import (
	"context"
	"errors"
	"slices"

	"go.trai.ch/alloy/internal/core/domain"
)

type result struct {
	name     domain.InternedString
	status   domain.NodeStatus
	artifact *domain.Artifact
	err      error
}

// runState is the node-state table for one resolution pass: in-degrees,
// the lexically sorted ready queue, and the results channel. All state
// mutation happens on the scheduling goroutine; workers only send results.
type runState struct {
	r           *Resolver
	ctx         context.Context
	lock        *domain.Lock
	graph       *domain.Graph
	nodes       map[domain.InternedString]*domain.BuildNode
	inDegree    map[domain.InternedString]int
	ready       []domain.InternedString
	active      int
	resultsCh   chan result
	parallelism int
}

func (r *Resolver) newRunState(
	ctx context.Context,
	lock *domain.Lock,
	graph *domain.Graph,
	nodes map[domain.InternedString]*domain.BuildNode,
	parallelism int,
) *runState {
	state := &runState{
		r:           r,
		ctx:         ctx,
		lock:        lock,
		graph:       graph,
		nodes:       nodes,
		inDegree:    make(map[domain.InternedString]int, len(nodes)),
		resultsCh:   make(chan result, parallelism),
		parallelism: parallelism,
	}

	for recipe := range graph.Walk() {
		state.inDegree[recipe.Name] = len(recipe.Inputs)
	}

	// Editable nodes are already built and satisfy their dependents up
	// front, whatever their own in-degree. Nodes that failed during
	// injection satisfy nothing, so their dependents cascade after the
	// loop.
	for recipe := range graph.Walk() {
		if nodes[recipe.Name].Status == domain.StatusBuilt {
			for _, dep := range graph.Dependents(recipe.Name) {
				state.inDegree[dep]--
			}
		}
	}

	// Seed the ready queue in lexical order.
	for recipe := range graph.Walk() {
		name := recipe.Name
		if nodes[name].Status == domain.StatusPending && state.inDegree[name] == 0 {
			state.ready = insertReady(state.ready, name)
		}
	}

	return state
}

// run executes the scheduling loop until no node is ready or active, then
// settles cascaded failures.
func (s *runState) run() error {
	for !s.isDone() {
		s.schedule()

		if s.isDone() {
			break
		}

		if s.ctx.Err() != nil {
			// Nothing new schedules after cancellation; wait for the
			// in-flight builds to report instead of selecting on the
			// closed Done channel.
			for s.active > 0 {
				s.handleResult(<-s.resultsCh)
			}
			break
		}

		select {
		case res := <-s.resultsCh:
			s.handleResult(res)
		case <-s.ctx.Done():
		}
	}

	s.cascadePending()

	errs := joinFailures(s.nodes, s.orderedNames())
	if s.ctx.Err() != nil {
		errs = errors.Join(errs, s.ctx.Err())
	}
	return errs
}

func (s *runState) isDone() bool {
	return s.active == 0 && len(s.ready) == 0
}

// schedule starts builds for ready nodes up to the parallelism bound.
// Ties between simultaneously eligible nodes break lexically, so two runs
// over identical inputs build and report in the same order.
func (s *runState) schedule() {
	for len(s.ready) > 0 && s.active < s.parallelism && s.ctx.Err() == nil {
		name := s.ready[0]
		s.ready = s.ready[1:]

		node := s.nodes[name]
		entry := s.lock.Entries[name.String()]

		s.active++
		node.Status = domain.StatusBuilding
		s.r.updateStatus(name, domain.StatusBuilding)

		go func(node *domain.BuildNode, entry domain.LockEntry) {
			s.resultsCh <- s.r.executeNode(s.ctx, node, entry)
		}(node, entry)
	}
}

func (s *runState) handleResult(res result) {
	s.active--
	node := s.nodes[res.name]
	node.Status = res.status
	node.Artifact = res.artifact
	node.Err = res.err
	s.r.updateStatus(res.name, res.status)

	// A failed node releases nothing: its dependents are never scheduled
	// and settle as cascaded failures after the loop.
	if res.err == nil {
		s.releaseDependents(res.name)
	}
}

// releaseDependents decrements each dependent's in-degree and readies
// those whose inputs are now all satisfied.
func (s *runState) releaseDependents(name domain.InternedString) {
	for _, dep := range s.graph.Dependents(name) {
		s.inDegree[dep]--
		if s.inDegree[dep] == 0 && s.nodes[dep].Status == domain.StatusPending {
			s.ready = insertReady(s.ready, dep)
		}
	}
}

// cascadePending marks every node still pending after the loop as a
// cascaded failure: a transitive dependency failed, so it was never
// scheduled, as opposed to interrupted.
func (s *runState) cascadePending() {
	for _, name := range s.orderedNames() {
		node := s.nodes[name]
		if node.Status != domain.StatusPending {
			continue
		}
		node.Status = domain.StatusFailed
		node.Cascaded = true
		s.r.updateStatus(name, domain.StatusFailed)
	}
}

// orderedNames returns all node names in execution order.
func (s *runState) orderedNames() []domain.InternedString {
	names := make([]domain.InternedString, 0, len(s.nodes))
	for recipe := range s.graph.Walk() {
		names = append(names, recipe.Name)
	}
	return names
}

// insertReady inserts a name into the lexically sorted ready queue.
func insertReady(ready []domain.InternedString, name domain.InternedString) []domain.InternedString {
	i, _ := slices.BinarySearchFunc(ready, name, func(a, b domain.InternedString) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		default:
			return 0
		}
	})
	return slices.Insert(ready, i, name)
}
