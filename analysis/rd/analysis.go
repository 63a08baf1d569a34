// Copyright The dg Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rd

import (
	"fmt"

	"github.com/davidhofman/dg/analysis/config"
	"github.com/davidhofman/dg/internal/funcutil"
	"github.com/davidhofman/dg/internal/graphutil"
	"golang.org/x/tools/container/intsets"
)

// Analysis drives the monotone work-list fixpoint computation of reaching definitions over a
// Graph. It holds nothing but configuration and a handle to the graph: all mutable state lives
// on the Graph's Nodes and Blocks, so an Analysis can be discarded and rebuilt cheaply.
type Analysis struct {
	graph *Graph
	opts  config.Options
	log   *config.LogGroup
}

// New builds an Analysis over g using cfg. cfg may be nil, in which case config.NewDefault() is
// used.
func New(g *Graph, cfg *config.Config) (*Analysis, error) {
	if g == nil {
		return nil, fmt.Errorf("rd: New: graph is nil")
	}
	if g.Root() == nil {
		return nil, fmt.Errorf("rd: New: graph has no root")
	}
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rd: New: %w", err)
	}
	return &Analysis{
		graph: g,
		opts:  cfg.Options,
		log:   config.NewLogGroup(cfg),
	}, nil
}

// transfer computes the reaching-definitions map after n executes, given the map at n's entry.
// in is not mutated; the result is a fresh map.
func (a *Analysis) transfer(n *Node, in *DefinitionsMap) *DefinitionsMap {
	out := in.Clone()
	for _, ds := range n.Defs.Slice() {
		out.Add(ds, n.id)
	}
	for _, ds := range n.Overwrites.Slice() {
		out.Update(ds, n.id)
	}
	if n.Type == Call && a.opts.OpaqueCallKillsAll && a.graph.node(n.Callee) == nil {
		// An opaque (unexpanded) call may write anywhere: approximate it as a weak write to
		// UnknownMemory's entire unknown range, rather than a strong kill, since we have no
		// basis for asserting the callee definitely overwrote any specific byte range.
		out.Add(NewDefSite(unknownMemoryID, UnknownOffset, UnknownOffset), n.id)
	}
	if (n.Type == Alloc || n.Type == DynAlloc) && !n.Defines(n.id, Off(0)) {
		// An allocation site defines the object it allocates, even if the front end never
		// recorded an explicit self-def: the memory did not exist before this node ran, so
		// reads of it reaching from outside the allocation's own node are never valid.
		out.Add(NewDefSite(n.id, Off(0), UnknownOffset), n.id)
	}
	return out
}

// mergeIn computes the reaching-definitions map at the entry of b, as the union of the cached
// OUT maps of all of b's predecessor blocks. A predecessor that has not been processed yet
// (cachedOut == nil) contributes nothing, which is sound: it is equivalent to starting from the
// bottom of the lattice (no known writers) and only growing from there as the work-list
// converges.
func (a *Analysis) mergeIn(b *Block) *DefinitionsMap {
	in := NewDefinitionsMap(a.opts.MaxSetSize, a.opts.StrongUpdateUnknownSize)
	for _, p := range b.preds {
		if pred := a.graph.blocks[p]; pred.cachedOut != nil {
			in.Merge(pred.cachedOut)
		}
	}
	return in
}

// processBlock recomputes b's reaching-definitions maps: it sets ReachingIn on every node in b
// and returns the map at the end of the block (b's new OUT).
func (a *Analysis) processBlock(b *Block) *DefinitionsMap {
	cur := a.mergeIn(b)
	for _, id := range b.nodes {
		n := a.graph.node(id)
		n.ReachingIn = cur
		cur = a.transfer(n, cur)
	}
	return cur
}

// iterationOrder returns block ids in an order intended to minimize the number of work-list
// re-visits: strongly connected components are computed over the block-level CFG with a generic
// Tarjan implementation and then visited in root-to-leaves order, the reverse of the
// leaves-to-root order StronglyConnectedComponents returns. Within one SCC (a loop) the order
// is whatever Tarjan's algorithm produced; the work-list still iterates to a fixpoint
// regardless, this only affects how many iterations that takes.
func (a *Analysis) iterationOrder() []int {
	ids := make([]int, len(a.graph.blocks))
	for i := range a.graph.blocks {
		ids[i] = i
	}
	sccs := graphutil.StronglyConnectedComponents(ids, func(v int) []int {
		return a.graph.blocks[v].succs
	})
	order := make([]int, 0, len(ids))
	for i := len(sccs) - 1; i >= 0; i-- {
		order = append(order, sccs[i]...)
	}
	return order
}

// Run executes the fixpoint computation to completion. It calls Graph.BuildBlocks first if that
// has not already been done. Run terminates because DefinitionsMap has a finite-height lattice
// (MaxSetSize bounds every writer set, and there are finitely many (target, interval) keys) and
// every mutator is monotone: OUT(b) can only grow, in the partial order "B1 <= B2 iff every
// writer set of B1 is a subset of the corresponding writer set of B2", across iterations.
func (a *Analysis) Run() error {
	if a.graph.blocks == nil {
		a.graph.BuildBlocks()
	}
	order := a.iterationOrder()
	a.log.Debugf("rd: starting fixpoint over %d blocks (%d nodes)", len(order), a.graph.NodeCount())

	queue := append([]int{}, order...)
	queued := make(map[int]bool, len(order))
	for _, id := range order {
		queued[id] = true
	}
	visited := make(map[int]bool, len(order))

	rounds := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		queued[id] = false
		rounds++

		b := a.graph.blocks[id]
		out := a.processBlock(b)
		changed := !visited[id] || b.cachedOut == nil || !out.Equal(b.cachedOut)
		visited[id] = true
		b.cachedOut = out

		a.log.Tracef("rd: block %d processed (changed=%v)", id, changed)
		if !changed {
			continue
		}
		for _, s := range b.succs {
			if !queued[s] {
				queue = append(queue, s)
				queued[s] = true
			}
		}
	}

	unreached := funcutil.Map(a.unreachedBlocks(visited), func(id int) string { return fmt.Sprintf("%d", id) })
	if len(unreached) > 0 {
		a.log.Warnf("rd: %d block(s) never reached by the work-list: %v", len(unreached), unreached)
	}
	a.log.Infof("rd: fixpoint reached after %d block visits", rounds)
	return nil
}

func (a *Analysis) unreachedBlocks(visited map[int]bool) []int {
	var out []int
	for i := range a.graph.blocks {
		if !visited[i] {
			out = append(out, i)
		}
	}
	return out
}

// Get collects the reaching definitions of [offset, offset+length) of target as observed at
// node n's entry (i.e. immediately before n executes), into out. Run must have completed first.
func (a *Analysis) Get(n *Node, target NodeID, offset, length Offset, out *intsets.Sparse) int {
	if n.ReachingIn == nil {
		return 0
	}
	return n.ReachingIn.Get(target, offset, length, out)
}
