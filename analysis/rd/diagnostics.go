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
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/traverse"

	ybgraph "github.com/yourbasic/graph"
)

// blockGraph is a thin read-only adapter presenting a Graph's block-level CFG through gonum's
// graph.Directed interface. It exists purely so diagnostics can reuse gonum's traversal
// algorithms instead of hand-rolling them.
type blockGraph struct {
	g *Graph
}

type blockNode int64

func (n blockNode) ID() int64 { return int64(n) }

// blockNodes implements graph.Nodes over a fixed slice of block ids.
type blockNodes struct {
	ids []int64
	cur int
}

func newBlockNodes(ids []int64) *blockNodes { return &blockNodes{ids: ids, cur: -1} }

func (n *blockNodes) Next() bool {
	if n.cur+1 < len(n.ids) {
		n.cur++
		return true
	}
	return false
}
func (n *blockNodes) Len() int           { return len(n.ids) - n.cur - 1 }
func (n *blockNodes) Reset()             { n.cur = -1 }
func (n *blockNodes) Node() graph.Node   { return blockNode(n.ids[n.cur]) }

func (bg blockGraph) Node(id int64) graph.Node {
	if int(id) < 0 || int(id) >= len(bg.g.blocks) {
		return nil
	}
	return blockNode(id)
}

func (bg blockGraph) Nodes() graph.Nodes {
	ids := make([]int64, len(bg.g.blocks))
	for i := range bg.g.blocks {
		ids[i] = int64(i)
	}
	return newBlockNodes(ids)
}

func (bg blockGraph) From(id int64) graph.Nodes {
	if int(id) < 0 || int(id) >= len(bg.g.blocks) {
		return newBlockNodes(nil)
	}
	succs := bg.g.blocks[id].succs
	ids := make([]int64, len(succs))
	for i, s := range succs {
		ids[i] = int64(s)
	}
	return newBlockNodes(ids)
}

func (bg blockGraph) HasEdgeBetween(xid, yid int64) bool {
	return bg.HasEdgeFromTo(xid, yid) || bg.HasEdgeFromTo(yid, xid)
}

func (bg blockGraph) HasEdgeFromTo(uid, vid int64) bool {
	if int(uid) < 0 || int(uid) >= len(bg.g.blocks) {
		return false
	}
	for _, s := range bg.g.blocks[uid].succs {
		if int64(s) == vid {
			return true
		}
	}
	return false
}

func (bg blockGraph) To(id int64) graph.Nodes {
	if int(id) < 0 || int(id) >= len(bg.g.blocks) {
		return newBlockNodes(nil)
	}
	preds := bg.g.blocks[id].preds
	ids := make([]int64, len(preds))
	for i, p := range preds {
		ids[i] = int64(p)
	}
	return newBlockNodes(ids)
}

func (bg blockGraph) Edge(uid, vid int64) graph.Edge {
	if !bg.HasEdgeFromTo(uid, vid) {
		return nil
	}
	return blockEdge{from: blockNode(uid), to: blockNode(vid)}
}

type blockEdge struct{ from, to blockNode }

func (e blockEdge) From() graph.Node         { return e.from }
func (e blockEdge) To() graph.Node           { return e.to }
func (e blockEdge) ReversedEdge() graph.Edge { return blockEdge{from: e.to, to: e.from} }

// Stats summarizes the shape of a Graph's block-level CFG: block/node counts, how many blocks
// a breadth-first walk reaches from the root's block, and how many loops it contains (strongly
// connected components of more than one block, plus single blocks with a self-edge, including
// JOIN/FORK back-edges from concurrent code). It is purely diagnostic — nothing in the driver depends on its output — and is
// meant for tools built on top of this package to report on the graphs they analyze.
type Stats struct {
	NodeCount      int
	BlockCount     int
	ReachableBlocks int
	LoopCount      int
}

// Stats computes diagnostic statistics for g. BuildBlocks must have been called first.
func (g *Graph) Stats() Stats {
	bg := blockGraph{g: g}
	reached := map[int64]bool{}
	bfs := traverse.BreadthFirst{}
	if root := g.Root(); root != nil && root.block != nil {
		bfs.Walk(bg, blockNode(root.block.id), func(n graph.Node, depth int) bool {
			reached[n.ID()] = true
			return false
		})
	}

	loops := 0
	if len(g.blocks) > 0 {
		iter := blockIterator{g: g}
		for _, comp := range ybgraph.StrongComponents(iter) {
			if len(comp) > 1 {
				loops++
				continue
			}
			for _, s := range g.blocks[comp[0]].succs {
				if s == comp[0] {
					loops++
					break
				}
			}
		}
	}

	return Stats{
		NodeCount:       len(g.nodes),
		BlockCount:      len(g.blocks),
		ReachableBlocks: len(reached),
		LoopCount:       loops,
	}
}

// blockIterator adapts a Graph's block-level CFG to github.com/yourbasic/graph's Iterator
// interface (Order/Visit), so graph.StrongComponents can find loops without a second graph
// representation.
type blockIterator struct{ g *Graph }

func (it blockIterator) Order() int { return len(it.g.blocks) }

func (it blockIterator) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if v < 0 || v >= len(it.g.blocks) {
		return false
	}
	for _, w := range it.g.blocks[v].succs {
		if do(w, 1) {
			return true
		}
	}
	return false
}
