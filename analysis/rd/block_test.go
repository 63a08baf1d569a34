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

import "testing"

// buildChain builds a straight-line graph of n Noop nodes, n1 -> n2 -> ... -> nn.
func buildChain(g *Graph, n int) []*Node {
	nodes := make([]*Node, n)
	for i := 0; i < n; i++ {
		nodes[i] = g.Create(Noop)
	}
	for i := 0; i < n-1; i++ {
		_ = g.AddEdge(nodes[i].ID(), nodes[i+1].ID())
	}
	g.SetRoot(nodes[0])
	return nodes
}

func TestBuildBlocksStraightLineIsOneBlock(t *testing.T) {
	g := NewGraph()
	buildChain(g, 4)
	g.BuildBlocks()

	if len(g.blocks) != 1 {
		t.Fatalf("a straight-line chain should form a single block, got %d", len(g.blocks))
	}
	if len(g.blocks[0].nodes) != 4 {
		t.Fatalf("the single block should contain all 4 nodes, got %d", len(g.blocks[0].nodes))
	}
}

func TestBuildBlocksMergePointStartsNewBlock(t *testing.T) {
	g := NewGraph()
	root := g.Create(Noop)
	left := g.Create(Noop)
	right := g.Create(Noop)
	merge := g.Create(Phi)

	_ = g.AddEdge(root.ID(), left.ID())
	_ = g.AddEdge(root.ID(), right.ID())
	_ = g.AddEdge(left.ID(), merge.ID())
	_ = g.AddEdge(right.ID(), merge.ID())
	g.SetRoot(root)
	g.BuildBlocks()

	// root (1 succ-branch) + left + right + merge(PHI, forced boundary) = 4 blocks:
	// {root}, {left}, {right}, {merge}.
	if len(g.blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(g.blocks))
	}
	if merge.Block() == left.Block() || merge.Block() == right.Block() {
		t.Fatalf("the PHI node must start its own block")
	}
}

func TestBuildBlocksCallForcesBoundary(t *testing.T) {
	g := NewGraph()
	before := g.Create(Noop)
	call := g.Create(Call)
	after := g.Create(Noop)

	_ = g.AddEdge(before.ID(), call.ID())
	_ = g.AddEdge(call.ID(), after.ID())
	g.SetRoot(before)
	g.BuildBlocks()

	if call.Block() == before.Block() {
		t.Fatalf("a CALL node must start its own block")
	}
	if after.Block() == call.Block() {
		t.Fatalf("the node after a CALL must start its own block")
	}
}

func TestBlockPredsAndSuccs(t *testing.T) {
	g := NewGraph()
	root := g.Create(Noop)
	left := g.Create(Noop)
	right := g.Create(Noop)
	merge := g.Create(Phi)
	_ = g.AddEdge(root.ID(), left.ID())
	_ = g.AddEdge(root.ID(), right.ID())
	_ = g.AddEdge(left.ID(), merge.ID())
	_ = g.AddEdge(right.ID(), merge.ID())
	g.SetRoot(root)
	g.BuildBlocks()

	mb := merge.Block()
	if len(mb.Preds()) != 2 {
		t.Fatalf("merge block should have 2 predecessor blocks, got %d", len(mb.Preds()))
	}
	rb := root.Block()
	if len(rb.Succs()) != 2 {
		t.Fatalf("root block should have 2 successor blocks, got %d", len(rb.Succs()))
	}
}
