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

func TestStatsStraightLine(t *testing.T) {
	g := NewGraph()
	buildChain(g, 3)
	g.BuildBlocks()

	s := g.Stats()
	if s.NodeCount != 3 {
		t.Fatalf("NodeCount = %d, want 3", s.NodeCount)
	}
	if s.BlockCount != 1 {
		t.Fatalf("BlockCount = %d, want 1", s.BlockCount)
	}
	if s.ReachableBlocks != 1 {
		t.Fatalf("ReachableBlocks = %d, want 1", s.ReachableBlocks)
	}
	if s.LoopCount != 0 {
		t.Fatalf("LoopCount = %d, want 0", s.LoopCount)
	}
}

func TestStatsLoopIsCounted(t *testing.T) {
	g := NewGraph()
	pre := g.Create(Noop)
	header := g.Create(Phi)
	body := g.Create(Noop)
	_ = g.AddEdge(pre.ID(), header.ID())
	_ = g.AddEdge(header.ID(), body.ID())
	_ = g.AddEdge(body.ID(), header.ID())
	g.SetRoot(pre)
	g.BuildBlocks()

	s := g.Stats()
	if s.LoopCount != 1 {
		t.Fatalf("LoopCount = %d, want 1", s.LoopCount)
	}
}
