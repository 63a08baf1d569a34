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

func TestGraphCreateAssignsIncreasingIDs(t *testing.T) {
	g := NewGraph()
	a := g.Create(Alloc)
	b := g.Create(Store)
	if a.ID() == b.ID() {
		t.Fatalf("distinct nodes should get distinct ids")
	}
	if a.ID() < 1 || b.ID() < 1 {
		t.Fatalf("node ids should start at 1, got %d and %d", a.ID(), b.ID())
	}
}

func TestGraphAddEdgeLinksPredsAndSuccs(t *testing.T) {
	g := NewGraph()
	a := g.Create(Alloc)
	b := g.Create(Store)
	if err := g.AddEdge(a.ID(), b.ID()); err != nil {
		t.Fatalf("AddEdge failed: %v", err)
	}
	if len(a.Succs) != 1 || a.Succs[0] != b.ID() {
		t.Fatalf("a.Succs should contain b, got %v", a.Succs)
	}
	if len(b.Preds) != 1 || b.Preds[0] != a.ID() {
		t.Fatalf("b.Preds should contain a, got %v", b.Preds)
	}
}

func TestGraphAddEdgeUnknownNode(t *testing.T) {
	g := NewGraph()
	a := g.Create(Alloc)
	if err := g.AddEdge(a.ID(), 999); err == nil {
		t.Fatalf("AddEdge to an unknown node should fail")
	}
}

func TestGraphRoot(t *testing.T) {
	g := NewGraph()
	a := g.Create(Alloc)
	g.SetRoot(a)
	if g.Root() != a {
		t.Fatalf("Root() should return the node passed to SetRoot")
	}
}

func TestGraphExpandCallWiresCalleeAndExits(t *testing.T) {
	g := NewGraph()
	call := g.Create(Call)
	entry := g.Create(Noop)
	ret1 := g.Create(Return)
	ret2 := g.Create(Return)
	callReturn := g.Create(CallReturn)

	if err := g.ExpandCall(call, entry, callReturn, ret1, ret2); err != nil {
		t.Fatalf("ExpandCall: %v", err)
	}

	if call.Callee != entry.ID() {
		t.Fatalf("call.Callee should be the callee entry, got %d", call.Callee)
	}
	if len(call.Exits) != 2 || call.Exits[0] != ret1.ID() || call.Exits[1] != ret2.ID() {
		t.Fatalf("call.Exits should record both return nodes, got %v", call.Exits)
	}
	if len(call.Succs) != 1 || call.Succs[0] != entry.ID() {
		t.Fatalf("call should have an edge to the callee entry, got %v", call.Succs)
	}
	if len(callReturn.Preds) != 2 {
		t.Fatalf("callReturn should have an edge from every exit, got %v", callReturn.Preds)
	}
}

func TestGraphExpandCallRejectsWrongNodeTypes(t *testing.T) {
	g := NewGraph()
	notACall := g.Create(Store)
	entry := g.Create(Noop)
	callReturn := g.Create(CallReturn)
	if err := g.ExpandCall(notACall, entry, callReturn); err == nil {
		t.Fatalf("ExpandCall should reject a non-CALL call node")
	}

	call := g.Create(Call)
	notACallReturn := g.Create(Noop)
	if err := g.ExpandCall(call, entry, notACallReturn); err == nil {
		t.Fatalf("ExpandCall should reject a non-CALL_RETURN callReturn node")
	}
}
