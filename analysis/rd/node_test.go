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

func TestNodeAddDefWeakAndStrong(t *testing.T) {
	n := &Node{id: 1}
	n.AddDef(2, Off(0), Off(4), false)
	n.AddDef(2, Off(4), Off(4), true)

	if len(n.Defs) != 1 {
		t.Fatalf("expected one weak def, got %d", len(n.Defs))
	}
	if len(n.Overwrites) != 1 {
		t.Fatalf("expected one strong def, got %d", len(n.Overwrites))
	}
}

func TestNodeDefinesFiniteOffsetChecksBothSets(t *testing.T) {
	n := &Node{id: 1}
	n.AddDef(2, Off(0), Off(4), false)
	n.AddDef(2, Off(8), Off(4), true)

	if !n.Defines(2, Off(2)) {
		t.Fatalf("n should define target 2 at offset 2 (weak)")
	}
	if !n.Defines(2, Off(10)) {
		t.Fatalf("n should define target 2 at offset 10 (strong)")
	}
	if n.Defines(2, Off(100)) {
		t.Fatalf("n should not define target 2 at offset 100")
	}
	if n.Defines(3, Off(2)) {
		t.Fatalf("n should not define target 3")
	}
}

// TestNodeDefinesUnknownOffsetIgnoresOverwrites exercises the documented asymmetry in
// Node.Defines (Open Question 1): a query with an unknown offset is answered only by Defs
// (weak writes), never by Overwrites (strong writes), even when a strong write on the same
// target exists.
func TestNodeDefinesUnknownOffsetIgnoresOverwrites(t *testing.T) {
	n := &Node{id: 1}
	n.AddDef(2, Off(8), Off(4), true) // strong only

	if n.Defines(2, UnknownOffset) {
		t.Fatalf("an unknown-offset query must not be answered by a strong-only def site")
	}

	n.AddDef(2, Off(0), Off(4), false) // now also weak
	if !n.Defines(2, UnknownOffset) {
		t.Fatalf("an unknown-offset query must be answered once a weak def site exists")
	}
}

// TestNodeGetOverwritesReturnsOverwrites exercises Open Question 2: the original header's
// getOverwrites() actually returns the defs field, a documented bug. This implementation
// returns the correct field.
func TestNodeGetOverwritesReturnsOverwrites(t *testing.T) {
	n := &Node{id: 1}
	n.AddDef(2, Off(0), Off(4), false)
	n.AddDef(2, Off(8), Off(4), true)

	ow := n.GetOverwrites()
	if len(ow) != 1 {
		t.Fatalf("GetOverwrites() should return exactly the strong def sites, got %d entries", len(ow))
	}
	if !ow.Contains(NewDefSite(2, Off(8), Off(4))) {
		t.Fatalf("GetOverwrites() should contain the strong def site")
	}
}

func TestNodeUsesUnknown(t *testing.T) {
	n := &Node{id: 1}
	if n.UsesUnknown() {
		t.Fatalf("node with no uses should not use unknown")
	}
	n.AddUse(unknownMemoryID, Off(0), UnknownOffset)
	if !n.UsesUnknown() {
		t.Fatalf("node should use unknown after AddUse(unknownMemoryID, ...)")
	}
}

func TestSentinelsAreDistinctAndIdentified(t *testing.T) {
	if !UnknownMemory.IsUnknown() {
		t.Fatalf("UnknownMemory.IsUnknown() should be true")
	}
	if NullPtr.IsUnknown() {
		t.Fatalf("NullPtr.IsUnknown() should be false")
	}
	for _, id := range []NodeID{UnknownMemory.ID(), NullPtr.ID(), Invalidated.ID()} {
		if !IsSentinel(id) {
			t.Fatalf("IsSentinel(%d) should be true", id)
		}
	}
	if IsSentinel(1) {
		t.Fatalf("IsSentinel(1) should be false: 1 is a valid Graph.Create id")
	}
}
