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

// NodeType classifies the operation a Node represents. The driver's transfer function
// (analysis.go) tests this single enum rather than dispatching through a subclass hierarchy: cache-friendly, and it avoids a virtual call per node, matching the
// original implementation's design.
type NodeType int

const (
	// None is the type of invalid or sentinel nodes (e.g. UnknownMemory).
	None NodeType = iota
	// Alloc marks a static memory allocation site.
	Alloc
	// DynAlloc marks a dynamic (e.g. heap) allocation site.
	DynAlloc
	// Store writes memory.
	Store
	// Load reads memory.
	Load
	// Phi merges reaching-definitions information from several predecessors.
	Phi
	// Return returns from the current subgraph.
	Return
	// Call represents a call site.
	Call
	// CallReturn represents the point of return from a Call, in the caller.
	CallReturn
	// Fork spawns a concurrent thread of execution.
	Fork
	// Join waits for one or more forked threads.
	Join
	// Noop is a dummy node with identity transfer.
	Noop
)

// String names the node type for diagnostics.
func (t NodeType) String() string {
	switch t {
	case None:
		return "NONE"
	case Alloc:
		return "ALLOC"
	case DynAlloc:
		return "DYN_ALLOC"
	case Store:
		return "STORE"
	case Load:
		return "LOAD"
	case Phi:
		return "PHI"
	case Return:
		return "RETURN"
	case Call:
		return "CALL"
	case CallReturn:
		return "CALL_RETURN"
	case Fork:
		return "FORK"
	case Join:
		return "JOIN"
	case Noop:
		return "NOOP"
	default:
		return "?"
	}
}

// Node is one vertex of the reaching-definitions graph: a typed operation with local
// defs/overwrites/uses sets, CFG links to other nodes (by id, resolved through the owning
// Graph), and the reaching-definitions map computed by the analysis driver at this node's
// entry.
type Node struct {
	id   NodeID
	Type NodeType

	// Defs are weak (may-)writes performed by this node.
	Defs DefSiteSet
	// Overwrites are strong (must-)writes performed by this node: they kill any prior
	// writer of the same byte range.
	Overwrites DefSiteSet
	// Uses are the reads performed by this node, driving downstream DU-edge construction
	// (out of scope here: this engine computes the reaching-definitions map, not the edges).
	Uses DefSiteSet

	// Preds and Succs are the CFG predecessor/successor node ids. Fork nodes have a
	// sequential successor plus one successor per spawned thread entry; Join nodes have a
	// sequential predecessor plus one predecessor per joined thread exit.
	Preds []NodeID
	Succs []NodeID

	// Callee/Exits describe a CALL node's expanded subgraph: Callee is the subgraph's
	// entry node id, Exits are its RETURN node ids. Set together by Graph.ExpandCall, which
	// also adds the matching CFG edges; both are zero-valued (unset) for an opaque call,
	// i.e. a call to a callee the front-end did not expand.
	Callee NodeID
	Exits  []NodeID

	// ReachingIn is the reaching-definitions map computed at this node's entry. It starts
	// out empty and only grows (per-target, per-interval writer-set inclusion) across
	// fixpoint iterations.
	ReachingIn *DefinitionsMap

	block *Block
}

// ID returns the node's unique identifier within its Graph.
func (n *Node) ID() NodeID { return n.id }

// IsUnknown reports whether n is the UnknownMemory sentinel.
func (n *Node) IsUnknown() bool { return n.id == unknownMemoryID }

// Block returns the block n was assigned to by Graph.BuildBlocks, or nil before blocks have
// been built.
func (n *Node) Block() *Block { return n.block }

// AddDef registers that n writes [off, off+length) of target. If strong is true the write is
// a must-define (added to Overwrites); otherwise it is a may-define (added to Defs).
func (n *Node) AddDef(target NodeID, off, length Offset, strong bool) {
	ds := NewDefSite(target, off, length)
	if strong {
		if n.Overwrites == nil {
			n.Overwrites = DefSiteSet{}
		}
		n.Overwrites.Add(ds)
	} else {
		if n.Defs == nil {
			n.Defs = DefSiteSet{}
		}
		n.Defs.Add(ds)
	}
}

// AddUse registers that n reads [off, off+length) of target.
func (n *Node) AddUse(target NodeID, off, length Offset) {
	if n.Uses == nil {
		n.Uses = DefSiteSet{}
	}
	n.Uses.Add(NewDefSite(target, off, length))
}

// Defines reports whether n (may-)defines target at offset off.
//
// When off is UnknownOffset, only Defs is consulted. When off is finite, both Defs and
// Overwrites are consulted, and the match requires off to fall inside the recorded def site's
// range. This mirrors the original implementation's RDNode::defines, including its asymmetry:
// an unknown-offset query is answered only by weak defines, never by strong ones. The asymmetry
// is under-documented in the original but is intentional: a strong update carries precise offset
// information by construction, so it should not be treated as matching an imprecise "defines
// somewhere unknown" query.
func (n *Node) Defines(target NodeID, off Offset) bool {
	if off.IsUnknown() {
		for ds := range n.Defs {
			if ds.Target == target {
				return true
			}
		}
		return false
	}
	for ds := range n.Defs {
		if ds.Target == target && off.InRange(ds.Offset, ds.End()) {
			return true
		}
	}
	for ds := range n.Overwrites {
		if ds.Target == target && off.InRange(ds.Offset, ds.End()) {
			return true
		}
	}
	return false
}

// UsesUnknown reports whether n reads the UnknownMemory sentinel.
func (n *Node) UsesUnknown() bool {
	for ds := range n.Uses {
		if ds.Target == unknownMemoryID {
			return true
		}
	}
	return false
}

// GetOverwrites returns n's strong-write set.
//
// The original C++ header (ReachingDefinitions.h) has a documented bug here: its
// getOverwrites() returns the defs field, not overwrites. Spec.md section 9, Open Question 2
// calls this out explicitly; this implementation returns the correct field.
func (n *Node) GetOverwrites() DefSiteSet { return n.Overwrites }
