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

import "fmt"

// Graph owns a fixed set of Nodes and the edges between them: the pre-built program graph that
// the caller's front end assembles, and its Block partition once BuildBlocks has run. A Graph does not
// know anything about the language or IR the caller's front end parsed; it only sees the typed
// Node/DefSite vocabulary defined in node.go and defsite.go.
type Graph struct {
	nodes  []*Node
	byID   map[NodeID]*Node
	nextID NodeID

	rootID NodeID
	blocks []*Block
}

// NewGraph returns an empty Graph, ready for Create calls.
func NewGraph() *Graph {
	return &Graph{byID: map[NodeID]*Node{}, nextID: 1}
}

// Create allocates a new Node of the given type and adds it to g. IDs are assigned in
// monotonically increasing order starting at 1, so they never collide with the reserved
// sentinel ids (0, -1, -2).
func (g *Graph) Create(t NodeType) *Node {
	n := &Node{id: g.nextID, Type: t}
	g.nextID++
	g.nodes = append(g.nodes, n)
	g.byID[n.id] = n
	return n
}

// node resolves id to its Node, or nil if id is not a member of g (including the reserved
// sentinel ids, which never belong to any particular Graph).
func (g *Graph) node(id NodeID) *Node {
	return g.byID[id]
}

// Node resolves id to its Node. It returns nil for ids not created by this Graph.
func (g *Graph) Node(id NodeID) *Node { return g.node(id) }

// Nodes returns every node in g, in creation order.
func (g *Graph) Nodes() []*Node { return g.nodesInCreationOrder() }

func (g *Graph) nodesInCreationOrder() []*Node {
	return g.nodes
}

// AddEdge links from -> to: to becomes a successor of from and from becomes a predecessor of
// to. Edges must be added before BuildBlocks is called.
func (g *Graph) AddEdge(from, to NodeID) error {
	f, t := g.node(from), g.node(to)
	if f == nil {
		return fmt.Errorf("rd: AddEdge: unknown source node %d", from)
	}
	if t == nil {
		return fmt.Errorf("rd: AddEdge: unknown target node %d", to)
	}
	f.Succs = append(f.Succs, to)
	t.Preds = append(t.Preds, from)
	return nil
}

// ExpandCall wires call to its resolved callee subgraph: call.Callee is set to calleeEntry's id,
// call.Exits to the ids of exits, and CFG edges are added from call to calleeEntry and from each
// exit to callReturn, so the reaching-definitions computed along the callee's RETURN nodes flow
// into callReturn's merge the same way any other predecessor's does. Leaving call.Callee unset
// (the zero NodeID, which Graph never assigns) is how a front end represents an opaque call
// instead of calling ExpandCall.
func (g *Graph) ExpandCall(call, calleeEntry, callReturn *Node, exits ...*Node) error {
	if call.Type != Call {
		return fmt.Errorf("rd: ExpandCall: node %d is not a CALL node", call.id)
	}
	if callReturn.Type != CallReturn {
		return fmt.Errorf("rd: ExpandCall: node %d is not a CALL_RETURN node", callReturn.id)
	}
	if err := g.AddEdge(call.id, calleeEntry.id); err != nil {
		return err
	}
	call.Callee = calleeEntry.id
	call.Exits = call.Exits[:0]
	for _, exit := range exits {
		if err := g.AddEdge(exit.id, callReturn.id); err != nil {
			return err
		}
		call.Exits = append(call.Exits, exit.id)
	}
	return nil
}

// SetRoot marks n as g's entry node. BuildBlocks always starts a new block at the root,
// regardless of its predecessor count (a root legitimately has zero).
func (g *Graph) SetRoot(n *Node) {
	g.rootID = n.id
}

// Root returns g's entry node, or nil if SetRoot was never called.
func (g *Graph) Root() *Node {
	return g.node(g.rootID)
}

// NodeCount returns the number of nodes created in g, not counting sentinels.
func (g *Graph) NodeCount() int { return len(g.nodes) }
