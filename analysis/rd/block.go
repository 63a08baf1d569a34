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

// Block is a maximal run of nodes that always execute together: a straight-line sequence with
// no branch into or out of its interior. The analysis driver runs the fixpoint over blocks
// rather than individual nodes — same result, fewer work-list entries — and caches the
// reaching-definitions map at the end of each block; every visit of a block recomputes and
// stores the ReachingIn map of each of its nodes.
type Block struct {
	id    int
	nodes []NodeID

	preds []int
	succs []int

	// cachedOut is the reaching-definitions map at the end of this block, computed the last
	// time the block was processed by the driver. Nil until the block has been visited once.
	cachedOut *DefinitionsMap
}

// ID returns the block's index within its Graph's block list.
func (b *Block) ID() int { return b.id }

// Nodes returns the node ids belonging to b, in execution order.
func (b *Block) Nodes() []NodeID { return b.nodes }

// Preds returns the ids of b's predecessor blocks.
func (b *Block) Preds() []int { return b.preds }

// Succs returns the ids of b's successor blocks.
func (b *Block) Succs() []int { return b.succs }

// forcesBoundary reports whether n must start a new block: it is the entry node, it has more
// than one predecessor (a merge point), or its type requires node-level granularity because the
// driver's transfer function treats it specially.
func (g *Graph) forcesBoundary(n *Node) bool {
	if n.id == g.rootID {
		return true
	}
	if len(n.Preds) != 1 {
		return true
	}
	switch n.Type {
	case Phi, Call, CallReturn, Fork, Join, Return:
		return true
	}
	pred := g.node(n.Preds[0])
	if pred == nil {
		return true
	}
	if len(pred.Succs) > 1 {
		return true
	}
	switch pred.Type {
	case Call, CallReturn, Fork, Join, Return:
		return true
	}
	return false
}

// BuildBlocks partitions g's nodes into maximal basic blocks and links them into a block-level
// CFG. An edge from a block back to its own first node becomes a self-edge of that block. It
// must be called once, after every node and edge has been created, and before the
// analysis driver runs; calling it again recomputes the partition from scratch.
//
// A node only ever extends the block currently being built when that block's last node is
// exactly the node's sole predecessor; forcesBoundary's own checks (entry, fan-in, fan-out,
// block-granular types) are necessary but not sufficient, since Graph.Create's order need not
// match any CFG linearization. The explicit check below makes the partition correct regardless
// of creation order: a front end that creates nodes out of CFG order simply gets a more
// fragmented (but still correct) partition, never a block whose "nodes in execution order" no
// longer hold.
func (g *Graph) BuildBlocks() {
	g.blocks = nil
	owner := make(map[NodeID]int, len(g.nodes))

	order := g.nodesInCreationOrder()
	var current *Block
	for _, n := range order {
		extendsCurrent := current != nil && !g.forcesBoundary(n) &&
			current.nodes[len(current.nodes)-1] == n.Preds[0]
		if !extendsCurrent {
			current = &Block{id: len(g.blocks)}
			g.blocks = append(g.blocks, current)
		}
		current.nodes = append(current.nodes, n.id)
		owner[n.id] = current.id
		n.block = current
	}

	seen := map[[2]int]bool{}
	for _, n := range order {
		for _, s := range n.Succs {
			succ := g.node(s)
			if succ == nil {
				continue
			}
			from, to := owner[n.id], owner[s]
			if from == to && g.blocks[to].nodes[0] != s {
				continue // edge between consecutive nodes of one block
			}
			key := [2]int{from, to}
			if seen[key] {
				continue
			}
			seen[key] = true
			g.blocks[from].succs = append(g.blocks[from].succs, to)
			g.blocks[to].preds = append(g.blocks[to].preds, from)
		}
	}
}

// Blocks returns g's basic blocks, in the order BuildBlocks created them, which follows node
// creation order (the block of the first-created node comes first).
func (g *Graph) Blocks() []*Block { return g.blocks }
