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

// UnknownMemory, NullPtr and Invalidated are process-wide singleton sentinel nodes, created
// once and never reclaimed. They carry reserved, negative-or-zero ids so
// that no Graph.Create call can ever collide with them, and they are compared by identity
// (equivalently, by id) rather than by value: the writer-set collapsing rule in DefinitionsMap
// relies on UnknownMemory being one single node across every graph in the process.
//
// Do not allocate per-graph copies of these nodes.
var (
	// UnknownMemory stands for "some unspecified memory object" — the target sentinel used
	// when a DefSite's target cannot be resolved precisely — and doubles as "some writer",
	// the value a writer-set collapses to when it exceeds Options.MaxSetSize.
	UnknownMemory = &Node{id: unknownMemoryID, Type: None}

	// NullPtr stands for a definitely-null pointer target.
	NullPtr = &Node{id: nullPtrID, Type: None}

	// Invalidated stands for a target that has been freed or otherwise invalidated.
	Invalidated = &Node{id: invalidatedID, Type: None}
)

// IsSentinel reports whether id names one of the process-wide sentinel nodes.
func IsSentinel(id NodeID) bool {
	return id == unknownMemoryID || id == nullPtrID || id == invalidatedID
}
