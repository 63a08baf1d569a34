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

/*
Package rd computes reaching definitions over a pre-built program graph.

A caller builds a [Graph] by calling [Graph.Create] for every operation (ALLOC, STORE, LOAD,
PHI, CALL, and so on) and [Graph.AddEdge] for every control-flow edge, records each node's
reads and writes with [Node.AddDef] and [Node.AddUse], marks the entry node with
[Graph.SetRoot], partitions the graph into basic blocks with [Graph.BuildBlocks], and runs the
fixpoint with an [Analysis] built by [New]. After [Analysis.Run] returns, each Node's
ReachingIn field holds the set of writers that may reach that node's entry, queryable with
[DefinitionsMap.Get].

This package does not parse or understand any particular source language or intermediate
representation: it operates entirely on the abstract Node/DefSite vocabulary its caller
populates, the same way the original analysis it's modeled on separates the LLVM-specific front
end from the generic, IR-agnostic analysis core.
*/
package rd
