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

// NodeID is the identity of a Node within a Graph. IDs are assigned by Graph.Create in
// monotonically increasing order starting at 1; the reserved IDs below 1 name the sentinels.
type NodeID int

const (
	// unknownMemoryID is the reserved id of the UnknownMemory sentinel.
	unknownMemoryID NodeID = 0
	// nullPtrID is the reserved id of the NullPtr sentinel.
	nullPtrID NodeID = -1
	// invalidatedID is the reserved id of the Invalidated sentinel.
	invalidatedID NodeID = -2
)

// DefSite identifies a byte range [Offset, Offset+Length) of an abstract memory object
// named by Target. Either Offset or Length may be UnknownOffset, meaning "somewhere in
// Target". DefSite is a plain, comparable value so it can be used directly as a map key.
type DefSite struct {
	Target NodeID
	Offset Offset
	Length Offset
}

// NewDefSite builds a DefSite over [offset, offset+length) of target.
func NewDefSite(target NodeID, offset, length Offset) DefSite {
	return DefSite{Target: target, Offset: offset, Length: length}
}

// End returns the exclusive end of the def site's byte range, Offset+Length.
func (ds DefSite) End() Offset {
	return ds.Offset.Add(ds.Length)
}

// HasUnknownRange reports whether either endpoint of ds's byte range is unknown, i.e. whether
// ds really means "somewhere in Target" rather than a precise interval.
func (ds DefSite) HasUnknownRange() bool {
	return ds.Offset.IsUnknown() || ds.Length.IsUnknown()
}

// Less gives DefSite a total order, lexicographic on (Target, Offset, Length): DefinitionsMap
// keeps its interval keys sorted by this order.
func (ds DefSite) Less(other DefSite) bool {
	if ds.Target != other.Target {
		return ds.Target < other.Target
	}
	if !ds.Offset.Equal(other.Offset) {
		return ds.Offset.Less(other.Offset)
	}
	return ds.Length.Less(other.Length)
}

// String renders ds for diagnostics.
func (ds DefSite) String() string {
	return fmt.Sprintf("<#%d, [%s, %s+%s)>", ds.Target, ds.Offset, ds.Offset, ds.Length)
}

// DefSiteSet is an unordered collection of DefSites, as used by Node.Defs/Overwrites/Uses.
type DefSiteSet map[DefSite]struct{}

// NewDefSiteSet builds a DefSiteSet from the given sites.
func NewDefSiteSet(sites ...DefSite) DefSiteSet {
	s := make(DefSiteSet, len(sites))
	for _, ds := range sites {
		s[ds] = struct{}{}
	}
	return s
}

// Add inserts ds into the set.
func (s DefSiteSet) Add(ds DefSite) {
	s[ds] = struct{}{}
}

// Contains reports whether ds is a member of the set.
func (s DefSiteSet) Contains(ds DefSite) bool {
	_, ok := s[ds]
	return ok
}

// Slice returns the elements of s as a slice, in no particular order.
func (s DefSiteSet) Slice() []DefSite {
	out := make([]DefSite, 0, len(s))
	for ds := range s {
		out = append(out, ds)
	}
	return out
}
