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

import (
	"sort"

	"golang.org/x/tools/container/intsets"
)

// interval is one entry of a target's ordered partition: the byte range [lo, hi) and the set
// of nodes that may be the last writer of that range. Writer sets are kept as
// intsets.Sparse, a sparse bitset of node ids, because it gives cheap union/intersection/size,
// which is exactly what the precision cap (below) needs to check after every mutation.
type interval struct {
	lo, hi  Offset
	writers intsets.Sparse
}

// DefinitionsMap maps target -> an ordered, disjoint partition of [offset, offset+length)
// writer-sets, plus one "unknown-interval" bucket per target for ranges with any unknown
// endpoint.
type DefinitionsMap struct {
	maxSetSize              uint
	strongUpdateUnknownSize bool

	intervals map[NodeID][]*interval
	unknown   map[NodeID]*intsets.Sparse
}

// NewDefinitionsMap builds an empty DefinitionsMap. maxSetSize must be >= 1: a zero cap is a
// malformed-input precondition failure, rejected by the caller before this constructor is
// reached. strongUpdateUnknownSize controls how a strong Update over a DefSite with an unknown
// offset or length behaves: when false (the default), it only clears the target's unknown
// bucket, leaving precise intervals alone, the conservative choice, since an imprecise write
// cannot be trusted to have actually killed a byte range it may not have touched. When true, it
// additionally clears every precise interval for that target, the literal maximal-kill reading.
func NewDefinitionsMap(maxSetSize uint, strongUpdateUnknownSize bool) *DefinitionsMap {
	return &DefinitionsMap{
		maxSetSize:              maxSetSize,
		strongUpdateUnknownSize: strongUpdateUnknownSize,
		intervals:               map[NodeID][]*interval{},
		unknown:                 map[NodeID]*intsets.Sparse{},
	}
}

func cloneSparse(s *intsets.Sparse) *intsets.Sparse {
	clone := new(intsets.Sparse)
	for _, x := range s.AppendTo(nil) {
		clone.Insert(x)
	}
	return clone
}

// Clone returns a deep copy of m, used by the driver's transfer function to build a node's
// outgoing map without mutating the incoming one, which stays stored as that node's ReachingIn.
func (m *DefinitionsMap) Clone() *DefinitionsMap {
	c := NewDefinitionsMap(m.maxSetSize, m.strongUpdateUnknownSize)
	for target, ws := range m.unknown {
		c.unknown[target] = cloneSparse(ws)
	}
	for target, ivs := range m.intervals {
		cp := make([]*interval, len(ivs))
		for i, iv := range ivs {
			cp[i] = &interval{lo: iv.lo, hi: iv.hi}
			cp[i].writers.Copy(&iv.writers)
		}
		c.intervals[target] = cp
	}
	return c
}

// Equal reports whether m and other denote the same mapping. Both sides must have been built
// through this type's mutators, which always keep a target's intervals sorted and disjoint, so
// a positional comparison after sorting is sufficient — no need for a semantic (set-of-ranges)
// comparison.
func (m *DefinitionsMap) Equal(other *DefinitionsMap) bool {
	if len(m.unknown) != len(other.unknown) || len(m.intervals) != len(other.intervals) {
		return false
	}
	for target, ws := range m.unknown {
		ows, ok := other.unknown[target]
		if !ok || !ws.Equals(ows) {
			return false
		}
	}
	for target, ivs := range m.intervals {
		oivs, ok := other.intervals[target]
		if !ok || len(ivs) != len(oivs) {
			return false
		}
		for i, iv := range ivs {
			o := oivs[i]
			if !iv.lo.Equal(o.lo) || !iv.hi.Equal(o.hi) || !iv.writers.Equals(&o.writers) {
				return false
			}
		}
	}
	return true
}

// splitAt splits any interval in ivs that strictly straddles point into two pieces sharing a
// copy of the original writer set, so that point becomes an exact boundary. Unknown points
// never straddle anything (UnknownOffset only ever appears as a whole-range marker, never as
// one edge of a finite interval) and are left alone.
func splitAt(ivs []*interval, point Offset) []*interval {
	if point.IsUnknown() {
		return ivs
	}
	out := make([]*interval, 0, len(ivs)+1)
	for _, iv := range ivs {
		if !iv.lo.IsUnknown() && !iv.hi.IsUnknown() && iv.lo.Less(point) && point.Less(iv.hi) {
			left := &interval{lo: iv.lo, hi: point}
			left.writers.Copy(&iv.writers)
			right := &interval{lo: point, hi: iv.hi}
			right.writers.Copy(&iv.writers)
			out = append(out, left, right)
		} else {
			out = append(out, iv)
		}
	}
	return out
}

// ensureCoverage normalizes target's interval list so that [lo, hi) is exactly covered by a
// contiguous run of intervals: existing boundaries inside [lo, hi) are preserved (so a later
// weak Add still only touches the sub-ranges it overlaps), and any gap is filled with a fresh,
// empty-writer interval that the caller is expected to populate immediately afterwards.
func (m *DefinitionsMap) ensureCoverage(target NodeID, lo, hi Offset) {
	ivs := splitAt(splitAt(m.intervals[target], lo), hi)
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].lo.Less(ivs[j].lo) })

	var before, within, after []*interval
	for _, iv := range ivs {
		switch {
		case !lo.Less(iv.hi):
			before = append(before, iv)
		case !iv.lo.Less(hi):
			after = append(after, iv)
		default:
			within = append(within, iv)
		}
	}

	var filled []*interval
	cursor := lo
	for _, iv := range within {
		if cursor.Less(iv.lo) {
			filled = append(filled, &interval{lo: cursor, hi: iv.lo})
		}
		filled = append(filled, iv)
		cursor = iv.hi
	}
	if cursor.Less(hi) {
		filled = append(filled, &interval{lo: cursor, hi: hi})
	}

	out := append(append(before, filled...), after...) //nolint:gocritic
	m.intervals[target] = out
}

func dropEmpty(ivs []*interval) []*interval {
	out := ivs[:0]
	for _, iv := range ivs {
		if !iv.writers.IsEmpty() {
			out = append(out, iv)
		}
	}
	return out
}

// applyCap enforces the precision cap on every interval and on the
// unknown bucket of target: any writer set that grows past maxSetSize collapses to
// {UnknownMemory}. A collapsed interval's information is folded into the target's unknown
// bucket and the interval entry itself is dropped, since from that point on the interval
// carries no information beyond what the unknown bucket already conveys.
func (m *DefinitionsMap) applyCap(target NodeID) {
	if m.maxSetSize == 0 {
		return
	}
	var kept []*interval
	collapsed := false
	for _, iv := range m.intervals[target] {
		if uint(iv.writers.Len()) > m.maxSetSize {
			collapsed = true
			continue
		}
		kept = append(kept, iv)
	}
	m.intervals[target] = kept
	if collapsed {
		m.insertUnknownWriter(target, unknownMemoryID)
	}

	if ws, ok := m.unknown[target]; ok && uint(ws.Len()) > m.maxSetSize {
		ws.Clear()
		ws.Insert(int(unknownMemoryID))
	}
}

func (m *DefinitionsMap) insertUnknownWriter(target, writer NodeID) {
	ws, ok := m.unknown[target]
	if !ok {
		ws = new(intsets.Sparse)
		m.unknown[target] = ws
	}
	ws.Insert(int(writer))
}

// Update performs a strong (must-define) write of ds by writer: every recorded writer whose
// interval intersects ds's range is replaced, and writer becomes the sole reaching definition
// of that range. See the constructor's doc comment for the unknown-range case.
func (m *DefinitionsMap) Update(ds DefSite, writer NodeID) {
	target := ds.Target
	if ds.HasUnknownRange() {
		delete(m.unknown, target)
		if m.strongUpdateUnknownSize {
			delete(m.intervals, target)
		}
		m.insertUnknownWriter(target, writer)
		m.applyCap(target)
		return
	}

	lo, hi := ds.Offset, ds.End()
	m.ensureCoverage(target, lo, hi)

	var out []*interval
	for _, iv := range m.intervals[target] {
		if !iv.lo.Less(lo) && !hi.Less(iv.hi) {
			continue // fully inside [lo, hi): killed by the strong update
		}
		out = append(out, iv)
	}
	fresh := &interval{lo: lo, hi: hi}
	fresh.writers.Insert(int(writer))
	out = append(out, fresh)
	sort.Slice(out, func(i, j int) bool { return out[i].lo.Less(out[j].lo) })
	m.intervals[target] = out
	m.applyCap(target)
}

// Add performs a weak (may-define) write of ds by writer: writer is unioned into every
// recorded writer-set whose interval overlaps ds's range, and into any gap within that range.
func (m *DefinitionsMap) Add(ds DefSite, writer NodeID) {
	target := ds.Target
	if ds.HasUnknownRange() {
		m.insertUnknownWriter(target, writer)
		for _, iv := range m.intervals[target] {
			iv.writers.Insert(int(writer))
		}
		m.applyCap(target)
		return
	}

	lo, hi := ds.Offset, ds.End()
	m.ensureCoverage(target, lo, hi)
	for _, iv := range m.intervals[target] {
		if !iv.lo.Less(lo) && !hi.Less(iv.hi) {
			iv.writers.Insert(int(writer))
		}
	}
	m.intervals[target] = dropEmpty(m.intervals[target])
	m.applyCap(target)
}

// Merge unions other pointwise into m: for every (target, interval) in other, writer sets are
// unioned into m, splitting m's intervals at overlap boundaries so the result remains an
// ordered, disjoint partition.
func (m *DefinitionsMap) Merge(other *DefinitionsMap) {
	for target, ws := range other.unknown {
		out, ok := m.unknown[target]
		if !ok {
			out = new(intsets.Sparse)
			m.unknown[target] = out
		}
		out.UnionWith(ws)
	}

	touched := map[NodeID]bool{}
	for target, ivs := range other.intervals {
		for _, iv := range ivs {
			if iv.writers.IsEmpty() {
				continue
			}
			m.ensureCoverage(target, iv.lo, iv.hi)
			for _, mine := range m.intervals[target] {
				if !mine.lo.Less(iv.lo) && !iv.hi.Less(mine.hi) {
					mine.writers.UnionWith(&iv.writers)
				}
			}
		}
		touched[target] = true
	}
	for target := range other.unknown {
		touched[target] = true
	}
	for target := range touched {
		m.intervals[target] = dropEmpty(m.intervals[target])
		m.applyCap(target)
	}
}

// Get collects into out every writer node whose interval intersects [offset, offset+length) of
// target, plus every writer in target's unknown bucket, plus every writer in UnknownMemory's
// own unknown bucket: a read of an unresolved target must conservatively be assumed to observe
// anything UnknownMemory could have written. It returns len(out) after
// the union, so repeated calls accumulating into the same out can track how much was added.
func (m *DefinitionsMap) Get(target NodeID, offset, length Offset, out *intsets.Sparse) int {
	hi := offset.Add(length)
	for _, iv := range m.intervals[target] {
		if Overlaps(iv.lo, iv.hi, offset, hi) {
			out.UnionWith(&iv.writers)
		}
	}
	if ws, ok := m.unknown[target]; ok {
		out.UnionWith(ws)
	}
	if target != unknownMemoryID {
		if ws, ok := m.unknown[unknownMemoryID]; ok {
			out.UnionWith(ws)
		}
	}
	return out.Len()
}

// IsEmpty reports whether m has no recorded writers for any target.
func (m *DefinitionsMap) IsEmpty() bool {
	for _, ivs := range m.intervals {
		if len(ivs) > 0 {
			return false
		}
	}
	for _, ws := range m.unknown {
		if !ws.IsEmpty() {
			return false
		}
	}
	return true
}
