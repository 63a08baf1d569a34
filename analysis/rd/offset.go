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

// Offset is a non-negative byte offset, with a distinguished Unknown value that acts as the
// top of the offset lattice. Arithmetic on Offset saturates: Unknown absorbs anything it is
// combined with.
//
// The zero value of Offset is the finite offset 0, not Unknown — unlike the UNKNOWN_OFFSET =
// ~uint64(0) encoding of the original C++ implementation, we keep "unknown" as an explicit flag
// rather than a magic value so the zero Offset{} is a useful, finite default.
type Offset struct {
	value   uint64
	unknown bool
}

// UnknownOffset is the top of the offset lattice: "somewhere, we don't know where".
var UnknownOffset = Offset{unknown: true}

// Off constructs a finite Offset.
func Off(v uint64) Offset {
	return Offset{value: v}
}

// IsUnknown reports whether o is the Unknown offset.
func (o Offset) IsUnknown() bool {
	return o.unknown
}

// Value returns the finite value of o. It panics if o is Unknown; callers should check
// IsUnknown first.
func (o Offset) Value() uint64 {
	if o.unknown {
		panic("rd: Value() called on an unknown Offset")
	}
	return o.value
}

// Add returns o + other, saturating to Unknown if either operand is Unknown.
func (o Offset) Add(other Offset) Offset {
	if o.unknown || other.unknown {
		return UnknownOffset
	}
	return Off(o.value + other.value)
}

// Equal reports whether o and other denote the same offset (Unknown equals Unknown).
func (o Offset) Equal(other Offset) bool {
	if o.unknown || other.unknown {
		return o.unknown == other.unknown
	}
	return o.value == other.value
}

// Less gives a total order over offsets, with Unknown sorting after every finite value. This
// is used by DefSite's ordering, which DefinitionsMap relies on to keep its interval partitions
// sorted.
func (o Offset) Less(other Offset) bool {
	if o.unknown {
		return false
	}
	if other.unknown {
		return true
	}
	return o.value < other.value
}

// InRange reports whether o falls inside [lo, hi). The match is conservative: if lo or hi is
// Unknown, InRange returns true, since an unknown bound cannot be used to rule anything out.
// Otherwise an Unknown o is not inside the finite range.
func (o Offset) InRange(lo, hi Offset) bool {
	if lo.unknown || hi.unknown {
		return true
	}
	if o.unknown {
		return false
	}
	return lo.value <= o.value && o.value < hi.value
}

// Overlaps reports whether the interval [loA, hiA) overlaps [loB, hiB), conservatively treating
// any Unknown bound as matching everything.
func Overlaps(loA, hiA, loB, hiB Offset) bool {
	if loA.unknown || hiA.unknown || loB.unknown || hiB.unknown {
		return true
	}
	return loA.value < hiB.value && loB.value < hiA.value
}

// String renders o for diagnostics.
func (o Offset) String() string {
	if o.unknown {
		return "?"
	}
	return fmt.Sprintf("%d", o.value)
}
