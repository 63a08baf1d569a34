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

func TestDefSiteEnd(t *testing.T) {
	ds := NewDefSite(1, Off(4), Off(8))
	if got := ds.End(); !got.Equal(Off(12)) {
		t.Fatalf("End() = %v, want 12", got)
	}
}

func TestDefSiteHasUnknownRange(t *testing.T) {
	if NewDefSite(1, Off(0), Off(4)).HasUnknownRange() {
		t.Fatalf("finite def site should not have an unknown range")
	}
	if !NewDefSite(1, UnknownOffset, Off(4)).HasUnknownRange() {
		t.Fatalf("unknown-offset def site should have an unknown range")
	}
	if !NewDefSite(1, Off(0), UnknownOffset).HasUnknownRange() {
		t.Fatalf("unknown-length def site should have an unknown range")
	}
}

func TestDefSiteSetAddContains(t *testing.T) {
	s := NewDefSiteSet()
	ds := NewDefSite(2, Off(0), Off(4))
	if s.Contains(ds) {
		t.Fatalf("empty set should not contain ds")
	}
	s.Add(ds)
	if !s.Contains(ds) {
		t.Fatalf("set should contain ds after Add")
	}
	if len(s.Slice()) != 1 {
		t.Fatalf("Slice() should have one element, got %d", len(s.Slice()))
	}
}

func TestDefSiteLessTotalOrder(t *testing.T) {
	a := NewDefSite(1, Off(0), Off(4))
	b := NewDefSite(1, Off(4), Off(4))
	c := NewDefSite(2, Off(0), Off(4))
	if !a.Less(b) {
		t.Fatalf("a should be Less than b")
	}
	if !b.Less(c) {
		t.Fatalf("b should be Less than c")
	}
	if a.Less(a) {
		t.Fatalf("a should not be Less than itself")
	}
}
