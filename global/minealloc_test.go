package global

import "testing"

func TestEnumerateRegionsTiling(t *testing.T) {
	got := EnumerateRegions([2]int32{0, 0}, [2]int32{13, 13}, [2]int32{0, 0}, FromDist)
	want := []Region{{0, 0}, {7, 0}, {0, 7}, {7, 7}}
	if len(got) != len(want) {
		t.Fatalf("got %d regions, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("region %d = %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestMineAllocReplacesOnlyWhenEmpty(t *testing.T) {
	m := NewMineAlloc()
	if !m.TryEnqueue([]Region{{0, 0}}) {
		t.Fatalf("first enqueue into empty queue should succeed")
	}
	if m.TryEnqueue([]Region{{1, 1}}) {
		t.Fatalf("enqueue into non-empty queue should be rejected")
	}
	r, ok := m.Dequeue()
	if !ok || r != (Region{0, 0}) {
		t.Fatalf("Dequeue() = %v, %v, want {0,0}, true", r, ok)
	}
	if !m.TryEnqueue([]Region{{1, 1}}) {
		t.Fatalf("enqueue after drain should succeed")
	}
}
