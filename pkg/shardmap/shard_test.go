package shardmap

import (
	"errors"
	"testing"
)

func TestShard_FindUnallocated(t *testing.T) {
	s := NewShard[string, int](nil)

	if s.Allocated() {
		t.Fatal("new shard should not allocate its backing store")
	}

	val, ok := s.Find("missing")
	if ok || val != 0 {
		t.Errorf("Find(missing) = (%d, %v), want (0, false)", val, ok)
	}

	if s.Allocated() {
		t.Error("Find should not allocate the backing store")
	}
}

func TestShard_FindAbsentAfterAllocation(t *testing.T) {
	s := NewShard[string, int](nil)
	s.TryEmplace("present", func() (int, error) { return 1, nil })

	val, ok := s.Find("absent")
	if ok || val != 0 {
		t.Errorf("Find(absent) = (%d, %v), want (0, false)", val, ok)
	}
}

func TestShard_TryEmplace(t *testing.T) {
	s := NewShard[string, int](nil)

	val, inserted, err := s.TryEmplace("key1", func() (int, error) { return 100, nil })
	if err != nil || !inserted || val != 100 {
		t.Errorf("TryEmplace(new) = (%d, %v, %v), want (100, true, nil)", val, inserted, err)
	}
	if !s.Allocated() {
		t.Error("TryEmplace should allocate the backing store")
	}

	called := false
	val, inserted, err = s.TryEmplace("key1", func() (int, error) {
		called = true
		return 200, nil
	})
	if err != nil || inserted || val != 100 {
		t.Errorf("TryEmplace(existing) = (%d, %v, %v), want (100, false, nil)", val, inserted, err)
	}
	if called {
		t.Error("constructor should not run for an existing key")
	}
}

func TestShard_TryEmplaceError(t *testing.T) {
	s := NewShard[string, int](nil)
	errBoom := errors.New("boom")

	_, inserted, err := s.TryEmplace("key1", func() (int, error) { return 0, errBoom })
	if !errors.Is(err, errBoom) {
		t.Errorf("TryEmplace error = %v, want %v", err, errBoom)
	}
	if inserted {
		t.Error("failed constructor should not report insertion")
	}
	if _, ok := s.Find("key1"); ok {
		t.Error("failed constructor should not store an entry")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestShard_Erase(t *testing.T) {
	s := NewShard[string, int](nil)

	// Unallocated shard
	if n := s.Erase("key1"); n != 0 {
		t.Errorf("Erase(unallocated) = %d, want 0", n)
	}

	s.TryEmplace("key1", func() (int, error) { return 1, nil })

	if n := s.Erase("key1"); n != 1 {
		t.Errorf("Erase(key1) = %d, want 1", n)
	}
	if n := s.Erase("key1"); n != 0 {
		t.Errorf("Erase(key1) again = %d, want 0", n)
	}

	if !s.Allocated() {
		t.Error("backing store should survive becoming empty")
	}
}

func TestShard_EraseIf(t *testing.T) {
	s := NewShard[int, int](nil)

	if n := s.EraseIf(func(int, int) bool { return true }); n != 0 {
		t.Errorf("EraseIf(unallocated) = %d, want 0", n)
	}

	for i := 0; i < 10; i++ {
		s.TryEmplace(i, func() (int, error) { return i * 10, nil })
	}

	n := s.EraseIf(func(_ int, v int) bool { return v >= 50 })
	if n != 5 {
		t.Errorf("EraseIf(v >= 50) = %d, want 5", n)
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	for i := 0; i < 10; i++ {
		_, ok := s.Find(i)
		if ok != (i < 5) {
			t.Errorf("Find(%d) present = %v, want %v", i, ok, i < 5)
		}
	}
}

func TestShard_Range(t *testing.T) {
	s := NewShard[int, int](nil)

	if !s.Range(func(int, int) bool { return false }) {
		t.Error("Range on unallocated shard should report completion")
	}

	for i := 0; i < 20; i++ {
		s.TryEmplace(i, func() (int, error) { return i, nil })
	}

	count := 0
	completed := s.Range(func(int, int) bool {
		count++
		return count < 5
	})
	if completed {
		t.Error("Range should report early stop")
	}
	if count != 5 {
		t.Errorf("Range visited %d entries, want 5", count)
	}

	count = 0
	s.ForEach(func(int, int) { count++ })
	if count != 20 {
		t.Errorf("ForEach visited %d entries, want 20", count)
	}
}

func TestShard_OrderedBacking(t *testing.T) {
	s := NewShard[int, string](OrderedBackingFactory[int, string](4))

	for _, k := range []int{5, 3, 9, 1, 7} {
		s.TryEmplace(k, func() (string, error) { return "v", nil })
	}

	var got []int
	s.ForEach(func(k int, _ string) { got = append(got, k) })

	want := []int{1, 3, 5, 7, 9}
	if len(got) != len(want) {
		t.Fatalf("ForEach keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keys[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
