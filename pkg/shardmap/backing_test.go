package shardmap

import (
	"errors"
	"testing"
)

func TestBackings(t *testing.T) {
	factories := map[string]BackingFactory[int, string]{
		"hash":  HashBackingFactory[int, string](),
		"btree": OrderedBackingFactory[int, string](2),
	}

	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			b := factory()

			if _, ok := b.Get(1); ok {
				t.Error("Get(1) on empty store should miss")
			}

			v, inserted, err := b.TryInsert(1, func() (string, error) { return "one", nil })
			if err != nil || !inserted || v != "one" {
				t.Errorf("TryInsert(1) = (%q, %v, %v), want (one, true, nil)", v, inserted, err)
			}

			v, inserted, err = b.TryInsert(1, func() (string, error) { return "uno", nil })
			if err != nil || inserted || v != "one" {
				t.Errorf("TryInsert(1) again = (%q, %v, %v), want (one, false, nil)", v, inserted, err)
			}

			errFail := errors.New("fail")
			if _, _, err := b.TryInsert(2, func() (string, error) { return "", errFail }); !errors.Is(err, errFail) {
				t.Errorf("TryInsert(2) error = %v, want %v", err, errFail)
			}
			if b.Len() != 1 {
				t.Errorf("Len() = %d, want 1", b.Len())
			}

			for i := 2; i <= 10; i++ {
				b.TryInsert(i, func() (string, error) { return "x", nil })
			}
			if n := b.DeleteFunc(func(k int, _ string) bool { return k%2 == 0 }); n != 5 {
				t.Errorf("DeleteFunc(even) = %d, want 5", n)
			}
			if n := b.Delete(3); n != 1 {
				t.Errorf("Delete(3) = %d, want 1", n)
			}
			if n := b.Delete(3); n != 0 {
				t.Errorf("Delete(3) again = %d, want 0", n)
			}
			if b.Len() != 4 {
				t.Errorf("Len() = %d, want 4", b.Len())
			}

			visited := 0
			if b.Range(func(int, string) bool { visited++; return visited < 2 }) {
				t.Error("Range should report early stop")
			}
			if visited != 2 {
				t.Errorf("Range visited %d, want 2", visited)
			}
		})
	}
}
