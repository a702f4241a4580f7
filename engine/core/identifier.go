package core

import "fmt"

// Handle is a small integer standing in for a host-owned object. Handles are
// only unique within one Table.
type Handle int32

// InvalidHandle marks an unallocated slot or a missing object.
const InvalidHandle Handle = -1

// Valid reports whether h could name a slot. It says nothing about liveness.
func (h Handle) Valid() bool {
	return h >= 0
}

// Ref pairs a handle with the slot generation at the time it was taken.
type Ref struct {
	Handle     Handle
	Generation uint32
}

type slot[T any] struct {
	value      T
	used       bool
	generation uint32
}

// Table maps handles to objects of one category. Allocation takes the
// lowest free slot before growing, so the handle space stays dense and a
// handle kept after Free resolves to whatever took the slot next. Use Ref
// and ResolveRef where that matters.
//
// Table is not safe for concurrent use.
type Table[T any] struct {
	category string
	slots    []slot[T]
	live     int
}

func NewTable[T any](category string) *Table[T] {
	return &Table[T]{category: category}
}

func (t *Table[T]) Category() string {
	return t.category
}

// Allocate stores obj in the first empty slot, appending when none is free.
func (t *Table[T]) Allocate(obj T) Handle {
	length := len(t.slots)
	for i := 0; i < length; i++ {
		// Existing free spot. Take it.
		if !t.slots[i].used {
			t.slots[i].value = obj
			t.slots[i].used = true
			t.live++
			return Handle(i)
		}
	}

	t.slots = append(t.slots, slot[T]{value: obj, used: true})
	t.live++
	return Handle(length)
}

// Lookup returns the object stored under h.
func (t *Table[T]) Lookup(h Handle) (T, error) {
	var zero T
	if h < 0 || int(h) >= len(t.slots) {
		return zero, fmt.Errorf("%s handle %d out of range (slots=%d): %w", t.category, h, len(t.slots), ErrInvalidHandle)
	}
	s := t.slots[h]
	if !s.used {
		return zero, fmt.Errorf("%s handle %d is not allocated: %w", t.category, h, ErrInvalidHandle)
	}
	return s.value, nil
}

// Resolve is Lookup for internal callers; a bad handle is a programming error
// and panics.
func (t *Table[T]) Resolve(h Handle) T {
	v, err := t.Lookup(h)
	if err != nil {
		panic(err)
	}
	return v
}

// Free empties the slot so the next Allocate can reuse it.
func (t *Table[T]) Free(h Handle) error {
	if _, err := t.Lookup(h); err != nil {
		return err
	}
	var zero T
	t.slots[h].value = zero
	t.slots[h].used = false
	t.slots[h].generation++
	t.live--
	return nil
}

// Ref captures h together with its current generation.
func (t *Table[T]) Ref(h Handle) (Ref, error) {
	if _, err := t.Lookup(h); err != nil {
		return Ref{Handle: InvalidHandle}, err
	}
	return Ref{Handle: h, Generation: t.slots[h].generation}, nil
}

// ResolveRef fails with ErrStaleHandle when the slot was freed after the ref
// was taken, even if it has been reallocated since.
func (t *Table[T]) ResolveRef(ref Ref) (T, error) {
	v, err := t.Lookup(ref.Handle)
	if err != nil {
		if ref.Handle >= 0 && int(ref.Handle) < len(t.slots) && t.slots[ref.Handle].generation != ref.Generation {
			return v, fmt.Errorf("%s handle %d: %w", t.category, ref.Handle, ErrStaleHandle)
		}
		return v, err
	}
	if t.slots[ref.Handle].generation != ref.Generation {
		var zero T
		return zero, fmt.Errorf("%s handle %d generation %d, slot is at %d: %w",
			t.category, ref.Handle, ref.Generation, t.slots[ref.Handle].generation, ErrStaleHandle)
	}
	return v, nil
}

// Len is the number of slots, used or not.
func (t *Table[T]) Len() int {
	return len(t.slots)
}

// Live is the number of occupied slots.
func (t *Table[T]) Live() int {
	return t.live
}
