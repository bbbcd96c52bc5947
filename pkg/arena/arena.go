// Package arena implements a doubly linked list stored in a flat, growable
// slot array. Elements are addressed by integer slot indices instead of
// pointers, which keeps handles valid across reallocation when the backing
// array grows.
//
// # Layout
//
// A list with capacity c owns c+2 slots. Slot 0 is a permanent sentinel that
// closes the element ring: its next field points at the logical head and its
// prev field at the logical tail. Slots 1..c+1 hold elements or spare
// capacity. Every slot is threaded onto exactly one of two rings through the
// same next/prev fields: the element ring (through the sentinel) or the free
// ring (spare slots only). The two rings together always cover slots 1..c+1.
//
// The free ring is never empty. When it is down to a single self-looped slot
// the list has run out of usable space, and the next insert doubles the
// backing array before taking a slot.
//
// # Linearization
//
// The list tracks whether element slots are physically consecutive starting
// at the head slot. While that holds, [List.At] and [List.IndexAt] resolve a
// logical position with one addition instead of a walk. The flag is a
// performance hint: operations that might break physical contiguity clear
// it, and no operation relies on it for correctness.
package arena

import (
	"github.com/listviz/listviz/pkg/errors"
)

// Index addresses a physical slot inside a list. Indices remain stable for
// the lifetime of the element they were returned for: growth never moves
// slots. Deleting an element frees its slot for reuse, after which the old
// index must not be used.
type Index int

// End is the sentinel slot index. It terminates traversals and is returned
// by lookups that find nothing. The sentinel never holds an element and
// cannot be inserted after a deletion target or swapped.
const End Index = 0

// DefaultCapacity is a reasonable starting capacity for small lists.
const DefaultCapacity = 10

// growFactor doubles the capacity whenever the list runs out of free slots.
const growFactor = 2

type slot[E any] struct {
	value E
	next  Index
	prev  Index
	free  bool
}

// List is a doubly linked list backed by a slot arena. The zero value is not
// usable; create lists with [New]. A List must not be shared between
// goroutines without external synchronization.
type List[E any] struct {
	slots      []slot[E]
	capacity   int
	used       int
	free       Index
	linearized bool
}

// New creates a list with room for capacity elements before the first
// growth. A capacity of zero is valid and forces growth on the first insert.
func New[E any](capacity int) (*List[E], error) {
	if capacity < 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"list capacity must not be negative, got %d", capacity)
	}

	l := &List[E]{
		slots:      make([]slot[E], capacity+2),
		capacity:   capacity,
		linearized: true,
	}

	// Slot 0 keeps its zero value: a live sentinel self-looped on itself.
	// Slot 1 self-loops as the initial free ring, then the remaining slots
	// splice in behind it in descending order so the ring reads 1, 2, 3, ...
	l.free = 1
	l.slots[1] = slot[E]{next: 1, prev: 1, free: true}
	for i := Index(capacity) + 1; i > l.free; i-- {
		l.placeAfter(l.free, i, *new(E))
	}

	return l, nil
}

// checkIndex rejects indices outside the slot range [0, capacity+1].
func (l *List[E]) checkIndex(i Index) error {
	if i < 0 || int(i) > l.capacity+1 {
		return errors.New(errors.ErrCodeInvalidIndex,
			"index %d out of slot range [0, %d]", i, l.capacity+1)
	}
	return nil
}

// placeAfter writes value into the unlinked slot place and splices it
// between prev and prev's successor. The new slot inherits prev's ring
// membership, so the same helper threads both element and free rings.
func (l *List[E]) placeAfter(prev, place Index, value E) {
	next := l.slots[prev].next

	l.slots[prev].next = place
	l.slots[next].prev = place

	l.slots[place] = slot[E]{
		value: value,
		next:  next,
		prev:  prev,
		free:  l.slots[prev].free,
	}
}

// unlink removes slot i from whichever ring it is on. The slot's own link
// fields are left stale until it is placed again.
func (l *List[E]) unlink(i Index) {
	prev, next := l.slots[i].prev, l.slots[i].next
	l.slots[prev].next = next
	l.slots[next].prev = prev
}

// takeFreeAt claims the free slot place for an element, refusing to drain
// the free ring below one member. After the claim the free head moves to the
// claimed slot's ring successor, which is correct whether place was the head
// or an interior ring member.
func (l *List[E]) takeFreeAt(place Index) error {
	if !l.slots[place].free {
		return errors.New(errors.ErrCodeLogicError, "slot %d is not free", place)
	}

	next := l.slots[place].next
	if next == place {
		return errors.New(errors.ErrCodeAllocFailed, "no free slots left")
	}

	l.unlink(place)
	l.free = next

	return nil
}

// addFree returns slot i to the free ring behind the free head and zeroes
// its value so the old element can be collected.
func (l *List[E]) addFree(i Index) {
	l.placeAfter(l.free, i, *new(E))
}

// InsertAfter inserts value as the logical successor of the element at prev
// and returns the new element's slot index. Passing [End] inserts at the
// front of the list.
//
// When the physical slot prev+1 is available it is used. Appending after
// the current tail into that slot keeps a linearized list linearized; any
// other placement drops the hint. The list grows by doubling before the
// insert whenever only one free slot remains.
func (l *List[E]) InsertAfter(prev Index, value E) (Index, error) {
	if err := l.checkIndex(prev); err != nil {
		return End, err
	}
	if l.slots[prev].free {
		return End, errors.New(errors.ErrCodeLogicError,
			"cannot insert after free slot %d", prev)
	}

	if l.free == l.slots[l.free].next {
		grown := l.capacity * growFactor
		if grown == l.capacity {
			grown = 1
		}
		if err := l.Grow(grown); err != nil {
			return End, err
		}
	}

	place := prev + 1
	if int(prev) <= l.capacity && l.slots[place].free {
		if err := l.takeFreeAt(place); err != nil {
			return End, err
		}
		if prev != l.slots[End].prev {
			l.linearized = false
		}
	} else {
		place = l.free
		if err := l.takeFreeAt(place); err != nil {
			return End, err
		}
		l.linearized = false
	}

	l.placeAfter(prev, place, value)
	l.used++

	return place, nil
}

// PushFront inserts value as the new logical head.
func (l *List[E]) PushFront(value E) (Index, error) {
	return l.InsertAfter(End, value)
}

// PushBack inserts value as the new logical tail.
func (l *List[E]) PushBack(value E) (Index, error) {
	return l.InsertAfter(l.slots[End].prev, value)
}

// Delete removes the element at index i and returns its slot to the free
// ring. Deleting the sentinel or an already free slot is a logic error.
//
// Removing an interior element leaves a physical gap, so the linearization
// hint is dropped. Removals at either logical end keep the remaining chain
// contiguous and preserve the hint.
func (l *List[E]) Delete(i Index) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	if i == End {
		return errors.New(errors.ErrCodeLogicError, "cannot delete the sentinel slot")
	}
	if l.slots[i].free {
		return errors.New(errors.ErrCodeLogicError, "slot %d is already free", i)
	}

	if l.slots[i].prev != End && l.slots[i].next != End {
		l.linearized = false
	}

	l.unlink(i)
	l.addFree(i)
	l.used--

	return nil
}

// PopFront removes the logical head and returns its value.
func (l *List[E]) PopFront() (E, error) {
	var zero E
	if l.used == 0 {
		return zero, errors.New(errors.ErrCodeLogicError, "pop from empty list")
	}

	head := l.slots[End].next
	value := l.slots[head].value
	if err := l.Delete(head); err != nil {
		return zero, err
	}

	return value, nil
}

// PopBack removes the logical tail and returns its value.
func (l *List[E]) PopBack() (E, error) {
	var zero E
	if l.used == 0 {
		return zero, errors.New(errors.ErrCodeLogicError, "pop from empty list")
	}

	tail := l.slots[End].prev
	value := l.slots[tail].value
	if err := l.Delete(tail); err != nil {
		return zero, err
	}

	return value, nil
}

// Grow resizes the backing array to hold newCapacity elements. All existing
// indices, element order, and the linearization hint are preserved; the new
// slots join the free ring. Shrinking is not supported, so newCapacity must
// exceed the current capacity.
func (l *List[E]) Grow(newCapacity int) error {
	if newCapacity <= l.capacity {
		return errors.New(errors.ErrCodeInvalidArgument,
			"new capacity %d must exceed current capacity %d", newCapacity, l.capacity)
	}

	grown := make([]slot[E], newCapacity+2)
	copy(grown, l.slots)
	l.slots = grown

	for i := Index(l.capacity) + 2; int(i) <= newCapacity+1; i++ {
		l.placeAfter(l.free, i, *new(E))
	}
	l.capacity = newCapacity

	return nil
}
