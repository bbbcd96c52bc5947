package arena

import (
	"iter"

	"github.com/listviz/listviz/pkg/errors"
)

// Len returns the number of elements in the list.
func (l *List[E]) Len() int {
	return l.used
}

// Cap returns the current capacity: the number of elements the list can hold
// before the next growth.
func (l *List[E]) Cap() int {
	return l.capacity
}

// Head returns the slot index of the first element, or [End] when the list
// is empty.
func (l *List[E]) Head() Index {
	return l.slots[End].next
}

// Tail returns the slot index of the last element, or [End] when the list is
// empty.
func (l *List[E]) Tail() Index {
	return l.slots[End].prev
}

// FreeHead returns the slot index at the head of the free ring.
func (l *List[E]) FreeHead() Index {
	return l.free
}

// Next returns the slot index of the element following i, with [End]
// marking the end of the list.
func (l *List[E]) Next(i Index) (Index, error) {
	if err := l.checkIndex(i); err != nil {
		return End, err
	}
	return l.slots[i].next, nil
}

// Prev returns the slot index of the element preceding i, with [End]
// marking the start of the list.
func (l *List[E]) Prev(i Index) (Index, error) {
	if err := l.checkIndex(i); err != nil {
		return End, err
	}
	return l.slots[i].prev, nil
}

// Value returns the value stored in the element at index i. Reading the
// sentinel or a free slot is a logic error.
func (l *List[E]) Value(i Index) (E, error) {
	var zero E
	if err := l.checkIndex(i); err != nil {
		return zero, err
	}
	if i == End {
		return zero, errors.New(errors.ErrCodeLogicError, "sentinel slot holds no value")
	}
	if l.slots[i].free {
		return zero, errors.New(errors.ErrCodeLogicError, "slot %d is free", i)
	}
	return l.slots[i].value, nil
}

// SetValue replaces the value stored in the element at index i.
func (l *List[E]) SetValue(i Index, value E) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	if i == End {
		return errors.New(errors.ErrCodeLogicError, "sentinel slot holds no value")
	}
	if l.slots[i].free {
		return errors.New(errors.ErrCodeLogicError, "slot %d is free", i)
	}
	l.slots[i].value = value
	return nil
}

// Slot is a read-only snapshot of one physical slot, exposed for
// introspection and visualization. Next and Prev thread the element ring for
// live slots and the free ring for free ones.
type Slot[E any] struct {
	Value E
	Next  Index
	Prev  Index
	Free  bool
}

// Slot returns a snapshot of the physical slot at index i. Unlike
// [List.Value] it permits the sentinel and free slots, since inspecting raw
// arena state is its purpose.
func (l *List[E]) Slot(i Index) (Slot[E], error) {
	if err := l.checkIndex(i); err != nil {
		return Slot[E]{}, err
	}
	s := l.slots[i]
	return Slot[E]{Value: s.value, Next: s.next, Prev: s.prev, Free: s.free}, nil
}

// All returns an iterator over the elements in logical order, yielding each
// element's slot index and value. The list must not be mutated during
// iteration.
func (l *List[E]) All() iter.Seq2[Index, E] {
	return func(yield func(Index, E) bool) {
		for i := l.slots[End].next; i != End; i = l.slots[i].next {
			if !yield(i, l.slots[i].value) {
				return
			}
		}
	}
}

// Values returns an iterator over the element values in logical order.
func (l *List[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		for i := l.slots[End].next; i != End; i = l.slots[i].next {
			if !yield(l.slots[i].value) {
				return
			}
		}
	}
}
