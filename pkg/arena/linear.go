package arena

import (
	"github.com/listviz/listviz/pkg/errors"
)

// Swap exchanges the physical slots of two elements without changing the
// logical order of the list. After a successful swap the element previously
// reachable at a lives at b and vice versa. Either slot may be a free ring
// member, which is how [List.Linearize] compacts elements into place.
//
// Swapping relocates slots, so the linearization hint is dropped unless the
// two indices are equal.
func (l *List[E]) Swap(a, b Index) error {
	if err := l.checkIndex(a); err != nil {
		return err
	}
	if err := l.checkIndex(b); err != nil {
		return err
	}
	if a == End || b == End {
		return errors.New(errors.ErrCodeLogicError, "cannot swap the sentinel slot")
	}
	if a == b {
		return nil
	}

	l.swapSlots(a, b)
	l.linearized = false

	return nil
}

// swapSlots redirects both sides' neighbors at the other slot, then
// exchanges the slot structs themselves. The struct exchange carries the
// link fields written by the neighbor updates, which makes the sequence
// valid for adjacent slots and self-looped free singletons alike.
func (l *List[E]) swapSlots(a, b Index) {
	aPrev, aNext := l.slots[a].prev, l.slots[a].next
	bPrev, bNext := l.slots[b].prev, l.slots[b].next

	l.slots[aPrev].next = b
	l.slots[aNext].prev = b
	l.slots[bPrev].next = a
	l.slots[bNext].prev = a

	l.slots[a], l.slots[b] = l.slots[b], l.slots[a]

	// The free head must follow its slot if it moved.
	if l.free == a {
		l.free = b
	} else if l.free == b {
		l.free = a
	}
}

// Linearize rearranges slots until physical order matches logical order:
// after it returns, the k-th element (1-based) lives in slot k and the free
// slots occupy the tail of the arena. Logical order is unchanged. Element
// indices handed out before the call are invalidated.
//
// The walk swaps each element into its target slot and continues from the
// placed position, touching every element once.
func (l *List[E]) Linearize() {
	logical := Index(1)
	for cur := l.slots[End].next; cur != End; logical++ {
		if cur != logical {
			l.swapSlots(cur, logical)
		}
		cur = l.slots[logical].next
	}

	l.linearized = true
}

// Linearized reports whether physical slot order is known to match logical
// order. A false result does not mean the orders differ, only that the list
// stopped tracking it.
func (l *List[E]) Linearized() bool {
	return l.linearized
}

// IndexAt resolves a 0-based logical position to the slot index holding that
// element. While the list is linearized this is a single addition from the
// head slot; otherwise it walks pos links from the head.
func (l *List[E]) IndexAt(pos int) (Index, error) {
	if pos < 0 || pos >= l.used {
		return End, errors.New(errors.ErrCodeInvalidIndex,
			"logical position %d out of range [0, %d)", pos, l.used)
	}

	if l.linearized {
		return l.slots[End].next + Index(pos), nil
	}

	i := l.slots[End].next
	for ; pos > 0; pos-- {
		i = l.slots[i].next
	}

	return i, nil
}

// At returns the value at a 0-based logical position.
func (l *List[E]) At(pos int) (E, error) {
	i, err := l.IndexAt(pos)
	if err != nil {
		var zero E
		return zero, err
	}
	return l.slots[i].value, nil
}
