// Package stack provides a growable LIFO stack that releases memory as it
// drains. It backs the iterative graph traversals elsewhere in listviz.
package stack

import (
	"iter"

	"github.com/listviz/listviz/pkg/errors"
)

// DefaultCapacity is the floor the backing array never shrinks below.
const DefaultCapacity = 10

const growFactor = 2

// Stack is a LIFO stack of E. The zero value is not usable; create stacks
// with [New].
type Stack[E any] struct {
	elements []E
	initial  int
}

// New creates a stack with the given starting capacity. Capacities below 1
// fall back to [DefaultCapacity].
func New[E any](capacity int) *Stack[E] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Stack[E]{
		elements: make([]E, 0, capacity),
		initial:  capacity,
	}
}

// Push places value on top of the stack, doubling the backing array when it
// is full.
func (s *Stack[E]) Push(value E) {
	if len(s.elements) == cap(s.elements) {
		grown := make([]E, len(s.elements), cap(s.elements)*growFactor)
		copy(grown, s.elements)
		s.elements = grown
	}
	s.elements = append(s.elements, value)
}

// Pop removes and returns the top value. When usage falls under half the
// backing array the array shrinks by half, but never below the initial
// capacity.
func (s *Stack[E]) Pop() (E, error) {
	var zero E
	if len(s.elements) == 0 {
		return zero, errors.New(errors.ErrCodeLogicError, "pop from empty stack")
	}

	top := s.elements[len(s.elements)-1]
	s.elements[len(s.elements)-1] = zero
	s.elements = s.elements[:len(s.elements)-1]

	if shrunk := cap(s.elements) / growFactor; len(s.elements) < shrunk && shrunk >= s.initial {
		smaller := make([]E, len(s.elements), shrunk)
		copy(smaller, s.elements)
		s.elements = smaller
	}

	return top, nil
}

// Peek returns the top value without removing it.
func (s *Stack[E]) Peek() (E, error) {
	if len(s.elements) == 0 {
		var zero E
		return zero, errors.New(errors.ErrCodeLogicError, "peek on empty stack")
	}
	return s.elements[len(s.elements)-1], nil
}

// Len returns the number of stacked values.
func (s *Stack[E]) Len() int {
	return len(s.elements)
}

// Cap returns the current backing array capacity.
func (s *Stack[E]) Cap() int {
	return cap(s.elements)
}

// Reverse flips the stack in place: the bottom value becomes the top.
func (s *Stack[E]) Reverse() {
	for low, high := 0, len(s.elements)-1; low < high; low, high = low+1, high-1 {
		s.elements[low], s.elements[high] = s.elements[high], s.elements[low]
	}
}

// All returns an iterator from the bottom of the stack to the top.
func (s *Stack[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, v := range s.elements {
			if !yield(v) {
				return
			}
		}
	}
}
