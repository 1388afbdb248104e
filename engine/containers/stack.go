package containers

import "errors"

// Stack is a LIFO backed by a growable slice.
type Stack[T any] struct {
	data []T
}

// Create a new Stack with room for capacity elements before growing
func NewStack[T any](capacity int) *Stack[T] {
	return &Stack[T]{
		data: make([]T, 0, capacity),
	}
}

// Push adds an element on top of the stack
func (s *Stack[T]) Push(value T) {
	s.data = append(s.data, value)
}

// Pop removes and returns the top element of the stack
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if s.IsEmpty() {
		return zero, errors.New("stack is empty")
	}
	last := len(s.data) - 1
	value := s.data[last]
	s.data[last] = zero
	s.data = s.data[:last]
	return value, nil
}

// Peek returns the top element without removing it
func (s *Stack[T]) Peek() (T, error) {
	if s.IsEmpty() {
		var zero T
		return zero, errors.New("stack is empty")
	}
	return s.data[len(s.data)-1], nil
}

// IsEmpty checks if the stack is empty
func (s *Stack[T]) IsEmpty() bool {
	return len(s.data) == 0
}

func (s *Stack[T]) Len() int {
	return len(s.data)
}
