package model

import "fmt"

// Collection is an ordered collection whose element order is meaningful.
// The explorer mirrors node children against it index for index.
type Collection interface {
	Len() int
	At(i int) any
	Insert(i int, v any)
	RemoveAt(i int)
}

// TreeObject is a domain object that reports its own parent and keeps an
// ordered child collection. TreeChildren returns nil for leaves.
type TreeObject interface {
	TreeParent() TreeObject
	SetTreeParent(p TreeObject)
	TreeChildren() Collection
	TreeKind() string
}

// List is a slice-backed Collection of T.
type List[T any] struct {
	items []T
}

func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: append([]T(nil), items...)}
}

func (l *List[T]) Len() int { return len(l.items) }

func (l *List[T]) At(i int) any { return l.items[i] }

func (l *List[T]) Get(i int) T { return l.items[i] }

// Insert inserts v at index i. It panics if v is not a T, which is a caller bug.
func (l *List[T]) Insert(i int, v any) {
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("model.List: cannot insert %T", v))
	}
	if i < 0 || i > len(l.items) {
		panic(fmt.Sprintf("model.List: insert index %d out of range [0,%d]", i, len(l.items)))
	}
	var zero T
	l.items = append(l.items, zero)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = t
}

func (l *List[T]) RemoveAt(i int) {
	copy(l.items[i:], l.items[i+1:])
	var zero T
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
}

func (l *List[T]) Append(v T) { l.items = append(l.items, v) }

// Items returns a copy of the elements in order.
func (l *List[T]) Items() []T { return append([]T(nil), l.items...) }
