//
// corvid - chess engine core in Go
//

package move

import "fmt"

// capacity bounds the number of pseudo-legal moves any single position can
// generate; no standard chess position exceeds it by a wide margin.
const capacity = 256

// List is a fixed-capacity, non-allocating container of moves, filled in
// place by the move generator and consumed by search and move ordering.
type List struct {
	moves [capacity]Move
	len   int
}

// NewList returns an empty List ready for use.
func NewList() *List {
	return &List{}
}

// Len returns the number of moves currently stored.
func (l *List) Len() int {
	return l.len
}

// Clear empties the list without releasing its backing array.
func (l *List) Clear() {
	l.len = 0
}

// PushBack appends m to the end of the list.
func (l *List) PushBack(m Move) {
	l.moves[l.len] = m
	l.len++
}

// At returns the move stored at index i.
func (l *List) At(i int) Move {
	return l.moves[i]
}

// Set overwrites the move stored at index i.
func (l *List) Set(i int, m Move) {
	l.moves[i] = m
}

// Swap exchanges the moves stored at indices i and j.
func (l *List) Swap(i, j int) {
	l.moves[i], l.moves[j] = l.moves[j], l.moves[i]
}

// Contains reports whether m appears anywhere in the list.
func (l *List) Contains(m Move) bool {
	for i := 0; i < l.len; i++ {
		if l.moves[i] == m {
			return true
		}
	}
	return false
}

// Find returns the index of the first move equal to m, or -1 if absent.
func (l *List) Find(m Move) int {
	for i := 0; i < l.len; i++ {
		if l.moves[i] == m {
			return i
		}
	}
	return -1
}

// String renders the list as a UCI-style space-separated move sequence.
func (l *List) String() string {
	s := ""
	for i := 0; i < l.len; i++ {
		if i > 0 {
			s += " "
		}
		s += l.moves[i].String()
	}
	return fmt.Sprintf("MoveList[%d]{%s}", l.len, s)
}
