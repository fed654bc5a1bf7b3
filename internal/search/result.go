//
// corvid - chess engine core in Go
//

package search

import (
	"time"

	"github.com/mwendt/corvid/internal/move"
	. "github.com/mwendt/corvid/internal/types"
)

// Result is what a search reports for the deepest iteration it
// completed: the move it recommends, that move's value from the
// searching side's point of view, the principal variation leading to
// it, and how much work it took to find.
type Result struct {
	BestMove move.Move
	Value    Value
	PV       []move.Move
	Depth    int
	Nodes    uint64
	Elapsed  time.Duration
	Stats    Statistics
}
