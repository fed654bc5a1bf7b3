//
// corvid - chess engine core in Go
//

package types

import "fmt"

// Key is a Zobrist hash key identifying a position's board, side to move,
// castling rights, and en-passant status. Collisions are accepted as the
// cost of using 64 bits for the whole game-state space.
type Key uint64

// String renders the key in hex, the conventional debug form for a hash.
func (k Key) String() string {
	return fmt.Sprintf("%016x", uint64(k))
}
