//
// corvid - chess engine core in Go
//

package position

import (
	"os"
	"path"
	"runtime"
	"testing"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mwendt/corvid/internal/config"
	"github.com/mwendt/corvid/internal/hash"
	myLogging "github.com/mwendt/corvid/internal/logging"
	"github.com/mwendt/corvid/internal/move"
	. "github.com/mwendt/corvid/internal/types"

	"github.com/stretchr/testify/assert"
)

var out = message.NewPrinter(language.German)
var logTest *logging.Logger

// make tests run in the project's root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	config.Setup()
	logTest = myLogging.GetTestLog()
	code := m.Run()
	os.Exit(code)
}

func TestPositionCreation(t *testing.T) {
	p, err := NewPositionFen(StartFen, nil)
	assert.NoError(t, err)
	assert.Equal(t, SqA1.Bb()|SqH1.Bb()|SqA8.Bb()|SqH8.Bb(), p.PiecesBb(White, Rook)|p.PiecesBb(Black, Rook))
	assert.Equal(t, SqB1.Bb()|SqG1.Bb()|SqB8.Bb()|SqG8.Bb(), p.PiecesBb(White, Knight)|p.PiecesBb(Black, Knight))
	assert.Equal(t, SqC1.Bb()|SqF1.Bb()|SqC8.Bb()|SqF8.Bb(), p.PiecesBb(White, Bishop)|p.PiecesBb(Black, Bishop))
	assert.Equal(t, SqD1.Bb()|SqD8.Bb(), p.PiecesBb(White, Queen)|p.PiecesBb(Black, Queen))
	assert.Equal(t, SqE1.Bb()|SqE8.Bb(), p.PiecesBb(White, King)|p.PiecesBb(Black, King))
	assert.Equal(t, White, p.NextPlayer())
	assert.Equal(t, CastlingAny, p.CastlingRights())
	assert.Equal(t, SqNone, p.GetEnPassantSquare())
	assert.Equal(t, 0, p.HalfMoveClock())
	assert.Equal(t, StartFen, p.StringFen())

	fen := "r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3 0 14"
	p, err = NewPositionFen(fen, nil)
	assert.NoError(t, err)
	assert.Equal(t, Black, p.NextPlayer())
	assert.Equal(t, CastlingBlack, p.CastlingRights())
	assert.Equal(t, SqE3, p.GetEnPassantSquare())
	assert.Equal(t, 0, p.HalfMoveClock())
	assert.Equal(t, fen, p.StringFen())
}

func TestPositionCreation_CustomHasher(t *testing.T) {
	seeded := hash.NewSeeded(7)
	p, err := NewPositionFen(StartFen, seeded)
	assert.NoError(t, err)
	assert.Equal(t, seeded.Full(p.current().Board.Array(), White, CastlingAny, SqNone), p.ZobristKey())

	other, err := NewPositionFen(StartFen, hash.New())
	assert.NoError(t, err)
	assert.NotEqual(t, p.ZobristKey(), other.ZobristKey(),
		"two Positions built from different hashers must not collide on the same FEN")
}

func TestPosition_FullMoveNumber(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, 1, p.FullMoveNumber())

	m := p.FindMoveString("e2e4")
	assert.True(t, m.IsValid())
	assert.NoError(t, p.Make(m))
	assert.Equal(t, 1, p.FullMoveNumber())

	m = p.FindMoveString("e7e5")
	assert.True(t, m.IsValid())
	assert.NoError(t, p.Make(m))
	assert.Equal(t, 2, p.FullMoveNumber())
}

func TestPositionEquality(t *testing.T) {
	p1 := NewPosition()
	p2, _ := NewPositionFen(StartFen, nil)
	assert.Equal(t, p1, p2)

	p3, _ := NewPositionFen("r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3 0 14", nil)
	assert.NotEqual(t, p1, p3)
}

func TestPosition_MakeUndo(t *testing.T) {
	p := NewPosition()
	startZobrist := p.ZobristKey()

	moves := []string{"e2e4", "d7d5", "e4d5", "d8d5", "b1c3"}
	for _, ms := range moves {
		m := p.FindMoveString(ms)
		assert.True(t, m.IsValid(), "move %s not found", ms)
		assert.NoError(t, p.Make(m))
	}
	for range moves {
		assert.NoError(t, p.Undo())
	}
	assert.Equal(t, StartFen, p.StringFen())
	assert.Equal(t, startZobrist, p.ZobristKey())
}

func TestPosition_MakeNormal(t *testing.T) {
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1"
	p, err := NewPositionFen(fen, nil)
	assert.NoError(t, err)
	m := p.FindMoveString("c4d4")
	assert.True(t, m.IsValid())
	assert.NoError(t, p.Make(m))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/3qPp2/B5R1/p1p2PPP/1R4K1 w kq - 1 2", p.StringFen())
}

func TestPosition_MakeCastling(t *testing.T) {
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1"
	p, err := NewPositionFen(fen, nil)
	assert.NoError(t, err)
	m := p.FindMoveString("e8c8")
	assert.True(t, m.IsValid())
	assert.NoError(t, p.Make(m))
	assert.Equal(t, "2kr3r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 w - - 1 2", p.StringFen())
}

func TestPosition_MakeEnPassant(t *testing.T) {
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1"
	p, err := NewPositionFen(fen, nil)
	assert.NoError(t, err)
	m := p.FindMoveString("f4e3")
	assert.True(t, m.IsValid())
	assert.Equal(t, move.EnPassant, m.Type())
	assert.NoError(t, p.Make(m))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/2q5/B3p1R1/p1p2PPP/1R4K1 w kq - 0 2", p.StringFen())
}

func TestPosition_MakePromotion(t *testing.T) {
	fen := "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1"
	p, err := NewPositionFen(fen, nil)
	assert.NoError(t, err)
	m := p.FindMove(SqA2, SqA1, Queen)
	assert.True(t, m.IsValid())
	assert.NoError(t, p.Make(m))
	assert.Equal(t, "r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/2p2PPP/qR4K1 w kq - 0 2", p.StringFen())
}

// assertHashMatchesFull checks the incrementally-maintained Zobrist key
// against a from-scratch recomputation, per the "incremental and full
// hashing agree" invariant.
func assertHashMatchesFull(t *testing.T, p *Position) {
	t.Helper()
	cur := p.current()
	want := p.hasher.Full(cur.Board.Array(), cur.Turn, cur.Castling, cur.EpSquare)
	assert.Equal(t, want, cur.Hash, "incremental hash diverged from full recompute at %s", p.StringFen())
}

func TestPosition_IncrementalHashMatchesFull(t *testing.T) {
	cases := []struct{ fen, ms string }{
		{"r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1", "c4d4"},
		{"r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1", "e8c8"},
		{"r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1", "f4e3"},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "e1g1"},
	}
	for _, tc := range cases {
		p, err := NewPositionFen(tc.fen, nil)
		assert.NoError(t, err)
		assertHashMatchesFull(t, p)
		m := p.FindMoveString(tc.ms)
		assert.True(t, m.IsValid(), "move %s not found", tc.ms)
		assert.NoError(t, p.Make(m))
		assertHashMatchesFull(t, p)
		assert.NoError(t, p.Undo())
		assertHashMatchesFull(t, p)
	}

	p, err := NewPositionFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1", nil)
	assert.NoError(t, err)
	m := p.FindMove(SqA2, SqA1, Queen)
	assert.True(t, m.IsValid())
	assert.NoError(t, p.Make(m))
	assertHashMatchesFull(t, p)

	p2 := NewPosition()
	for _, ms := range []string{"e2e4", "d7d5", "e4d5", "d8d5", "b1c3"} {
		m := p2.FindMoveString(ms)
		assert.True(t, m.IsValid(), "move %s not found", ms)
		assert.NoError(t, p2.Make(m))
		assertHashMatchesFull(t, p2)
	}

	p3, err := NewPositionFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1", nil)
	assert.NoError(t, err)
	assertHashMatchesFull(t, p3)
	p3.Skip()
	assertHashMatchesFull(t, p3)
}

func TestPosition_FindMoveStringUnknown(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, move.Invalid, p.FindMoveString("e2e5"))
	assert.Equal(t, move.Invalid, p.FindMoveString("xx"))
}

func TestPosition_IsCheckmate(t *testing.T) {
	// back-rank mate: the rook checks along the eighth rank and the
	// king's own pawns block every escape square
	p, err := NewPositionFen("R5k1/5ppp/8/8/8/8/8/7K b - - 0 1", nil)
	assert.NoError(t, err)
	assert.True(t, p.IsCheck())
	assert.True(t, p.IsCheckmate())
	assert.False(t, p.IsStalemate())
}

func TestPosition_IsStalemate(t *testing.T) {
	p, err := NewPositionFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", nil)
	assert.NoError(t, err)
	assert.False(t, p.IsCheck())
	assert.True(t, p.IsStalemate())
	assert.True(t, p.IsDraw())
}

func TestPosition_IsDrawInsufficientMaterial(t *testing.T) {
	p, err := NewPositionFen("8/3k4/8/8/8/8/4K3/8 w - - 0 1", nil)
	assert.NoError(t, err)
	assert.True(t, p.IsDraw())
}

func TestPosition_IsDrawFiftyMoveRule(t *testing.T) {
	p, err := NewPositionFen("8/8/4k3/8/8/8/4K3/7R w - - 99 80", nil)
	assert.NoError(t, err)
	m := p.FindMoveString("h1h5")
	assert.True(t, m.IsValid())
	assert.NoError(t, p.Make(m))
	assert.True(t, p.IsDraw())
}

func TestPosition_RepetitionDraw(t *testing.T) {
	p := NewPosition()
	seq := []string{"g1f3", "b8c6", "f3g1", "c6b8"}
	for i := 0; i < 3; i++ {
		for _, ms := range seq {
			m := p.FindMoveString(ms)
			assert.True(t, m.IsValid(), "move %s not found on round %d", ms, i)
			assert.NoError(t, p.Make(m))
		}
	}
	assert.True(t, p.IsDraw())
}

func TestPosition_Skip(t *testing.T) {
	p, err := NewPositionFen("r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq e3 0 1", nil)
	assert.NoError(t, err)
	before := p.StringFen()
	zBefore := p.ZobristKey()
	p.Skip()
	assert.NotEqual(t, zBefore, p.ZobristKey())
	assert.Equal(t, White, p.NextPlayer())
	assert.NoError(t, p.Undo())
	assert.Equal(t, before, p.StringFen())
	assert.Equal(t, zBefore, p.ZobristKey())
}

// MakeUndo took ... per round trip
func TestTimingMakeUndo(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	const iterations = 200_000
	moves := []string{"e2e4", "d7d5", "e4d5", "d8d5", "b1c3"}

	p := NewPosition()
	start := time.Now()
	for i := 0; i < iterations; i++ {
		for _, ms := range moves {
			m := p.FindMoveString(ms)
			_ = p.Make(m)
		}
		for range moves {
			_ = p.Undo()
		}
	}
	elapsed := time.Since(start)
	out.Printf("Make/Undo took %s for %d iterations with %d pairs\n", elapsed, iterations, len(moves))
	out.Printf("Make/Undo took %d ns per pair\n", elapsed.Nanoseconds()/int64(iterations*len(moves)))
}
