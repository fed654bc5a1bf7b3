//
// corvid - chess engine core in Go
//

// Package perft walks the legal move tree to a fixed depth, counting and
// classifying leaf nodes. Comparing the counts against published reference
// values is the standard way of validating a move generator.
package perft

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mwendt/corvid/internal/move"
	"github.com/mwendt/corvid/internal/position"
)

var out = message.NewPrinter(language.German)

// Perft holds the node and move-class counters of one perft run.
type Perft struct {
	Nodes            uint64
	CheckCounter     uint64
	CheckMateCounter uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	stopFlag         bool
}

// NewPerft creates a new empty Perft instance.
func NewPerft() *Perft {
	return &Perft{}
}

// Stop can be used when perft has been started in a goroutine to stop the
// currently running perft test.
func (perft *Perft) Stop() {
	perft.stopFlag = true
}

// StartPerftMulti iterates StartPerft over a range of depths. If run in a
// goroutine it can be stopped via Stop.
func (perft *Perft) StartPerftMulti(fen string, startDepth, endDepth int) {
	perft.stopFlag = false
	for i := startDepth; i <= endDepth; i++ {
		if perft.stopFlag {
			out.Print("Perft multi depth stopped\n")
			return
		}
		perft.StartPerft(fen, i)
	}
}

// StartPerft runs a perft count from fen to depth. If run in a goroutine it
// can be stopped via Stop.
func (perft *Perft) StartPerft(fen string, depth int) {
	perft.stopFlag = false

	if depth <= 0 {
		depth = 1
	}

	perft.resetCounter()
	p, err := position.NewPositionFen(fen, nil)
	if err != nil {
		out.Printf("invalid FEN %q: %v\n", fen, err)
		return
	}

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("FEN: %s\n", fen)
	out.Printf("-----------------------------------------\n")

	start := time.Now()
	result := perft.miniMax(depth, p)
	elapsed := time.Since(start)

	if perft.stopFlag {
		out.Print("Perft stopped\n")
		return
	}

	perft.Nodes = result

	out.Printf("Time         : %s\n", elapsed)
	out.Printf("NPS          : %d nps\n", (perft.Nodes*uint64(time.Second.Nanoseconds()))/uint64(elapsed.Nanoseconds()+1))
	out.Printf("Results:\n")
	out.Printf("   Nodes     : %d\n", perft.Nodes)
	out.Printf("   Captures  : %d\n", perft.CaptureCounter)
	out.Printf("   EnPassant : %d\n", perft.EnpassantCounter)
	out.Printf("   Checks    : %d\n", perft.CheckCounter)
	out.Printf("   CheckMates: %d\n", perft.CheckMateCounter)
	out.Printf("   Castles   : %d\n", perft.CastleCounter)
	out.Printf("   Promotions: %d\n", perft.PromotionCounter)
	out.Printf("-----------------------------------------\n")
	out.Printf("Finished PERFT Test for Depth %d\n\n", depth)
}

func (perft *Perft) miniMax(depth int, p *position.Position) uint64 {
	if perft.stopFlag {
		return 0
	}

	totalNodes := uint64(0)
	moves := p.Moves()

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)

		if depth > 1 {
			if err := p.Make(m); err != nil {
				continue
			}
			totalNodes += perft.miniMax(depth-1, p)
			_ = p.Undo()
			continue
		}

		t := m.Type()
		if err := p.Make(m); err != nil {
			continue
		}
		totalNodes++
		if t == move.EnPassant {
			perft.EnpassantCounter++
			perft.CaptureCounter++
		} else if t.IsCapture() {
			perft.CaptureCounter++
		}
		if t == move.KingCastle || t == move.QueenCastle {
			perft.CastleCounter++
		}
		if t.IsPromotion() {
			perft.PromotionCounter++
		}
		if p.IsCheck() {
			perft.CheckCounter++
			if p.IsCheckmate() {
				perft.CheckMateCounter++
			}
		}
		_ = p.Undo()
	}
	return totalNodes
}

func (perft *Perft) resetCounter() {
	perft.Nodes = 0
	perft.CheckCounter = 0
	perft.CheckMateCounter = 0
	perft.CaptureCounter = 0
	perft.EnpassantCounter = 0
	perft.CastleCounter = 0
	perft.PromotionCounter = 0
}
