//
// corvid - chess engine core in Go
//

package search

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.German)

// Statistics collects the counters a driver reports alongside a search:
// how much of the tree was actually visited and how the late-move
// reduction and quiescence passes behaved.
type Statistics struct {
	Nodes           uint64
	QNodes          uint64
	LmrReductions   uint64
	LmrResearches   uint64
	BetaCutoffs     uint64
	TTHits          uint64
	TTMisses        uint64
	BestMoveChanges uint64
}

func (st Statistics) String() string {
	return out.Sprintf("nodes=%d qnodes=%d lmrReductions=%d lmrResearches=%d "+
		"betaCutoffs=%d ttHits=%d ttMisses=%d bestMoveChanges=%d",
		st.Nodes, st.QNodes, st.LmrReductions, st.LmrResearches,
		st.BetaCutoffs, st.TTHits, st.TTMisses, st.BestMoveChanges)
}
