//
// corvid - chess engine core in Go
//

package types

import (
	"strconv"
	"strings"

	"github.com/mwendt/corvid/internal/util"
)

// Value is a signed centipawn-ish evaluation score, also used to encode
// mate distances (see ValueCheckMateThreshold).
type Value int16

// Score constants.
const (
	ValueZero               Value = 0
	ValueDraw               Value = 0
	ValueOne                Value = 1
	ValueInf                Value = 15_000
	ValueNA                 Value = -ValueInf - 1
	ValueMax                Value = 10_000
	ValueMin                Value = -ValueMax
	ValueCheckMate          Value = ValueMax
	ValueCheckMateThreshold Value = ValueCheckMate - MaxDepth - 1
)

// IsValid reports whether v falls within the representable score range.
func (v Value) IsValid() bool {
	return v >= ValueMin && v <= ValueMax
}

// IsCheckMateValue reports whether v encodes a forced mate at some ply
// rather than a material/positional score.
func (v Value) IsCheckMateValue() bool {
	return util.Abs(int(v)) > int(ValueCheckMateThreshold) && util.Abs(int(v)) <= int(ValueCheckMate)
}

// String renders v the way a UCI "score" field would: "mate N" / "mate -N"
// for forced mates, "N/A" for ValueNA, otherwise "cp N".
func (v Value) String() string {
	switch {
	case v == ValueNA:
		return "N/A"
	case v.IsCheckMateValue():
		var pliesToMate int
		if v > 0 {
			pliesToMate = int(ValueCheckMate - v)
		} else {
			pliesToMate = int(v + ValueCheckMate)
		}
		movesToMate := (pliesToMate + 1) / 2
		if v < 0 {
			movesToMate = -movesToMate
		}
		if movesToMate >= 0 {
			return "mate " + strconv.Itoa(movesToMate)
		}
		return "mate -" + strconv.Itoa(-movesToMate)
	default:
		var sb strings.Builder
		sb.WriteString("cp ")
		sb.WriteString(strconv.Itoa(int(v)))
		return sb.String()
	}
}
