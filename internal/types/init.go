//
// corvid - chess engine core in Go
//

package types

import (
	myLogging "github.com/mwendt/corvid/internal/logging"
	"github.com/op/go-logging"
)

var log *logging.Logger

var initialized = false

func init() {
	if initialized {
		return
	}
	log = myLogging.GetLog()
	log.Debug("Initializing data types")
	initSqTo()
	initBb()
	initPosValues()
	initialized = true
}

// Package-wide sizing constants.
const (
	SqLength  int    = 64
	MaxDepth         = 128
	MaxMoves         = 512
	KB        uint64 = 1024
	MB               = KB * KB
	GB               = KB * MB
)
