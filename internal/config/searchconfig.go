//
// corvid - chess engine core in Go
//

package config

// searchConfiguration holds the tunable toggles search actually consults.
// Opening-book and pondering fields are out of scope and dropped; the
// pruning suite is limited to what the search package implements.
type searchConfiguration struct {
	// Transposition table
	UseTT  bool
	TTSize int

	// Quiescence search
	UseQuiescence bool
	UseSEE        bool

	// Late move reduction
	UseLmr           bool
	LmrDepth         int
	LmrMovesSearched int
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Search.UseTT = true
	Settings.Search.TTSize = 128

	Settings.Search.UseQuiescence = true
	Settings.Search.UseSEE = true

	Settings.Search.UseLmr = true
	Settings.Search.LmrDepth = 3
	Settings.Search.LmrMovesSearched = 2
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupSearch() {

}
