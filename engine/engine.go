package engine

import (
	dragon "github.com/Bubblyworld/dragontoothmg"
)

// Score constants. Mate scores live in the band |s| > MateThreshold and
// carry the distance to mate; everything else is centipawns.
const (
	MateScore     int32 = 100000
	MateThreshold int32 = 90000
	MaxScore      int32 = 100000
	DrawScore     int32 = 0

	// Hard cap on search depth including the quiescence extension.
	MaxPly = 128
)

// NoMove is the empty move sentinel.
const NoMove = dragon.Move(0)

// SearchStats collects per-search node and cutoff counters for the UCI
// info diagnostics.
type SearchStats struct {
	Nodes     uint64
	QNodes    uint64
	TTHits    uint64
	TTMisses  uint64
	TTCutoffs uint64
	ABCutoffs uint64
}

func (s *SearchStats) Reset() {
	*s = SearchStats{}
}

// Engine owns all state of one search session: the transposition table,
// the move ordering heuristics, the repetition history and the clock.
// The search itself is single-threaded; distinct Engine values share
// nothing and may run concurrently.
type Engine struct {
	TT         TransTable
	Repetition RepetitionTable
	Stats      SearchStats

	killers KillerTable
	history HistoryTable
	timing  TimeHandler
	aborted bool

	// MoveOverhead (ms) is subtracted from every time budget to absorb
	// protocol and IO latency. Settable via UCI setoption.
	MoveOverhead int64
}

func NewEngine() *Engine {
	e := &Engine{
		Repetition: make(RepetitionTable),
	}
	e.TT.Init(DefaultTTSlots)
	return e
}

// NewGame wipes everything that outlives a single search: the
// transposition table, the heuristic tables and the repetition history.
func (e *Engine) NewGame() {
	e.TT.Clear()
	e.killers.Clear()
	e.history.Clear()
	e.Repetition = make(RepetitionTable)
}

// Stop requests the current or next search to abort at its next time
// check. Best-effort: a search in progress notices it at the next node
// batch, and Search clears the flag on entry.
func (e *Engine) Stop() {
	e.aborted = true
}
