package engine

import (
	"time"
)

// TimeHandler tracks the wall clock for one search. A limit of 0 means
// unbounded (depth-limited search).
type TimeHandler struct {
	start   time.Time
	limitMs int64
}

func (th *TimeHandler) Start(limitMs int64) {
	th.start = time.Now()
	th.limitMs = limitMs
}

func (th *TimeHandler) ElapsedMs() int64 {
	return time.Since(th.start).Milliseconds()
}

func (th *TimeHandler) Exceeded() bool {
	return th.limitMs > 0 && th.ElapsedMs() >= th.limitMs
}

// checkTime sets the sticky abort flag once the budget is spent. The
// actual clock inspection is throttled to every 2048 visited nodes; the
// flag itself is consulted on every call.
func (e *Engine) checkTime() bool {
	if e.timing.limitMs > 0 && e.Stats.Nodes&2047 == 0 {
		if e.timing.Exceeded() {
			e.aborted = true
		}
	}
	return e.aborted
}

// CalcTimeBudget turns UCI go parameters into a per-move budget in ms.
// movetime is used verbatim when given; otherwise a thirtieth of the
// remaining clock plus the increment, clamped to [100ms, 10s]. Zero means
// no time limit. The overhead is shaved off the result to absorb IO
// latency.
func CalcTimeBudget(movetimeMs, remainingMs, incrementMs int, overheadMs int64) int64 {
	var budget int64
	switch {
	case movetimeMs > 0:
		budget = int64(movetimeMs)
	case remainingMs > 0:
		budget = int64(remainingMs/30 + incrementMs)
		if budget < 100 {
			budget = 100
		}
		if budget > 10000 {
			budget = 10000
		}
	default:
		return 0
	}
	budget -= overheadMs
	if budget < 10 {
		budget = 10
	}
	return budget
}
