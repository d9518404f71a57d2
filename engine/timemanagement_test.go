package engine

import (
	"testing"
	"time"
)

func TestCalcTimeBudget(t *testing.T) {
	cases := []struct {
		name                          string
		movetime, remaining, incr     int
		overhead                      int64
		want                          int64
	}{
		{"movetime verbatim", 500, 0, 0, 0, 500},
		{"movetime beats clock", 500, 60000, 1000, 0, 500},
		{"fraction of remaining", 0, 90000, 0, 0, 3000},
		{"clock only", 0, 60000, 0, 0, 2000},
		{"clock plus increment", 0, 60000, 2000, 0, 4000},
		{"short clock floors at 100ms", 0, 1500, 0, 0, 100},
		{"long clock caps at 10s", 0, 600000, 0, 0, 10000},
		{"no limits means unbounded", 0, 0, 0, 0, 0},
		{"overhead shaved off", 500, 0, 0, 100, 400},
		{"overhead floors at 10ms", 50, 0, 0, 200, 10},
		{"overhead off clock budget", 0, 60000, 0, 50, 1950},
	}
	for _, c := range cases {
		got := CalcTimeBudget(c.movetime, c.remaining, c.incr, c.overhead)
		if got != c.want {
			t.Errorf("%s: CalcTimeBudget(%d, %d, %d, %d) = %d, want %d",
				c.name, c.movetime, c.remaining, c.incr, c.overhead, got, c.want)
		}
	}
}

func TestTimeHandlerExceeded(t *testing.T) {
	var th TimeHandler

	th.Start(0)
	time.Sleep(5 * time.Millisecond)
	if th.Exceeded() {
		t.Error("limit 0 must never be exceeded")
	}

	th.Start(1)
	time.Sleep(5 * time.Millisecond)
	if !th.Exceeded() {
		t.Error("1ms limit not exceeded after sleeping")
	}
	if th.ElapsedMs() < 1 {
		t.Error("elapsed time not tracked")
	}
}
