// Search benchmark: runs a fixed-depth search over a small position suite
// and reports nodes and speed. Positions run concurrently, each with its
// own engine instance; the search itself stays single-threaded.
package main

import (
	"flag"
	"fmt"
	"sync/atomic"
	"time"

	dragon "github.com/Bubblyworld/dragontoothmg"
	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"pesto-engine/engine"
)

// Mixed opening/middlegame/endgame positions, deep enough trees to be
// representative of real play.
var benchFens = []string{
	dragon.Startpos,
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"r2q1rk1/pp2bppp/2n1bn2/2pp4/8/1P1P1NP1/PBPN1PBP/R2Q1RK1 w - - 0 10",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
}

func main() {
	depth := flag.Int("depth", 6, "search depth in plies")
	serial := flag.Bool("serial", false, "run positions one at a time")
	prof := flag.Bool("profile", false, "write a CPU profile to the working directory")
	flag.Parse()

	if *prof {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	var totalNodes atomic.Uint64
	start := time.Now()

	var g errgroup.Group
	if *serial {
		g.SetLimit(1)
	}
	for i, fen := range benchFens {
		i, fen := i, fen
		g.Go(func() error {
			board := dragon.ParseFen(fen)
			eng := engine.NewEngine()
			eng.Repetition.Add(board.Hash())

			iterStart := time.Now()
			best, score := eng.Search(&board, *depth, 0)
			elapsed := time.Since(iterStart)

			totalNodes.Add(eng.Stats.Nodes)
			fmt.Printf("position %d: bestmove %s score %s nodes %d time %v\n",
				i+1, engine.MoveString(best), engine.ScoreString(score), eng.Stats.Nodes, elapsed)
			return nil
		})
	}
	g.Wait()

	elapsed := time.Since(start)
	nodes := totalNodes.Load()
	fmt.Printf("total: nodes %d time %v nps %.0f\n",
		nodes, elapsed, float64(nodes)/elapsed.Seconds())
}
