// Perft utility: counts leaf nodes of the legal move tree to sanity-check
// the board library against known reference numbers.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

func main() {
	fen := flag.String("fen", dragon.Startpos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board := dragon.ParseFen(*fen)

	if *divide {
		type kv struct {
			move  string
			nodes uint64
		}
		var arr []kv
		var sum uint64
		for _, m := range board.GenerateLegalMoves() {
			unapply := board.Apply(m)
			n := perft(&board, *depth-1)
			unapply()
			arr = append(arr, kv{m.String(), n})
			sum += n
		}
		// Sort moves for stable output
		sort.Slice(arr, func(i, j int) bool { return arr[i].move < arr[j].move })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.move, x.nodes)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	start := time.Now()
	nodes := perft(&board, *depth)
	elapsed := time.Since(start)
	nps := float64(nodes) / elapsed.Seconds()

	fmt.Printf("depth %d \tnodes %d \ttime %s \tnps %.0f\n", *depth, nodes, elapsed, nps)
}

func perft(b *dragon.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += perft(b, depth-1)
		unapply()
	}
	return nodes
}
