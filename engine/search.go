package engine

import (
	"fmt"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// Aspiration half-window around the previous iteration's score.
const aspirationWindow int32 = 50

// Null-move depth reduction.
const nullMoveReduction = 2

// infinityScore sits outside every legal score, including mates.
const infinityScore int32 = 999999

// minimax is a fail-hard alpha-beta search, side-to-move aware: White
// maximizes, Black minimizes. At depth 0 it hands over to quiescence.
func (e *Engine) minimax(b *dragon.Board, depth int, alpha, beta int32, ply int) int32 {
	// Draw by threefold repetition or the 50-move rule. The repetition
	// table holds the game history plus the current search path.
	if e.Repetition.Count(b.Hash()) >= 3 || b.Halfmoveclock >= 100 {
		return DrawScore
	}

	if score, over := gameResult(b, ply); over {
		e.Stats.Nodes++
		return score
	}

	if depth <= 0 {
		return e.quiescence(b, alpha, beta, ply)
	}
	if ply >= MaxPly {
		return staticEval(b)
	}

	e.Stats.Nodes++

	alphaOrig, betaOrig := alpha, beta

	hash := b.Hash()
	ttMove := NoMove
	entry := e.TT.Probe(hash)
	if entry != nil {
		ttMove = entry.Move
	}
	if entry != nil && int(entry.Depth) >= depth {
		e.Stats.TTHits++
		ttScore := denormalizeMate(entry.Score, ply)
		switch entry.Flag {
		case ExactFlag:
			e.Stats.TTCutoffs++
			return ttScore
		case LowerFlag:
			if ttScore > alpha {
				alpha = ttScore
			}
		case UpperFlag:
			if ttScore < beta {
				beta = ttScore
			}
		}
		if alpha >= beta {
			e.Stats.TTCutoffs++
			if b.Wtomove {
				return alpha
			}
			return beta
		}
	} else {
		e.Stats.TTMisses++
	}

	// Null move pruning: pass the turn and search reduced; if the
	// position is still past the bound, cut. Skipped in check, at the
	// root, and without non-pawn material (zugzwang).
	if depth >= 3 && ply > 0 && !b.OurKingInCheck() {
		stm := dragon.White
		if !b.Wtomove {
			stm = dragon.Black
		}
		nonPawns := b.Bbs[stm][dragon.All] &^ (b.Bbs[stm][dragon.Pawn] | b.Bbs[stm][dragon.King])
		if nonPawns != 0 {
			unapply := b.ApplyNullMove()
			nullScore := e.minimax(b, depth-1-nullMoveReduction, alpha, beta, ply+1)
			unapply()

			// A timed-out null search returns garbage; don't cut on it.
			if !e.aborted {
				if b.Wtomove {
					if nullScore >= beta {
						return beta
					}
				} else {
					if nullScore <= alpha {
						return alpha
					}
				}
			}
		}
	}

	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		return Evaluate(b, ply)
	}
	e.sortMoves(b, moves, ttMove, ply)

	bestMove := NoMove
	bestScore := -infinityScore
	if !b.Wtomove {
		bestScore = infinityScore
	}

	for _, m := range moves {
		if e.checkTime() {
			if bestMove == NoMove {
				bestMove = moves[0] // emergency fallback
			}
			break
		}

		// Classify before applying: afterwards the board has changed.
		isCap := isCapture(b, m)
		isQuiet := !isCap && m.Promote() == 0

		unapply := b.Apply(m)
		e.Repetition.Add(b.Hash())
		score := e.minimax(b, depth-1, alpha, beta, ply+1)
		e.Repetition.Remove(b.Hash())
		unapply()

		if e.aborted {
			if bestMove == NoMove {
				bestMove = moves[0]
			}
			break
		}

		if b.Wtomove {
			if score > bestScore {
				bestScore = score
				bestMove = m
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score < bestScore {
				bestScore = score
				bestMove = m
			}
			if score < beta {
				beta = score
			}
		}

		if beta <= alpha {
			e.Stats.ABCutoffs++
			if isQuiet {
				e.history.Increment(m, depth)
				e.killers.Insert(m, ply)
			}
			break
		}
	}

	// Aborted calls must not write the table: their scores are partial.
	if e.aborted {
		return bestScore
	}

	flag := ExactFlag
	if bestScore <= alphaOrig {
		flag = UpperFlag
	} else if bestScore >= betaOrig {
		flag = LowerFlag
	}
	e.TT.Store(hash, normalizeMate(bestScore, ply), depth, flag, bestMove)

	return bestScore
}

// Search runs iterative deepening with aspiration windows up to maxDepth
// or until the time budget (0 = unbounded) runs out, and returns the best
// move with its score. The move always comes from a fully completed
// iteration; a timed-out iteration is discarded.
func (e *Engine) Search(b *dragon.Board, maxDepth int, limitMs int64) (dragon.Move, int32) {
	e.Stats.Reset()
	e.killers.Clear()
	e.history.Clear()
	e.timing.Start(limitMs)
	e.aborted = false

	if maxDepth <= 0 || maxDepth > 100 {
		maxDepth = 100
	}

	bestMove := NoMove
	var bestScore int32

	for depth := 1; depth <= maxDepth; depth++ {
		if e.aborted {
			break
		}

		alpha, beta := -MaxScore, MaxScore
		aspirated := false
		if depth >= 2 && bestScore != 0 {
			alpha = bestScore - aspirationWindow
			beta = bestScore + aspirationWindow
			aspirated = true
		}

		score := e.minimax(b, depth, alpha, beta, 0)

		// Fell out of the aspiration window: redo with the full one.
		if !e.aborted && aspirated && (score <= alpha || score >= beta) {
			score = e.minimax(b, depth, -MaxScore, MaxScore, 0)
		}

		if e.aborted {
			// Keep the previous iteration's move.
			break
		}

		if entry := e.TT.Probe(b.Hash()); entry != nil {
			bestMove = entry.Move
			bestScore = score
		}
		e.printInfo(depth, bestScore, bestMove)
	}

	if bestMove == NoMove {
		if moves := b.GenerateLegalMoves(); len(moves) > 0 {
			bestMove = moves[0]
		}
	}
	return bestMove, bestScore
}

// printInfo emits the per-iteration UCI info line with the diagnostic
// counters appended.
func (e *Engine) printInfo(depth int, score int32, best dragon.Move) {
	elapsed := e.timing.ElapsedMs()
	var nps uint64
	if elapsed > 0 {
		nps = e.Stats.Nodes * 1000 / uint64(elapsed)
	}

	totalProbes := e.Stats.TTHits + e.Stats.TTMisses
	var ttRate uint64
	if totalProbes > 0 {
		ttRate = e.Stats.TTHits * 100 / totalProbes
	}
	var qsPct uint64
	if e.Stats.Nodes > 0 {
		qsPct = e.Stats.QNodes * 100 / e.Stats.Nodes
	}

	fmt.Println(
		"info depth", depth,
		"score", ScoreString(score),
		"nodes", e.Stats.Nodes,
		"time", elapsed,
		"nps", nps,
		"pv", MoveString(best),
		"tthits", e.Stats.TTHits,
		"ttrate", ttRate,
		"ttcutoffs", e.Stats.TTCutoffs,
		"abcutoffs", e.Stats.ABCutoffs,
		"qsnodes", e.Stats.QNodes,
		"qspct", qsPct,
	)
}

// ScoreString renders a score the UCI way: "cp <n>", or "mate <n>" (moves,
// not plies, negative when the engine is being mated).
func ScoreString(score int32) string {
	if score > MateThreshold {
		plies := MateScore - score
		return fmt.Sprintf("mate %d", (plies+1)/2)
	}
	if score < -MateThreshold {
		plies := MateScore + score
		return fmt.Sprintf("mate %d", -(plies+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

// MoveString renders a move in long algebraic form, "0000" for no move.
func MoveString(m dragon.Move) string {
	if m == NoMove {
		return "0000"
	}
	return m.String()
}
