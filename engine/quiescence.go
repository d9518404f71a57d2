package engine

import (
	dragon "github.com/Bubblyworld/dragontoothmg"
)

// Margin in centipawns a pruned capture would still have to beat.
const deltaMargin int32 = 100

// quiescence extends the search past the nominal horizon until the
// position is quiet: outside check only captures are tried, in check all
// evasions. Fail-hard with side-to-move-aware bounds, like minimax.
func (e *Engine) quiescence(b *dragon.Board, alpha, beta int32, ply int) int32 {
	e.Stats.Nodes++
	e.Stats.QNodes++

	if score, over := gameResult(b, ply); over {
		return score
	}
	if ply >= MaxPly {
		return staticEval(b)
	}

	standPat := staticEval(b)
	inCheck := b.OurKingInCheck()

	// Stand pat: the side to move can decline all captures, so the
	// static eval bounds the score - unless we're in check and must
	// move.
	if !inCheck {
		if b.Wtomove {
			if standPat >= beta {
				return beta
			}
			if standPat > alpha {
				alpha = standPat
			}
		} else {
			if standPat <= alpha {
				return alpha
			}
			if standPat < beta {
				beta = standPat
			}
		}
	}

	// Captures and promotions when quiet; every legal evasion when in
	// check. Checkmate has already been caught by gameResult, so in
	// check there is at least one evasion here.
	moves, _ := b.GenerateLegalMoves2(true)
	if len(moves) == 0 {
		return standPat
	}

	e.sortMoves(b, moves, NoMove, ply)

	phase := GetPiecePhase(b)

	for _, m := range moves {
		// Delta pruning: skip captures that can't lift the score
		// back to the window even with a margin. Unsound in check,
		// in late endgames and for promotions.
		if !inCheck && phase > 4 && m.Promote() == 0 {
			var victim int32
			if isEnPassant(b, m) {
				victim = epVictimValue
			} else if p := b.PieceAt(m.To()); p != 0 {
				victim = PieceValueMG[p]
			}
			if victim > 0 {
				if b.Wtomove {
					if standPat+victim+deltaMargin < alpha {
						continue
					}
				} else {
					if standPat-victim-deltaMargin > beta {
						continue
					}
				}
			}
		}

		unapply := b.Apply(m)
		score := e.quiescence(b, alpha, beta, ply+1)
		unapply()

		if b.Wtomove {
			if score >= beta {
				return beta
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score <= alpha {
				return alpha
			}
			if score < beta {
				beta = score
			}
		}
	}

	if b.Wtomove {
		return alpha
	}
	return beta
}
