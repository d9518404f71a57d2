package engine

import (
	"cmp"

	dragon "github.com/Bubblyworld/dragontoothmg"
	"golang.org/x/exp/slices"
)

// Move ordering scores, highest first. The TT move is not scored here;
// sortMoves pins it to the front of the list.
const (
	promotionScore int32 = 2000000
	captureScore   int32 = 1000000
	killerScore1   int32 = 900000
	killerScore2   int32 = 800000
)

// En-passant victims are valued at the nominal pawn, not the middlegame
// material value.
const epVictimValue int32 = 100

// isEnPassant detects an en-passant capture: a pawn changing file onto an
// empty square.
func isEnPassant(b *dragon.Board, m dragon.Move) bool {
	return b.PieceAt(m.From()) == dragon.Pawn &&
		m.From()%8 != m.To()%8 &&
		b.PieceAt(m.To()) == 0
}

// isCapture must be asked before the move is applied.
func isCapture(b *dragon.Board, m dragon.Move) bool {
	return b.PieceAt(m.To()) != 0 || isEnPassant(b, m)
}

// scoreMove ranks a single move: promotions, then captures by MVV-LVA,
// then the two killers at this ply, then the history counter.
func (e *Engine) scoreMove(b *dragon.Board, m dragon.Move, ply int) int32 {
	if m.Promote() != 0 {
		return promotionScore
	}

	if isEnPassant(b, m) {
		// Pawn takes pawn at the nominal value, ranked just above an
		// ordinary PxP.
		return captureScore + 10*epVictimValue - epVictimValue
	}
	if victim := b.PieceAt(m.To()); victim != 0 {
		attacker := b.PieceAt(m.From())
		return captureScore + 10*PieceValueMG[victim] - PieceValueMG[attacker]
	}

	if m == e.killers[ply][0] {
		return killerScore1
	}
	if m == e.killers[ply][1] {
		return killerScore2
	}
	return e.history[m.From()][m.To()]
}

type scoredMove struct {
	move  dragon.Move
	score int32
}

// sortMoves orders the list in place: the TT move (if present) first, the
// rest by descending score. The sort is stable so equal scores keep their
// generation order, which keeps searches reproducible.
func (e *Engine) sortMoves(b *dragon.Board, moves []dragon.Move, ttMove dragon.Move, ply int) {
	start := 0
	if ttMove != NoMove {
		for i, m := range moves {
			if m == ttMove {
				copy(moves[1:i+1], moves[:i])
				moves[0] = ttMove
				start = 1
				break
			}
		}
	}

	rest := moves[start:]
	scored := make([]scoredMove, len(rest))
	for i, m := range rest {
		scored[i] = scoredMove{move: m, score: e.scoreMove(b, m, ply)}
	}
	slices.SortStableFunc(scored, func(a, b scoredMove) int {
		return cmp.Compare(b.score, a.score)
	})
	for i := range scored {
		rest[i] = scored[i].move
	}
}
