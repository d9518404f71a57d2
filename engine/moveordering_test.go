package engine

import (
	"testing"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// findMove returns the legal move matching the UCI string, failing the
// test if the position doesn't contain it.
func findMove(t *testing.T, b *dragon.Board, uci string) dragon.Move {
	t.Helper()
	for _, m := range b.GenerateLegalMoves() {
		if m.String() == uci {
			return m
		}
	}
	t.Fatalf("move %s not legal in %s", uci, b.ToFen())
	return NoMove
}

func TestScoreMoveCategories(t *testing.T) {
	// White has a promotion, a knight takes rook, killers and plain
	// quiet moves all in one position.
	board := dragon.ParseFen("4k3/P7/8/3r4/8/2N5/8/4K3 w - - 0 1")
	eng := NewEngine()
	eng.killers.Insert(findMove(t, &board, "e1e2"), 0)
	eng.killers.Insert(findMove(t, &board, "e1f1"), 0)

	promo := eng.scoreMove(&board, findMove(t, &board, "a7a8q"), 0)
	capture := eng.scoreMove(&board, findMove(t, &board, "c3d5"), 0)
	killer1 := eng.scoreMove(&board, findMove(t, &board, "e1f1"), 0)
	killer2 := eng.scoreMove(&board, findMove(t, &board, "e1e2"), 0)
	quiet := eng.scoreMove(&board, findMove(t, &board, "c3b1"), 0)

	if promo != promotionScore {
		t.Errorf("promotion score = %d, want %d", promo, promotionScore)
	}
	if want := captureScore + 10*PieceValueMG[dragon.Rook] - PieceValueMG[dragon.Knight]; capture != want {
		t.Errorf("NxR score = %d, want %d", capture, want)
	}
	if killer1 != killerScore1 || killer2 != killerScore2 {
		t.Errorf("killer scores = %d, %d, want %d, %d", killer1, killer2, killerScore1, killerScore2)
	}
	if quiet != 0 {
		t.Errorf("quiet move with empty history scored %d, want 0", quiet)
	}
	if !(promo > capture && capture > killer1 && killer1 > killer2 && killer2 > quiet) {
		t.Error("category ordering violated")
	}
}

func TestMVVLVAPrefersBiggerVictim(t *testing.T) {
	// The d4 pawn can take either the queen or the rook.
	board := dragon.ParseFen("4k3/8/8/2q1r3/3P4/8/8/7K w - - 0 1")
	eng := NewEngine()

	pxq := eng.scoreMove(&board, findMove(t, &board, "d4c5"), 0)
	pxr := eng.scoreMove(&board, findMove(t, &board, "d4e5"), 0)
	if pxq <= pxr {
		t.Errorf("PxQ (%d) must outscore PxR (%d)", pxq, pxr)
	}

	moves := board.GenerateLegalMoves()
	eng.sortMoves(&board, moves, NoMove, 0)
	if moves[0].String() != "d4c5" {
		t.Errorf("first move after sort = %s, want d4c5", moves[0])
	}
}

func TestEnPassantScoredAsPawnTakesPawn(t *testing.T) {
	// The e5 pawn can capture en passant on d6 or a pawn on f6 directly.
	board := dragon.ParseFen("4k3/8/5p2/3pP3/8/8/8/4K3 w - d6 0 1")
	eng := NewEngine()

	ep := findMove(t, &board, "e5d6")
	if !isEnPassant(&board, ep) {
		t.Fatal("e5d6 not recognized as en passant")
	}
	if !isCapture(&board, ep) {
		t.Fatal("en passant not recognized as a capture")
	}
	push := findMove(t, &board, "e5e6")
	if isEnPassant(&board, push) || isCapture(&board, push) {
		t.Fatal("quiet pawn push misclassified")
	}

	// Valued at the nominal 100, not the middlegame pawn value.
	want := captureScore + 10*epVictimValue - epVictimValue
	got := eng.scoreMove(&board, ep, 0)
	if got != want {
		t.Errorf("en passant score = %d, want %d", got, want)
	}

	// That puts en passant just above an ordinary pawn takes pawn.
	pxp := eng.scoreMove(&board, findMove(t, &board, "e5f6"), 0)
	if got <= pxp {
		t.Errorf("en passant (%d) must outscore plain PxP (%d)", got, pxp)
	}
}

func TestSortMovesPinsTTMoveFirst(t *testing.T) {
	board := dragon.ParseFen(dragon.Startpos)
	eng := NewEngine()

	moves := board.GenerateLegalMoves()
	before := make(map[dragon.Move]bool, len(moves))
	for _, m := range moves {
		before[m] = true
	}

	ttMove := findMove(t, &board, "g1f3")
	eng.sortMoves(&board, moves, ttMove, 0)

	if moves[0] != ttMove {
		t.Errorf("first move = %s, want TT move g1f3", moves[0])
	}
	if len(moves) != len(before) {
		t.Fatalf("sort changed move count: %d vs %d", len(moves), len(before))
	}
	for _, m := range moves {
		if !before[m] {
			t.Fatalf("sort invented move %s", m)
		}
		delete(before, m)
	}
}

func TestHistoryBreaksQuietTies(t *testing.T) {
	board := dragon.ParseFen(dragon.Startpos)
	eng := NewEngine()

	d2d4 := findMove(t, &board, "d2d4")
	eng.history.Increment(d2d4, 6)

	moves := board.GenerateLegalMoves()
	eng.sortMoves(&board, moves, NoMove, 0)
	if moves[0] != d2d4 {
		t.Errorf("first move = %s, want history-boosted d2d4", moves[0])
	}
}

func TestKillerTableInsert(t *testing.T) {
	var k KillerTable
	m1, _ := dragon.ParseMove("e2e4")
	m2, _ := dragon.ParseMove("d2d4")

	k.Insert(m1, 3)
	if k[3][0] != m1 || k[3][1] != NoMove {
		t.Fatalf("after first insert: %v", k[3])
	}
	// Reinserting the front killer is a no-op.
	k.Insert(m1, 3)
	if k[3][0] != m1 || k[3][1] != NoMove {
		t.Fatalf("after duplicate insert: %v", k[3])
	}
	k.Insert(m2, 3)
	if k[3][0] != m2 || k[3][1] != m1 {
		t.Fatalf("after second insert: %v", k[3])
	}
	// Out-of-range plies are ignored rather than panicking.
	k.Insert(m1, MaxPly)
}

func TestHistoryIncrementIsQuadratic(t *testing.T) {
	var h HistoryTable
	m, _ := dragon.ParseMove("e2e4")

	h.Increment(m, 3)
	h.Increment(m, 4)
	if got := h[m.From()][m.To()]; got != 25 {
		t.Errorf("history counter = %d, want 25", got)
	}
	h.Clear()
	if h[m.From()][m.To()] != 0 {
		t.Error("history not cleared")
	}
}
