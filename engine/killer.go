package engine

import (
	dragon "github.com/Bubblyworld/dragontoothmg"
)

// KillerTable keeps two quiet moves per ply that caused beta-cutoffs, so
// siblings try them early.
type KillerTable [MaxPly][2]dragon.Move

// Insert shifts the killers at this ply down and installs the move first,
// unless it already is the first killer.
func (k *KillerTable) Insert(move dragon.Move, ply int) {
	if ply >= MaxPly || move == k[ply][0] {
		return
	}
	k[ply][1] = k[ply][0]
	k[ply][0] = move
}

func (k *KillerTable) Clear() {
	for ply := range k {
		k[ply][0] = NoMove
		k[ply][1] = NoMove
	}
}

// HistoryTable counts beta-cutoffs of quiet moves by from/to square, used
// as the move ordering score of last resort.
type HistoryTable [64][64]int32

// Increment bumps the counter quadratically in depth, so cutoffs near the
// root dominate.
func (h *HistoryTable) Increment(move dragon.Move, depth int) {
	h[move.From()][move.To()] += int32(depth * depth)
}

func (h *HistoryTable) Clear() {
	for from := range h {
		for to := range h[from] {
			h[from][to] = 0
		}
	}
}
