package engine

// RepetitionTable maps zobrist hashes to the number of times the position
// has occurred on the game history plus the current search path. The UCI
// layer seeds it while replaying `position ... moves`; the search pushes
// and pops around every make/unmake.
type RepetitionTable map[uint64]int

// Add records one occurrence and returns the new count.
func (rt RepetitionTable) Add(hash uint64) int {
	count := rt[hash] + 1
	rt[hash] = count
	return count
}

// Remove drops one occurrence, deleting the entry at zero so the table
// doesn't grow without bound.
func (rt RepetitionTable) Remove(hash uint64) {
	count := rt[hash] - 1
	if count > 0 {
		rt[hash] = count
	} else {
		delete(rt, hash)
	}
}

func (rt RepetitionTable) Count(hash uint64) int {
	return rt[hash]
}
