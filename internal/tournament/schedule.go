package tournament

// Pair indexes two distinct items of a tournament, I < J
type Pair struct {
	I, J int
}

// Schedule enumerates every unordered pair of items exactly once in the order
// (0,1), (0,2), ..., (1,2), ... which yields n(n-1)/2 pairs for n items.
func Schedule(n int) []Pair {
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}
