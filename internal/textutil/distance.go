package textutil

// Distance returns the Damerau-Levenshtein distance between a and b.
//
// Insertions, deletions, substitutions and transpositions each cost 1.
// Transposed characters need not be adjacent: the cost of a transposition
// grows with the number of characters between the swapped pair. Strings are
// compared rune by rune, so multi-byte characters count once.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	n, m := len(ra), len(rb)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	inf := n + m
	rows := n + 2
	cols := m + 2
	d := make([]int, rows*cols)
	at := func(i, j int) *int { return &d[i*cols+j] }

	*at(0, 0) = inf
	for i := 0; i <= n; i++ {
		*at(i+1, 0) = inf
		*at(i+1, 1) = i
	}
	for j := 0; j <= m; j++ {
		*at(0, j+1) = inf
		*at(1, j+1) = j
	}

	// Row (1-based) where each rune of a was last seen.
	lastRow := make(map[rune]int, n)

	for i := 1; i <= n; i++ {
		ca := ra[i-1]
		lastMatchCol := 0
		for j := 1; j <= m; j++ {
			cb := rb[j-1]
			lmr := lastRow[cb]
			lmc := lastMatchCol

			cost := 1
			if ca == cb {
				cost = 0
				lastMatchCol = j
			}

			substitution := *at(i, j) + cost
			insertion := *at(i+1, j) + 1
			deletion := *at(i, j+1) + 1
			transposition := *at(lmr, lmc) + max(i-lmr-1, j-lmc-1) + 1

			*at(i+1, j+1) = min(substitution, insertion, deletion, transposition)
		}
		lastRow[ca] = i
	}

	return *at(n+1, m+1)
}
