// Package match pairs resume skills against job keywords using exact
// normalized comparison followed by greedy fuzzy matching.
package match

// Ratio computes the Ratcliff/Obershelp similarity of two strings over runes:
// twice the number of matching characters found by recursively locating the
// longest common substring, divided by the total length. The result is in
// [0, 1]; two empty strings compare as 1.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}

	type span struct{ alo, ahi, blo, bhi int }
	stack := []span{{0, len(ra), 0, len(rb)}}
	matches := 0
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i, j, k := longestMatch(ra, rb, s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		matches += k
		stack = append(stack,
			span{s.alo, i, s.blo, j},
			span{i + k, s.ahi, j + k, s.bhi},
		)
	}
	return 2 * float64(matches) / float64(total)
}

// longestMatch finds the longest run of equal runes within the given bounds.
// Ties resolve to the earliest position in a, then in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestsize
}
