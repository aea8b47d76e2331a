package matching

// Ratio computes a character-sequence similarity score in [0.0, 1.0] between
// two strings: twice the number of characters in common matching blocks
// divided by the total length of both strings. Identical strings score 1.0,
// strings with no characters in common score 0.0. Two empty strings score 1.0.
//
// Matching blocks are found greedily, longest first, then recursively to the
// left and right of each block.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	return 2.0 * float64(matchedChars(ra, rb)) / float64(total)
}

// matchedChars returns the total number of characters covered by the
// matching blocks of a and b.
func matchedChars(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type span struct {
		alo, ahi, blo, bhi int
	}

	stack := []span{{0, len(a), 0, len(b)}}
	matched := 0

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i, j, size := longestMatch(a, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if size == 0 {
			continue
		}
		matched += size

		if s.alo < i && s.blo < j {
			stack = append(stack, span{s.alo, i, s.blo, j})
		}
		if i+size < s.ahi && j+size < s.bhi {
			stack = append(stack, span{i + size, s.ahi, j + size, s.bhi})
		}
	}

	return matched
}

// longestMatch finds the longest block of a[alo:ahi] that also occurs in
// b[blo:bhi], using the precomputed position index b2j. Among equally long
// blocks the one starting earliest in a, then earliest in b, wins, which
// keeps the overall measure deterministic.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] is the length of the longest common block ending at a[i-1]
	// and b[j], carried over from the previous row.
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	return besti, bestj, bestsize
}
