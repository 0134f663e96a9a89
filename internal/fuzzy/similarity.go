// Package fuzzy scores string similarity on a 0..100 scale.
//
// Scores are case-sensitive and computed over runes, so Cyrillic and Latin
// letters never match each other even when they look alike.
package fuzzy

const MaxScore = 100.0

// Ratio is the normalized Indel similarity of a and b:
// 100 * (1 - indel / (len(a) + len(b))), where indel counts insertions and
// deletions only. Two empty strings score 100.
func Ratio(a string, b string) float64 {
	return ratioRunes([]rune(a), []rune(b))
}

// PartialRatio is the best Ratio between the shorter string and any window of
// the longer one, including windows that overhang either end. Strings of
// equal length are windowed in both directions.
func PartialRatio(a string, b string) float64 {
	shorter := []rune(a)
	longer := []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if len(shorter) == 0 {
		if len(longer) == 0 {
			return MaxScore
		}
		return 0
	}

	best := bestWindow(shorter, longer)
	if len(shorter) == len(longer) && best < MaxScore {
		best = max(best, bestWindow(longer, shorter))
	}
	return best
}

func bestWindow(needle []rune, haystack []rune) float64 {
	width := len(needle)
	best := 0.0
	for start := -(width - 1); start < len(haystack); start++ {
		from := max(start, 0)
		to := min(start+width, len(haystack))
		score := ratioRunes(needle, haystack[from:to])
		if score > best {
			best = score
			if best == MaxScore {
				break
			}
		}
	}
	return best
}

func ratioRunes(a []rune, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return MaxScore
	}
	indel := total - 2*longestCommonSubsequence(a, b)
	return MaxScore * (1 - float64(indel)/float64(total))
}

// longestCommonSubsequence keeps one row of the table.
func longestCommonSubsequence(a []rune, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	row := make([]int, len(b)+1)
	for i := range a {
		diagonal := 0
		for j := range b {
			above := row[j+1]
			if a[i] == b[j] {
				row[j+1] = diagonal + 1
			} else if row[j] > above {
				row[j+1] = row[j]
			}
			diagonal = above
		}
	}
	return row[len(b)]
}
