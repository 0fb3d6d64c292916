package webmanifest

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// suggest returns the candidate closest to got, or "" when nothing is close
// enough to be a plausible typo.
func suggest(got string, candidates []string) string {
	lg := lower(got)
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lg, lower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > typoBudget(got) {
		return ""
	}
	return best
}

// typoBudget scales the accepted edit distance with the input length, one
// edit per three characters, between 1 and 3.
func typoBudget(s string) int {
	return max(1, min(3, utf8.RuneCountInString(s)/3))
}

func hintFor(got string, candidates []string) string {
	if s := suggest(got, candidates); s != "" {
		return `did you mean "` + s + `"?`
	}
	return ""
}
