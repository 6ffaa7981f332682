package aggregate

import (
	"regexp"
	"sort"
	"strings"
)

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// normalize case-folds the description, tokenizes it, and joins the
// sorted tokens. Sorting makes the metric robust to reordered phrasing
// ("Missing error handling in section 3" vs "Section 3 lacks error
// handling") that describes the same issue.
func normalize(s string) string {
	tokens := tokenRe.FindAllString(strings.ToLower(s), -1)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Similarity returns a longest-common-subsequence ratio in [0,1]
// between two finding descriptions, after normalization.
func Similarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == "" && nb == "" {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	common := lcsLength([]rune(na), []rune(nb))
	return 2.0 * float64(common) / float64(len([]rune(na))+len([]rune(nb)))
}

// lcsLength computes the longest-common-subsequence length with a
// two-row DP table. Descriptions are short, so quadratic time is fine.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			if a[i] == b[j] {
				curr[j+1] = prev[j] + 1
			} else if prev[j+1] >= curr[j] {
				curr[j+1] = prev[j+1]
			} else {
				curr[j+1] = curr[j]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
