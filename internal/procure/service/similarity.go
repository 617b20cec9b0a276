package service

// Scorer returns a similarity in [0..1] for two normalized strings.
type Scorer func(a, b string) float64

const (
	ScorerTokenSort = "token_sort"
	ScorerDamerau   = "damerau"
)

// ScorerByName picks the scorer for the configured name; unknown names fall
// back to token-sort ratio.
func ScorerByName(name string) Scorer {
	switch name {
	case ScorerDamerau:
		return TokenSortDamerau
	default:
		return TokenSortRatio
	}
}

// TokenSortRatio: sort tokens of both sides, then indel ratio
// 1 - (insertions+deletions)/(len(a)+len(b)).
func TokenSortRatio(a, b string) float64 {
	return indelRatio(tokenSort(a), tokenSort(b))
}

// TokenSortDamerau: sort tokens, then 1 - damerau/maxLen.
func TokenSortDamerau(a, b string) float64 {
	return damerauSimilarity(tokenSort(a), tokenSort(b))
}

func indelRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	d := total - 2*lcsLength(ra, rb)
	return 1 - float64(d)/float64(total)
}

// longest common subsequence, two rolling rows
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func damerauSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	d := damerauLevenshtein(a, b)
	m := max(len([]rune(a)), len([]rune(b)))
	return 1 - float64(d)/float64(m)
}

// optimal string alignment distance
func damerauLevenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	al, bl := len(ra), len(rb)

	dp := make([][]int, al+1)
	for i := 0; i <= al; i++ {
		dp[i] = make([]int, bl+1)
		dp[i][0] = i
	}
	for j := 0; j <= bl; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= al; i++ {
		for j := 1; j <= bl; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			// insertion / deletion / substitution
			dp[i][j] = min(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+cost)

			// adjacent transposition
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				dp[i][j] = min(dp[i][j], dp[i-2][j-2]+1)
			}
		}
	}
	return dp[al][bl]
}
