package analyzer

import (
	"sort"
)

// Percentages converts raw per-language byte counts into integer
// percentages that sum to exactly 100. Languages are ordered by byte count
// descending (name ascending on ties); each entry starts at its floored
// share and the leftover points go to the entries with the largest
// fractional remainders, so every value stays non-negative and the sum is
// exact. An empty input yields an empty (not nil) map.
func Percentages(byteCounts map[string]int) map[string]int {
	result := map[string]int{}
	if len(byteCounts) == 0 {
		return result
	}

	total := 0
	names := make([]string, 0, len(byteCounts))
	for name, n := range byteCounts {
		if n <= 0 {
			continue
		}
		total += n
		names = append(names, name)
	}
	if total == 0 {
		return result
	}

	sort.Slice(names, func(i, j int) bool {
		if byteCounts[names[i]] != byteCounts[names[j]] {
			return byteCounts[names[i]] > byteCounts[names[j]]
		}
		return names[i] < names[j]
	})

	shares := make([]int, len(names))
	remainders := make([]float64, len(names))
	assigned := 0
	for i, name := range names {
		exact := float64(byteCounts[name]) / float64(total) * 100
		shares[i] = int(exact)
		remainders[i] = exact - float64(shares[i])
		assigned += shares[i]
	}

	// The flooring shortfall is always less than len(names), so every
	// leftover point lands on a distinct entry.
	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for _, idx := range order[:100-assigned] {
		shares[idx]++
	}

	for i, name := range names {
		result[name] = shares[i]
	}
	return result
}
