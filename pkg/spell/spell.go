// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package spell provides the ability to suggest an exact spelling of a word.

In the context of hostexpr, this is useful for errors that involve
misspelled filter or variable names.
*/
package spell

import (
	"strings"
)

// Nearest returns the candidate closest to word, or "" when nothing is
// close enough to be a plausible misspelling (edit distance above two,
// or more than half the word).
func Nearest(word string, candidates []string) string {
	best := ""
	bestDist := len(word)/2 + 1
	if bestDist > 3 {
		bestDist = 3
	}

	lowerWord := strings.ToLower(word)
	for _, cand := range candidates {
		dist := editDistance(lowerWord, strings.ToLower(cand))
		if dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
