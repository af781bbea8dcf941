package smells

import "strings"

// matchGlob reports whether text matches pattern, where '*' matches any
// run of characters (including none) and '?' matches exactly one
// character. Matching is case-insensitive, per spec.md §4.7.
//
// plceye's own glob_match recurses on every '*' by trying each split
// point of the remaining text, re-running the whole match from there —
// worst case exponential on a pattern with many stars against a long,
// mismatching string. This version fills an (len(pattern)+1) x
// (len(text)+1) table bottom-up instead, which is the standard
// bounded-DP wildcard-match algorithm: O(len(pattern)*len(text)) time
// and no recursion, so a pathological "****...*x" pattern can't blow
// the stack or the clock the way the naive backtracking version can.
func matchGlob(pattern, text string) bool {
	pattern = strings.ToLower(pattern)
	text = strings.ToLower(text)

	p := []rune(pattern)
	t := []rune(text)
	np, nt := len(p), len(t)

	// match[i][j] = pattern[:i] matches text[:j]
	match := make([][]bool, np+1)
	for i := range match {
		match[i] = make([]bool, nt+1)
	}
	match[0][0] = true
	for i := 1; i <= np; i++ {
		if p[i-1] == '*' {
			match[i][0] = match[i-1][0]
		}
	}

	for i := 1; i <= np; i++ {
		for j := 1; j <= nt; j++ {
			switch p[i-1] {
			case '*':
				match[i][j] = match[i-1][j] || match[i][j-1]
			case '?':
				match[i][j] = match[i-1][j-1]
			default:
				match[i][j] = match[i-1][j-1] && p[i-1] == t[j-1]
			}
		}
	}
	return match[np][nt]
}

// matchAny reports whether text matches any of patterns.
func matchAny(patterns []string, text string) bool {
	for _, p := range patterns {
		if matchGlob(p, text) {
			return true
		}
	}
	return false
}
