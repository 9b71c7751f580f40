package model

import (
	"strings"
	"unicode"
)

// isWord matches the \w class: letters, digits, combining marks and underscore
func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Tokenize lowercases s and returns runs of two or more word runes, in order
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	var out []string
	start, n := -1, 0
	for i, r := range s {
		if isWord(r) {
			if start < 0 {
				start, n = i, 0
			}
			n++
			continue
		}
		if start >= 0 && n >= 2 {
			out = append(out, s[start:i])
		}
		start = -1
	}
	if start >= 0 && n >= 2 {
		out = append(out, s[start:])
	}
	return out
}

// Terms expands tokens into n-grams for n in [1, maxN], joined by a single space
func Terms(tokens []string, maxN int) []string {
	if maxN < 1 {
		maxN = 1
	}
	out := make([]string, 0, len(tokens)*maxN)
	out = append(out, tokens...)
	for n := 2; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
