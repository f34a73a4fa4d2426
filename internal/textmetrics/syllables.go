// Package textmetrics converts free text into numeric signals used by the
// on-page scorer: syllable counts, Flesch readability and keyword density.
package textmetrics

import (
	"strings"
	"unicode"
)

// CountSyllables estimates the syllables in text using vowel-group counting
// with silent-e and consonant-le corrections. Every word counts at least one
// syllable and the result is never below 1.
func CountSyllables(text string) int {
	total := 0
	for _, token := range strings.Fields(text) {
		total += wordSyllables(token)
	}
	if total < 1 {
		return 1
	}
	return total
}

func wordSyllables(token string) int {
	word := []rune(lettersOnly(token))
	n := len(word)
	if n <= 3 {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if word[n-1] == 'e' {
		count--
		if word[n-2] == 'l' && !isVowel(word[n-3]) {
			count++
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}

func lettersOnly(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
