package captions

import (
	"strings"
)

// Fragment is a short run of words shown on screen at the same time.
type Fragment struct {
	Text      string
	CharCount int
}

// ChunkText splits narration text into caption-sized fragments. A new
// fragment starts when the current one already holds maxWords words, or when
// appending the next word would push the joined length past maxChars. A word
// longer than maxChars still becomes its own fragment instead of being
// dropped.
func ChunkText(text string, maxWords, maxChars int) []Fragment {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var fragments []Fragment
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		joined := strings.Join(current, " ")
		fragments = append(fragments, Fragment{Text: joined, CharCount: len(joined)})
		current = nil
		currentLen = 0
	}

	for _, word := range words {
		if len(current) > 0 {
			if len(current) >= maxWords || currentLen+1+len(word) > maxChars {
				flush()
			}
		}
		if len(current) == 0 {
			currentLen = len(word)
		} else {
			currentLen += 1 + len(word)
		}
		current = append(current, word)
	}
	flush()

	return fragments
}
