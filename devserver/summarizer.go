package devserver

import (
	"strings"
	"unicode"
)

const maxTitleLength = 60

// summarize keeps the first n sentences of text and titles the result after the first one.
// It stands in for the real summarization service.
func summarize(text string, n int) (title, summary string) {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return "", ""
	}
	if n <= 0 || n > len(sentences) {
		n = len(sentences)
	}
	return makeTitle(sentences[0]), strings.Join(sentences[:n], " ")
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	runes := []rune(strings.Join(strings.Fields(text), " "))
	for i, r := range runes {
		current.WriteRune(r)
		end := r == '.' || r == '!' || r == '?'
		if end && (i == len(runes)-1 || unicode.IsSpace(runes[i+1])) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func makeTitle(sentence string) string {
	title := strings.TrimRight(sentence, ".!? ")
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	cut := string(runes[:maxTitleLength])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
