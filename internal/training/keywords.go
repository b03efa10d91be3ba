package training

import (
	"strings"
	"unicode"

	prose "github.com/jdkato/prose/v2"
)

const maxKeywords = 10

var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {}, "and": {},
	"a": {}, "to": {}, "are": {}, "as": {}, "for": {}, "with": {},
	"it": {}, "that": {}, "be": {}, "of": {}, "in": {}, "you": {},
	"have": {}, "can": {}, "will": {}, "would": {}, "if": {}, "we": {},
	"my": {}, "your": {}, "our": {},
}

// ExtractKeywords tokenizes text and keeps lowercase tokens longer than
// three characters that are not stop words, capped at ten. Token order
// follows the source text; duplicates are kept.
func ExtractKeywords(text string) []string {
	var keywords []string
	for _, token := range tokenize(text) {
		if len(token) <= 3 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		keywords = append(keywords, token)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func tokenize(text string) []string {
	doc, err := prose.NewDocument(
		strings.ToLower(text),
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return splitTokens(text)
	}

	var tokens []string
	for _, tok := range doc.Tokens() {
		if cleaned := cleanToken(tok.Text); cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}
	return tokens
}

// splitTokens is the whitespace fallback for input the tokenizer rejects.
func splitTokens(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(text)) {
		if cleaned := cleanToken(field); cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}
	return tokens
}

// cleanToken strips everything but letters and digits, mirroring the
// punctuation handling of the transcript format.
func cleanToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
