package trigger

import (
	"strings"
	"unicode"
)

// Token is one word of request or trigger text. Offset is the byte
// offset of the word in the original string, used for first-mention
// ordering.
type Token struct {
	Text   string
	Fold   string
	Offset int
}

// Tokenize splits s into letter/digit runs with byte offsets.
func Tokenize(s string) []Token {
	var out []Token
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, newToken(s[start:i], start))
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, newToken(s[start:], start))
	}
	return out
}

func newToken(text string, offset int) Token {
	return Token{Text: text, Fold: FoldWord(text), Offset: offset}
}

// FoldWord lowercases and strips simple morphological suffixes so that
// "test", "tests" and "testing" compare equal. This is deliberately
// not a stemmer; the rules cover plural/participle variants only.
func FoldWord(w string) string {
	s := strings.ToLower(w)

	switch {
	case len(s) > 4 && strings.HasSuffix(s, "ies"):
		s = strings.TrimSuffix(s, "ies") + "y"
	case len(s) > 4 && (strings.HasSuffix(s, "sses") ||
		strings.HasSuffix(s, "xes") ||
		strings.HasSuffix(s, "ches") ||
		strings.HasSuffix(s, "shes")):
		s = strings.TrimSuffix(s, "es")
	case strings.HasSuffix(s, "ss"):
		// "less", "class": keep as-is.
	case len(s) > 3 && strings.HasSuffix(s, "s"):
		s = strings.TrimSuffix(s, "s")
	}

	switch {
	case len(s) > 5 && strings.HasSuffix(s, "ing"):
		s = strings.TrimSuffix(s, "ing")
	case len(s) > 4 && strings.HasSuffix(s, "ed"):
		s = strings.TrimSuffix(s, "ed")
	}

	// Collapse the doubled consonant left behind by -ing/-ed forms
	// (committed -> committ -> commit).
	if n := len(s); n >= 3 && s[n-1] == s[n-2] {
		s = s[:n-1]
	}

	// Drop a final silent 'e' so "write"/"writing" and
	// "message"/"messages" land on the same fold.
	if len(s) > 3 && strings.HasSuffix(s, "e") {
		s = strings.TrimSuffix(s, "e")
	}
	return s
}

// stopwords are dropped from trigger fragments and request text before
// matching. Includes the "Use when ..." boilerplate common in skill
// descriptions.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"after": {}, "before": {},
	"be": {}, "but": {}, "by": {}, "etc": {}, "for": {}, "from": {},
	"if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "or": {}, "such": {}, "that": {}, "the": {},
	"their": {}, "then": {}, "there": {}, "these": {}, "they": {},
	"this": {}, "to": {}, "up": {}, "was": {}, "when": {}, "whenever": {},
	"while": {}, "will": {}, "with": {}, "you": {}, "your": {},
	// Description boilerplate: "Use when ...", "Triggers: ...".
	"use": {}, "used": {}, "using": {}, "trigger": {}, "triggers": {},
}

func isStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// ContentTokens filters stopwords out, preserving offsets.
func ContentTokens(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if isStopword(t.Text) {
			continue
		}
		out = append(out, t)
	}
	return out
}
