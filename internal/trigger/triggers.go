package trigger

import "strings"

// Trigger is one candidate phrase or keyword decomposed from a skill's
// description.
type Trigger struct {
	// Text is the trigger as written in the description.
	Text string

	// Tokens are the folded content tokens of the trigger.
	Tokens []string

	// Phrase is true for multi-word triggers; phrase matches require
	// the tokens to appear consecutively in the request.
	Phrase bool
}

// Unquoted fragments with more content tokens than this contribute
// their tokens as individual keywords instead of one phrase; prose
// sentences are not useful phrase triggers.
const maxFragmentPhraseTokens = 2

// ParseTriggers decomposes a free-text trigger description into
// matchable triggers. Double-quoted and backtick-quoted spans are
// explicit triggers (a multi-word span is a phrase); the remaining
// text is split on punctuation into fragments, where short fragments
// become phrases and longer prose contributes keywords.
// Decomposition is deterministic for a given description.
func ParseTriggers(description string) []Trigger {
	var out []Trigger
	seen := map[string]struct{}{}

	add := func(text string, explicit bool) {
		toks := ContentTokens(Tokenize(text))
		if len(toks) == 0 {
			return
		}
		if len(toks) > maxFragmentPhraseTokens && !explicit {
			for _, t := range toks {
				addTrigger(&out, seen, t.Text, []string{t.Fold})
			}
			return
		}
		folds := make([]string, 0, len(toks))
		words := make([]string, 0, len(toks))
		for _, t := range toks {
			folds = append(folds, t.Fold)
			words = append(words, t.Text)
		}
		display := strings.TrimSpace(text)
		if !explicit {
			// Fragments may carry stopwords; show only the content words.
			display = strings.Join(words, " ")
		}
		addTrigger(&out, seen, display, folds)
	}

	quoted, rest := extractQuoted(description)
	for _, q := range quoted {
		add(q, true)
	}
	for _, frag := range splitFragments(rest) {
		add(frag, false)
	}
	return out
}

func addTrigger(out *[]Trigger, seen map[string]struct{}, text string, folds []string) {
	key := strings.Join(folds, " ")
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}
	*out = append(*out, Trigger{
		Text:   text,
		Tokens: folds,
		Phrase: len(folds) > 1,
	})
}

// extractQuoted pulls "..." and `...` spans out of s, returning the
// spans in order and the remaining text with the spans removed.
func extractQuoted(s string) (spans []string, rest string) {
	var b strings.Builder
	for {
		i := strings.IndexAny(s, "\"`")
		if i < 0 {
			b.WriteString(s)
			break
		}
		quote := s[i]
		j := strings.IndexByte(s[i+1:], quote)
		if j < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		b.WriteByte(' ')
		spans = append(spans, s[i+1:i+1+j])
		s = s[i+1+j+1:]
	}
	return spans, b.String()
}

func splitFragments(s string) []string {
	frags := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ',', ';', '.', ':', '(', ')', '!', '?', '/', '\n':
			return true
		}
		return false
	})
	out := make([]string, 0, len(frags))
	for _, f := range frags {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
