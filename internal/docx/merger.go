package docx

import (
	"regexp"
	"sort"
)

// tokenPattern matches placeholder tokens such as {FIO} or {CONTRACT_NO_2}.
var tokenPattern = regexp.MustCompile(`\{[A-Z0-9_]+\}`)

var wholeTokenPattern = regexp.MustCompile(`^\{[A-Z0-9_]+\}$`)

// TokenSet is a set of placeholder tokens, braces included.
type TokenSet map[string]struct{}

// Sorted returns the tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for tok := range s {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// IsToken reports whether s is exactly one placeholder token.
func IsToken(s string) bool {
	return wholeTokenPattern.MatchString(s)
}

// FindTokens returns the tokens occurring in text.
func FindTokens(text string) TokenSet {
	found := TokenSet{}
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		found[tok] = struct{}{}
	}
	return found
}

// Scan returns every token found in the document. Tokens split across runs
// are detected because each paragraph is scanned as a whole.
func Scan(doc *Document) TokenSet {
	found := TokenSet{}
	for _, p := range doc.Paragraphs() {
		for tok := range FindTokens(p.Text()) {
			found[tok] = struct{}{}
		}
	}
	return found
}

// Merge replaces tokens with their mapped values in place. Tokens missing from
// mapping stay in the text verbatim. A paragraph holding at least one token is
// collapsed into its first run; paragraphs without tokens are not touched.
//
// Replacement is a single pass over the original paragraph text, so a mapped
// value that itself contains a token is never substituted again.
func Merge(doc *Document, mapping map[string]string) {
	for _, p := range doc.Paragraphs() {
		mergeParagraph(p, mapping)
	}
}

func mergeParagraph(p *Paragraph, mapping map[string]string) {
	if len(p.Runs()) == 0 {
		return
	}
	text := p.Text()
	if text == "" || !tokenPattern.MatchString(text) {
		return
	}
	rewritten := tokenPattern.ReplaceAllStringFunc(text, func(tok string) string {
		if v, ok := mapping[tok]; ok {
			return v
		}
		return tok
	})
	p.collapse(rewritten)
}
