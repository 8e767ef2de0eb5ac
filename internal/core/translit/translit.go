// Package translit normalizes ASCII and Latin transliteration of Akkadian into the
// canonical Unicode form consumed by the sign mapper
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Strip editorial markers (# ? ! *)
// 3 Unicode NFC and lowercase
// 4 Ordered data rules eg sz->š s,->ṣ h->ḫ
// 5 Accent indices eg bé->be₂ šà->ša₃
// 6 Subscript digits after a sign value eg mul2->mul₂
// 7 Per line drop isolated x tokens, collapse whitespace and trim
package translit

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IllegibleToken is the source convention for a sign that cannot be read
const IllegibleToken = "x"

// Rule is one ordered rewrite applied over the whole string
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply runs the rule once over s
func (r Rule) Apply(s string) string {
	if r.Pattern == nil {
		return s
	}
	return r.Pattern.ReplaceAllString(s, r.Replacement)
}

// Normalizer is safe for concurrent use; its rule list is never mutated after New
type Normalizer struct {
	rules []Rule
}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			cases.Lower(language.Und),
			norm.NFC, // lowering may decompose a handful of letters
		)
	},
}

// New constructs a Normalizer applying rules in the given order at stage 4
func New(rules ...Rule) *Normalizer {
	cp := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Pattern != nil {
			cp = append(cp, r)
		}
	}
	return &Normalizer{rules: cp}
}

// Rules returns a copy of the ordered rule list
func (n *Normalizer) Rules() []Rule {
	out := make([]Rule, len(n.rules))
	copy(out, n.rules)
	return out
}

// Normalize returns the canonical transliteration of s. It never fails: characters
// it does not recognize pass through unchanged
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1
	s = strings.ToValidUTF8(s, "")

	// 2
	s = stripMarkers(s)

	// 3
	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = strings.ToLower(s)
	}

	// 4 deletions can leave a base letter next to a combining mark
	if len(n.rules) > 0 {
		for _, r := range n.rules {
			ns = r.Apply(ns)
		}
		ns = norm.NFC.String(ns)
	}

	// 5
	ns = accentIndices(ns)

	// 6
	ns = subscriptDigits(ns)

	// 7
	return tidyLines(ns)
}

// stripMarkers removes the damage, query, collation and emendation markers.
// They go before the data rules so a marker between two letters cannot hide
// a digraph until a second pass
func stripMarkers(s string) string {
	if !strings.ContainsAny(s, editorialMarkers) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(editorialMarkers, r) {
			return -1
		}
		return r
	}, s)
}

const editorialMarkers = "#?!*"

// accent vowel -> (plain vowel, index)
var accents = map[rune]struct {
	base  rune
	index rune
}{
	'á': {'a', '₂'}, 'é': {'e', '₂'}, 'í': {'i', '₂'}, 'ú': {'u', '₂'},
	'à': {'a', '₃'}, 'è': {'e', '₃'}, 'ì': {'i', '₃'}, 'ù': {'u', '₃'},
}

// accentIndices rewrites a sign value carrying exactly one accented vowel into the
// plain value followed by its numeric index. Values that already carry an index,
// or more than one accent, are left alone
func accentIndices(s string) string {
	if !hasAccent(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)

	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsLetter(r) {
			b.WriteRune(r)
			i += size
			continue
		}
		j := i
		for j < len(s) {
			rr, sz := utf8.DecodeRuneInString(s[j:])
			if !unicode.IsLetter(rr) {
				break
			}
			j += sz
		}
		b.WriteString(reindex(s[i:j], s[j:]))
		i = j
	}
	return b.String()
}

func hasAccent(s string) bool {
	for _, r := range s {
		if _, ok := accents[r]; ok {
			return true
		}
	}
	return false
}

// reindex handles one run of letters; rest is the text that follows the run
func reindex(value, rest string) string {
	if next, _ := utf8.DecodeRuneInString(rest); isDigit(next) || isSubscript(next) {
		return value
	}
	var (
		found int
		index rune
	)
	for _, r := range value {
		if a, ok := accents[r]; ok {
			found++
			index = a.index
		}
	}
	if found != 1 {
		return value
	}
	var b strings.Builder
	b.Grow(len(value) + 3)
	for _, r := range value {
		if a, ok := accents[r]; ok {
			b.WriteRune(a.base)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteRune(index)
	return b.String()
}

// subscriptDigits turns an ASCII digit run that directly follows a letter into
// subscript digits. Free standing numerals keep their ASCII form
func subscriptDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	afterLetter := false
	inRun := false
	for _, r := range s {
		switch {
		case isDigit(r) && (afterLetter || inRun):
			b.WriteRune('₀' + (r - '0'))
			inRun = true
			afterLetter = false
			continue
		case unicode.IsLetter(r):
			afterLetter = true
		default:
			afterLetter = false
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// tidyLines collapses whitespace inside each line, removes isolated x tokens and
// drops empty lines. Line breaks survive as single newlines
func tidyLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, ln := range lines {
		fields := strings.Fields(ln)
		kept := fields[:0]
		for _, f := range fields {
			if f == IllegibleToken {
				continue
			}
			kept = append(kept, f)
		}
		if len(kept) == 0 {
			continue
		}
		out = append(out, strings.Join(kept, " "))
	}
	return strings.Join(out, "\n")
}

func isDigit(r rune) bool     { return r >= '0' && r <= '9' }
func isSubscript(r rune) bool { return r >= '₀' && r <= '₉' }
