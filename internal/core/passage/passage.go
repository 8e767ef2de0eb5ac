// Package passage cuts corpus transliterations into continuous passages and long
// texts into word groups for the translation backend
package passage

import (
	"strings"
)

// DefaultWords is the word group size the translation model handles well
const DefaultWords = 20

// skipped line prefixes: normalized transcription and translations
var skipPrefixes = []string{"ts:", "en:", "fr:"}

// words that mark a structural line (surface, column, damage) in a tablet text
var breakWords = []string{"reverse", "obverse", "broken", "column", "side"}

// Report lists lines Split could not classify
type Report struct {
	Unparsed []string
}

// Split turns a raw numbered transliteration into passages. Lines read
// "N. text"; structural lines without a number end the current passage
func Split(raw string) []string {
	out, _ := SplitReport(raw)
	return out
}

// SplitReport is Split plus the lines that were neither text nor structure
func SplitReport(raw string) ([]string, Report) {
	var (
		passages []string
		current  []string
		rep      Report
	)
	flush := func() {
		if len(current) > 0 {
			passages = append(passages, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || hasSkipPrefix(line) {
			continue
		}
		if text, ok := stripNumber(line); ok {
			current = append(current, text)
			continue
		}
		if isStructural(line) {
			flush()
			continue
		}
		rep.Unparsed = append(rep.Unparsed, line)
	}
	flush()
	return passages, rep
}

func hasSkipPrefix(line string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// stripNumber drops everything up to the first '.' and reports whether text remains
func stripNumber(line string) (string, bool) {
	_, text, found := strings.Cut(line, ".")
	if !found {
		return "", false
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

func isStructural(line string) bool {
	l := strings.ToLower(line)
	for _, w := range breakWords {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}

// Words groups the whitespace separated words of text into strings of at most
// size words. size <= 0 means DefaultWords
func Words(text string, size int) []string {
	if size <= 0 {
		size = DefaultWords
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, 0, (len(fields)+size-1)/size)
	for i := 0; i < len(fields); i += size {
		end := min(i+size, len(fields))
		out = append(out, strings.Join(fields[i:end], " "))
	}
	return out
}
