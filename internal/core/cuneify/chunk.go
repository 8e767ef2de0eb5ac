// Package cuneify maps normalized transliteration onto cuneiform signs and renders
// the result for display
package cuneify

import "unicode"

// Placeholder is the glyph an unresolved chunk displays as when shown raw
const Placeholder = "░"

// GapMarker replaces every maximal run of unresolved chunks in rendered output
const GapMarker = "[...]"

// Kind tags a chunk
type Kind uint8

const (
	// Resolved chunks matched a table key
	Resolved Kind = iota
	// Unresolved chunks are single characters with no table key
	Unresolved
	// Delimiter chunks are word and sign separators; they never become gaps
	Delimiter
)

func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Unresolved:
		return "unresolved"
	case Delimiter:
		return "delimiter"
	default:
		return "unknown"
	}
}

// MarshalText keeps JSON dumps readable
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Chunk is one piece of a line. Start and End are byte offsets into Line.Source
type Chunk struct {
	Kind   Kind   `json:"kind"`
	Source string `json:"source"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Key    string `json:"key,omitempty"`
	Sign   string `json:"sign,omitempty"`
	Glyphs string `json:"glyphs,omitempty"`
}

// Line is one line of mapped text
type Line struct {
	Index       int            `json:"index"`
	Offset      int            `json:"offset"` // byte offset of Source in the mapped text
	Source      string         `json:"source"`
	Chunks      []Chunk        `json:"chunks"`
	Occurrences map[string]int `json:"occurrences"`
}

// Resolved returns the number of resolved chunks in the line
func (l Line) Resolved() int {
	n := 0
	for _, c := range l.Chunks {
		if c.Kind == Resolved {
			n++
		}
	}
	return n
}

// delimiters separate signs and words in transliteration. Whitespace is handled
// separately so every Unicode space counts
var delimiters = map[rune]struct{}{
	'-': {}, '.': {}, '_': {}, '+': {}, ':': {},
	'{': {}, '}': {}, '(': {}, ')': {},
	'[': {}, ']': {}, '⸢': {}, '⸣': {}, '<': {}, '>': {},
}

// IsDelimiter reports whether r separates signs rather than belonging to one
func IsDelimiter(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	_, ok := delimiters[r]
	return ok
}
