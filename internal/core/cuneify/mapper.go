package cuneify

import (
	"strings"
	"unicode/utf8"

	"akkadian/internal/core/signtable"
)

// Mapper splits normalized text into lines and chunks against a sign table.
// It holds no per call state and is safe for concurrent use
type Mapper struct {
	table *signtable.Table
}

// NewMapper binds a mapper to tbl
func NewMapper(tbl *signtable.Table) *Mapper { return &Mapper{table: tbl} }

// Table returns the table the mapper resolves against
func (m *Mapper) Table() *signtable.Table { return m.table }

// Map segments s on line breaks and chunks each line with longest match first.
// The line breaks themselves belong to the segmentation, every other byte of s
// lands in exactly one chunk
func (m *Mapper) Map(s string) []Line {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, "\n")
	lines := make([]Line, 0, len(raw))
	off := 0
	for i, src := range raw {
		lines = append(lines, m.mapLine(i, off, src))
		off += len(src) + 1
	}
	return lines
}

func (m *Mapper) mapLine(index, offset int, src string) Line {
	ln := Line{
		Index:       index,
		Offset:      offset,
		Source:      src,
		Chunks:      make([]Chunk, 0, len(src)/2+1),
		Occurrences: make(map[string]int),
	}

	for pos := 0; pos < len(src); {
		rest := src[pos:]

		if e, n, ok := m.table.LongestPrefix(rest); ok {
			ln.Chunks = append(ln.Chunks, Chunk{
				Kind:   Resolved,
				Source: rest[:n],
				Start:  pos,
				End:    pos + n,
				Key:    e.Key,
				Sign:   e.Sign,
				Glyphs: e.Glyphs,
			})
			ln.Occurrences[e.Key]++
			pos += n
			continue
		}

		r, w := utf8.DecodeRuneInString(rest)
		c := Chunk{Source: rest[:w], Start: pos, End: pos + w}
		if r != utf8.RuneError && IsDelimiter(r) {
			c.Kind = Delimiter
		} else {
			c.Kind = Unresolved
			c.Glyphs = Placeholder
		}
		ln.Chunks = append(ln.Chunks, c)
		pos += w
	}
	return ln
}
