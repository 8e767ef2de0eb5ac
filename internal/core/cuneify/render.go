package cuneify

import (
	"fmt"
	"strings"
	"unicode"
)

// Selection chooses which lines reach the output
type Selection uint8

const (
	// FirstLine renders only the first line and drops the rest
	FirstLine Selection = iota
	// AllLines renders every line joined by Policy.Separator
	AllLines
)

// Policy controls Render
type Policy struct {
	Select    Selection
	Separator string
}

// DefaultPolicy renders the first line only
var DefaultPolicy = Policy{Select: FirstLine}

// JoinLines renders every line joined by sep
func JoinLines(sep string) Policy { return Policy{Select: AllLines, Separator: sep} }

// ParsePolicy reads "first" or "all"; the empty string is the default policy
func ParsePolicy(name, sep string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "first":
		return DefaultPolicy, nil
	case "all":
		return JoinLines(sep), nil
	default:
		return Policy{}, fmt.Errorf("cuneify: unknown render policy %q", name)
	}
}

func (p Policy) String() string {
	if p.Select == AllLines {
		return "all"
	}
	return "first"
}

// Pick returns the lines p renders
func (p Policy) Pick(lines []Line) []Line {
	if p.Select != AllLines && len(lines) > 1 {
		return lines[:1]
	}
	return lines
}

// Render assembles the selected lines into a display string. It never fails and
// an empty line sequence yields ""
func Render(lines []Line, p Policy) string {
	sel := p.Pick(lines)
	if len(sel) == 0 {
		return ""
	}
	parts := make([]string, len(sel))
	for i, ln := range sel {
		parts[i] = renderLine(ln)
	}
	return strings.Join(parts, p.Separator)
}

// renderLine concatenates glyphs. A run of unresolved chunks becomes one gap
// marker; separators that render as nothing do not end the run. Whitespace
// renders as a single space and is trimmed at the edges
func renderLine(ln Line) string {
	var b strings.Builder
	b.Grow(len(ln.Source) * 2)

	inGap := false
	pendingSpace := false
	flush := func() {
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
	}

	for _, c := range ln.Chunks {
		switch c.Kind {
		case Resolved:
			flush()
			b.WriteString(c.Glyphs)
			inGap = false
		case Unresolved:
			if inGap {
				continue
			}
			flush()
			b.WriteString(GapMarker)
			inGap = true
		case Delimiter:
			if isSpace(c.Source) {
				pendingSpace = true
				inGap = false
			}
		}
	}
	return b.String()
}

func isSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return s != ""
}
