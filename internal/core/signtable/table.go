// Package signtable loads the syllabary asset that maps normalized transliteration
// values to cuneiform code points, together with the ordered normalization rules
// that bring raw transliteration into the table's key space
package signtable

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"akkadian/internal/core/translit"
)

//go:embed signs.json
var embedded []byte

// SchemaVersion is the only asset layout this package understands
const SchemaVersion = 1

type rawRule struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

type rawSign struct {
	Name       string   `json:"name"`
	CodePoints []string `json:"codepoints"`
	Values     []string `json:"values"`
}

type rawTable struct {
	Version int            `json:"version"`
	Meta    map[string]any `json:"meta"`
	Rules   []rawRule      `json:"rules"`
	Signs   []rawSign      `json:"signs"`
}

// Entry is one key of the table
type Entry struct {
	Key    string // normalized transliteration value
	Sign   string // sign name eg "AN"
	Glyphs string // one or more cuneiform code points
	Order  int    // insertion order, used for tie reporting
}

// Duplicate records a key that appeared more than once; the first sign wins
type Duplicate struct {
	Key     string `json:"key"`
	Kept    string `json:"kept"`
	Ignored string `json:"ignored"`
}

// Table is immutable after Parse and safe for concurrent readers
type Table struct {
	Version     int
	Meta        map[string]any
	Rules       []translit.Rule
	Signs       int
	MaxKeyRunes int
	Duplicates  []Duplicate

	entries []Entry
	trie    *trie
}

// Load parses the embedded signs.json
func Load() (*Table, error) { return Parse(embedded) }

// Embedded returns a copy of the raw embedded asset
func Embedded() []byte {
	out := make([]byte, len(embedded))
	copy(out, embedded)
	return out
}

// Parse builds a Table from a signs.json document
func Parse(data []byte) (*Table, error) {
	var rt rawTable
	if err := json.Unmarshal(data, &rt); err != nil {
		return nil, fmt.Errorf("signtable: parse signs.json: %w", err)
	}
	if rt.Version != SchemaVersion {
		return nil, fmt.Errorf("signtable: unsupported signs.json version %d (want %d)", rt.Version, SchemaVersion)
	}

	t := &Table{
		Version: rt.Version,
		Meta:    rt.Meta,
		trie:    newTrie(),
	}

	for i, r := range rt.Rules {
		if r.Pattern == "" {
			return nil, fmt.Errorf("signtable: rule %d has an empty pattern", i)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("signtable: compile rule %q: %w", r.Pattern, err)
		}
		t.Rules = append(t.Rules, translit.Rule{Pattern: re, Replacement: r.Replacement})
	}

	// keys go through the same normalizer as input text so both sides agree
	keyNorm := translit.New(t.Rules...)

	for _, s := range rt.Signs {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("signtable: sign without a name")
		}
		glyphs, err := decodeCodePoints(s.CodePoints)
		if err != nil {
			return nil, fmt.Errorf("signtable: sign %s: %w", name, err)
		}
		if len(s.Values) == 0 {
			return nil, fmt.Errorf("signtable: sign %s has no values", name)
		}
		t.Signs++

		for _, v := range s.Values {
			key := keyNorm.Normalize(v)
			if key == "" || strings.ContainsAny(key, " \n") {
				return nil, fmt.Errorf("signtable: sign %s: invalid value %q", name, v)
			}
			e := Entry{Key: key, Sign: name, Glyphs: glyphs, Order: len(t.entries)}
			if !t.trie.insert(key, len(t.entries)) {
				kept := t.entries[t.trie.exact(key)]
				t.Duplicates = append(t.Duplicates, Duplicate{Key: key, Kept: kept.Sign, Ignored: name})
				continue
			}
			t.entries = append(t.entries, e)
			if n := utf8.RuneCountInString(key); n > t.MaxKeyRunes {
				t.MaxKeyRunes = n
			}
		}
	}

	if len(t.entries) == 0 {
		return nil, fmt.Errorf("signtable: no signs")
	}
	return t, nil
}

// decodeCodePoints turns ["U+1202D", ...] into the glyph string
func decodeCodePoints(cps []string) (string, error) {
	if len(cps) == 0 {
		return "", fmt.Errorf("no code points")
	}
	var b strings.Builder
	for _, cp := range cps {
		hex := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(cp)), "U+")
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return "", fmt.Errorf("bad code point %q: %w", cp, err)
		}
		r := rune(v)
		if !utf8.ValidRune(r) {
			return "", fmt.Errorf("bad code point %q: not a scalar value", cp)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// Len is the number of distinct keys
func (t *Table) Len() int { return len(t.entries) }

// Entries returns the keys in insertion order
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup finds an exact key
func (t *Table) Lookup(key string) (Entry, bool) {
	i := t.trie.exact(key)
	if i < 0 {
		return Entry{}, false
	}
	return t.entries[i], true
}

// LongestPrefix returns the longest key that prefixes s and the number of bytes
// of s it covers. Two matching keys of equal length are the same key, and for a
// duplicated key the entry inserted first wins
func (t *Table) LongestPrefix(s string) (Entry, int, bool) {
	i, n := t.trie.longest(s)
	if i < 0 {
		return Entry{}, 0, false
	}
	return t.entries[i], n, true
}

// Label names the table for logs and usage rows: "<meta.name>@<meta.updated>",
// falling back to the schema version
func (t *Table) Label() string {
	name, _ := t.Meta["name"].(string)
	if name == "" {
		return fmt.Sprintf("v%d", t.Version)
	}
	if upd, _ := t.Meta["updated"].(string); upd != "" {
		return name + "@" + upd
	}
	return name
}

// Normalizer returns a normalizer carrying this table's rules
func (t *Table) Normalizer() *translit.Normalizer { return translit.New(t.Rules...) }

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the embedded table, parsed on first use. A parse failure is
// cached and returned to every caller
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Load()
	})
	return defaultTable, defaultErr
}
