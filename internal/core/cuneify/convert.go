package cuneify

import (
	"fmt"
	"sync"

	"akkadian/internal/core/signtable"
	"akkadian/internal/core/translit"
)

// Result is the full outcome of one conversion
type Result struct {
	Input       string         `json:"input"`
	Normalized  string         `json:"normalized"`
	Lines       []Line         `json:"lines"`
	Output      string         `json:"output"`
	Policy      string         `json:"policy"`
	Occurrences map[string]int `json:"occurrences"`
}

// Converter runs normalize, map and render over one table
type Converter struct {
	norm   *translit.Normalizer
	mapper *Mapper
	policy Policy
}

// Option configures a Converter
type Option func(*Converter)

// WithPolicy replaces the default first line policy
func WithPolicy(p Policy) Option { return func(c *Converter) { c.policy = p } }

// New builds a converter over tbl
func New(tbl *signtable.Table, opts ...Option) *Converter {
	c := &Converter{
		norm:   tbl.Normalizer(),
		mapper: NewMapper(tbl),
		policy: DefaultPolicy,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Policy is the converter's default policy
func (c *Converter) Policy() Policy { return c.policy }

// Table is the table the converter maps against
func (c *Converter) Table() *signtable.Table { return c.mapper.Table() }

// Normalize runs only the normalizer
func (c *Converter) Normalize(s string) string { return c.norm.Normalize(s) }

// Map normalizes s and maps it into lines
func (c *Converter) Map(s string) []Line { return c.mapper.Map(c.norm.Normalize(s)) }

// Convert renders s with the converter's policy
func (c *Converter) Convert(s string) string { return c.ConvertWith(s, c.policy) }

// ConvertWith renders s with p
func (c *Converter) ConvertWith(s string, p Policy) string {
	if s == "" {
		return ""
	}
	return Render(c.Map(s), p)
}

// Analyze keeps every intermediate product. Occurrences sum over the selected lines
func (c *Converter) Analyze(s string, p Policy) Result {
	n := c.norm.Normalize(s)
	lines := c.mapper.Map(n)
	res := Result{
		Input:       s,
		Normalized:  n,
		Lines:       lines,
		Output:      Render(lines, p),
		Policy:      p.String(),
		Occurrences: make(map[string]int),
	}
	for _, ln := range p.Pick(lines) {
		for k, v := range ln.Occurrences {
			res.Occurrences[k] += v
		}
	}
	return res
}

// Text renders an optional input; absent input renders as ""
func (c *Converter) Text(s *string) string {
	if s == nil {
		return ""
	}
	return c.Convert(*s)
}

var (
	defaultOnce sync.Once
	defaultConv *Converter
	defaultErr  error
)

// Default returns the process wide converter over the embedded sign table. The
// table is loaded once; a load failure is returned to every caller
func Default() (*Converter, error) {
	defaultOnce.Do(func() {
		tbl, err := signtable.Default()
		if err != nil {
			defaultErr = fmt.Errorf("cuneify: %w", err)
			return
		}
		defaultConv = New(tbl)
	})
	return defaultConv, defaultErr
}

// MustDefault is Default for program start up
func MustDefault() *Converter {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}
