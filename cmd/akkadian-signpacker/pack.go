package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"akkadian/internal/core/signtable"
)

type rule struct {
	Pattern     string `yaml:"pattern" json:"pattern"`
	Replacement string `yaml:"replacement" json:"replacement"`
}

type coreFile struct {
	Version int            `yaml:"version"`
	Meta    map[string]any `yaml:"meta"`
	Rules   []rule         `yaml:"rules"`
}

type sign struct {
	Name       string   `yaml:"name" json:"name"`
	CodePoints []string `yaml:"codepoints" json:"codepoints"`
	// Glyph is a shorthand for codepoints in fragment files
	Glyph  string   `yaml:"glyph,omitempty" json:"-"`
	Values []string `yaml:"values" json:"values"`
}

type fragmentFile struct {
	Group string `yaml:"group"`
	Signs []sign `yaml:"signs"`
}

type outV1 struct {
	Version int            `json:"version"`
	Meta    map[string]any `json:"meta,omitempty"`
	Rules   []rule         `json:"rules"`
	Signs   []sign         `json:"signs"`
}

var codePointRE = regexp.MustCompile(`^U\+[0-9A-F]{4,6}$`)

func readYAML[T any](path string, into *T) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, into); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func findFragmentFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Dir(path) == root && strings.HasPrefix(filepath.Base(path), "core.") {
			return nil
		}
		if isYAML(path) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

func corePath(dir string) (string, bool) {
	for _, n := range []string{"core.yaml", "core.yml"} {
		p := filepath.Join(dir, n)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func latestNumericSubdir(dir string) (string, bool) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var nums []int
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		if _, ok := corePath(filepath.Join(dir, e.Name())); ok {
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return "", false
	}
	sort.Ints(nums)
	return filepath.Join(dir, strconv.Itoa(nums[len(nums)-1])), true
}

// resolveRoot tries the flag, then AKKADIAN_SIGNS_ROOT, then ./signs.
// A directory holding numbered versions resolves to the highest one
func resolveRoot(flagRoot string) (string, []string, error) {
	var attempts []string
	try := func(p string) (string, bool) {
		if p == "" {
			return "", false
		}
		attempts = append(attempts, p)
		if _, ok := corePath(p); ok {
			return p, true
		}
		if sub, ok := latestNumericSubdir(p); ok {
			attempts = append(attempts, sub)
			return sub, true
		}
		return "", false
	}

	if root, ok := try(flagRoot); ok {
		return root, attempts, nil
	}
	if env := strings.TrimSpace(os.Getenv("AKKADIAN_SIGNS_ROOT")); env != "" {
		if root, ok := try(env); ok {
			return root, attempts, nil
		}
	}
	for _, c := range []string{"./signs/1", "./signs"} {
		if root, ok := try(c); ok {
			return root, attempts, nil
		}
	}
	return "", attempts, errors.New("core.yaml not found in any known location")
}

// codePoints validates explicit code points or derives them from a glyph
func codePoints(s sign) ([]string, error) {
	if len(s.CodePoints) > 0 && s.Glyph != "" {
		return nil, errors.New("set codepoints or glyph, not both")
	}
	if s.Glyph != "" {
		if !utf8.ValidString(s.Glyph) {
			return nil, fmt.Errorf("glyph %q is not valid utf-8", s.Glyph)
		}
		var out []string
		for _, r := range s.Glyph {
			out = append(out, fmt.Sprintf("U+%04X", r))
		}
		return out, nil
	}
	if len(s.CodePoints) == 0 {
		return nil, errors.New("no code points")
	}
	out := make([]string, 0, len(s.CodePoints))
	for _, cp := range s.CodePoints {
		cp = strings.ToUpper(strings.TrimSpace(cp))
		if !codePointRE.MatchString(cp) {
			return nil, fmt.Errorf("malformed code point %q (want U+XXXX)", cp)
		}
		v, _ := strconv.ParseUint(cp[2:], 16, 32)
		if !utf8.ValidRune(rune(v)) {
			return nil, fmt.Errorf("code point %q is not a unicode scalar value", cp)
		}
		out = append(out, cp)
	}
	return out, nil
}

// assemble merges core and fragments in path order. A sign named in more than
// one fragment must carry the same code points; its values are unioned
func assemble(root string) (outV1, error) {
	cp, ok := corePath(root)
	if !ok {
		return outV1{}, fmt.Errorf("no core.yaml in %s", root)
	}
	var core coreFile
	if err := readYAML(cp, &core); err != nil {
		return outV1{}, fmt.Errorf("read core: %w", err)
	}
	if core.Version != signtable.SchemaVersion {
		return outV1{}, fmt.Errorf("core version=%d (want %d)", core.Version, signtable.SchemaVersion)
	}

	paths, err := findFragmentFiles(root)
	if err != nil {
		return outV1{}, err
	}
	if len(paths) == 0 {
		return outV1{}, errors.New("no fragment files found under " + root)
	}

	var (
		signs  []sign
		byName = map[string]int{}
	)
	for _, p := range paths {
		var fr fragmentFile
		if err := readYAML(p, &fr); err != nil {
			return outV1{}, err
		}
		for i, s := range fr.Signs {
			name := strings.TrimSpace(s.Name)
			if name == "" {
				return outV1{}, fmt.Errorf("%s: sign %d has no name", p, i)
			}
			cps, err := codePoints(s)
			if err != nil {
				return outV1{}, fmt.Errorf("%s: sign %s: %w", p, name, err)
			}
			if len(s.Values) == 0 {
				return outV1{}, fmt.Errorf("%s: sign %s has no values", p, name)
			}

			if at, seen := byName[name]; seen {
				if !slices.Equal(signs[at].CodePoints, cps) {
					return outV1{}, fmt.Errorf("%s: sign %s redefined with different code points", p, name)
				}
				have := map[string]bool{}
				for _, v := range signs[at].Values {
					have[v] = true
				}
				for _, v := range s.Values {
					if !have[v] {
						signs[at].Values = append(signs[at].Values, v)
						have[v] = true
					}
				}
				continue
			}
			byName[name] = len(signs)
			signs = append(signs, sign{Name: name, CodePoints: cps, Values: s.Values})
		}
	}

	rules := core.Rules
	if rules == nil {
		rules = []rule{}
	}
	return outV1{Version: core.Version, Meta: core.Meta, Rules: rules, Signs: signs}, nil
}

// encode marshals obj and proves the result loads as a sign table
func encode(obj outV1, pretty bool) ([]byte, *signtable.Table, error) {
	var (
		enc []byte
		err error
	)
	if pretty {
		enc, err = json.MarshalIndent(obj, "", "  ")
	} else {
		enc, err = json.Marshal(obj)
	}
	if err != nil {
		return nil, nil, err
	}
	tbl, err := signtable.Parse(enc)
	if err != nil {
		return nil, nil, fmt.Errorf("assembled table does not load: %w", err)
	}
	return enc, tbl, nil
}
