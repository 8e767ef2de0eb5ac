package signtable

import "unicode/utf8"

// trie is a rune keyed prefix tree over the normalized sign values.
// Node 0 is the root; entry is an index into Table.entries or -1
type trie struct {
	nodes []trieNode
}

type trieNode struct {
	next  map[rune]int32
	entry int32
}

func newTrie() *trie {
	return &trie{nodes: []trieNode{{entry: -1}}}
}

// insert adds key -> entry and reports false when the key is already present
// (the first insertion is kept)
func (t *trie) insert(key string, entry int) bool {
	if key == "" {
		return false
	}
	state := int32(0)
	for _, r := range key {
		nxt, ok := t.nodes[state].next[r]
		if !ok {
			nxt = int32(len(t.nodes))
			if t.nodes[state].next == nil {
				t.nodes[state].next = make(map[rune]int32, 2)
			}
			t.nodes[state].next[r] = nxt
			t.nodes = append(t.nodes, trieNode{entry: -1})
		}
		state = nxt
	}
	if t.nodes[state].entry != -1 {
		return false
	}
	t.nodes[state].entry = int32(entry)
	return true
}

// longest walks s from its start and returns the entry of the longest key that is
// a prefix of s together with the number of bytes it covers
func (t *trie) longest(s string) (entry int, size int) {
	entry = -1
	state := int32(0)
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		nxt, ok := t.nodes[state].next[r]
		if !ok {
			break
		}
		state = nxt
		i += w
		if e := t.nodes[state].entry; e != -1 {
			entry = int(e)
			size = i
		}
	}
	return entry, size
}

// exact returns the entry stored for key or -1
func (t *trie) exact(key string) int {
	state := int32(0)
	for _, r := range key {
		nxt, ok := t.nodes[state].next[r]
		if !ok {
			return -1
		}
		state = nxt
	}
	return int(t.nodes[state].entry)
}
