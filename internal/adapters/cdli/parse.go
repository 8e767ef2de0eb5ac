package cdli

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Field is one labelled metadata line from a result card, in page order
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Artifact is one parsed search result card
type Artifact struct {
	Title           string  `json:"title,omitempty"`
	ArtifactLink    string  `json:"artifact_link,omitempty"`
	ImageURL        string  `json:"image_url,omitempty"`
	Metadata        []Field `json:"metadata,omitempty"`
	Transliteration string  `json:"transliteration"`
}

// Meta returns the value of the first field with label
func (a Artifact) Meta(label string) (string, bool) {
	for _, f := range a.Metadata {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

const transliterationLabel = "Transliteration:"

// Parse reads a search result page and returns its artifact cards
// host prefixes the site relative image and artifact links
func Parse(r io.Reader, host string) ([]Artifact, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	host = strings.TrimRight(host, "/")

	var out []Artifact
	for _, card := range findAll(root, atom.Div, "search-card") {
		out = append(out, parseCard(card, host))
	}
	return out, nil
}

func parseCard(card *html.Node, host string) Artifact {
	var a Artifact

	if media := findFirst(card, atom.Div, "search-card-media"); media != nil {
		if img := findFirst(media, atom.Img, ""); img != nil {
			if src, ok := attr(img, "src"); ok && src != "" {
				a.ImageURL = absolute(host, src)
			}
		}
	}

	content := findFirst(card, atom.Div, "search-card-content")
	if content == nil {
		return a
	}

	if h2 := findFirst(content, atom.H2, "d-flex"); h2 != nil {
		if link := findFirst(h2, atom.A, ""); link != nil {
			a.Title = strings.TrimSpace(textOf(link))
			if href, ok := attr(link, "href"); ok {
				a.ArtifactLink = absolute(host, href)
			}
		}
	}

	for _, p := range findAll(content, atom.P, "my-0") {
		b := findFirst(p, atom.B, "")
		if b == nil {
			continue
		}
		raw := textOf(b)
		label := strings.TrimSpace(strings.ReplaceAll(raw, ":", ""))
		value := strings.TrimSpace(strings.Replace(textOf(p), raw, "", 1))
		a.Metadata = append(a.Metadata, Field{Label: label, Value: value})
	}

	if p := findFirst(content, atom.P, "mt-3"); p != nil {
		if b := findFirst(p, atom.B, ""); b != nil && textOf(b) == transliterationLabel {
			a.Transliteration = transliterationOf(p)
		}
	}
	return a
}

// transliterationOf flattens the paragraph's direct children
// text is trimmed per node, br becomes a newline, italics keep their text
func transliterationOf(p *html.Node) string {
	var sb strings.Builder
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			sb.WriteString(strings.TrimSpace(c.Data))
		case c.Type == html.ElementNode && c.DataAtom == atom.Br:
			sb.WriteByte('\n')
		case c.Type == html.ElementNode && c.DataAtom == atom.I:
			sb.WriteString(strings.TrimSpace(textOf(c)))
		}
	}
	return strings.TrimSpace(sb.String())
}

func absolute(host, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return host + ref
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func matches(n *html.Node, tag atom.Atom, class string) bool {
	if n.Type != html.ElementNode || n.DataAtom != tag {
		return false
	}
	return class == "" || hasClass(n, class)
}

// findFirst returns the first descendant of n matching tag and class, depth first
func findFirst(n *html.Node, tag atom.Atom, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if matches(c, tag, class) {
			return c
		}
		if m := findFirst(c, tag, class); m != nil {
			return m
		}
	}
	return nil
}

// findAll returns every descendant matching tag and class
// matches are not searched for nested matches
func findAll(n *html.Node, tag atom.Atom, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if matches(c, tag, class) {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textOf(c))
	}
	return sb.String()
}
