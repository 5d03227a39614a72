// Package dom hosts countdown widgets on an HTML document parsed with
// golang.org/x/net/html.
package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/idilsaglam/countdown/internal/countdown"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: n}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root is the document node; Find on it searches the whole page.
func (d *Document) Root() Element { return Element{node: d.root} }

// Body returns the <body> element, or the root when there is none.
func (d *Document) Body() Element {
	if n := findAtom(d.root, atom.Body); n != nil {
		return Element{node: n}
	}
	return d.Root()
}

func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// Text is the visible text of the page as newline-separated lines.
func (d *Document) Text() string { return strings.Join(d.Lines(), "\n") }

// Lines flattens the body into display lines. Block elements start new
// lines, whitespace runs collapse, head/script/style are skipped.
func (d *Document) Lines() []string {
	var (
		lines []string
		cur   strings.Builder
	)
	flush := func() {
		s := strings.Join(strings.Fields(cur.String()), " ")
		if s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Head, atom.Script, atom.Style, atom.Template:
				return
			case atom.Br:
				flush()
				return
			}
		}
		block := n.Type == html.ElementNode && blockAtoms[n.DataAtom]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}
	walk(d.root)
	flush()
	return lines
}

var blockAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Dd: true, atom.Fieldset: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true,
	atom.Li: true, atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Table: true, atom.Tr: true, atom.Ul: true,
}

func findAtom(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := findAtom(c, a); f != nil {
			return f
		}
	}
	return nil
}

// Element wraps a node. Two Elements are equal when they wrap the same
// node, so they can key a countdown.Registry.
type Element struct {
	node *html.Node
}

var _ countdown.Element = Element{}

// Find returns descendants (not e itself) carrying the attribute marker.
func (e Element) Find(marker string) []countdown.Element {
	marker = strings.ToLower(marker)
	var out []countdown.Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if hasAttr(c, marker) {
				out = append(out, Element{node: c})
			}
			walk(c)
		}
	}
	walk(e.node)
	return out
}

// FindElements is Find with concrete element values.
func (e Element) FindElements(marker string) []Element {
	found := e.Find(marker)
	out := make([]Element, 0, len(found))
	for _, f := range found {
		out = append(out, f.(Element))
	}
	return out
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func (e Element) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Text concatenates every descendant text node.
func (e Element) Text() string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// SetText replaces the children with a single text node.
func (e Element) SetText(s string) {
	e.clear()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// InnerHTML serializes the children.
func (e Element) InnerHTML() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		// Render only fails on writer errors; strings.Builder has none.
		_ = html.Render(&b, c)
	}
	return b.String()
}

// SetInnerHTML parses s as a fragment in e's context and replaces the
// children with it. Unparseable input is kept as plain text.
func (e Element) SetInnerHTML(s string) {
	ctx := e.node
	if ctx.Type != html.ElementNode {
		ctx = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		e.SetText(s)
		return
	}
	e.clear()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
}

func (e Element) clear() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}
