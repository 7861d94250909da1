package document

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Document is an immutable, queryable element tree.
type Document struct {
	doc     *goquery.Document
	charset string
	mime    string
}

func newDocument(doc *goquery.Document, charset, mime string) *Document {
	return &Document{doc: doc, charset: charset, mime: mime}
}

// Charset returns the encoding the markup was decoded from.
func (d *Document) Charset() string { return d.charset }

// MIME returns the sniffed content type of the original markup.
func (d *Document) MIME() string { return d.mime }

// Find returns the elements matching selector in document order.
// Unlike Query it reports selector syntax errors.
func (d *Document) Find(selector string) ([]*Element, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return wrap(d.doc.FindMatcher(matcher)), nil
}

// Query returns the elements matching selector, or none when the selector
// cannot be parsed.
func (d *Document) Query(selector string) []*Element {
	elements, err := d.Find(selector)
	if err != nil {
		return nil
	}
	return elements
}

// Count returns the number of elements matching selector (0 on bad syntax).
func (d *Document) Count(selector string) int {
	return len(d.Query(selector))
}

// ElementByID returns the first element in document order whose id
// attribute equals id, or nil.
func (d *Document) ElementByID(id string) *Element {
	if id == "" || len(d.doc.Nodes) == 0 {
		return nil
	}
	node, err := htmlquery.Query(d.doc.Nodes[0], "//*[@id="+xpathLiteral(id)+"]")
	if err != nil || node == nil {
		return nil
	}
	return &Element{sel: d.doc.FindNodes(node)}
}

// Elements returns every element of the document in document order.
func (d *Document) Elements() []*Element {
	return wrap(d.doc.Find("*"))
}

// xpathLiteral quotes s as an XPath string literal. XPath 1.0 has no escape
// sequences, so values holding both quote kinds are built with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

func wrap(sel *goquery.Selection) []*Element {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	elements := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}

// Element is a read-only view of a single element node.
type Element struct {
	sel *goquery.Selection
}

// Tag returns the lower-cased tag name.
func (e *Element) Tag() string {
	return strings.ToLower(goquery.NodeName(e.sel))
}

// ID returns the id attribute, or "" when absent.
func (e *Element) ID() string {
	return e.sel.AttrOr("id", "")
}

// Classes returns the class tokens in source order.
func (e *Element) Classes() []string {
	return strings.Fields(e.sel.AttrOr("class", ""))
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Attrs returns the attribute name→value mapping.
func (e *Element) Attrs() map[string]string {
	attrs := make(map[string]string)
	if node := e.Node(); node != nil {
		for _, a := range node.Attr {
			attrs[a.Key] = a.Val
		}
	}
	return attrs
}

// Parent returns the parent element, or nil for the root element.
func (e *Element) Parent() *Element {
	parent := e.sel.Parent()
	if parent.Length() == 0 {
		return nil
	}
	return &Element{sel: parent}
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	return wrap(e.sel.Children())
}

// Text returns the concatenated text of all descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}

// Node exposes the underlying html node.
func (e *Element) Node() *html.Node {
	return e.sel.Get(0)
}

// Same reports whether e and other refer to the same node.
func (e *Element) Same(other *Element) bool {
	if e == nil || other == nil {
		return false
	}
	return e.Node() == other.Node()
}
