package template

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
)

// ErrArity indicates a Render call supplied the wrong number of substitution
// values for a template. This is a programmer error, not user input.
var ErrArity = errors.New("template arity mismatch")

// Slot marks a substitution point inside a template. Attribute values and
// text nodes equal to Slot are replaced positionally during Render; the
// document order of slots is part of each template's public contract.
const Slot = "\x00slot\x00"

// Attr is a named attribute on a template node. Order is preserved.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a declarative XML skeleton: a named tag with
// ordered attributes, optional text content, and ordered children.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Template is an immutable XML skeleton for one bootstrap file. Instances
// are shared across sessions and parameterized only at Render time.
type Template struct {
	// Name is the archive-relative path of the file this template generates.
	Name string
	// Doctype is an optional DOCTYPE line emitted after the XML declaration.
	Doctype string
	Root    *Node
}

// Arity returns the number of substitution slots in document order.
func (t *Template) Arity() int {
	return countSlots(t.Root)
}

// Render serializes the template with the given values substituted for its
// slots in document order. The value count must match Arity exactly;
// otherwise Render fails with ErrArity and no output.
func (t *Template) Render(values ...string) ([]byte, error) {
	want := t.Arity()
	if len(values) != want {
		return nil, fmt.Errorf("%w: template %s defines %d slots, got %d values", ErrArity, t.Name, want, len(values))
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if t.Doctype != "" {
		buf.WriteString(t.Doctype)
		buf.WriteByte('\n')
	}

	next := values
	writeNode(&buf, t.Root, 0, &next)
	return buf.Bytes(), nil
}

func countSlots(n *Node) int {
	if n == nil {
		return 0
	}
	count := 0
	for _, attr := range n.Attrs {
		if attr.Value == Slot {
			count++
		}
	}
	if n.Text == Slot {
		count++
	}
	for _, child := range n.Children {
		count += countSlots(child)
	}
	return count
}

func fill(value string, remaining *[]string) string {
	if value != Slot {
		return value
	}
	v := (*remaining)[0]
	*remaining = (*remaining)[1:]
	return v
}

func writeNode(buf *bytes.Buffer, n *Node, depth int, remaining *[]string) {
	if n == nil {
		return
	}

	indent(buf, depth)
	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, attr := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(attr.Name)
		buf.WriteString(`="`)
		escape(buf, fill(attr.Value, remaining))
		buf.WriteByte('"')
	}

	text := fill(n.Text, remaining)
	if text == "" && len(n.Children) == 0 {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteByte('>')

	if len(n.Children) == 0 {
		escape(buf, text)
	} else {
		buf.WriteByte('\n')
		for _, child := range n.Children {
			writeNode(buf, child, depth+1, remaining)
		}
		indent(buf, depth)
	}

	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteString(">\n")
}

func indent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

func escape(buf *bytes.Buffer, s string) {
	// xml.EscapeText only fails on writer errors, which bytes.Buffer
	// does not produce.
	_ = xml.EscapeText(buf, []byte(s))
}
