package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements render without a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// ParseFragment parses an HTML fragment in body context and returns the
// resulting top-level fake nodes. Comments and other non-element,
// non-text content are dropped.
func ParseFragment(fragment string) ([]*Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	var nodes []*Node
	for _, p := range parsed {
		if n := convert(p); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// convert maps a golang.org/x/net/html node onto a fake node.
func convert(h *html.Node) *Node {
	switch h.Type {
	case html.TextNode:
		return NewText(h.Data)
	case html.ElementNode:
		n := NewElement(h.Data, nil)
		for _, a := range h.Attr {
			if strings.EqualFold(a.Key, "style") {
				setStyleText(n, a.Val)
				continue
			}
			n.SetAttr(a.Key, a.Val)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				n.AppendChild(child)
			}
		}
		return n
	default:
		return nil
	}
}

// SetStyleText replaces the node's style map with the declarations parsed
// from a style attribute value.
func (n *Node) SetStyleText(text string) {
	n.style = make(map[string]string)
	setStyleText(n, text)
}

// setStyleText splits a style attribute ("display: none; color: red") into
// the node's style map.
func setStyleText(n *Node, text string) {
	for _, decl := range strings.Split(text, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		value = strings.TrimSpace(value)
		if prop != "" && value != "" {
			n.SetStyle(prop, value)
		}
	}
}

// styleText renders the node's style map as a style attribute value.
func (n *Node) styleText() string {
	var decls []string
	for _, p := range n.StyleNames() {
		decls = append(decls, p+": "+n.style[p])
	}
	return strings.Join(decls, "; ")
}

// InnerHTML serializes the node's children as HTML. Attributes are written
// in sorted order so the output is deterministic.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for c := n.firstChild; c != nil; c = c.nextSibling {
		c.writeHTML(&sb)
	}
	return sb.String()
}

// OuterHTML serializes the node itself as HTML.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

func (n *Node) writeHTML(sb *strings.Builder) {
	if n.IsText() {
		sb.WriteString(html.EscapeString(n.text))
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.name)
	for _, name := range n.AttrNames() {
		fmt.Fprintf(sb, " %s=%q", name, html.EscapeString(n.attrs[name]))
	}
	if len(n.style) > 0 {
		fmt.Fprintf(sb, " style=%q", n.styleText())
	}
	sb.WriteByte('>')
	if voidElements[n.name] {
		return
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		c.writeHTML(sb)
	}
	sb.WriteString("</" + n.name + ">")
}

// SetInnerHTML replaces the node's children with the parsed fragment.
func (n *Node) SetInnerHTML(fragment string) error {
	parsed, err := ParseFragment(fragment)
	if err != nil {
		return err
	}
	for n.firstChild != nil {
		n.detach(n.firstChild)
	}
	for _, child := range parsed {
		n.AppendChild(child)
	}
	n.childListChanged()
	return nil
}
