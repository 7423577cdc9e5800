package dom

import (
	"fmt"
	"strings"
)

// Render returns a deterministic, indented rendering of the node and its
// descendants. It is meant for debugging and assertion failure messages,
// not for serialization; attributes print in sorted order.
func (n *Node) Render() string {
	var sb strings.Builder
	n.render(&sb, 0)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsText() {
		fmt.Fprintf(sb, "%s%q\n", indent, n.text)
		return
	}
	sb.WriteString(indent)
	sb.WriteByte('<')
	sb.WriteString(n.name)
	for _, name := range n.AttrNames() {
		fmt.Fprintf(sb, " %s=%q", name, n.attrs[name])
	}
	if len(n.style) > 0 {
		fmt.Fprintf(sb, " style=%q", n.styleText())
	}
	sb.WriteString(">\n")
	for c := n.firstChild; c != nil; c = c.nextSibling {
		c.render(sb, depth+1)
	}
}
