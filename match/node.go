package match

import (
	"fmt"
	"strings"

	"crisismap/dom"
)

// asNode narrows a matcher input to a fake node.
func asNode(value any) (*dom.Node, Result) {
	n, ok := value.(*dom.Node)
	if !ok || n == nil {
		return nil, Mismatch("expected a *dom.Node, got %T", value)
	}
	return n, Matched()
}

// nodeMatcher wraps a node predicate with the type check.
func nodeMatcher(desc string, fn func(n *dom.Node) Result) Matcher {
	return &predicate{desc: desc, fn: func(value any) Result {
		n, r := asNode(value)
		if !r.OK {
			return r
		}
		return fn(n)
	}}
}

// WithNodeName matches an element whose tag name equals name,
// case-insensitively.
func WithNodeName(name string) Matcher {
	return nodeMatcher(fmt.Sprintf("has node name %q", name), func(n *dom.Node) Result {
		if !strings.EqualFold(n.Name(), name) {
			return Mismatch("node name is %q, want %q\n%s", n.Name(), name, n.Render())
		}
		return Matched()
	})
}

// WithID matches a node whose id attribute equals id.
func WithID(id string) Matcher {
	return nodeMatcher(fmt.Sprintf("has id %q", id), func(n *dom.Node) Result {
		if n.ID() != id {
			return Mismatch("id is %q, want %q\n%s", n.ID(), id, n.Render())
		}
		return Matched()
	})
}

// WithClass matches a node whose class list contains class.
func WithClass(class string) Matcher {
	return nodeMatcher(fmt.Sprintf("has class %q", class), func(n *dom.Node) Result {
		if !n.HasClass(class) {
			return Mismatch("class list %q does not contain %q\n%s", n.ClassName(), class, n.Render())
		}
		return Matched()
	})
}

// WithAttr matches a node whose named attribute equals value. The mirrored
// attributes (id, class, href, src, value, type) read the same through this
// path as through the convenience accessors.
func WithAttr(name, value string) Matcher {
	return nodeMatcher(fmt.Sprintf("has attribute %s=%q", name, value), func(n *dom.Node) Result {
		if got := n.Attr(name); got != value {
			return Mismatch("attribute %s is %q, want %q\n%s", name, got, value, n.Render())
		}
		return Matched()
	})
}

// WithStyle matches a node whose style property equals value.
func WithStyle(prop, value string) Matcher {
	return nodeMatcher(fmt.Sprintf("has style %s=%q", prop, value), func(n *dom.Node) Result {
		if got := n.Style(prop); got != value {
			return Mismatch("style %s is %q, want %q\n%s", prop, got, value, n.Render())
		}
		return Matched()
	})
}

// WithInputType matches an input node by effective type; an input with no
// type attribute counts as "text".
func WithInputType(inputType string) Matcher {
	return nodeMatcher(fmt.Sprintf("has input type %q", inputType), func(n *dom.Node) Result {
		if got := n.InputType(); got != inputType {
			return Mismatch("input type is %q, want %q\n%s", got, inputType, n.Render())
		}
		return Matched()
	})
}

// WithText matches a node whose recursively extracted text equals text.
func WithText(text string) Matcher {
	return nodeMatcher(fmt.Sprintf("has text %q", text), func(n *dom.Node) Result {
		if got := n.Text(); got != text {
			return Mismatch("text is %q, want %q\n%s", got, text, n.Render())
		}
		return Matched()
	})
}

// WithInnerHTML matches a node whose serialized children equal html.
func WithInnerHTML(html string) Matcher {
	return nodeMatcher(fmt.Sprintf("has innerHTML %q", html), func(n *dom.Node) Result {
		if got := n.InnerHTML(); got != html {
			return Mismatch("innerHTML is %q, want %q\n%s", got, html, n.Render())
		}
		return Matched()
	})
}

// IsShown matches a node that is not hidden by display:none on itself or
// any ancestor.
func IsShown() Matcher {
	return nodeMatcher("is shown", func(n *dom.Node) Result {
		for cur := n; cur != nil; cur = cur.Parent() {
			if cur.Style("display") == "none" {
				return Mismatch("hidden by display:none on <%s>\n%s", cur.Name(), n.Render())
			}
		}
		return Matched()
	})
}

// DescendantMatcher matches a node that has a descendant satisfying all the
// given matchers. The first match found by depth-first search is cached on
// the matcher instance, so one instance must not be shared between
// interleaved searches.
type DescendantMatcher struct {
	matchers []Matcher
	found    *dom.Node
}

// HasDescendant builds a DescendantMatcher.
func HasDescendant(matchers ...Matcher) *DescendantMatcher {
	return &DescendantMatcher{matchers: matchers}
}

// Found returns the node located by the most recent successful Match.
func (m *DescendantMatcher) Found() *dom.Node {
	return m.found
}

func (m *DescendantMatcher) Match(value any) Result {
	n, r := asNode(value)
	if !r.OK {
		return r
	}
	m.found = nil
	if found := m.search(n); found != nil {
		m.found = found
		return Matched()
	}
	return Mismatch("no descendant matching %s\n%s", m, n.Render())
}

// search walks descendants depth-first, excluding the root itself.
func (m *DescendantMatcher) search(root *dom.Node) *dom.Node {
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		if AllOf(m.matchers...).Match(c).OK {
			return c
		}
		if found := m.search(c); found != nil {
			return found
		}
	}
	return nil
}

func (m *DescendantMatcher) String() string {
	return "has descendant " + AllOf(m.matchers...).String()
}

// HasAncestor matches a node with an ancestor satisfying all the given
// matchers.
func HasAncestor(matchers ...Matcher) Matcher {
	all := AllOf(matchers...)
	return nodeMatcher("has ancestor "+all.String(), func(n *dom.Node) Result {
		for cur := n.Parent(); cur != nil; cur = cur.Parent() {
			if all.Match(cur).OK {
				return Matched()
			}
		}
		return Mismatch("no ancestor matching %s\n%s", all, n.Render())
	})
}
