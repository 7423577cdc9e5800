// Package dom provides an in-memory stand-in for a browser document tree.
// Widget code builds and mutates Node trees exactly as it would a live DOM,
// which lets the rest of the repo exercise that code without a browser.
package dom

import (
	"fmt"
	"sort"
	"strings"
)

// mirroredAttrs are attribute names that stay consistent between the
// attribute map and the corresponding convenience accessor, whichever
// side is written through.
var mirroredAttrs = map[string]bool{
	"id":    true,
	"class": true,
	"href":  true,
	"src":   true,
	"value": true,
	"type":  true,
}

// Node is a node in the fake DOM tree: either an element or a text node.
// Child order is tracked by the sibling links; ChildNodes derives from them,
// so the two views cannot drift apart.
type Node struct {
	name string // lowercase tag name, or "#text" for text nodes
	text string // text nodes only

	attrs map[string]string
	style map[string]string

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// selectedIndex tracks the selected option of a "select" node.
	// -1 means no selection.
	selectedIndex int

	target *EventTarget
}

// NewElement creates an element node with the given tag name and attributes.
// Tag and attribute names are lowercased on the way in.
func NewElement(tag string, attrs map[string]string) *Node {
	n := &Node{
		name:          strings.ToLower(tag),
		attrs:         make(map[string]string),
		style:         make(map[string]string),
		selectedIndex: -1,
	}
	for k, v := range attrs {
		n.SetAttr(k, v)
	}
	return n
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{name: "#text", text: text, selectedIndex: -1}
}

// Name returns the lowercase tag name, or "#text" for text nodes.
func (n *Node) Name() string {
	return n.name
}

// IsText reports whether this is a text node.
func (n *Node) IsText() bool {
	return n.name == "#text"
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PrevSibling returns the previous sibling, or nil.
func (n *Node) PrevSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// ChildNodes returns the children in order as a fresh slice.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.nextSibling {
		count++
	}
	return count
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// AppendChild adds child to the end of n's children, detaching it from any
// previous parent first. Returns the appended child.
func (n *Node) AppendChild(child *Node) *Node {
	node, _ := n.InsertBefore(child, nil)
	return node
}

// InsertBefore inserts newChild before refChild, or appends when refChild is
// nil. It fails when refChild is not a child of n, or when the insertion
// would put a node inside itself.
func (n *Node) InsertBefore(newChild, refChild *Node) (*Node, error) {
	if newChild == nil {
		return nil, ErrHierarchyRequest("the node to be inserted is nil")
	}
	if newChild.Contains(n) {
		return nil, ErrHierarchyRequest("the new child contains the parent")
	}
	if refChild != nil && refChild.parent != n {
		return nil, ErrNotFound("the reference node is not a child of this node")
	}
	if newChild == refChild {
		return newChild, nil
	}

	if newChild.parent != nil {
		newChild.parent.detach(newChild)
	}
	newChild.parent = n

	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
	} else {
		newChild.prevSibling = refChild.prevSibling
		newChild.nextSibling = refChild
		if refChild.prevSibling != nil {
			refChild.prevSibling.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		refChild.prevSibling = newChild
	}

	n.childListChanged()
	return newChild, nil
}

// RemoveChild removes child from n's children. Removing a node that is not a
// child of n is a hard failure and returns a NotFoundError.
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil || child.parent != n {
		return nil, ErrNotFound("the node to be removed is not a child of this node")
	}
	n.detach(child)
	n.childListChanged()
	return child, nil
}

// detach unlinks child from n's child list without bookkeeping.
func (n *Node) detach(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// childListChanged keeps the selected-index convention for "select" nodes:
// the first option becomes selected when none is, and the index is clamped
// when options disappear.
func (n *Node) childListChanged() {
	if n.name != "select" {
		return
	}
	count := n.ChildCount()
	switch {
	case count == 0:
		n.selectedIndex = -1
	case n.selectedIndex < 0:
		n.selectedIndex = 0
	case n.selectedIndex >= count:
		n.selectedIndex = count - 1
	}
}

// SelectedIndex returns the selected option index of a "select" node,
// or -1 when nothing is selected.
func (n *Node) SelectedIndex() int {
	return n.selectedIndex
}

// SetSelectedIndex sets the selected option index of a "select" node.
// Out-of-range values clear the selection.
func (n *Node) SetSelectedIndex(i int) {
	if i < 0 || i >= n.ChildCount() {
		n.selectedIndex = -1
		return
	}
	n.selectedIndex = i
}

// SelectedChild returns the selected option node, or nil.
func (n *Node) SelectedChild() *Node {
	if n.selectedIndex < 0 {
		return nil
	}
	for i, c := 0, n.firstChild; c != nil; i, c = i+1, c.nextSibling {
		if i == n.selectedIndex {
			return c
		}
	}
	return nil
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n.attrs == nil {
		return ""
	}
	return n.attrs[strings.ToLower(name)]
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	if n.attrs == nil {
		return false
	}
	_, ok := n.attrs[strings.ToLower(name)]
	return ok
}

// SetAttr sets the named attribute. Writes through the attribute path and
// the mirrored accessors observe the same value.
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[strings.ToLower(name)] = value
}

// RemoveAttr removes the named attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, strings.ToLower(name))
}

// AttrNames returns the present attribute names, sorted.
func (n *Node) AttrNames() []string {
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ID returns the id attribute.
func (n *Node) ID() string { return n.Attr("id") }

// SetID sets the id attribute.
func (n *Node) SetID(id string) { n.SetAttr("id", id) }

// ClassName returns the class attribute.
func (n *Node) ClassName() string { return n.Attr("class") }

// SetClassName sets the class attribute.
func (n *Node) SetClassName(c string) { n.SetAttr("class", c) }

// Href returns the href attribute.
func (n *Node) Href() string { return n.Attr("href") }

// SetHref sets the href attribute.
func (n *Node) SetHref(href string) { n.SetAttr("href", href) }

// Src returns the src attribute.
func (n *Node) Src() string { return n.Attr("src") }

// SetSrc sets the src attribute.
func (n *Node) SetSrc(src string) { n.SetAttr("src", src) }

// Value returns the value attribute.
func (n *Node) Value() string { return n.Attr("value") }

// SetValue sets the value attribute.
func (n *Node) SetValue(v string) { n.SetAttr("value", v) }

// Type returns the type attribute.
func (n *Node) Type() string { return n.Attr("type") }

// SetType sets the type attribute.
func (n *Node) SetType(t string) { n.SetAttr("type", t) }

// InputType returns the effective input type: an input node with no type
// attribute behaves as "text".
func (n *Node) InputType() string {
	if t := n.Attr("type"); t != "" {
		return t
	}
	if n.name == "input" {
		return "text"
	}
	return ""
}

// Checked reports whether the checked attribute is present.
func (n *Node) Checked() bool {
	return n.HasAttr("checked")
}

// SetChecked sets or clears the checked attribute.
func (n *Node) SetChecked(checked bool) {
	if checked {
		n.SetAttr("checked", "checked")
	} else {
		n.RemoveAttr("checked")
	}
}

// Disabled reports whether the disabled attribute is present.
func (n *Node) Disabled() bool {
	return n.HasAttr("disabled")
}

// SetDisabled sets or clears the disabled attribute.
func (n *Node) SetDisabled(disabled bool) {
	if disabled {
		n.SetAttr("disabled", "disabled")
	} else {
		n.RemoveAttr("disabled")
	}
}

// Classes returns the class tokens in attribute order.
func (n *Node) Classes() []string {
	return strings.Fields(n.ClassName())
}

// HasClass reports whether the class list contains token.
func (n *Node) HasClass(token string) bool {
	for _, c := range n.Classes() {
		if c == token {
			return true
		}
	}
	return false
}

// AddClass adds token to the class list if absent. Empty tokens and tokens
// containing whitespace are invalid.
func (n *Node) AddClass(token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	if n.HasClass(token) {
		return nil
	}
	classes := append(n.Classes(), token)
	n.SetClassName(strings.Join(classes, " "))
	return nil
}

// RemoveClass removes token from the class list if present.
func (n *Node) RemoveClass(token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	classes := n.Classes()
	out := classes[:0]
	for _, c := range classes {
		if c != token {
			out = append(out, c)
		}
	}
	n.SetClassName(strings.Join(out, " "))
	return nil
}

// validateToken checks a class token the same way DOMTokenList does.
func validateToken(token string) error {
	if token == "" {
		return &DOMError{Name: "SyntaxError", Message: "the token provided must not be empty"}
	}
	if strings.ContainsAny(token, " \t\n\r\f") {
		return ErrInvalidCharacter(fmt.Sprintf("the token %q contains whitespace", token))
	}
	return nil
}

// Style returns the value of a style property, or "" when unset.
func (n *Node) Style(prop string) string {
	if n.style == nil {
		return ""
	}
	return n.style[strings.ToLower(prop)]
}

// SetStyle sets a style property.
func (n *Node) SetStyle(prop, value string) {
	if n.style == nil {
		n.style = make(map[string]string)
	}
	n.style[strings.ToLower(prop)] = value
}

// StyleNames returns the set style property names, sorted.
func (n *Node) StyleNames() []string {
	names := make([]string, 0, len(n.style))
	for k := range n.style {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Text returns the text of a text node, or the concatenated text of all
// descendant text nodes of an element.
func (n *Node) Text() string {
	if n.IsText() {
		return n.text
	}
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.IsText() {
			sb.WriteString(c.text)
		} else {
			c.collectText(sb)
		}
	}
}

// SetText replaces all children with a single text node carrying text, or
// rewrites the content of a text node.
func (n *Node) SetText(text string) {
	if n.IsText() {
		n.text = text
		return
	}
	for n.firstChild != nil {
		n.detach(n.firstChild)
	}
	if text != "" {
		n.AppendChild(NewText(text))
	}
	n.childListChanged()
}

// FindByID returns the first descendant (or n itself) whose id attribute is
// id, depth-first, or nil.
func (n *Node) FindByID(id string) *Node {
	if !n.IsText() && n.ID() == id {
		return n
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}
