package dom

// Document is a fake document: a root "body" node plus the creation
// functions widget code reaches for. One Document is built per test and
// handed to widgets explicitly; nothing here is process-global.
type Document struct {
	body  *Node
	title string
}

// NewDocument creates an empty document with a fresh body node.
func NewDocument() *Document {
	return &Document{body: NewElement("body", nil)}
}

// Body returns the document's root node.
func (d *Document) Body() *Node {
	return d.body
}

// Title returns the document title.
func (d *Document) Title() string {
	return d.title
}

// SetTitle sets the document title.
func (d *Document) SetTitle(title string) {
	d.title = title
}

// CreateElement creates a detached element node.
func (d *Document) CreateElement(tag string, attrs map[string]string) *Node {
	return NewElement(tag, attrs)
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) *Node {
	return NewText(text)
}

// GetElementByID returns the first node in the document with the given id,
// or nil.
func (d *Document) GetElementByID(id string) *Node {
	return d.body.FindByID(id)
}

// Window is a fake window: a Document, a location URL, and an event target
// for window-level events ("resize", "popstate" and the like).
type Window struct {
	doc      *Document
	location string
	target   *EventTarget
}

// NewWindow creates a window around a fresh document.
func NewWindow() *Window {
	w := &Window{doc: NewDocument(), location: "about:blank"}
	w.target = NewEventTarget(w)
	return w
}

// Document returns the window's document.
func (w *Window) Document() *Document {
	return w.doc
}

// Location returns the window's current URL.
func (w *Window) Location() string {
	return w.location
}

// SetLocation sets the window's current URL.
func (w *Window) SetLocation(url string) {
	w.location = url
}

// Target returns the window's event target.
func (w *Window) Target() *EventTarget {
	return w.target
}
