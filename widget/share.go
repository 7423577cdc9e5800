package widget

import (
	"context"
	"net/url"
	"time"

	"crisismap/dom"
)

// copyNoticeDelay is how long the "Link copied" notice stays visible.
const copyNoticeDelay = 2 * time.Second

// ShareButton is a toolbar button that toggles the share popup. Each
// toggle logs an analytics action.
type ShareButton struct {
	deps  Deps
	btn   *dom.Node
	popup *SharePopup
}

// NewShareButton creates the button under parent and an initially hidden
// popup for it.
func NewShareButton(deps Deps, parent *dom.Node) *ShareButton {
	b := &ShareButton{deps: deps}
	b.btn = deps.Doc.CreateElement("button", map[string]string{"class": "cm-share-button"})
	b.btn.SetText("Share")
	parent.AppendChild(b.btn)

	b.popup = NewSharePopup(deps)
	b.btn.Listen("click", func(dom.Event) {
		b.Toggle()
	})
	return b
}

// Node returns the button node.
func (b *ShareButton) Node() *dom.Node {
	return b.btn
}

// Popup returns the popup controlled by the button.
func (b *ShareButton) Popup() *SharePopup {
	return b.popup
}

// Toggle opens the popup if it is hidden and closes it otherwise.
func (b *ShareButton) Toggle() {
	if b.popup.Shown() {
		b.deps.Analytics.LogAction(ActionShareClosed, "")
		b.popup.Close()
		return
	}
	b.deps.Analytics.LogAction(ActionShareOpened, "")
	b.popup.Open()
}

// Dispose closes the popup and removes the button.
func (b *ShareButton) Dispose() {
	b.popup.Dispose()
	if parent := b.btn.Parent(); parent != nil {
		parent.RemoveChild(b.btn)
	}
}

// SharePopup shows the share box over the map. It owns the current map
// URL, swaps it for a shortened one when the shorten checkbox is on, and
// closes when the user clicks outside it.
type SharePopup struct {
	deps Deps
	root *dom.Node
	box  *ShareBox

	longURL  string
	shortURL string

	bodyListener int
}

// NewSharePopup creates a hidden popup. Open attaches it to the document
// body.
func NewSharePopup(deps Deps) *SharePopup {
	p := &SharePopup{deps: deps, bodyListener: -1}
	p.root = deps.Doc.CreateElement("div", map[string]string{"class": "cm-share-popup"})
	p.root.SetStyle("display", "none")
	p.box = NewShareBox(deps, p.root)
	p.box.Target().Listen("shorten", func(ev dom.Event) {
		on, _ := ev.Payload.(bool)
		p.setShortened(on)
	})
	return p
}

// Root returns the popup's container node.
func (p *SharePopup) Root() *dom.Node {
	return p.root
}

// Box returns the share box inside the popup.
func (p *SharePopup) Box() *ShareBox {
	return p.box
}

// Shown reports whether the popup is attached and visible.
func (p *SharePopup) Shown() bool {
	return p.root.Parent() != nil && p.root.Style("display") != "none"
}

// Open shows the popup with the window's current URL. The shorten
// checkbox resets to off and any cached short URL is discarded, since the
// map URL may have changed since the last open.
func (p *SharePopup) Open() {
	p.longURL = p.deps.Window.Location()
	p.shortURL = ""
	p.box.SetShortenChecked(false)
	p.box.SetURL(p.longURL)

	body := p.deps.Doc.Body()
	if p.root.Parent() == nil {
		body.AppendChild(p.root)
	}
	p.root.SetStyle("display", "block")

	// Clicks land only on their target node, so clicks inside the popup
	// (and the opening click on the share button) never reach this
	// listener; a click on the body itself is by definition outside.
	p.bodyListener = body.Listen("click", func(dom.Event) {
		p.Close()
	})
}

// Close hides the popup and stops watching for outside clicks.
func (p *SharePopup) Close() {
	p.root.SetStyle("display", "none")
	if p.bodyListener >= 0 {
		p.deps.Doc.Body().Target().Unlisten(p.bodyListener)
		p.bodyListener = -1
	}
}

// setShortened swaps the displayed URL between the long and shortened
// forms. The first time shortening is turned on for a given URL, the
// shortener is called and the result cached; if it fails, the checkbox
// reverts and the long URL stays.
func (p *SharePopup) setShortened(on bool) {
	if !on {
		p.deps.Analytics.LogAction(ActionShortenOff, "")
		p.box.SetURL(p.longURL)
		return
	}
	p.deps.Analytics.LogAction(ActionShortenOn, "")
	if p.shortURL == "" {
		short, err := p.deps.Shortener.Shorten(context.Background(), p.longURL)
		if err != nil {
			p.box.SetShortenChecked(false)
			return
		}
		p.shortURL = short
	}
	p.box.SetURL(p.shortURL)
}

// Dispose removes the popup from the document.
func (p *SharePopup) Dispose() {
	p.Close()
	if parent := p.root.Parent(); parent != nil {
		parent.RemoveChild(p.root)
	}
}

// ShareBox is the inner box of the share popup: the URL field, the
// shorten checkbox, a copy button with a transient notice, and social
// links whose hrefs embed the displayed URL.
type ShareBox struct {
	deps Deps
	root *dom.Node

	urlField *dom.Node
	checkbox *dom.Node
	copyBtn  *dom.Node
	notice   *dom.Node
	facebook *dom.Node
	twitter  *dom.Node
	email    *dom.Node

	target      *dom.EventTarget
	noticeTimer int
}

// NewShareBox creates the box under parent. It dispatches a "shorten"
// event with a bool payload when the checkbox changes.
func NewShareBox(deps Deps, parent *dom.Node) *ShareBox {
	b := &ShareBox{deps: deps, noticeTimer: -1}
	b.target = dom.NewEventTarget(b)

	doc := deps.Doc
	b.root = doc.CreateElement("div", map[string]string{"class": "cm-share-box"})

	b.urlField = doc.CreateElement("input", map[string]string{"class": "cm-share-url"})
	b.urlField.Listen("focus", func(dom.Event) {
		b.urlField.Dispatch("select", nil)
	})

	b.checkbox = doc.CreateElement("input", map[string]string{
		"type":  "checkbox",
		"class": "cm-shorten",
	})
	b.checkbox.Listen("change", func(dom.Event) {
		b.target.Dispatch("shorten", b.checkbox.Checked())
	})
	label := doc.CreateElement("label", nil)
	label.SetText("Shorten URLs")

	b.copyBtn = doc.CreateElement("button", map[string]string{"class": "cm-copy"})
	b.copyBtn.SetText("Copy")
	b.notice = doc.CreateElement("span", map[string]string{"class": "cm-copy-notice"})
	b.notice.SetText("Link copied")
	b.notice.SetStyle("display", "none")
	b.copyBtn.Listen("click", func(dom.Event) {
		b.showNotice()
	})

	b.facebook = doc.CreateElement("a", map[string]string{"class": "cm-facebook"})
	b.twitter = doc.CreateElement("a", map[string]string{"class": "cm-twitter"})
	b.email = doc.CreateElement("a", map[string]string{"class": "cm-email"})

	b.root.AppendChild(b.urlField)
	b.root.AppendChild(b.checkbox)
	b.root.AppendChild(label)
	b.root.AppendChild(b.copyBtn)
	b.root.AppendChild(b.notice)
	b.root.AppendChild(b.facebook)
	b.root.AppendChild(b.twitter)
	b.root.AppendChild(b.email)
	parent.AppendChild(b.root)
	return b
}

// Target returns the box's event target.
func (b *ShareBox) Target() *dom.EventTarget {
	return b.target
}

// Root returns the box's container node.
func (b *ShareBox) Root() *dom.Node {
	return b.root
}

// URLField returns the text field holding the displayed URL.
func (b *ShareBox) URLField() *dom.Node {
	return b.urlField
}

// Checkbox returns the shorten checkbox node.
func (b *ShareBox) Checkbox() *dom.Node {
	return b.checkbox
}

// URL returns the currently displayed URL.
func (b *ShareBox) URL() string {
	return b.urlField.Value()
}

// SetURL updates the URL field and the social link hrefs.
func (b *ShareBox) SetURL(u string) {
	b.urlField.SetValue(u)
	escaped := url.QueryEscape(u)
	b.facebook.SetHref("https://www.facebook.com/sharer.php?u=" + escaped)
	b.twitter.SetHref("https://twitter.com/intent/tweet?url=" + escaped)
	b.email.SetHref("mailto:?body=" + escaped)
}

// ShortenChecked reports whether the shorten checkbox is on.
func (b *ShareBox) ShortenChecked() bool {
	return b.checkbox.Checked()
}

// SetShortenChecked sets the checkbox state without dispatching a change
// event; it is the programmatic path used when the popup resets or a
// shorten attempt fails.
func (b *ShareBox) SetShortenChecked(on bool) {
	b.checkbox.SetChecked(on)
}

// showNotice reveals the copy notice and schedules it to disappear.
// Clicking copy again restarts the countdown.
func (b *ShareBox) showNotice() {
	b.notice.SetStyle("display", "inline")
	if b.noticeTimer >= 0 {
		b.deps.Clock.Clear(b.noticeTimer)
	}
	b.noticeTimer = b.deps.Clock.SetTimeout(copyNoticeDelay, func() {
		b.notice.SetStyle("display", "none")
		b.noticeTimer = -1
	})
}
