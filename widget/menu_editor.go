package widget

import "crisismap/dom"

// Choice is one entry in an editable menu.
type Choice struct {
	Title string
	Value string
}

// MenuEditor edits a list of choices rendered as a select node plus one
// editing row per choice. Every mutation dispatches a "change" event on
// the editor carrying the new choice list.
type MenuEditor struct {
	deps   Deps
	parent *dom.Node
	root   *dom.Node
	sel    *dom.Node
	rows   *dom.Node
	addBtn *dom.Node

	choices []Choice
	target  *dom.EventTarget
}

// NewMenuEditor creates a menu editor under parent with the given initial
// choices.
func NewMenuEditor(deps Deps, parent *dom.Node, choices []Choice) *MenuEditor {
	m := &MenuEditor{deps: deps, parent: parent}
	m.target = dom.NewEventTarget(m)

	doc := deps.Doc
	m.root = doc.CreateElement("div", map[string]string{"class": "cm-menu-editor"})
	m.sel = doc.CreateElement("select", map[string]string{"class": "cm-menu-select"})
	m.rows = doc.CreateElement("div", map[string]string{"class": "cm-menu-rows"})
	m.addBtn = doc.CreateElement("button", map[string]string{"class": "cm-menu-add"})
	m.addBtn.SetText("Add option")
	m.addBtn.Listen("click", func(dom.Event) {
		m.AddChoice(Choice{Title: "New option"})
	})

	m.root.AppendChild(m.sel)
	m.root.AppendChild(m.rows)
	m.root.AppendChild(m.addBtn)
	parent.AppendChild(m.root)

	m.choices = append([]Choice(nil), choices...)
	m.rebuild()
	return m
}

// Target returns the editor's event target.
func (m *MenuEditor) Target() *dom.EventTarget {
	return m.target
}

// Root returns the editor's container node.
func (m *MenuEditor) Root() *dom.Node {
	return m.root
}

// Choices returns a copy of the current choice list.
func (m *MenuEditor) Choices() []Choice {
	return append([]Choice(nil), m.choices...)
}

// SelectedIndex returns the index of the selected choice, or -1.
func (m *MenuEditor) SelectedIndex() int {
	return m.sel.SelectedIndex()
}

// SelectChoice marks the choice at index i as selected.
func (m *MenuEditor) SelectChoice(i int) {
	m.sel.SetSelectedIndex(i)
}

// AddChoice appends a choice and announces the change.
func (m *MenuEditor) AddChoice(c Choice) {
	m.choices = append(m.choices, c)
	m.rebuild()
	m.changed()
}

// DeleteChoice removes the choice at index i and announces the change.
// Out-of-range indexes are ignored.
func (m *MenuEditor) DeleteChoice(i int) {
	if i < 0 || i >= len(m.choices) {
		return
	}
	m.choices = append(m.choices[:i], m.choices[i+1:]...)
	m.rebuild()
	m.changed()
}

// SetChoices replaces the whole choice list without announcing a change;
// it is the programmatic path used when loading a saved menu.
func (m *MenuEditor) SetChoices(choices []Choice) {
	m.choices = append([]Choice(nil), choices...)
	m.rebuild()
}

// changed dispatches a "change" event carrying a copy of the choices.
func (m *MenuEditor) changed() {
	m.target.Dispatch("change", m.Choices())
}

// rebuild regenerates the select options and the editing rows from the
// choice list, preserving the selection where possible. The select node's
// own index convention handles clamping.
func (m *MenuEditor) rebuild() {
	selected := m.sel.SelectedIndex()

	for m.sel.FirstChild() != nil {
		m.sel.RemoveChild(m.sel.FirstChild())
	}
	for m.rows.FirstChild() != nil {
		m.rows.RemoveChild(m.rows.FirstChild())
	}

	doc := m.deps.Doc
	for i, c := range m.choices {
		option := doc.CreateElement("option", map[string]string{"value": c.Value})
		option.SetText(c.Title)
		m.sel.AppendChild(option)

		row := doc.CreateElement("div", map[string]string{"class": "cm-menu-row"})
		title := doc.CreateElement("input", map[string]string{
			"class": "cm-menu-title",
			"value": c.Title,
		})
		del := doc.CreateElement("button", map[string]string{"class": "cm-menu-delete"})
		del.SetText("Delete")

		index := i
		title.Listen("change", func(dom.Event) {
			m.choices[index].Title = title.Value()
			if opt := m.sel.ChildNodes()[index]; opt != nil {
				opt.SetText(title.Value())
			}
			m.changed()
		})
		del.Listen("click", func(dom.Event) {
			m.DeleteChoice(index)
		})

		row.AppendChild(title)
		row.AppendChild(del)
		m.rows.AppendChild(row)
	}

	if selected >= len(m.choices) {
		selected = len(m.choices) - 1
	}
	if selected < 0 && len(m.choices) > 0 {
		selected = 0
	}
	m.sel.SetSelectedIndex(selected)
}

// Dispose detaches the editor from its parent.
func (m *MenuEditor) Dispose() {
	if m.root.Parent() == m.parent {
		m.parent.RemoveChild(m.root)
	}
}
