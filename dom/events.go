package dom

// Event is delivered to listeners when an event is dispatched on a target.
type Event struct {
	Type    string
	Target  Emitter
	Payload any
}

// Listener receives dispatched events.
type Listener func(Event)

// Emitter is anything that exposes an EventTarget. Nodes and widgets both
// qualify, so test expectations can be attached to either.
type Emitter interface {
	Target() *EventTarget
}

type eventListener struct {
	id int
	fn Listener
}

// EventTarget manages event listeners for one source. Dispatch is fully
// synchronous: every listener runs before Dispatch returns.
type EventTarget struct {
	owner     Emitter
	listeners map[string][]eventListener
	nextID    int
}

// NewEventTarget creates an EventTarget owned by the given emitter. The
// owner becomes Event.Target on dispatched events; it may be nil for a
// standalone target.
func NewEventTarget(owner Emitter) *EventTarget {
	return &EventTarget{owner: owner, listeners: make(map[string][]eventListener)}
}

// Target returns the EventTarget itself, so a bare target is an Emitter.
func (t *EventTarget) Target() *EventTarget {
	return t
}

// Listen registers a listener for eventType and returns an id usable with
// Unlisten.
func (t *EventTarget) Listen(eventType string, fn Listener) int {
	t.nextID++
	t.listeners[eventType] = append(t.listeners[eventType], eventListener{id: t.nextID, fn: fn})
	return t.nextID
}

// Unlisten removes the listener with the given id.
func (t *EventTarget) Unlisten(id int) {
	for eventType, listeners := range t.listeners {
		for i, l := range listeners {
			if l.id == id {
				t.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers an event with the given payload to all listeners
// registered for eventType. Listeners added or removed during dispatch do
// not affect the current delivery.
func (t *EventTarget) Dispatch(eventType string, payload any) {
	target := t.owner
	if target == nil {
		target = t
	}
	listeners := make([]eventListener, len(t.listeners[eventType]))
	copy(listeners, t.listeners[eventType])
	ev := Event{Type: eventType, Target: target, Payload: payload}
	for _, l := range listeners {
		l.fn(ev)
	}
}

// Target returns the node's event target, creating it on first use.
func (n *Node) Target() *EventTarget {
	if n.target == nil {
		n.target = NewEventTarget(n)
	}
	return n.target
}

// Listen registers a listener on the node.
func (n *Node) Listen(eventType string, fn Listener) int {
	return n.Target().Listen(eventType, fn)
}

// Dispatch delivers an event on the node.
func (n *Node) Dispatch(eventType string, payload any) {
	n.Target().Dispatch(eventType, payload)
}

// Click dispatches a "click" event with no payload.
func (n *Node) Click() {
	n.Dispatch("click", nil)
}

// Focus dispatches a "focus" event with no payload.
func (n *Node) Focus() {
	n.Dispatch("focus", nil)
}
