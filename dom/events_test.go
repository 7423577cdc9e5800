package dom

import "testing"

func TestEventTarget_ListenAndDispatch(t *testing.T) {
	n := NewElement("button", nil)

	var got []Event
	n.Listen("click", func(ev Event) {
		got = append(got, ev)
	})

	n.Dispatch("click", "payload")
	n.Dispatch("change", nil) // no listener; must not panic

	if len(got) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(got))
	}
	if got[0].Type != "click" {
		t.Errorf("Expected type 'click', got %q", got[0].Type)
	}
	if got[0].Target != n {
		t.Error("event target should be the node")
	}
	if got[0].Payload != "payload" {
		t.Errorf("Expected payload, got %v", got[0].Payload)
	}
}

func TestEventTarget_Unlisten(t *testing.T) {
	n := NewElement("button", nil)

	calls := 0
	id := n.Listen("click", func(Event) { calls++ })
	n.Click()
	n.Target().Unlisten(id)
	n.Click()

	if calls != 1 {
		t.Errorf("Expected 1 call after unlisten, got %d", calls)
	}
}

func TestEventTarget_DispatchIsSynchronous(t *testing.T) {
	n := NewElement("input", nil)

	fired := false
	n.Listen("focus", func(Event) { fired = true })
	n.Focus()
	if !fired {
		t.Error("listener should have run before Focus returned")
	}
}

func TestEventTarget_ListenerRemovedDuringDispatchStillRuns(t *testing.T) {
	n := NewElement("div", nil)

	order := []string{}
	var secondID int
	n.Listen("x", func(Event) {
		order = append(order, "first")
		n.Target().Unlisten(secondID)
	})
	secondID = n.Listen("x", func(Event) {
		order = append(order, "second")
	})

	n.Dispatch("x", nil)
	if len(order) != 2 {
		t.Fatalf("current delivery should not be affected by removal, got %v", order)
	}

	n.Dispatch("x", nil)
	if len(order) != 3 {
		t.Errorf("removed listener ran on a later dispatch: %v", order)
	}
}

func TestWindow_Target(t *testing.T) {
	w := NewWindow()

	var got Event
	w.Target().Listen("resize", func(ev Event) { got = ev })
	w.Target().Dispatch("resize", nil)

	if got.Type != "resize" {
		t.Errorf("Expected 'resize', got %q", got.Type)
	}
	if got.Target != w {
		t.Error("window should be the event target")
	}
}
