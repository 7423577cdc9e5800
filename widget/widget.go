// Package widget implements the map UI widgets: the menu editor and the
// share button/popup/box. Widgets receive their environment explicitly
// through Deps, so tests can hand in the fake document, clock, analytics
// and shortener without touching any shared state.
package widget

import (
	"context"

	"crisismap/analytics"
	"crisismap/clock"
	"crisismap/dom"
)

// URLShortener is the slice of the network client the share popup needs.
type URLShortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

// Deps is the environment a widget operates in.
type Deps struct {
	Doc       *dom.Document
	Window    *dom.Window
	Analytics *analytics.Recorder
	Clock     clock.Clock
	Shortener URLShortener
}

// Disposable is implemented by widgets that detach their nodes and
// listeners when no longer needed.
type Disposable interface {
	Dispose()
}

// Analytics action names reported by the widgets.
const (
	ActionShareOpened = "SHARE_TOGGLED_ON"
	ActionShareClosed = "SHARE_TOGGLED_OFF"
	ActionShortenOn   = "SHORTEN_URL_ON"
	ActionShortenOff  = "SHORTEN_URL_OFF"
)
