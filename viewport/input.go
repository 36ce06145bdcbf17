package viewport

type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyZoomIn
	KeyZoomOut
	KeyReset
)

type EventKind int

const (
	KeyPressed EventKind = iota
	WheelScrolled
	Closed
)

// Event is a raw input event forwarded by a front end.
// WheelY is positive when the wheel moves away from the user.
type Event struct {
	Kind   EventKind
	Key    Key
	WheelY float64
}

func KeyEvent(key Key) Event {
	return Event{Kind: KeyPressed, Key: key}
}

func WheelEvent(dy float64) Event {
	return Event{Kind: WheelScrolled, WheelY: dy}
}

func CloseEvent() Event {
	return Event{Kind: Closed}
}

// Translator applies input events to a viewport.
type Translator struct {
	view   *Viewport
	closed bool
}

func NewTranslator(view *Viewport) *Translator {
	return &Translator{view: view}
}

func (t *Translator) Viewport() *Viewport {
	return t.view
}

// Closed reports whether a close event has been seen.
func (t *Translator) Closed() bool {
	return t.closed
}

// Handle applies e and reports whether the viewport changed.
// Events that match no command are ignored.
func (t *Translator) Handle(e Event) bool {
	switch e.Kind {
	case KeyPressed:
		return t.handleKey(e.Key)
	case WheelScrolled:
		switch {
		case e.WheelY > 0:
			return t.view.Zoom(In)
		case e.WheelY < 0:
			return t.view.Zoom(Out)
		}
		return false
	case Closed:
		t.closed = true
	}
	return false
}

func (t *Translator) handleKey(key Key) bool {
	switch key {
	case KeyUp:
		t.view.Pan(Up)
	case KeyDown:
		t.view.Pan(Down)
	case KeyLeft:
		t.view.Pan(Left)
	case KeyRight:
		t.view.Pan(Right)
	case KeyZoomIn:
		return t.view.Zoom(In)
	case KeyZoomOut:
		return t.view.Zoom(Out)
	case KeyReset:
		t.view.Reset()
	default:
		return false
	}
	return true
}
