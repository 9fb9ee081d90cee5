package surface

// SignalKind names an input signal delivered to elements.
type SignalKind int

const (
	Click SignalKind = iota
	Change
	Submit
	PointerDown
	PointerMove
	PointerUp
	PointerCancel
	DragStart
	DragOver
	DragEnd
	Drop
)

var signalNames = [...]string{
	"click", "change", "submit",
	"pointerdown", "pointermove", "pointerup", "pointercancel",
	"dragstart", "dragover", "dragend", "drop",
}

func (k SignalKind) String() string {
	if k < 0 || int(k) >= len(signalNames) {
		return "unknown"
	}
	return signalNames[k]
}

// Signal is one input event. Track identifies the input stream for
// track-attributed (touch-style) pointers.
type Signal struct {
	Kind   SignalKind
	X, Y   int
	Track  int
	Target *Element
}

// Handler reacts to a signal; returning true stops propagation.
type Handler func(s Signal) bool

// On subscribes h to signals of kind reaching e.
func (e *Element) On(kind SignalKind, h Handler) {
	if e.handlers == nil {
		e.handlers = map[SignalKind][]Handler{}
	}
	e.handlers[kind] = append(e.handlers[kind], h)
}

// Emit delivers s to e and then its ancestors until a handler consumes it.
func (e *Element) Emit(s Signal) bool {
	if s.Target == nil {
		s.Target = e
	}
	for el := e; el != nil; el = el.parent {
		for _, h := range el.handlers[s.Kind] {
			if h(s) {
				return true
			}
		}
	}
	return false
}

// Dispatch hit-tests (s.X, s.Y) under root and emits s at the target.
func Dispatch(root *Element, s Signal) bool {
	target := root.HitTest(s.X, s.Y)
	if target == nil {
		return false
	}
	s.Target = target
	return target.Emit(s)
}
