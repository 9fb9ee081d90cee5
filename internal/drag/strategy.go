package drag

import "listo/internal/surface"

// Strategy maps one device's signals onto begin, move and end.
type Strategy interface {
	// Begins reports whether kind starts a gesture under this strategy.
	Begins(kind surface.SignalKind) bool
	Handle(c *Controller, dev Device, s surface.Signal) (Result, error)
}

// NativeStrategy follows native drag signals from a fine pointer. Tracks are
// not consulted.
type NativeStrategy struct{}

func (NativeStrategy) Begins(kind surface.SignalKind) bool { return kind == surface.DragStart }

func (NativeStrategy) Handle(c *Controller, dev Device, s surface.Signal) (Result, error) {
	switch s.Kind {
	case surface.DragStart:
		return c.begin(dev, 0, s), nil
	case surface.DragOver:
		return c.move(s.Y), nil
	case surface.Drop, surface.DragEnd:
		return c.end()
	}
	return Ignored, nil
}

// TrackedStrategy follows pointer signals for one track from press to
// release. Signals on other tracks are ignored while a session is live.
type TrackedStrategy struct{}

func (TrackedStrategy) Begins(kind surface.SignalKind) bool { return kind == surface.PointerDown }

func (TrackedStrategy) Handle(c *Controller, dev Device, s surface.Signal) (Result, error) {
	switch s.Kind {
	case surface.PointerDown:
		return c.begin(dev, s.Track, s), nil
	case surface.PointerMove:
		if !c.owns(s.Track) {
			return Ignored, nil
		}
		return c.move(s.Y), nil
	case surface.PointerUp, surface.PointerCancel:
		if !c.owns(s.Track) {
			return Ignored, nil
		}
		return c.end()
	}
	return Ignored, nil
}
