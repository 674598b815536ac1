package core

// ShapeProvider supplies the kind of each upcoming piece on demand. A game
// calls NextShape from its owning goroutine only, so implementations need not
// be safe for concurrent use.
type ShapeProvider interface {
	NextShape() ShapeKind
}

// ShapeProviderFunc adapts a plain function to ShapeProvider.
type ShapeProviderFunc func() ShapeKind

// NextShape calls f.
func (f ShapeProviderFunc) NextShape() ShapeKind { return f() }
