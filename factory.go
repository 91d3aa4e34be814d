package archway

// factory gathers the package's top-level constructors behind a single
// zero-value receiver, so callers can discover them as Factory.NewXxx.
type factory struct{}

// Factory is the global factory instance.
var Factory factory

// NewWorld creates a fresh World.
func (f factory) NewWorld() *World {
	return NewWorld()
}

// NewCompositeQuery creates a new dynamic AND/OR/NOT query builder.
func (f factory) NewCompositeQuery() *CompositeQuery {
	return NewCompositeQuery()
}

// NewCursor creates a cursor over node's matches within w.
func (f factory) NewCursor(node QueryNode, w *World) *Cursor {
	return NewCursor(node, w)
}
