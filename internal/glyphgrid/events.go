package glyphgrid

// PointerEvent carries a pointer position in page coordinates.
type PointerEvent struct {
	PageX, PageY float64
}

// Events delivers host input. Each registration returns its own remover.
type Events interface {
	OnPointerMove(fn func(PointerEvent)) (remove func())
	OnResize(fn func()) (remove func())
}

// Listeners is an Events registry dispatched by the host.
type Listeners struct {
	next    int
	pointer map[int]func(PointerEvent)
	resize  map[int]func()
}

func (l *Listeners) OnPointerMove(fn func(PointerEvent)) func() {
	if l.pointer == nil {
		l.pointer = make(map[int]func(PointerEvent))
	}
	l.next++
	id := l.next
	l.pointer[id] = fn
	return func() { delete(l.pointer, id) }
}

func (l *Listeners) OnResize(fn func()) func() {
	if l.resize == nil {
		l.resize = make(map[int]func())
	}
	l.next++
	id := l.next
	l.resize[id] = fn
	return func() { delete(l.resize, id) }
}

func (l *Listeners) DispatchPointer(e PointerEvent) {
	for _, fn := range l.pointer {
		fn(e)
	}
}

func (l *Listeners) DispatchResize() {
	for _, fn := range l.resize {
		fn()
	}
}

// Count reports the number of registered listeners of both kinds.
func (l *Listeners) Count() int { return len(l.pointer) + len(l.resize) }
