package engine

// notifications buffers hook calls raised while the engine lock is held. The
// engine takes the buffer before unlocking and flushes it afterwards, so a hook
// that calls back into the engine cannot deadlock.
type notifications struct {
	pending []func()
}

func (n *notifications) push(fn func()) {
	n.pending = append(n.pending, fn)
}

// take hands over the queued calls and resets the buffer.
func (n *notifications) take() []func() {
	out := n.pending
	n.pending = nil
	return out
}

func flush(calls []func()) {
	for _, fn := range calls {
		fn()
	}
}
