package detector

import "sync"

// worklist is the crawl frontier: a FIFO of (steam id, depth) pairs processed
// breadth-first. The engine is a single consumer, so pop is non-blocking, but
// pushes stay mutex-guarded so the structure remains safe if fetching is ever
// parallelized.
type worklist struct {
	mu    sync.Mutex
	items []entry
}

func newWorklist() *worklist {
	return &worklist{items: make([]entry, 0)}
}

// push appends an entry to the frontier.
func (w *worklist) push(e entry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append(w.items, e)
}

// pop removes and returns the first entry. Returns false when the frontier is
// empty, which ends the run.
func (w *worklist) pop() (entry, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.items) == 0 {
		return entry{}, false
	}

	e := w.items[0]
	w.items = w.items[1:]
	return e, true
}

// size returns the current number of pending entries.
func (w *worklist) size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}
