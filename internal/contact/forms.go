package contact

import "sync"

// Forms tracks one Form per visitor, keyed by an opaque form id.
type Forms struct {
	deliverer deliverer

	mu    sync.Mutex
	forms map[string]*Form
}

func NewForms(d deliverer) *Forms {
	return &Forms{deliverer: d, forms: make(map[string]*Form)}
}

// Get returns the form for id, creating it on first use.
func (fs *Forms) Get(id string) *Form {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	f, ok := fs.forms[id]
	if !ok {
		f = NewForm(fs.deliverer)
		fs.forms[id] = f
	}
	return f
}

// Release forgets the form for id unless it has a submission in flight.
func (fs *Forms) Release(id string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if f, ok := fs.forms[id]; ok && !f.Submitting() {
		delete(fs.forms, id)
	}
}

// Len reports the number of tracked forms.
func (fs *Forms) Len() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.forms)
}
