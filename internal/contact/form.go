package contact

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/starfolio/internal/model"
)

// StatusKind classifies the message shown above the form.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return ""
	}
}

// Status is the result of the last submission as presented to the visitor.
type Status struct {
	Kind    StatusKind
	Message string
}

type deliverer interface {
	Deliver(ctx context.Context, s model.Submission) (Delivery, error)
}

// Form is the capture surface for a single visitor. It holds the entered
// values and allows one submission in flight at a time.
type Form struct {
	deliverer  deliverer
	submitting atomic.Bool

	mu     sync.Mutex
	values model.Submission
	status Status
}

func NewForm(d deliverer) *Form {
	return &Form{deliverer: d}
}

// Submitting reports whether a delivery is in flight.
func (f *Form) Submitting() bool {
	return f.submitting.Load()
}

// Values returns the values to redisplay in the form.
func (f *Form) Values() model.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Status returns the status of the last submission.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Submit validates s and delivers it. A concurrent call while a delivery is
// in flight returns an error status wrapping ErrSubmitting and sends nothing.
func (f *Form) Submit(ctx context.Context, s model.Submission) (Status, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return Status{Kind: StatusError, Message: "Your message is already being sent."}, ErrSubmitting
	}
	defer f.submitting.Store(false)

	f.mu.Lock()
	f.values = s
	f.status = Status{}
	f.mu.Unlock()

	if missing := s.Missing(); len(missing) > 0 {
		err := fmt.Errorf("contact: missing fields: %s", strings.Join(missing, ", "))
		return f.finish(Status{Kind: StatusError, Message: "Please fill in every field."}, false), err
	}

	if _, err := f.deliverer.Deliver(ctx, s); err != nil {
		return f.finish(Status{Kind: StatusError, Message: err.Error()}, false), err
	}
	return f.finish(Status{Kind: StatusSuccess, Message: SuccessMessage}, true), nil
}

func (f *Form) finish(st Status, reset bool) Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reset {
		f.values = model.Submission{}
	}
	f.status = st
	return st
}
