package contact

// Outcome is the validated reply of the fallback endpoint: either Success or
// Failure.
type Outcome interface {
	outcome()
}

// Success means the endpoint accepted the submission.
type Success struct {
	Message string
}

// Failure means the endpoint declared the submission not sent.
type Failure struct {
	Message string
}

func (Success) outcome() {}
func (Failure) outcome() {}
