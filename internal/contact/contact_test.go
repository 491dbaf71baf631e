package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/starfolio/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSubmission() model.Submission {
	return model.Submission{FromName: "A", ReplyTo: "a@x.com", Subject: "S", Message: "M"}
}

// errNetwork stands in for a transport failure inside a relay.
var errNetwork = errors.New("NetworkError: failed to fetch")

type fakeChannel struct {
	mu    sync.Mutex
	sent  bool
	err   error
	calls []model.Submission
}

func (c *fakeChannel) Name() string { return "fake" }

func (c *fakeChannel) Send(ctx context.Context, s model.Submission) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, s)
	return c.sent, c.err
}

type fakeFallback struct {
	mu      sync.Mutex
	outcome Outcome
	err     error
	calls   []map[string]string
}

func (f *fakeFallback) Submit(ctx context.Context, fields map[string]string) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fields)
	return f.outcome, f.err
}
