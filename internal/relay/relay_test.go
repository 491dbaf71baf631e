package relay

import (
	"io"
	"log/slog"

	"github.com/starfolio/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSubmission() model.Submission {
	return model.Submission{FromName: "A", ReplyTo: "a@x.com", Subject: "S", Message: "M"}
}
