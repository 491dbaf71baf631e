// Package relay implements the primary delivery channels for contact
// submissions: third-party email relays and a demonstration stand-in.
package relay

import (
	"context"

	"github.com/starfolio/internal/model"
)

// Channel delivers a submission to the site owner. Send reports true only when
// the relay confirmed the message was accepted.
type Channel interface {
	Name() string
	Send(ctx context.Context, s model.Submission) (bool, error)
}

// DefaultTemplate is the message body used by relays that compose the email
// themselves.
const DefaultTemplate = `New message from {{from_name}} <{{reply_to}}>

Subject: {{subject}}

{{message}}
`
