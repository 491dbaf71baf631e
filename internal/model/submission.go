package model

import "strings"

// Form field keys. These are also the template parameter names the relay
// templates expect.
const (
	FieldFromName = "from_name"
	FieldReplyTo  = "reply_to"
	FieldSubject  = "subject"
	FieldMessage  = "message"
)

// Submission is one contact form entry. It lives for a single delivery attempt.
type Submission struct {
	FromName string `json:"from_name"`
	ReplyTo  string `json:"reply_to"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// SubmissionFromFields builds a submission from posted form values.
func SubmissionFromFields(fields map[string]string) Submission {
	return Submission{
		FromName: fields[FieldFromName],
		ReplyTo:  fields[FieldReplyTo],
		Subject:  fields[FieldSubject],
		Message:  fields[FieldMessage],
	}
}

// Fields flattens the submission into the key/value mapping sent over the wire.
func (s Submission) Fields() map[string]string {
	return map[string]string{
		FieldFromName: s.FromName,
		FieldReplyTo:  s.ReplyTo,
		FieldSubject:  s.Subject,
		FieldMessage:  s.Message,
	}
}

// Missing returns the keys of required fields that are blank, in form order.
func (s Submission) Missing() []string {
	var missing []string
	for _, f := range []struct {
		key, value string
	}{
		{FieldFromName, s.FromName},
		{FieldReplyTo, s.ReplyTo},
		{FieldSubject, s.Subject},
		{FieldMessage, s.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.key)
		}
	}
	return missing
}
