package mailer

import "context"

// Mailer delivers a single message. Implementations must return an error on
// transport failure so callers can surface delivery problems distinctly from
// business failures.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}
