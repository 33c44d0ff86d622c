// Package mail renders and delivers the account emails: activation links and
// password reset links.
package mail

import (
	"context"
	"errors"
)

// ErrNoRecipient is returned by senders for a message without a To address.
var ErrNoRecipient = errors.New("mail: message has no recipient")

// Message is a rendered email ready to be delivered.
type Message struct {
	To      string
	Subject string
	HTML    string

	// Link is the action link embedded in HTML. Senders that log instead of
	// delivering may print it in development.
	Link string
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}
