package mail

import (
	"context"
	"log/slog"

	"github.com/flowmerce/accounts/pkg/slogx"
)

// LogSender logs messages instead of delivering them. Links contain live
// tokens and are only printed when ShowLinks is set.
type LogSender struct {
	ShowLinks bool
}

func (s LogSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	attrs := []any{slog.String("subject", msg.Subject)}
	if s.ShowLinks {
		attrs = append(attrs, slog.String("to", msg.To), slog.String("link", msg.Link))
	}
	slogx.FromContext(ctx).Info("email not delivered, log driver in use", attrs...)
	return nil
}
