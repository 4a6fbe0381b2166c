package notify

import (
	"context"
	"html"
	"strings"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

type emailSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendNotifier e-mails every message to a fixed recipient through Resend.
type ResendNotifier struct {
	emails emailSender
	from   string
	to     string
	logger zerolog.Logger
}

func NewResendNotifier(apiKey, from, to string, logger zerolog.Logger) *ResendNotifier {
	return &ResendNotifier{
		emails: resend.NewClient(apiKey).Emails,
		from:   from,
		to:     to,
		logger: logger,
	}
}

func (n *ResendNotifier) Publish(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sent, err := n.emails.Send(&resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: msg.Subject,
		Text:    msg.Body,
		Html:    "<pre style=\"font-family: sans-serif;\">" + html.EscapeString(msg.Body) + "</pre>",
	})
	if err != nil {
		return errors.Wrap(err, "send notification email")
	}

	n.logger.Debug().Str("email_id", sent.Id).Str("subject", msg.Subject).Msg("notification sent")
	return nil
}

// New picks the Resend notifier when an API key and recipient are configured
// and falls back to logging otherwise.
func New(apiKey, from, to string, logger zerolog.Logger) Notifier {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(to) == "" {
		logger.Warn().Msg("resend not configured, notifications will only be logged")
		return NewLogNotifier(logger)
	}
	return NewResendNotifier(apiKey, from, to, logger)
}
