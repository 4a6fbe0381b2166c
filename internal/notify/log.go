package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes messages to the logger instead of delivering them. It is
// used when no e-mail provider is configured.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(ctx context.Context, msg Message) error {
	n.logger.Info().
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("notification (log only)")
	return nil
}
