package notify

import (
	"context"
	"log/slog"
	"strings"
)

// LogGateway writes messages to the structured log instead of an external
// transport. It is the default gateway in development and a safe fallback
// when no real transport is configured.
type LogGateway struct {
	logger *slog.Logger
}

// NewLogGateway creates a gateway that logs deliveries.
func NewLogGateway(logger *slog.Logger) *LogGateway {
	return &LogGateway{logger: logger}
}

// Deliver logs the message. The recipient is masked so phone numbers do not
// land in logs verbatim.
func (g *LogGateway) Deliver(_ context.Context, msg Message) error {
	g.logger.Info("notification delivered",
		"kind", string(msg.Kind),
		"recipient", maskRecipient(msg.Recipient),
		"subject", msg.Subject,
		"attachments", len(msg.Attachments),
	)
	return nil
}

// maskRecipient hides all but the last four characters.
func maskRecipient(recipient string) string {
	if len(recipient) <= 4 {
		return recipient
	}
	return strings.Repeat("*", len(recipient)-4) + recipient[len(recipient)-4:]
}
