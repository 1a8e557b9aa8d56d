package service

import (
	"context"
	"log/slog"
)

// AlertNotifier delivers security alerts to the account holder's
// communication channel. Fire-and-forget: delivery failures must not
// fail the checkout path that triggered them.
type AlertNotifier interface {
	EmitSecurityAlert(ctx context.Context, accountID string, reason string)
}

// LogAlertNotifier is the default notifier; it records the alert on the
// structured log. A messaging-backed implementation can replace it
// without touching the engine.
type LogAlertNotifier struct {
	logger *slog.Logger
}

func NewLogAlertNotifier(logger *slog.Logger) *LogAlertNotifier {
	return &LogAlertNotifier{logger: logger}
}

func (n *LogAlertNotifier) EmitSecurityAlert(ctx context.Context, accountID string, reason string) {
	n.logger.WarnContext(ctx, "security alert",
		slog.String("account_id", accountID),
		slog.String("reason", reason),
	)
}
