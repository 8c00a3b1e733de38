package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries to the process log. Lifecycle
// events like SERVER_SHUTDOWN land here; request-level auditing belongs
// to the outbox, not this logger.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(_ context.Context, entry AuditLog) {
	zap.L().Named("audit").Info(entry.Action,
		zap.String("recordedAt", time.Now().UTC().Format(time.RFC3339)),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
