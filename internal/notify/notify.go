// Package notify delivers user-facing success and error notifications
// emitted by mutation operations
package notify

import "go.uber.org/zap"

// Notifier is the interface that wraps the notification methods used by
// mutation operations.
type Notifier interface {
	// Success reports a user-facing success message.
	Success(message string)
	// Error reports a user-facing error message.
	Error(message string)
}

// zapNotifier emits notifications through the application logger
type zapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a notifier backed by the given logger
func NewZapNotifier(logger *zap.Logger) *zapNotifier {
	return &zapNotifier{
		logger: logger,
	}
}

// Success reports a user-facing success message
func (n *zapNotifier) Success(message string) {
	n.logger.Info("notification", zap.String("level", "success"), zap.String("message", message))
}

// Error reports a user-facing error message
func (n *zapNotifier) Error(message string) {
	n.logger.Warn("notification", zap.String("level", "error"), zap.String("message", message))
}
