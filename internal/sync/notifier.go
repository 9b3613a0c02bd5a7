package sync

import "go.uber.org/zap"

// Notifier receives out-of-date results. The orchestrator never raises being
// behind upstream as an error; it hands the result to this sink.
type Notifier interface {
	NotifyOutOfDate(result *Result)
}

type logNotifier struct {
	logger *zap.Logger
}

// NewNotifier creates a notifier that emits a warning log entry.
func NewNotifier(logger *zap.Logger) Notifier {
	return &logNotifier{
		logger: logger,
	}
}

func (n *logNotifier) NotifyOutOfDate(result *Result) {
	n.logger.Warn("working copy is behind upstream",
		zap.String("path", result.Path),
		zap.String("revision", result.Revision),
		zap.String("remote_short_hash", result.Remote.ShortHash))
}
