package resolver

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the logger used for resolution tracing. Library consumers
// that never call SetLogger get a no-op logger and pay nothing for the
// tracing calls.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs the resolution tracing logger. It only takes effect
// when called before the first resolution; afterwards the no-op default is
// already locked in.
func SetLogger(l *zap.Logger) {
	logger = l
}
