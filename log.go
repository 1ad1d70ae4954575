package rowskema

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerMu      sync.RWMutex
	currentLogger = zerolog.Nop()
)

// SetLogger replaces the package logger used for cell diagnostics. The default
// is a disabled logger so library users opt in explicitly.
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	currentLogger = l
	loggerMu.Unlock()
}

// Logger returns the current diagnostics logger.
func Logger() zerolog.Logger {
	loggerMu.RLock()
	l := currentLogger
	loggerMu.RUnlock()
	return l
}

// report forwards issues to the optional sink and logs them at warn level.
// Missing columns never reach here; only cells that held unusable data do.
func report(iss Issues, sink func(Issue)) {
	l := Logger()
	for _, it := range iss {
		if sink != nil {
			sink(it)
		}
		ev := l.Warn().Str("code", it.Code).Str("column", it.Column)
		if it.Schema != "" {
			ev = ev.Str("schema", it.Schema)
		}
		if it.Row >= 0 {
			ev = ev.Int("row", it.Row)
		}
		if it.Cause != nil {
			ev = ev.AnErr("cause", it.Cause)
		}
		ev.Msg(it.Message)
	}
}
