package health

import (
	"sync/atomic"

	"github.com/jonwraymond/healthstatus/observe"
)

var pkgLogger atomic.Pointer[observe.Logger]

// SetLogger sets the logger used by package-level functions such as
// NewStatusWithTimestamp. A nil logger restores the no-op default.
func SetLogger(l observe.Logger) {
	if l == nil {
		pkgLogger.Store(nil)
		return
	}
	pkgLogger.Store(&l)
}

func currentLogger() observe.Logger {
	if l := pkgLogger.Load(); l != nil {
		return *l
	}
	return observe.NopLogger()
}
