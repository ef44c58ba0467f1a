package probe

import (
	"fmt"
	"os"
	"sync"
)

// WarnHandler receives non-fatal warnings, currently emitted when a
// deprecated method alias is used.
type WarnHandler func(msg string)

var (
	warnMu      sync.RWMutex
	warnHandler WarnHandler = defaultWarnHandler
)

func defaultWarnHandler(msg string) {
	fmt.Fprintf(os.Stderr, "probe: %s\n", msg)
}

// SetWarnHandler replaces the warning handler and returns the previous one.
// Pass nil to restore the default stderr handler.
func SetWarnHandler(h WarnHandler) WarnHandler {
	warnMu.Lock()
	defer warnMu.Unlock()
	prev := warnHandler
	if h == nil {
		h = defaultWarnHandler
	}
	warnHandler = h
	return prev
}

func warn(msg string) {
	warnMu.RLock()
	h := warnHandler
	warnMu.RUnlock()
	if h != nil {
		h(msg)
	}
}

func deprecated(old, replacement string) {
	warn(fmt.Sprintf("%s is deprecated; use %s instead", old, replacement))
}
