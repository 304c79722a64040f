package health

import "sync/atomic"

// shuttingDown flips once graceful shutdown starts so the readiness probe
// drains traffic before the listener closes.
var shuttingDown atomic.Bool

// SetReady toggles the readiness gate.
func SetReady(ready bool) {
	shuttingDown.Store(!ready)
}

// Ready reports whether the process accepts new traffic.
func Ready() bool {
	return !shuttingDown.Load()
}
