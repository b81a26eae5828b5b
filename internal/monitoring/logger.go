package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf
// and may be swapped with SetLogger; tests mute it, deployments can
// redirect it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op
// logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
