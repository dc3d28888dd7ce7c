package vm

import (
	"io"
	"log"
	"os"
)

// vmLog is the machine's internal diagnostic logger. Grounded on the
// teacher's debugLog/serviceLog pattern (gui/app.go, service/debugger_service.go):
// silent by default, switched to a real sink when STREAMVM_DEBUG is set, so
// a production build never pays for logging nobody asked for.
var vmLog = newDiagnosticLogger()

func newDiagnosticLogger() *log.Logger {
	if os.Getenv("STREAMVM_DEBUG") == "" {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "VM: ", log.Ltime|log.Lmicroseconds)
}
