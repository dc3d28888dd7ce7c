package service

import (
	"io"
	"log"
	"os"
)

// serviceLog mirrors vm's internal diagnostic logger (vm/logging.go),
// grounded on the teacher's service/debugger_service.go serviceLog: silent
// unless STREAMVM_DEBUG is set.
var serviceLog = newServiceLogger()

func newServiceLogger() *log.Logger {
	if os.Getenv("STREAMVM_DEBUG") == "" {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "SERVICE: ", log.Ltime|log.Lmicroseconds)
}
