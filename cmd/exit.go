package cmd

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitCancelled = 130
)

// errCancelled is returned when the user leaves the composer with ctrl+c.
var errCancelled = errors.New("cancelled")

// ExitCode maps an error returned by Execute onto a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errCancelled):
		return ExitCancelled
	default:
		return ExitError
	}
}

// ErrorMessage renders err for stderr, one hint per line. Cancellation is
// silent.
func ErrorMessage(err error) string {
	if err == nil || errors.Is(err, errCancelled) {
		return ""
	}
	var b strings.Builder
	b.WriteString("error: ")
	b.WriteString(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		b.WriteString("\nhint: ")
		b.WriteString(hint)
	}
	return b.String()
}
