package shewhart

import (
	"errors"
	"os"

	"github.com/BTBurke/shewhart/pkg/chart"
	"github.com/BTBurke/shewhart/pkg/constants"
	"github.com/BTBurke/shewhart/pkg/record"
	"github.com/stvp/rollbar"
)

// ErrorReporter sends unexpected errors to an external crash reporting service
type ErrorReporter interface {
	ReportError(err error)
	Wait()
}

var _ ErrorReporter = rollbarReporter{}
var _ ErrorReporter = noopReporter{}

type rollbarReporter struct{}

type noopReporter struct{}

// NewErrorReporter returns a Rollbar reporter when a token is configured and reporting is not
// suppressed, otherwise a reporter that drops every error.
func NewErrorReporter(c Config) ErrorReporter {
	if c.RollbarToken == "" || c.NoErrorReports {
		return noopReporter{}
	}
	switch env := os.Getenv("environment"); env {
	case "development":
		rollbar.Environment = "development"
	default:
		rollbar.Environment = "production"
	}
	rollbar.Token = c.RollbarToken
	return rollbarReporter{}
}

// ReportError sends err to Rollbar.  Data consists only of the error and a stack trace.
func (rollbarReporter) ReportError(err error) {
	rollbar.Error(rollbar.ERR, err)
}

// Wait blocks until queued reports are sent
func (rollbarReporter) Wait() {
	rollbar.Wait()
}

func (noopReporter) ReportError(err error) {}
func (noopReporter) Wait()                 {}

// IsUserError reports whether err was caused by the input data or the configuration, as opposed to
// a fault in the program.  Only the latter are worth reporting.
func IsUserError(err error) bool {
	var importErr record.ImportError
	var timeErr record.TimeError
	var invariantErr record.InvariantError
	var constantErr constants.ConstantError
	var kindErr chart.KindError
	var pathErr *os.PathError
	switch {
	case errors.As(err, &importErr), errors.As(err, &timeErr), errors.As(err, &invariantErr),
		errors.As(err, &constantErr), errors.As(err, &kindErr), errors.As(err, &pathErr):
		return true
	default:
		return false
	}
}

// ReportUnexpected sends err to r unless it is a user error and returns whether it was sent
func ReportUnexpected(r ErrorReporter, err error) bool {
	if err == nil || IsUserError(err) {
		return false
	}
	r.ReportError(err)
	return true
}
