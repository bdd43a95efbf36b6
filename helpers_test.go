package shewhart

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
)

// test helper silences superfluous logging calls from the mock package
type foo struct {
	t *testing.T
}

func (f foo) Logf(format string, args ...interface{}) {
	// makes mock calls to log a no op to prevent a lot of superfluous logging calls
}
func (f foo) Errorf(format string, args ...interface{}) {
	f.t.Errorf(format, args...)
}
func (f foo) FailNow() {
	f.t.FailNow()
}

func silenceT(t *testing.T) mock.TestingT {
	return foo{t}
}

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) ReportError(err error) {
	m.Called(err)
}

func (m *mockReporter) Wait() {
	m.Called()
}

// writeTemp writes data to a temporary file and returns its path
func writeTemp(t *testing.T, data string) string {
	f, err := ioutil.TempFile("", "measurements")
	if err != nil {
		t.Fatalf("unexpected error creating temp file: %s", err)
	}
	t.Cleanup(func() { os.Remove(f.Name()) })
	if _, err := f.WriteString(data); err != nil {
		t.Fatalf("unexpected error writing to file: %s", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("unexpected error closing file: %s", err)
	}
	return f.Name()
}
