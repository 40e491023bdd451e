package output

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/kyleaupton/godrivelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/targodan/go-errors"
)

func init() {
	color.NoColor = true
}

func testDrives() []godrivelist.Drive {
	return []godrivelist.Drive{
		{
			Device:      "/dev/sdb",
			DisplayName: "/dev/sdb",
			Description: "Generic USB Flash Disk",
			Size:        32000000000,
		},
	}
}

func TestConsoleReporterDrives(t *testing.T) {
	buffer := &bytes.Buffer{}
	reporter := NewConsoleReporter(NewNopWriteCloser(buffer))
	defer reporter.Close()

	require.NoError(t, reporter.ReportDrives(testDrives()))

	out := buffer.String()
	assert.Contains(t, out, "/dev/sdb")
	assert.Contains(t, out, "Generic USB Flash Disk")
	assert.Contains(t, out, "32 GB")
}

func TestConsoleReporterNoDrives(t *testing.T) {
	buffer := &bytes.Buffer{}
	reporter := NewConsoleReporter(NewNopWriteCloser(buffer))
	defer reporter.Close()

	require.NoError(t, reporter.ReportDrives(nil))

	assert.Contains(t, buffer.String(), "No drives found.")
}

func TestConsoleReporterScanError(t *testing.T) {
	buffer := &bytes.Buffer{}
	reporter := NewConsoleReporter(NewNopWriteCloser(buffer))
	defer reporter.Close()

	require.NoError(t, reporter.ReportScanError(errors.New("lsblk not found")))

	assert.Contains(t, buffer.String(), "lsblk not found")
}

type stubReporter struct {
	drives [][]godrivelist.Drive
	errs   []error
	fail   error
	closed bool
}

func (r *stubReporter) ReportDrives(drives []godrivelist.Drive) error {
	r.drives = append(r.drives, drives)
	return r.fail
}

func (r *stubReporter) ReportScanError(err error) error {
	r.errs = append(r.errs, err)
	return r.fail
}

func (r *stubReporter) Close() error {
	r.closed = true
	return r.fail
}

func TestMultiReporterFanOut(t *testing.T) {
	first := &stubReporter{}
	second := &stubReporter{}
	multi := &MultiReporter{Reporters: []Reporter{first, second}}

	require.NoError(t, multi.ReportDrives(testDrives()))
	require.NoError(t, multi.ReportScanError(errors.New("scan failed")))
	require.NoError(t, multi.Close())

	assert.Len(t, first.drives, 1)
	assert.Len(t, second.drives, 1)
	assert.Len(t, first.errs, 1)
	assert.Len(t, second.errs, 1)
	assert.True(t, first.closed)
	assert.True(t, second.closed)
}

func TestMultiReporterAggregatesErrors(t *testing.T) {
	failing := &stubReporter{fail: errors.New("broken pipe")}
	healthy := &stubReporter{}
	multi := &MultiReporter{Reporters: []Reporter{failing, healthy}}

	err := multi.ReportDrives(testDrives())

	assert.Error(t, err)
	// The healthy reporter is still notified.
	assert.Len(t, healthy.drives, 1)
}
