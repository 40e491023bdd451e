package output

import (
	"github.com/kyleaupton/godrivelist"
	"github.com/targodan/go-errors"
)

// MultiReporter is a Reporter which reports all information it receives
// to all given Reporters.
type MultiReporter struct {
	Reporters []Reporter
}

// ReportDrives reports the given drives to all reporters.
func (r *MultiReporter) ReportDrives(drives []godrivelist.Drive) error {
	var err error
	for _, rep := range r.Reporters {
		err = errors.NewMultiError(err, rep.ReportDrives(drives))
	}
	return err
}

// ReportScanError reports the given scan error to all reporters.
func (r *MultiReporter) ReportScanError(scanErr error) error {
	var err error
	for _, rep := range r.Reporters {
		err = errors.NewMultiError(err, rep.ReportScanError(scanErr))
	}
	return err
}

// Close closes all reporters.
func (r *MultiReporter) Close() error {
	var err error
	for _, rep := range r.Reporters {
		err = errors.NewMultiError(err, rep.Close())
	}
	return err
}
