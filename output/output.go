// Package output contains reporters which consume drive scan results,
// e.g. for display on a console.
package output

import (
	"io"

	"github.com/kyleaupton/godrivelist"
	"github.com/sirupsen/logrus"

	"github.com/jdrew1303/etcher"
)

// Reporter provides capability to report drive scan outcomes.
type Reporter interface {
	// ReportDrives reports the result of a successful scan.
	ReportDrives(drives []godrivelist.Drive) error
	// ReportScanError reports a failed scan.
	ReportScanError(err error) error
	io.Closer
}

// subscriber adapts a Reporter to the etcher.Subscriber interface. Report
// errors never reach the scanner, they are only logged.
type subscriber struct {
	reporter Reporter
}

func (s *subscriber) OnDrives(drives []godrivelist.Drive) {
	err := s.reporter.ReportDrives(drives)
	if err != nil {
		logrus.WithError(err).Warn("Could not report drives.")
	}
}

func (s *subscriber) OnScanError(scanErr error) {
	err := s.reporter.ReportScanError(scanErr)
	if err != nil {
		logrus.WithError(err).Warn("Could not report scan error.")
	}
}

// Subscribe attaches the given Reporter to the scanner. The reporter is
// notified on every scan, in subscription order relative to other
// subscribers.
func Subscribe(scanner *etcher.DriveScanner, reporter Reporter) {
	scanner.Subscribe(&subscriber{reporter: reporter})
}
