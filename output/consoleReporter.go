package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/kyleaupton/godrivelist"
)

type consoleReporter struct {
	out io.WriteCloser
}

// NewConsoleReporter creates a new Reporter which renders each scan result
// as a drive table on the given io.WriteCloser out.
// This Reporter is intended for live updates to the console.
func NewConsoleReporter(out io.WriteCloser) Reporter {
	return &consoleReporter{out: out}
}

func (r *consoleReporter) ReportDrives(drives []godrivelist.Drive) error {
	if len(drives) == 0 {
		_, err := fmt.Fprintln(r.out, color.YellowString("No drives found."))
		return err
	}

	format := "%-20s %9s  %-24s %s\n"
	_, err := fmt.Fprintf(r.out, format, "DEVICE", "SIZE", "DESCRIPTION", "NAME")
	if err != nil {
		return err
	}
	for _, drive := range drives {
		flags := ""
		if drive.Protected {
			flags = color.YellowString(" (protected)")
		}
		if drive.System {
			flags += color.RedString(" (system)")
		}
		_, err = fmt.Fprintf(r.out, format,
			drive.Device,
			humanize.Bytes(uint64(drive.Size)),
			drive.Description,
			drive.DisplayName+flags)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *consoleReporter) ReportScanError(scanErr error) error {
	_, err := fmt.Fprintln(r.out, color.RedString("Drive scan failed: %v", scanErr))
	return err
}

func (r *consoleReporter) Close() error {
	return r.out.Close()
}
