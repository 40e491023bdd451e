package app

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/targodan/go-errors"
	"github.com/urfave/cli/v2"

	"github.com/jdrew1303/etcher"
	"github.com/jdrew1303/etcher/output"
)

// listDrives performs a single scan without going through the periodic
// scanner and prints the result.
func listDrives(c *cli.Context) error {
	err := initAppAction(c)
	if err != nil {
		return err
	}

	s, err := loadSettings(c)
	if err != nil {
		return err
	}

	drives, err := etcher.SystemLister().ListDrives()
	if err != nil {
		return errors.Newf("could not enumerate drives, reason: %w", err)
	}

	drives = etcher.DecorateDrives(drives, runtime.GOOS)
	drives = etcher.FilterSystemDrives(drives, s.UnsafeMode())

	if c.Bool("json") {
		data, err := json.MarshalIndent(drives, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	reporter := output.NewConsoleReporter(output.NewNopWriteCloser(os.Stdout))
	defer reporter.Close()
	return reporter.ReportDrives(drives)
}
