package app

import (
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/jdrew1303/etcher/output"
)

func watchDrives(c *cli.Context) error {
	err := initAppAction(c)
	if err != nil {
		return err
	}

	s, err := loadSettings(c)
	if err != nil {
		return err
	}

	scanner := newScanner(c, s)

	reporter := output.NewConsoleReporter(output.NewNopWriteCloser(os.Stdout))
	defer reporter.Close()
	output.Subscribe(scanner, reporter)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	scanner.Start()
	<-signalChan
	scanner.Stop()

	logrus.WithFields(logrus.Fields{
		"scans":  scanner.ScanCount(),
		"errors": scanner.ErrorCount(),
	}).Info("Received interrupt, drive watch stopped.")

	return nil
}
