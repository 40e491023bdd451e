// Package app implements the etcher-drives command line interface.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/targodan/go-errors"
	"github.com/urfave/cli/v2"

	"github.com/jdrew1303/etcher"
	"github.com/jdrew1303/etcher/settings"
	"github.com/jdrew1303/etcher/version"
)

var onExit func()

func initAppAction(c *cli.Context) error {
	lvl, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	switch c.String("log-path") {
	case "-":
		logrus.SetOutput(os.Stdout)
	case "--":
		logrus.SetOutput(os.Stderr)
	default:
		logfile, err := os.OpenFile(c.String("log-path"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return errors.Errorf("could not open logfile for writing, reason: %w", err)
		}
		logrus.SetOutput(logfile)
		logrus.StandardLogger().ExitFunc = func(code int) {
			if onExit != nil {
				onExit()
			}
			os.Exit(code)
		}
		onExit = func() {
			logfile.Close()
		}
	}
	logrus.WithField("arguments", os.Args).Debug("Program started.")
	return nil
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return settings.DefaultFileName
	}
	return filepath.Join(dir, "etcher", settings.DefaultFileName)
}

// loadSettings reads the settings file given via --settings and applies
// the --unsafe override on top of it.
func loadSettings(c *cli.Context) (*settings.Settings, error) {
	s, err := settings.Load(c.String("settings"))
	if err != nil {
		return nil, err
	}
	if c.Bool("unsafe") {
		s.SetUnsafeMode(true)
	}
	return s, nil
}

func newScanner(c *cli.Context, s *settings.Settings) *etcher.DriveScanner {
	scanner := etcher.NewDriveScanner(etcher.SystemLister(), s)
	if c.Duration("interval") > 0 {
		scanner.Interval = c.Duration("interval")
	}
	if c.Duration("first-delay") > 0 {
		scanner.FirstScanDelay = c.Duration("first-delay")
	}
	return scanner
}

// RunApp runs the CLI with the given arguments.
func RunApp(args []string) {
	scanFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "settings",
			Usage: "path to the settings file",
			Value: defaultSettingsPath(),
		},
		&cli.BoolFlag{
			Name:    "unsafe",
			Aliases: []string{"u"},
			Usage:   "include system drives in the results, overrides the settings file",
			Value:   false,
		},
	}

	timingFlags := []cli.Flag{
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Usage:   "delay between two scans",
			Value:   etcher.DefaultScanInterval,
		},
		&cli.DurationFlag{
			Name:  "first-delay",
			Usage: "delay before the first scan",
			Value: etcher.DefaultFirstScanDelay,
		},
	}

	app := &cli.App{
		Name:        "etcher-drives",
		HelpName:    "etcher-drives",
		Description: "Periodically scans the attached block storage devices and reports removable drives.",
		Version:     version.EtcherVersion.String(),
		Authors: []*cli.Author{
			&cli.Author{
				Name: "James Drew",
			},
		},
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "one of [trace, debug, info, warn, error, fatal, panic]",
				Value:   "panic",
			},
			&cli.StringFlag{
				Name:  "log-path",
				Usage: "path to the logfile, or \"-\" for stdout, or \"--\" for stderr",
				Value: "--",
			},
		},
		Commands: []*cli.Command{
			&cli.Command{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "scans once and lists the attached drives",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "output the drive list as JSON",
						Value:   false,
					},
				}, scanFlags...),
				Action: listDrives,
			},
			&cli.Command{
				Name:   "watch",
				Usage:  "scans periodically and prints the drive list after every scan",
				Flags:  append(scanFlags, timingFlags...),
				Action: watchDrives,
			},
			&cli.Command{
				Name:      "serve",
				Usage:     "scans periodically and serves the latest result over HTTP",
				ArgsUsage: "<listen address>",
				Flags: append(append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "enable verbose HTTP logging",
						Value: false,
					},
				}, scanFlags...), timingFlags...),
				Action: serveDrives,
			},
		},
	}

	err := app.Run(args)
	if err != nil {
		fmt.Println(err)
		logrus.Error(err)
		logrus.Fatal("Aborting.")
	}
	if onExit != nil {
		onExit()
	}
}
