package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kyleaupton/godrivelist"
	"github.com/sirupsen/logrus"
	"github.com/targodan/go-errors"
	"github.com/urfave/cli/v2"

	"github.com/jdrew1303/etcher"
)

// latestScan caches the most recent scan outcome for the HTTP handlers.
// It implements etcher.Subscriber.
type latestScan struct {
	mutex   sync.RWMutex
	drives  []godrivelist.Drive
	lastErr error
	scanned bool
}

func (l *latestScan) OnDrives(drives []godrivelist.Drive) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.drives = drives
	l.lastErr = nil
	l.scanned = true
}

func (l *latestScan) OnScanError(err error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.lastErr = err
	l.scanned = true
}

func (l *latestScan) handleDrives(c *gin.Context) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if !l.scanned {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no scan completed yet"})
		return
	}
	if l.lastErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": l.lastErr.Error()})
		return
	}
	drives := l.drives
	if drives == nil {
		drives = []godrivelist.Drive{}
	}
	c.JSON(http.StatusOK, gin.H{"drives": drives})
}

func serveDrives(c *cli.Context) error {
	err := initAppAction(c)
	if err != nil {
		return err
	}

	if c.NArg() != 1 {
		return errors.Newf("expected exactly one argument <listen address>")
	}

	if c.Bool("verbose") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s, err := loadSettings(c)
	if err != nil {
		return err
	}

	scanner := newScanner(c, s)
	latest := &latestScan{}
	scanner.Subscribe(latest)

	router := gin.New()
	router.Use(gin.Recovery())
	if c.Bool("verbose") {
		router.Use(gin.Logger())
	}
	router.GET("/drives", latest.handleDrives)
	router.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"scans":  scanner.ScanCount(),
			"errors": scanner.ErrorCount(),
		})
	})

	server := &http.Server{
		Addr:    c.Args().First(),
		Handler: router,
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	scanner.Start()
	return serveUntilSignal(server, scanner, signalChan)
}

// serveUntilSignal runs the server until it fails or a signal arrives. The
// scanner is stopped on either path; a listener that fails to come up does
// not leave the command hanging.
func serveUntilSignal(server *http.Server, scanner *etcher.DriveScanner, signals <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- server.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		scanner.Stop()
		return err
	case <-signals:
	}

	shutdownTimeout := 5 * time.Second
	logrus.Infof("Received interrupt, shutting down server (timeout: %v)...", shutdownTimeout)

	scanner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		logrus.WithError(err).Error("Error during server shutdown.")
	}

	err = <-listenErr
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}
