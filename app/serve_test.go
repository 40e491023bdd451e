package app

import (
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/kyleaupton/godrivelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdrew1303/etcher"
)

type stubLister struct{}

func (stubLister) ListDrives() ([]godrivelist.Drive, error) {
	return nil, nil
}

type stubSettings struct{}

func (stubSettings) UnsafeMode() bool {
	return false
}

func newServeTestScanner() *etcher.DriveScanner {
	scanner := etcher.NewDriveScanner(stubLister{}, stubSettings{})
	scanner.FirstScanDelay = time.Millisecond
	scanner.Interval = 5 * time.Millisecond
	return scanner
}

func TestServeReturnsListenError(t *testing.T) {
	// Occupy a port so the server cannot bind it.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	scanner := newServeTestScanner()
	scanner.Start()
	server := &http.Server{
		Addr:    listener.Addr().String(),
		Handler: http.NewServeMux(),
	}

	signals := make(chan os.Signal)
	done := make(chan error, 1)
	go func() {
		done <- serveUntilSignal(server, scanner, signals)
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the listen address failed to bind")
	}
}

func TestServeShutsDownOnSignal(t *testing.T) {
	scanner := newServeTestScanner()
	scanner.Start()
	server := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	signals := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- serveUntilSignal(server, scanner, signals)
	}()

	// Give the listener a moment to come up before interrupting.
	time.Sleep(50 * time.Millisecond)
	signals <- os.Interrupt

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the signal")
	}
}
