package etcher

import (
	"runtime"
	"sync"
	"time"

	"github.com/kyleaupton/godrivelist"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultScanInterval is the steady-state delay between two drive scans.
	DefaultScanInterval = 2 * time.Second
	// DefaultFirstScanDelay is the delay before the very first scan. It is
	// deliberately shorter than DefaultScanInterval, but non-zero so the
	// caller gets a chance to finish its own startup before a potentially
	// slow first enumeration.
	DefaultFirstScanDelay = 500 * time.Millisecond
)

// Subscriber receives the outcome of each drive scan. Exactly one of the
// two callbacks is invoked per scan.
type Subscriber interface {
	// OnDrives receives the decorated and filtered drive list of a
	// successful scan.
	OnDrives(drives []godrivelist.Drive)
	// OnScanError receives the error of a failed scan, as returned by the
	// enumeration facility.
	OnScanError(err error)
}

// DriveScanner periodically enumerates the attached block storage devices
// and publishes the result to its subscribers. Scans never overlap: the
// next scan is scheduled only after the previous one has completed and its
// result has been delivered.
//
// Missed events are not buffered. A subscriber attached between two scans
// only sees results from the next scan onwards.
type DriveScanner struct {
	lister   DriveLister
	settings SettingsReader

	// Interval is the steady-state delay between scans.
	Interval time.Duration
	// FirstScanDelay is the delay before the first scan after Start.
	FirstScanDelay time.Duration
	// Platform controls display name derivation, see DecorateDrives.
	// Defaults to runtime.GOOS.
	Platform string

	mutex       sync.Mutex
	running     bool
	stopChan    chan struct{}
	doneChan    chan struct{}
	subscribers []Subscriber
	scanCount   uint64
	errorCount  uint64
}

// NewDriveScanner creates a new *DriveScanner with default timing, using
// the given enumeration facility and settings store.
func NewDriveScanner(lister DriveLister, settings SettingsReader) *DriveScanner {
	return &DriveScanner{
		lister:         lister,
		settings:       settings,
		Interval:       DefaultScanInterval,
		FirstScanDelay: DefaultFirstScanDelay,
		Platform:       runtime.GOOS,
	}
}

// Subscribe registers the given Subscriber. Subscribers are notified in
// the order they were registered. Must not be called with nil.
func (s *DriveScanner) Subscribe(sub Subscriber) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.subscribers = append(s.subscribers, sub)
}

// Start begins periodic scanning. The first scan runs after FirstScanDelay,
// every following scan after Interval. Calling Start on a scanner that is
// already running is a no-op; a second timer chain is never armed.
//
// If a scan of a previous Start/Stop cycle is still in flight, Start blocks
// until it has completed, so scans never overlap across cycles.
func (s *DriveScanner) Start() {
	s.mutex.Lock()
	if s.running {
		logrus.Debug("Drive scanner already running, ignoring Start.")
		s.mutex.Unlock()
		return
	}
	prevDone := s.doneChan
	s.mutex.Unlock()

	if prevDone != nil {
		<-prevDone
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})

	logrus.WithFields(logrus.Fields{
		"firstScanDelay": s.FirstScanDelay,
		"interval":       s.Interval,
	}).Debug("Drive scanner started.")

	go s.loop(s.stopChan, s.doneChan)
}

// Stop halts periodic scanning and cancels the pending timer. It is safe
// to call on a scanner that is not running. A scan that is already in
// flight when Stop is called still completes and may still notify
// subscribers; Stop only guarantees that no new scan begins afterwards.
func (s *DriveScanner) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return
	}
	s.running = false
	close(s.stopChan)

	logrus.Debug("Drive scanner stopped.")
}

// ScanCount returns the number of scans attempted since creation. The
// counter is never reset.
func (s *DriveScanner) ScanCount() uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.scanCount
}

// ErrorCount returns the number of failed scans since creation. The
// counter is never reset.
func (s *DriveScanner) ErrorCount() uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.errorCount
}

func stopped(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}

// loop is the single scheduling goroutine of the scanner. All scans of one
// Start/Stop cycle execute on it sequentially, so there is never more than
// one pending timer and never more than one scan in flight.
func (s *DriveScanner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(s.FirstScanDelay)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
		}

		if !s.scan(stop) {
			return
		}
		timer.Reset(s.Interval)
	}
}

// scan performs a single enumeration and delivers the outcome. It reports
// whether the next scan may be scheduled. The decision is keyed to the stop
// channel of this cycle, not the running flag, so a scan outlasting its own
// Stop never re-arms the timer on behalf of a later cycle.
func (s *DriveScanner) scan(stop <-chan struct{}) bool {
	// The timer may have fired just as Stop was called. Do not start a
	// scan in that case.
	if stopped(stop) {
		return false
	}

	s.mutex.Lock()
	s.scanCount++
	s.mutex.Unlock()

	drives, err := s.lister.ListDrives()
	if err != nil {
		s.mutex.Lock()
		s.errorCount++
		s.mutex.Unlock()

		logrus.WithError(err).Error("Could not enumerate drives.")
		s.emitError(err)
		return !stopped(stop)
	}

	drives = DecorateDrives(drives, s.Platform)
	drives = FilterSystemDrives(drives, s.settings.UnsafeMode())

	logrus.WithField("drives", len(drives)).Debug("Drive scan complete.")
	s.emitDrives(drives)
	return !stopped(stop)
}

func (s *DriveScanner) snapshotSubscribers() []Subscriber {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	return subs
}

func (s *DriveScanner) emitDrives(drives []godrivelist.Drive) {
	for _, sub := range s.snapshotSubscribers() {
		sub.OnDrives(drives)
	}
}

func (s *DriveScanner) emitError(err error) {
	for _, sub := range s.snapshotSubscribers() {
		sub.OnScanError(err)
	}
}
