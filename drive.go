package etcher

import (
	"github.com/kyleaupton/godrivelist"
)

// DriveLister enumerates the block storage devices attached to the host.
// The returned descriptors are raw, i.e. not yet decorated or filtered.
type DriveLister interface {
	ListDrives() ([]godrivelist.Drive, error)
}

// SettingsReader exposes the persisted flags the scanner consults.
type SettingsReader interface {
	// UnsafeMode reports whether system drives should be included in
	// scan results.
	UnsafeMode() bool
}

type systemLister struct{}

// SystemLister returns a DriveLister backed by the drive tables of the
// operating system.
func SystemLister() DriveLister {
	return &systemLister{}
}

func (systemLister) ListDrives() ([]godrivelist.Drive, error) {
	return godrivelist.List()
}
