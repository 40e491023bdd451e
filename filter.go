package etcher

import (
	"strings"

	"github.com/kyleaupton/godrivelist"
	"github.com/rjNemo/underscore"
)

// DecorateDrives derives the display name of each drive. The name is the
// device identifier, except on windows where drives with mountpoints are
// named after their mountpoint paths, joined by ", ".
// The platform string follows runtime.GOOS.
func DecorateDrives(drives []godrivelist.Drive, platform string) []godrivelist.Drive {
	return underscore.Map(drives, func(drive godrivelist.Drive) godrivelist.Drive {
		drive.DisplayName = drive.Device
		if platform == "windows" && len(drive.Mountpoints) > 0 {
			paths := underscore.Map(drive.Mountpoints, func(m godrivelist.Mountpoint) string {
				return m.Path
			})
			drive.DisplayName = strings.Join(paths, ", ")
		}
		return drive
	})
}

// FilterSystemDrives removes all drives flagged as system drives, unless
// unsafeMode is set. The order of the remaining drives is preserved.
func FilterSystemDrives(drives []godrivelist.Drive, unsafeMode bool) []godrivelist.Drive {
	if unsafeMode {
		return drives
	}
	return underscore.Filter(drives, func(drive godrivelist.Drive) bool {
		return !drive.System
	})
}
