package etcher

import (
	"testing"

	"github.com/kyleaupton/godrivelist"
	"github.com/stretchr/testify/assert"
)

func TestDecorateDrives(t *testing.T) {
	t.Run("uses the device identifier on linux", func(t *testing.T) {
		drives := DecorateDrives([]godrivelist.Drive{
			{Device: "/dev/sda", Mountpoints: []godrivelist.Mountpoint{{Path: "/"}}},
			{Device: "/dev/sdb"},
		}, "linux")

		assert.Equal(t, "/dev/sda", drives[0].DisplayName)
		assert.Equal(t, "/dev/sdb", drives[1].DisplayName)
	})

	t.Run("uses the device identifier on darwin", func(t *testing.T) {
		drives := DecorateDrives([]godrivelist.Drive{
			{Device: "/dev/disk2", Mountpoints: []godrivelist.Mountpoint{{Path: "/Volumes/USB"}}},
		}, "darwin")

		assert.Equal(t, "/dev/disk2", drives[0].DisplayName)
	})

	t.Run("joins mountpoint paths on windows", func(t *testing.T) {
		drives := DecorateDrives([]godrivelist.Drive{
			{
				Device: "\\\\.\\PhysicalDrive1",
				Mountpoints: []godrivelist.Mountpoint{
					{Path: "D:\\"},
					{Path: "E:\\"},
				},
			},
		}, "windows")

		assert.Equal(t, "D:\\, E:\\", drives[0].DisplayName)
	})

	t.Run("falls back to the device identifier on windows without mountpoints", func(t *testing.T) {
		drives := DecorateDrives([]godrivelist.Drive{
			{Device: "\\\\.\\PhysicalDrive2"},
		}, "windows")

		assert.Equal(t, "\\\\.\\PhysicalDrive2", drives[0].DisplayName)
	})
}

func TestFilterSystemDrives(t *testing.T) {
	drives := []godrivelist.Drive{
		{Device: "/dev/sda", System: true},
		{Device: "/dev/sdb", System: false},
		{Device: "/dev/sdc", System: false},
	}

	t.Run("removes system drives by default", func(t *testing.T) {
		filtered := FilterSystemDrives(drives, false)

		assert.Len(t, filtered, 2)
		assert.Equal(t, "/dev/sdb", filtered[0].Device)
		assert.Equal(t, "/dev/sdc", filtered[1].Device)
	})

	t.Run("retains system drives in unsafe mode", func(t *testing.T) {
		filtered := FilterSystemDrives(drives, true)

		assert.Len(t, filtered, 3)
		assert.Equal(t, drives, filtered)
	})

	t.Run("handles an empty list", func(t *testing.T) {
		assert.Empty(t, FilterSystemDrives(nil, false))
	})
}

func TestPostProcessingScenario(t *testing.T) {
	raw := []godrivelist.Drive{
		{Device: "/dev/sda", System: true},
		{Device: "/dev/sdb", System: false},
	}

	processed := FilterSystemDrives(DecorateDrives(raw, "linux"), false)

	assert.Len(t, processed, 1)
	assert.Equal(t, "/dev/sdb", processed[0].Device)
	assert.False(t, processed[0].System)
	assert.Equal(t, "/dev/sdb", processed[0].DisplayName)
}
