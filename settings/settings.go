// Package settings implements the persisted user settings consumed by the
// drive scanner and the CLI. Settings live in a single JSON file which is
// validated against a schema on load.
package settings

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/targodan/go-errors"
)

// DefaultFileName is the name of the settings file inside the
// configuration directory.
const DefaultFileName = "settings.json"

type values struct {
	UnsafeMode           bool `json:"unsafeMode"`
	ErrorReporting       bool `json:"errorReporting"`
	UpdatesEnabled       bool `json:"updatesEnabled"`
	DesktopNotifications bool `json:"desktopNotifications"`
}

func defaults() values {
	return values{
		UnsafeMode:           false,
		ErrorReporting:       true,
		UpdatesEnabled:       true,
		DesktopNotifications: true,
	}
}

// Settings is a file-backed settings store. The zero value is not usable,
// use Load.
type Settings struct {
	path string

	mutex  sync.RWMutex
	values values
}

// Load reads the settings file at the given path. A missing file is not an
// error; defaults are used and the file is created on the first Save. An
// existing file that is not valid JSON or violates the settings schema
// yields an error.
func Load(path string) (*Settings, error) {
	s := &Settings{
		path:   path,
		values: defaults(),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logrus.WithField("path", path).Debug("No settings file, using defaults.")
		return s, nil
	}
	if err != nil {
		return nil, errors.Errorf("could not read settings file, reason: %w", err)
	}

	if err := validate(data); err != nil {
		return nil, errors.Errorf("settings file \"%s\" is invalid, reason: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, errors.Errorf("could not parse settings file, reason: %w", err)
	}

	logrus.WithField("path", path).Debug("Settings loaded.")
	return s, nil
}

// Save writes the current settings back to the file they were loaded from.
func (s *Settings) Save() error {
	s.mutex.RLock()
	data, err := json.MarshalIndent(s.values, "", "  ")
	s.mutex.RUnlock()
	if err != nil {
		return err
	}

	err = os.WriteFile(s.path, data, 0644)
	if err != nil {
		return errors.Errorf("could not write settings file, reason: %w", err)
	}
	return nil
}

// Path returns the location of the backing file.
func (s *Settings) Path() string {
	return s.path
}

// UnsafeMode reports whether system drives are included in scan results.
func (s *Settings) UnsafeMode() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.values.UnsafeMode
}

// SetUnsafeMode toggles inclusion of system drives. The change is not
// persisted until Save is called.
func (s *Settings) SetUnsafeMode(enabled bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values.UnsafeMode = enabled
}

// ErrorReporting reports whether anonymous error reporting is enabled.
func (s *Settings) ErrorReporting() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.values.ErrorReporting
}

// UpdatesEnabled reports whether automatic update checks are enabled.
func (s *Settings) UpdatesEnabled() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.values.UpdatesEnabled
}

// DesktopNotifications reports whether desktop notifications are enabled.
func (s *Settings) DesktopNotifications() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.values.DesktopNotifications
}
