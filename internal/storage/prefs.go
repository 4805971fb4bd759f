package storage

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Prefs are per-user settings that outlive a session.
type Prefs struct {
	Muted  bool    `yaml:"muted"`
	Volume float64 `yaml:"volume"`
}

// DefaultPrefs returns the settings used before anything is saved.
func DefaultPrefs() Prefs {
	return Prefs{Muted: false, Volume: 0.5}
}

const (
	prefsObject   = "settings"
	prefsProperty = "audio"
)

// PrefsStore loads and saves Prefs in the platform's user data directory.
// A nil manager keeps prefs in memory only.
type PrefsStore struct {
	data  *gdata.Manager
	prefs Prefs
	log   *log.Logger
}

// OpenPrefs opens the data directory for appName and loads saved prefs.
// Failures fall back to in-memory defaults.
func OpenPrefs(appName string, logger *log.Logger) *PrefsStore {
	ps := &PrefsStore{prefs: DefaultPrefs(), log: logger}

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("preferences will not be saved", "error", err)
		return ps
	}
	ps.data = m

	if err := ps.Load(); err != nil {
		logger.Warn("failed to load preferences, using defaults", "error", err)
	}
	return ps
}

// Load reads saved prefs, keeping defaults when none exist.
func (ps *PrefsStore) Load() error {
	ps.prefs = DefaultPrefs()
	if ps.data == nil || !ps.data.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	raw, err := ps.data.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("storage: failed to load prefs: %w", err)
	}
	loaded := DefaultPrefs()
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("storage: failed to unmarshal prefs: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)
	ps.prefs = loaded
	return nil
}

// Save writes the current prefs. It is a no-op without a data directory.
func (ps *PrefsStore) Save() error {
	if ps.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(ps.prefs)
	if err != nil {
		return fmt.Errorf("storage: failed to marshal prefs: %w", err)
	}
	if err := ps.data.SaveObjectProp(prefsObject, prefsProperty, raw); err != nil {
		return fmt.Errorf("storage: failed to save prefs: %w", err)
	}
	ps.log.Debug("preferences saved", "muted", ps.prefs.Muted, "volume", ps.prefs.Volume)
	return nil
}

// Get returns the current prefs.
func (ps *PrefsStore) Get() Prefs {
	return ps.prefs
}

// SetMuted updates the mute flag in memory. Call Save to persist.
func (ps *PrefsStore) SetMuted(muted bool) {
	ps.prefs.Muted = muted
}

// SetVolume updates the volume in memory, clamped to [0, 1].
func (ps *PrefsStore) SetVolume(v float64) {
	ps.prefs.Volume = clampVolume(v)
}

func clampVolume(v float64) float64 {
	return max(0, min(1, v))
}
