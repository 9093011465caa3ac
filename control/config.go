// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update and reload
// propagation, plus helpers for the spin strategy disable mask.

package control

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/momentics/hioload-spin/spin"
)

// KeySpinDisabled holds the strategy disable mask (int) in a ConfigStore.
const KeySpinDisabled = "spin.disabled"

// EnvSpinDisable names the environment variable consulted by
// SpinDisableMaskFromEnv: a decimal mask or comma-separated kind names
// ("monitorx", "umonitor", "pause").
const EnvSpinDisable = "HIOLOAD_SPIN_DISABLE"

// ConfigStore is a dynamic key/value map with atomic snapshot and listener
// support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	copy := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		copy[k] = v
	}
	return copy
}

// SetConfig merges new values and dispatches reload if needed.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	cs.dispatchReload()
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// dispatchReload invokes all listeners.
func (cs *ConfigStore) dispatchReload() {
	for _, fn := range cs.listeners {
		go fn()
	}
}

// SpinDisableMask returns the stored strategy disable mask, or 0 when unset
// or of an unexpected type.
func (cs *ConfigStore) SpinDisableMask() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	switch v := cs.config[KeySpinDisabled].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case string:
		return ParseSpinDisableMask(v)
	}
	return 0
}

// SpinDisableMaskFromEnv reads the disable mask from the environment.
func SpinDisableMaskFromEnv() int {
	return ParseSpinDisableMask(os.Getenv(EnvSpinDisable))
}

// ParseSpinDisableMask parses a decimal mask or comma-separated kind names.
// Unrecognized names are ignored rather than failing startup.
func ParseSpinDisableMask(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if mask, err := strconv.Atoi(s); err == nil {
		return mask
	}
	mask := 0
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "monitorx":
			mask |= 1 << int(spin.KindMonitorX)
		case "umonitor":
			mask |= 1 << int(spin.KindUMonitor)
		case "pause":
			mask |= 1 << int(spin.KindPause)
		}
	}
	return mask
}
