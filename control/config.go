// File: control/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Resolved configuration kept as a flat key/value snapshot, so it can be
// inspected through api.Control and decoded back into typed sections.

package control

import (
	"sync"

	"github.com/mitchellh/mapstructure"
)

// ConfigStore holds the configuration a component was built with.
type ConfigStore struct {
	mu     sync.RWMutex
	config map[string]any
}

// NewConfigStore initializes an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{config: make(map[string]any)}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	snapshot := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		snapshot[k] = v
	}
	return snapshot
}

// SetConfig merges values into the store.
func (cs *ConfigStore) SetConfig(values map[string]any) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for k, v := range values {
		cs.config[k] = v
	}
}

// Store merges the mapstructure-tagged fields of section, e.g. a
// LoopsConfig, keyed by their tag names.
func (cs *ConfigStore) Store(section any) error {
	values := make(map[string]any)
	if err := mapstructure.Decode(section, &values); err != nil {
		return err
	}
	cs.SetConfig(values)
	return nil
}

// Decode weakly decodes the current snapshot into out (a struct pointer with
// mapstructure tags), so "4" fills an int field.
func (cs *ConfigStore) Decode(out any) error {
	return decodeWeak(cs.GetSnapshot(), out)
}

func decodeWeak(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
