// File: control/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package control provides configuration, runtime metrics and debug
// introspection for the loop selector.
//
// Provides:
//   - LoadConfig: file + HIOLOAD_* environment configuration, validated
//   - ConfigStore: snapshot of the resolved configuration, decodable back into LoopsConfig
//   - MetricsRegistry and DebugProbes, bundled by Controller as api.Control
package control
